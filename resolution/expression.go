package resolution

import (
	"github.com/viant/dcl/language"
	"github.com/viant/dcl/schema"
)

// expression resolves e and records it in the trace; nil means an error was reported
func (s *session) expression(sc scope, e language.Expr) ObjectOrigin {
	var result ObjectOrigin
	switch actual := e.(type) {
	case *language.StringLiteral:
		result = &ConstantOrigin{origin: origin{Src: e}, Value: actual.Value, ValueType: schema.StringDataType}
	case *language.IntLiteral:
		result = &ConstantOrigin{origin: origin{Src: e}, Value: actual.Value, ValueType: schema.IntDataType}
	case *language.LongLiteral:
		result = &ConstantOrigin{origin: origin{Src: e}, Value: actual.Value, ValueType: schema.LongDataType}
	case *language.BooleanLiteral:
		result = &ConstantOrigin{origin: origin{Src: e}, Value: actual.Value, ValueType: schema.BooleanDataType}
	case *language.Null:
		result = &NullOrigin{origin: origin{Src: e}}
	case *language.This:
		result = &ImplicitThisReceiver{origin: origin{Src: e}, ResolvedTo: sc.receiver, CurrentScope: true}
	case *language.PropertyAccess:
		result = s.propertyAccess(sc, actual)
	case *language.FunctionCall:
		return s.call(sc, actual, false)
	}
	s.trace.expression(e, result)
	return result
}

// propertyAccess reads a property. A bare name is looked up in local values,
// then on receivers from the innermost outwards, then in imported objects.
func (s *session) propertyAccess(sc scope, access *language.PropertyAccess) ObjectOrigin {
	if access.Receiver != nil {
		receiver := s.expression(sc, access.Receiver)
		if receiver == nil {
			return nil
		}
		property := s.property(receiver.Type(), access.Name)
		if property == nil {
			s.report(access, UnresolvedReference{Name: access.Name})
			return nil
		}
		return &PropertyReference{origin: origin{Src: access}, Receiver: receiver, Property: property}
	}
	if local, ok := sc.local(access.Name); ok {
		return local
	}
	for depth, receiver := range sc.receivers() {
		if property := s.property(receiver.Type(), access.Name); property != nil {
			this := &ImplicitThisReceiver{origin: origin{Src: access}, ResolvedTo: receiver, CurrentScope: depth == 0}
			return &PropertyReference{origin: origin{Src: access}, Receiver: this, Property: property}
		}
	}
	if key, ok := s.imports.objects[access.Name]; ok {
		objectType, _ := s.schema.ExternalObject(key)
		return &External{origin: origin{Src: access}, Key: key, ObjectType: objectType}
	}
	s.report(access, UnresolvedReference{Name: access.Name})
	return nil
}

// importTable maps simple names to imported functions and objects
type importTable struct {
	functions map[string]*schema.TopLevelFunction
	objects   map[string]schema.FQName
}

func (s *session) importTable(imports []*language.Import) *importTable {
	table := &importTable{functions: map[string]*schema.TopLevelFunction{}, objects: map[string]schema.FQName{}}
	for _, name := range s.schema.DefaultImports() {
		s.addImport(table, nil, name)
	}
	for _, imported := range imports {
		s.addImport(table, imported, schema.FQName(imported.Name.String()))
	}
	return table
}

func (s *session) addImport(table *importTable, element *language.Import, name schema.FQName) {
	simple := name.Simple()
	if fn, ok := s.schema.ExternalFunction(name); ok {
		if existing, ok := table.functions[simple]; ok && existing.FQName() != name {
			if element != nil {
				s.report(element, AmbiguousImport{Name: simple})
			}
			return
		}
		table.functions[simple] = fn
		return
	}
	if _, ok := s.schema.ExternalObject(name); ok {
		if existing, ok := table.objects[simple]; ok && existing != name {
			if element != nil {
				s.report(element, AmbiguousImport{Name: simple})
			}
			return
		}
		table.objects[simple] = name
		return
	}
	if element != nil {
		s.report(element, UnresolvedReference{Name: string(name)})
	}
}
