package schema

import (
	"errors"
	"fmt"
)

// Builder registers classes and functions and produces an AnalysisSchema.
// It is the static replacement for annotation driven reflection: every capability
// (adding, configuring, builder, pure) is declared with an explicit call.
type Builder struct {
	topLevel          FQName
	classes           map[FQName]*DataClass
	order             []FQName
	externalFunctions map[FQName]*TopLevelFunction
	externalObjects   map[FQName]FQName
	defaultImports    []FQName
	errs              []error
}

// ClassBuilder declares the members of one class
type ClassBuilder struct {
	builder *Builder
	class   *DataClass
}

// NewBuilder returns a builder for a schema rooted at topLevel
func NewBuilder(topLevel FQName) *Builder {
	return &Builder{
		topLevel:          topLevel,
		classes:           map[FQName]*DataClass{},
		externalFunctions: map[FQName]*TopLevelFunction{},
		externalObjects:   map[FQName]FQName{},
	}
}

// Param creates a function parameter
func Param(name string, t DataType) *DataParameter {
	return &DataParameter{Name: name, Type: t}
}

// Stores marks the parameter as the initial value of property on the produced object
func (p *DataParameter) Stores(property string) *DataParameter {
	p.StoreInProperty = property
	return p
}

// Default marks the parameter as optional
func (p *DataParameter) Default() *DataParameter {
	p.IsDefault = true
	return p
}

// Class registers a new class; registering the same name twice is reported by Build
func (b *Builder) Class(name FQName) *ClassBuilder {
	if existing, ok := b.classes[name]; ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrTypeAlreadyExists, name))
		return &ClassBuilder{builder: b, class: existing}
	}
	class := &DataClass{Name: name}
	b.classes[name] = class
	b.order = append(b.order, name)
	return &ClassBuilder{builder: b, class: class}
}

// TopLevelFunction registers a function that scripts can import
func (b *Builder) TopLevelFunction(fn *TopLevelFunction) *Builder {
	name := fn.FQName()
	if _, ok := b.externalFunctions[name]; ok {
		b.errs = append(b.errs, fmt.Errorf("%w: function %s", ErrTypeAlreadyExists, name))
		return b
	}
	b.externalFunctions[name] = fn
	return b
}

// ExternalObject registers an importable object of the given type
func (b *Builder) ExternalObject(name, objectType FQName) *Builder {
	b.externalObjects[name] = objectType
	return b
}

// DefaultImport registers names visible without an import statement
func (b *Builder) DefaultImport(names ...FQName) *Builder {
	b.defaultImports = append(b.defaultImports, names...)
	return b
}

// Extends adds supertypes
func (c *ClassBuilder) Extends(names ...FQName) *ClassBuilder {
	c.class.Supertypes = append(c.class.Supertypes, names...)
	return c
}

// Property declares a mutable property
func (c *ClassBuilder) Property(name string, t DataType) *ClassBuilder {
	return c.AddProperty(&DataProperty{Name: name, Type: t})
}

// ReadOnlyProperty declares a property that scripts cannot assign
func (c *ClassBuilder) ReadOnlyProperty(name string, t DataType) *ClassBuilder {
	return c.AddProperty(&DataProperty{Name: name, Type: t, ReadOnly: true})
}

// AddProperty declares a fully specified property
func (c *ClassBuilder) AddProperty(p *DataProperty) *ClassBuilder {
	p.Owner = c.class.Name
	c.class.Properties = append(c.class.Properties, p)
	return c
}

// Adding declares a function that creates and returns a new child object
func (c *ClassBuilder) Adding(name string, returns FQName, lambda LambdaRequirement, params ...*DataParameter) *ClassBuilder {
	return c.Function(&MemberFunction{
		Name:       name,
		Parameters: params,
		Semantics:  FunctionSemantics{Kind: Adding, ReturnType: ClassRef(returns), Lambda: lambda},
	})
}

// Configuring declares a function that configures the object reached through accessor
func (c *ClassBuilder) Configuring(name string, accessor ConfigureAccessor, lambda LambdaRequirement, params ...*DataParameter) *ClassBuilder {
	return c.Function(&MemberFunction{
		Name:       name,
		Parameters: params,
		Semantics:  FunctionSemantics{Kind: Configuring, ReturnType: UnitType, Lambda: lambda, Accessor: &accessor},
	})
}

// Builder declares a chaining function that sets property and returns the receiver
func (c *ClassBuilder) Builder(name string, property string) *ClassBuilder {
	return c.Function(&MemberFunction{
		Name:      name,
		Semantics: FunctionSemantics{Kind: BuilderFunction, Lambda: LambdaNone, Property: property},
	})
}

// Pure declares a value producing function
func (c *ClassBuilder) Pure(name string, returns DataType, params ...*DataParameter) *ClassBuilder {
	return c.Function(&MemberFunction{
		Name:       name,
		Parameters: params,
		Semantics:  FunctionSemantics{Kind: Pure, ReturnType: returns, Lambda: LambdaNone},
	})
}

// Function declares a fully specified member function
func (c *ClassBuilder) Function(fn *MemberFunction) *ClassBuilder {
	fn.Receiver = c.class.Name
	if fn.Semantics.Lambda == "" {
		fn.Semantics.Lambda = LambdaNone
	}
	c.class.Functions = append(c.class.Functions, fn)
	return c
}

// Build validates declarations and returns the schema containing every class reachable
// from the top-level receiver, imported functions and external objects.
func (b *Builder) Build() (*AnalysisSchema, error) {
	errs := append([]error(nil), b.errs...)
	if _, ok := b.classes[b.topLevel]; !ok {
		errs = append(errs, fmt.Errorf("%w: top-level receiver %s", ErrUnknownType, b.topLevel))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	classes := make(map[FQName]*DataClass, len(b.classes))
	for _, name := range b.order {
		classes[name] = copyClass(b.classes[name])
	}
	result := &AnalysisSchema{
		topLevel:          b.topLevel,
		classes:           classes,
		externalFunctions: make(map[FQName]*TopLevelFunction, len(b.externalFunctions)),
		externalObjects:   make(map[FQName]FQName, len(b.externalObjects)),
		defaultImports:    append([]FQName(nil), b.defaultImports...),
	}
	for name, fn := range b.externalFunctions {
		result.externalFunctions[name] = fn
	}
	for name, t := range b.externalObjects {
		result.externalObjects[name] = t
	}

	for _, name := range b.order {
		errs = append(errs, b.validateClass(result, classes[name])...)
	}
	for _, fn := range result.ExternalFunctions() {
		errs = append(errs, checkTypes(classes, fn.FQName(), fn.ReturnType(), fn.Parameters)...)
	}
	for _, name := range result.ExternalObjects() {
		if _, ok := classes[result.externalObjects[name]]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s (external object %s)", ErrUnknownType, result.externalObjects[name], name))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	result.classes = reachable(result)
	return result, nil
}

func (b *Builder) validateClass(s *AnalysisSchema, class *DataClass) []error {
	var errs []error
	for _, super := range class.Supertypes {
		if _, ok := s.classes[super]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s (supertype of %s)", ErrUnknownType, super, class.Name))
		}
	}
	for _, p := range class.Properties {
		if name, ok := ClassName(p.Type); ok {
			if _, ok := s.classes[name]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s (property %s.%s)", ErrUnknownType, name, class.Name, p.Name))
			}
		}
	}
	for _, fn := range class.Functions {
		switch fn.Semantics.Kind {
		case BuilderFunction:
			prop := s.FindProperty(class, fn.Semantics.Property)
			if prop == nil {
				errs = append(errs, fmt.Errorf("%w: %s.%s (builder %s)", ErrUnknownProperty, class.Name, fn.Semantics.Property, fn.Name))
				continue
			}
			if len(fn.Parameters) == 0 {
				fn.Parameters = []*DataParameter{{Name: "value", Type: prop.Type}}
			}
			if len(fn.Parameters) != 1 {
				errs = append(errs, fmt.Errorf("%w: builder %s must take exactly one parameter", ErrInvalidFunction, fn))
			}
		case Configuring:
			accessor := fn.Semantics.Accessor
			if accessor == nil {
				errs = append(errs, fmt.Errorf("%w: configuring %s has no accessor", ErrInvalidFunction, fn))
				continue
			}
			if accessor.Kind == "" {
				accessor.Kind = AccessorProperty
			}
			if accessor.Kind == AccessorProperty {
				prop := s.FindProperty(class, accessor.Name)
				if prop == nil {
					errs = append(errs, fmt.Errorf("%w: %s.%s (accessor of %s)", ErrUnknownProperty, class.Name, accessor.Name, fn.Name))
					continue
				}
				if accessor.ObjectType == "" {
					accessor.ObjectType, _ = ClassName(prop.Type)
				}
			}
			if _, ok := s.classes[accessor.ObjectType]; !ok {
				errs = append(errs, fmt.Errorf("%w: %q (configured by %s)", ErrUnknownType, accessor.ObjectType, fn))
			}
		case Adding:
			if _, ok := ClassName(fn.ReturnType()); !ok {
				errs = append(errs, fmt.Errorf("%w: adding %s must return a class", ErrInvalidFunction, fn))
			}
		case Pure:
		default:
			errs = append(errs, fmt.Errorf("%w: %s has unknown semantics %q", ErrInvalidFunction, fn, fn.Semantics.Kind))
		}
		errs = append(errs, checkTypes(s.classes, FQName(fn.String()), fn.ReturnType(), fn.Parameters)...)
		for _, param := range fn.Parameters {
			if param.StoreInProperty == "" {
				continue
			}
			target, ok := s.ClassOf(fn.ReturnType())
			if !ok || s.FindProperty(target, param.StoreInProperty) == nil {
				errs = append(errs, fmt.Errorf("%w: %s stores %s into unknown property %s", ErrUnknownProperty, fn, param.Name, param.StoreInProperty))
			}
		}
	}
	return errs
}

func checkTypes(classes map[FQName]*DataClass, owner FQName, returns DataType, params []*DataParameter) []error {
	var errs []error
	if name, ok := ClassName(returns); ok {
		if _, ok := classes[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s (returned by %s)", ErrUnknownType, name, owner))
		}
	}
	for _, p := range params {
		if name, ok := ClassName(p.Type); ok {
			if _, ok := classes[name]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s (parameter %s of %s)", ErrUnknownType, name, p.Name, owner))
			}
		}
	}
	return errs
}

// reachable computes the closure of classes reachable from the schema roots
func reachable(s *AnalysisSchema) map[FQName]*DataClass {
	result := map[FQName]*DataClass{}
	var queue []FQName
	enqueue := func(t DataType) {
		if name, ok := ClassName(t); ok {
			queue = append(queue, name)
		}
	}
	queue = append(queue, s.topLevel)
	for _, fn := range s.externalFunctions {
		enqueue(fn.ReturnType())
		for _, p := range fn.Parameters {
			enqueue(p.Type)
		}
	}
	for _, t := range s.externalObjects {
		queue = append(queue, t)
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, done := result[name]; done {
			continue
		}
		class, ok := s.classes[name]
		if !ok {
			continue
		}
		result[name] = class
		queue = append(queue, class.Supertypes...)
		for _, p := range class.Properties {
			enqueue(p.Type)
		}
		for _, fn := range class.Functions {
			enqueue(fn.ReturnType())
			for _, p := range fn.Parameters {
				enqueue(p.Type)
			}
			if fn.Semantics.Accessor != nil {
				queue = append(queue, fn.Semantics.Accessor.ObjectType)
			}
		}
	}
	return result
}

func copyClass(c *DataClass) *DataClass {
	clone := &DataClass{
		Name:       c.Name,
		Supertypes: append([]FQName(nil), c.Supertypes...),
		Properties: make([]*DataProperty, 0, len(c.Properties)),
		Functions:  make([]*MemberFunction, 0, len(c.Functions)),
	}
	for _, p := range c.Properties {
		prop := *p
		clone.Properties = append(clone.Properties, &prop)
	}
	for _, f := range c.Functions {
		fn := *f
		fn.Parameters = make([]*DataParameter, 0, len(f.Parameters))
		for _, p := range f.Parameters {
			param := *p
			fn.Parameters = append(fn.Parameters, &param)
		}
		if f.Semantics.Accessor != nil {
			accessor := *f.Semantics.Accessor
			fn.Semantics.Accessor = &accessor
		}
		clone.Functions = append(clone.Functions, &fn)
	}
	return clone
}
