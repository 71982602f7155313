package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Descriptor is the YAML form of a schema
type Descriptor struct {
	TopLevelReceiver string               `yaml:"topLevelReceiver"`
	DefaultImports   []string             `yaml:"defaultImports,omitempty"`
	Classes          []ClassDescriptor    `yaml:"classes"`
	Functions        []FunctionDescriptor `yaml:"functions,omitempty"`
	Objects          []ObjectDescriptor   `yaml:"objects,omitempty"`
}

// ClassDescriptor describes one DataClass
type ClassDescriptor struct {
	Name       string               `yaml:"name"`
	Supertypes []string             `yaml:"supertypes,omitempty"`
	Properties []PropertyDescriptor `yaml:"properties,omitempty"`
	Functions  []FunctionDescriptor `yaml:"functions,omitempty"`
}

// PropertyDescriptor describes one DataProperty
type PropertyDescriptor struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	ReadOnly   bool   `yaml:"readOnly,omitempty"`
	HasDefault bool   `yaml:"hasDefault,omitempty"`
}

// FunctionDescriptor describes a member or top-level function
type FunctionDescriptor struct {
	Name       string                `yaml:"name"`
	Package    string                `yaml:"package,omitempty"`
	Semantics  SemanticsKind         `yaml:"semantics"`
	Returns    string                `yaml:"returns,omitempty"`
	Lambda     LambdaRequirement     `yaml:"lambda,omitempty"`
	Property   string                `yaml:"property,omitempty"`
	Accessor   *ConfigureAccessor    `yaml:"accessor,omitempty"`
	Parameters []ParameterDescriptor `yaml:"parameters,omitempty"`
}

// ParameterDescriptor describes a DataParameter
type ParameterDescriptor struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default bool   `yaml:"default,omitempty"`
	Stores  string `yaml:"stores,omitempty"`
}

// ObjectDescriptor describes an importable object
type ObjectDescriptor struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadYAML decodes a schema descriptor and builds the schema
func LoadYAML(data []byte) (*AnalysisSchema, error) {
	descriptor := &Descriptor{}
	if err := yaml.Unmarshal(data, descriptor); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return descriptor.Build()
}

// Build converts the descriptor into an AnalysisSchema
func (d *Descriptor) Build() (*AnalysisSchema, error) {
	if d.TopLevelReceiver == "" {
		return nil, fmt.Errorf("%w: topLevelReceiver is required", ErrInvalidDescriptor)
	}
	builder := NewBuilder(FQName(d.TopLevelReceiver))
	for _, name := range d.DefaultImports {
		builder.DefaultImport(FQName(name))
	}
	for _, cd := range d.Classes {
		class := builder.Class(FQName(cd.Name))
		for _, super := range cd.Supertypes {
			class.Extends(FQName(super))
		}
		for _, pd := range cd.Properties {
			class.AddProperty(&DataProperty{Name: pd.Name, Type: ParseType(pd.Type), ReadOnly: pd.ReadOnly, HasDefault: pd.HasDefault})
		}
		for _, fd := range cd.Functions {
			if fd.Semantics == "" {
				return nil, fmt.Errorf("%w: %s.%s has no semantics", ErrInvalidDescriptor, cd.Name, fd.Name)
			}
			class.Function(&MemberFunction{Name: fd.Name, Parameters: fd.parameters(), Semantics: fd.semantics()})
		}
	}
	for _, fd := range d.Functions {
		builder.TopLevelFunction(&TopLevelFunction{Package: fd.Package, Name: fd.Name, Parameters: fd.parameters(), Semantics: fd.semantics()})
	}
	for _, od := range d.Objects {
		builder.ExternalObject(FQName(od.Name), FQName(od.Type))
	}
	return builder.Build()
}

func (f *FunctionDescriptor) semantics() FunctionSemantics {
	semantics := FunctionSemantics{Kind: f.Semantics, Lambda: f.Lambda, Property: f.Property}
	if f.Accessor != nil {
		accessor := *f.Accessor
		semantics.Accessor = &accessor
	}
	switch f.Semantics {
	case Configuring:
		semantics.ReturnType = UnitType
		if f.Returns != "" {
			semantics.ReturnType = ParseType(f.Returns)
		}
		if semantics.Lambda == "" {
			semantics.Lambda = LambdaRequired
		}
	case Adding:
		semantics.ReturnType = ParseType(f.Returns)
		if semantics.Lambda == "" {
			semantics.Lambda = LambdaOptional
		}
	case Pure:
		semantics.ReturnType = ParseType(f.Returns)
	}
	if semantics.Lambda == "" {
		semantics.Lambda = LambdaNone
	}
	return semantics
}

func (f *FunctionDescriptor) parameters() []*DataParameter {
	var result []*DataParameter
	for _, p := range f.Parameters {
		result = append(result, &DataParameter{Name: p.Name, Type: ParseType(p.Type), IsDefault: p.Default, StoreInProperty: p.Stores})
	}
	return result
}

// Describe renders the schema as a YAML descriptor
func Describe(s *AnalysisSchema) ([]byte, error) {
	d := &Descriptor{TopLevelReceiver: string(s.TopLevelReceiver())}
	for _, name := range s.DefaultImports() {
		d.DefaultImports = append(d.DefaultImports, string(name))
	}
	for _, class := range s.Classes() {
		cd := ClassDescriptor{Name: string(class.Name)}
		for _, super := range class.Supertypes {
			cd.Supertypes = append(cd.Supertypes, string(super))
		}
		for _, p := range class.Properties {
			cd.Properties = append(cd.Properties, PropertyDescriptor{Name: p.Name, Type: p.Type.String(), ReadOnly: p.ReadOnly, HasDefault: p.HasDefault})
		}
		for _, fn := range class.Functions {
			cd.Functions = append(cd.Functions, describeFunction(fn.Name, "", fn.Parameters, fn.Semantics))
		}
		d.Classes = append(d.Classes, cd)
	}
	for _, fn := range s.ExternalFunctions() {
		d.Functions = append(d.Functions, describeFunction(fn.Name, fn.Package, fn.Parameters, fn.Semantics))
	}
	for _, name := range s.ExternalObjects() {
		t, _ := s.ExternalObject(name)
		d.Objects = append(d.Objects, ObjectDescriptor{Name: string(name), Type: string(t)})
	}
	return yaml.Marshal(d)
}

func describeFunction(name, pkg string, params []*DataParameter, semantics FunctionSemantics) FunctionDescriptor {
	fd := FunctionDescriptor{
		Name:      name,
		Package:   pkg,
		Semantics: semantics.Kind,
		Lambda:    semantics.Lambda,
		Property:  semantics.Property,
		Accessor:  semantics.Accessor,
	}
	if semantics.Kind != BuilderFunction && semantics.ReturnType != nil {
		fd.Returns = semantics.ReturnType.String()
	}
	for _, p := range params {
		fd.Parameters = append(fd.Parameters, ParameterDescriptor{Name: p.Name, Type: p.Type.String(), Default: p.IsDefault, Stores: p.StoreInProperty})
	}
	return fd
}
