package schema

import "strings"

// SemanticsKind describes what resolving a call produces
type SemanticsKind string

const (
	// Adding appends a new child object to the receiver and returns it
	Adding SemanticsKind = "adding"
	// Configuring evaluates a lambda against a nested object reached through an accessor
	Configuring SemanticsKind = "configuring"
	// BuilderFunction sets a property on the receiver and returns the receiver
	BuilderFunction SemanticsKind = "builder"
	// Pure produces a value with no DSL side effect
	Pure SemanticsKind = "pure"
)

// LambdaRequirement says whether a configuring lambda may follow the call
type LambdaRequirement string

const (
	LambdaNone     LambdaRequirement = "none"
	LambdaOptional LambdaRequirement = "optional"
	LambdaRequired LambdaRequirement = "required"
)

// AccessorKind selects how a configuring function reaches its nested object
type AccessorKind string

const (
	AccessorProperty AccessorKind = "property"
	AccessorFunction AccessorKind = "function"
)

// ConfigureAccessor points at the object configured by a Configuring function
type ConfigureAccessor struct {
	Kind       AccessorKind `yaml:"kind"`
	Name       string       `yaml:"name"`
	ObjectType FQName       `yaml:"objectType"`
}

// FunctionSemantics tags a function with its DSL meaning
type FunctionSemantics struct {
	Kind       SemanticsKind
	ReturnType DataType
	Lambda     LambdaRequirement
	Accessor   *ConfigureAccessor // Configuring only
	Property   string             // Builder only: the property the call sets
}

// AcceptsLambda reports whether a trailing configuring lambda is allowed
func (s FunctionSemantics) AcceptsLambda() bool {
	return s.Lambda == LambdaOptional || s.Lambda == LambdaRequired
}

// DataParameter is a function parameter
type DataParameter struct {
	Name      string
	Type      DataType
	IsDefault bool
	// StoreInProperty names the property of the produced object that receives the argument
	StoreInProperty string
}

// MemberFunction is a function declared on a DataClass
type MemberFunction struct {
	Name       string
	Receiver   FQName
	Parameters []*DataParameter
	Semantics  FunctionSemantics
}

// ReturnType returns the static type of a call to the function
func (f *MemberFunction) ReturnType() DataType {
	switch f.Semantics.Kind {
	case BuilderFunction:
		return ClassRef(f.Receiver)
	}
	if f.Semantics.ReturnType == nil {
		return UnitType
	}
	return f.Semantics.ReturnType
}

func (f *MemberFunction) String() string {
	return string(f.Receiver) + "." + f.Name + signature(f.Parameters)
}

// TopLevelFunction is a function reachable through an import
type TopLevelFunction struct {
	Package    string
	Name       string
	Parameters []*DataParameter
	Semantics  FunctionSemantics
}

// FQName returns package qualified function name
func (f *TopLevelFunction) FQName() FQName {
	if f.Package == "" {
		return FQName(f.Name)
	}
	return FQName(f.Package + "." + f.Name)
}

// ReturnType returns the static type of a call to the function
func (f *TopLevelFunction) ReturnType() DataType {
	if f.Semantics.ReturnType == nil {
		return UnitType
	}
	return f.Semantics.ReturnType
}

func (f *TopLevelFunction) String() string {
	return string(f.FQName()) + signature(f.Parameters)
}

func signature(params []*DataParameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Name+": "+p.Type.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
