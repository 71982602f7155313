package schema

import "sort"

// AnalysisSchema is the immutable catalog of configuration types available to a script.
// It is produced by Builder.Build and never mutated afterwards.
type AnalysisSchema struct {
	topLevel          FQName
	classes           map[FQName]*DataClass
	externalFunctions map[FQName]*TopLevelFunction
	externalObjects   map[FQName]FQName
	defaultImports    []FQName
}

// TopLevelReceiver returns the name of the top-level receiver type
func (s *AnalysisSchema) TopLevelReceiver() FQName {
	return s.topLevel
}

// TopLevelClass returns the class of the top-level receiver
func (s *AnalysisSchema) TopLevelClass() *DataClass {
	return s.classes[s.topLevel]
}

// Class returns the class registered under name
func (s *AnalysisSchema) Class(name FQName) (*DataClass, bool) {
	c, ok := s.classes[name]
	return c, ok
}

// ClassOf returns the class of a class-typed DataType
func (s *AnalysisSchema) ClassOf(t DataType) (*DataClass, bool) {
	name, ok := ClassName(t)
	if !ok {
		return nil, false
	}
	return s.Class(name)
}

// Classes returns all classes ordered by name
func (s *AnalysisSchema) Classes() []*DataClass {
	result := make([]*DataClass, 0, len(s.classes))
	for _, c := range s.classes {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// ExternalFunction returns an importable top-level function
func (s *AnalysisSchema) ExternalFunction(name FQName) (*TopLevelFunction, bool) {
	f, ok := s.externalFunctions[name]
	return f, ok
}

// ExternalFunctions returns all importable top-level functions ordered by name
func (s *AnalysisSchema) ExternalFunctions() []*TopLevelFunction {
	result := make([]*TopLevelFunction, 0, len(s.externalFunctions))
	for _, f := range s.externalFunctions {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FQName() < result[j].FQName() })
	return result
}

// ExternalObject returns the type of an importable object
func (s *AnalysisSchema) ExternalObject(name FQName) (FQName, bool) {
	t, ok := s.externalObjects[name]
	return t, ok
}

// ExternalObjects returns importable object names ordered by name
func (s *AnalysisSchema) ExternalObjects() []FQName {
	result := make([]FQName, 0, len(s.externalObjects))
	for name := range s.externalObjects {
		result = append(result, name)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// DefaultImports returns names imported into every script
func (s *AnalysisSchema) DefaultImports() []FQName {
	return append([]FQName(nil), s.defaultImports...)
}

// FindProperty looks up a property on the class or, breadth first, on its supertypes
func (s *AnalysisSchema) FindProperty(class *DataClass, name string) *DataProperty {
	var found *DataProperty
	s.walkHierarchy(class, func(c *DataClass) bool {
		found = c.DeclaredProperty(name)
		return found == nil
	})
	return found
}

// FindFunctions returns all functions with the name declared on the class or its supertypes.
// Functions of the class itself come first.
func (s *AnalysisSchema) FindFunctions(class *DataClass, name string) []*MemberFunction {
	var result []*MemberFunction
	s.walkHierarchy(class, func(c *DataClass) bool {
		result = append(result, c.DeclaredFunctions(name)...)
		return true
	})
	return result
}

// HasFunctionNamed reports whether any class in the hierarchy declares name
func (s *AnalysisSchema) HasFunctionNamed(class *DataClass, name string) bool {
	return len(s.FindFunctions(class, name)) > 0
}

// IsSubtype reports whether sub equals super or inherits from it
func (s *AnalysisSchema) IsSubtype(sub, super FQName) bool {
	if sub == super {
		return true
	}
	class, ok := s.classes[sub]
	if !ok {
		return false
	}
	found := false
	s.walkHierarchy(class, func(c *DataClass) bool {
		if c.Name == super {
			found = true
		}
		return !found
	})
	return found
}

// IsAssignable reports whether a value of type actual can be stored where expected is declared
func (s *AnalysisSchema) IsAssignable(expected, actual DataType) bool {
	if expected == nil || actual == nil {
		return false
	}
	if expected == actual {
		return true
	}
	switch expected.Kind() {
	case KindLong:
		return actual == IntDataType
	case KindClass:
		if actual == NullType {
			return true
		}
		expectedName, _ := ClassName(expected)
		actualName, ok := ClassName(actual)
		return ok && s.IsSubtype(actualName, expectedName)
	}
	return false
}

func (s *AnalysisSchema) walkHierarchy(class *DataClass, visit func(c *DataClass) bool) {
	if class == nil {
		return
	}
	seen := map[FQName]bool{}
	queue := []*DataClass{class}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		if !visit(c) {
			return
		}
		for _, super := range c.Supertypes {
			if sc, ok := s.classes[super]; ok {
				queue = append(queue, sc)
			}
		}
	}
}
