package schema

// DataProperty is a property owned by exactly one DataClass
type DataProperty struct {
	Name       string
	Type       DataType
	ReadOnly   bool
	HasDefault bool
	Owner      FQName
}

// DataClass is one configuration type of the schema
type DataClass struct {
	Name       FQName
	Supertypes []FQName
	Properties []*DataProperty
	Functions  []*MemberFunction
}

// DeclaredProperty returns a property declared directly on the class
func (c *DataClass) DeclaredProperty(name string) *DataProperty {
	for _, p := range c.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// DeclaredFunctions returns functions with the given name declared directly on the class
func (c *DataClass) DeclaredFunctions(name string) []*MemberFunction {
	var result []*MemberFunction
	for _, f := range c.Functions {
		if f.Name == name {
			result = append(result, f)
		}
	}
	return result
}
