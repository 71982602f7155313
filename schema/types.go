package schema

import "strings"

// FQName is a fully qualified type or function name, e.g. org.example.TopLevel
type FQName string

// Simple returns the last dot separated segment
func (n FQName) Simple() string {
	s := string(n)
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// Package returns everything before the last dot
func (n FQName) Package() string {
	s := string(n)
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return s[:idx]
	}
	return ""
}

// TypeKind classifies a DataType
type TypeKind string

const (
	KindInt     TypeKind = "Int"
	KindLong    TypeKind = "Long"
	KindString  TypeKind = "String"
	KindBoolean TypeKind = "Boolean"
	KindNull    TypeKind = "Null"
	KindUnit    TypeKind = "Unit"
	KindClass   TypeKind = "Class"
)

// DataType is the static type of a property, parameter or resolved value.
// Implementations are comparable values, so types can be compared with ==.
type DataType interface {
	Kind() TypeKind
	String() string
	isDataType()
}

// PrimitiveType is a built-in value type
type PrimitiveType struct {
	K TypeKind
}

func (p PrimitiveType) Kind() TypeKind { return p.K }
func (p PrimitiveType) String() string { return string(p.K) }
func (p PrimitiveType) isDataType()    {}

// ClassType refers to a DataClass by name
type ClassType struct {
	Name FQName
}

func (c ClassType) Kind() TypeKind { return KindClass }
func (c ClassType) String() string { return string(c.Name) }
func (c ClassType) isDataType()    {}

var (
	IntDataType     DataType = PrimitiveType{K: KindInt}
	LongDataType    DataType = PrimitiveType{K: KindLong}
	StringDataType  DataType = PrimitiveType{K: KindString}
	BooleanDataType DataType = PrimitiveType{K: KindBoolean}
	NullType        DataType = PrimitiveType{K: KindNull}
	UnitType        DataType = PrimitiveType{K: KindUnit}
)

// ClassRef returns a ClassType for the supplied name
func ClassRef(name FQName) DataType {
	return ClassType{Name: name}
}

// ParseType converts a type name used in schema descriptors into a DataType.
// Anything that is not a primitive name is treated as a class reference.
func ParseType(name string) DataType {
	switch TypeKind(name) {
	case KindInt:
		return IntDataType
	case KindLong:
		return LongDataType
	case KindString:
		return StringDataType
	case KindBoolean:
		return BooleanDataType
	case KindUnit, "":
		return UnitType
	case KindNull:
		return NullType
	}
	return ClassRef(FQName(name))
}

// ClassName returns the referenced class name and true for class types
func ClassName(t DataType) (FQName, bool) {
	if c, ok := t.(ClassType); ok {
		return c.Name, true
	}
	return "", false
}
