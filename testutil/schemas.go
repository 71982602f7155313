// Package testutil provides schemas and Go object graphs shared by tests
package testutil

import (
	"github.com/viant/dcl/schema"
)

const (
	TopLevel schema.FQName = "org.example.TopLevel"
	C        schema.FQName = "org.example.C"
	D        schema.FQName = "org.example.D"
	Nested   schema.FQName = "org.example.Nested"
	Item     schema.FQName = "org.example.Item"
	Base     schema.FQName = "org.example.Base"
	Settings schema.FQName = "org.example.Settings"
	Node     schema.FQName = "org.example.Node"
)

// DemoSchema returns the schema used by resolver, object graph and executor tests:
//
//	TopLevel: str, i, l, flag, nested (read-only), c(x) adding C, newD(id) pure D, nested {} configuring
//	C: x (read-only), d, name, withName(name) builder
//	D: id (read-only)
//	Nested: value, count, item(name) adding Item
//	Item extends Base: name (read-only); Base: enabled
//	TopLevel: node, newNode() pure Node; Node: next (self-typed)
//	importable: org.example.util.label(id) pure D, org.example.util.defaultD object D
func DemoSchema() *schema.AnalysisSchema {
	b := schema.NewBuilder(TopLevel)
	b.Class(TopLevel).
		Property("str", schema.StringDataType).
		Property("i", schema.IntDataType).
		Property("l", schema.LongDataType).
		Property("flag", schema.BooleanDataType).
		ReadOnlyProperty("nested", schema.ClassRef(Nested)).
		Adding("c", C, schema.LambdaOptional, schema.Param("x", schema.IntDataType).Stores("x")).
		Pure("newD", schema.ClassRef(D), schema.Param("id", schema.StringDataType).Stores("id")).
		Configuring("nested", schema.ConfigureAccessor{Kind: schema.AccessorProperty, Name: "nested"}, schema.LambdaRequired).
		Property("node", schema.ClassRef(Node)).
		Pure("newNode", schema.ClassRef(Node))
	b.Class(Node).
		Property("next", schema.ClassRef(Node))
	b.Class(C).
		ReadOnlyProperty("x", schema.IntDataType).
		Property("d", schema.ClassRef(D)).
		Property("name", schema.StringDataType).
		Builder("withName", "name")
	b.Class(D).
		ReadOnlyProperty("id", schema.StringDataType)
	b.Class(Nested).
		Property("value", schema.StringDataType).
		Property("count", schema.IntDataType).
		Adding("item", Item, schema.LambdaOptional, schema.Param("name", schema.StringDataType).Stores("name"))
	b.Class(Base).
		Property("enabled", schema.BooleanDataType)
	b.Class(Item).
		Extends(Base).
		ReadOnlyProperty("name", schema.StringDataType)
	b.TopLevelFunction(&schema.TopLevelFunction{
		Package:    "org.example.util",
		Name:       "label",
		Parameters: []*schema.DataParameter{schema.Param("id", schema.StringDataType).Stores("id")},
		Semantics:  schema.FunctionSemantics{Kind: schema.Pure, ReturnType: schema.ClassRef(D), Lambda: schema.LambdaNone},
	})
	b.ExternalObject("org.example.util.defaultD", D)
	result, err := b.Build()
	if err != nil {
		panic(err)
	}
	return result
}

// DemoYAML is DemoSchema written as a descriptor, without Item and Base
const DemoYAML = `topLevelReceiver: org.example.TopLevel
classes:
  - name: org.example.TopLevel
    properties:
      - name: str
        type: String
      - name: i
        type: Int
      - name: l
        type: Long
      - name: flag
        type: Boolean
    functions:
      - name: c
        semantics: adding
        returns: org.example.C
        parameters:
          - name: x
            type: Int
            stores: x
      - name: newD
        semantics: pure
        returns: org.example.D
        parameters:
          - name: id
            type: String
            stores: id
  - name: org.example.C
    properties:
      - name: x
        type: Int
        readOnly: true
      - name: d
        type: org.example.D
  - name: org.example.D
    properties:
      - name: id
        type: String
        readOnly: true
  - name: org.example.Unused
    properties:
      - name: value
        type: String
`
