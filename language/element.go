package language

import "strings"

// Element is a node of the language tree.
// The unexported marker keeps the set of elements closed.
type Element interface {
	Source() SourceData
	isElement()
}

// Expr is an element that produces a value
type Expr interface {
	Element
	isExpr()
}

type node struct {
	Src SourceData
}

func (n *node) Source() SourceData { return n.Src }
func (n *node) isElement()         {}

type expr struct{ node }

func (*expr) isExpr() {}

// Block is an ordered list of statements
type Block struct {
	node
	Statements []Element
}

// AccessChain is a dotted name such as org.example.foo
type AccessChain struct {
	Names []string
}

func (a AccessChain) String() string { return strings.Join(a.Names, ".") }

// Import brings a qualified name into scope
type Import struct {
	node
	Name AccessChain
}

// Assignment sets a property: lhs = rhs
type Assignment struct {
	node
	LHS *PropertyAccess
	RHS Expr
}

// LocalValue declares a local value: val name = rhs
type LocalValue struct {
	node
	Name string
	RHS  Expr
}

// FunctionCall invokes name on an optional receiver
type FunctionCall struct {
	expr
	Receiver Expr
	Name     string
	Args     []FunctionArgument
}

// Lambda returns the trailing lambda argument, if any
func (f *FunctionCall) Lambda() *LambdaArgument {
	for _, arg := range f.Args {
		if l, ok := arg.(*LambdaArgument); ok {
			return l
		}
	}
	return nil
}

// ValueArgs returns positional and named arguments in source order
func (f *FunctionCall) ValueArgs() []FunctionArgument {
	var result []FunctionArgument
	for _, arg := range f.Args {
		if _, ok := arg.(*LambdaArgument); !ok {
			result = append(result, arg)
		}
	}
	return result
}

// PropertyAccess reads name from an optional receiver
type PropertyAccess struct {
	expr
	Receiver Expr
	Name     string
}

// Path returns the dotted form of the access when every receiver is a property access
func (p *PropertyAccess) Path() (AccessChain, bool) {
	var names []string
	var current Expr = p
	for current != nil {
		access, ok := current.(*PropertyAccess)
		if !ok {
			return AccessChain{}, false
		}
		names = append([]string{access.Name}, names...)
		current = access.Receiver
	}
	return AccessChain{Names: names}, true
}

// StringLiteral is a string constant
type StringLiteral struct {
	expr
	Value string
}

// IntLiteral is a 32 bit integer constant
type IntLiteral struct {
	expr
	Value int32
}

// LongLiteral is a 64 bit integer constant
type LongLiteral struct {
	expr
	Value int64
}

// BooleanLiteral is true or false
type BooleanLiteral struct {
	expr
	Value bool
}

// Null is the null literal
type Null struct {
	expr
}

// This refers to the current receiver
type This struct {
	expr
}

// FunctionArgument is one argument of a call
type FunctionArgument interface {
	Element
	isArgument()
}

// PositionalArgument is matched to parameters by position
type PositionalArgument struct {
	node
	Expr Expr
}

// NamedArgument is matched to parameters by name
type NamedArgument struct {
	node
	Name string
	Expr Expr
}

// LambdaArgument is a trailing configuring block
type LambdaArgument struct {
	node
	Block *Block
}

func (*PositionalArgument) isArgument() {}
func (*NamedArgument) isArgument()      {}
func (*LambdaArgument) isArgument()     {}

// NewSource sets the position of an element; used when building trees by hand
func NewSource(line, column int) SourceData {
	return SourceData{StartLine: line, StartColumn: column, EndLine: line, EndColumn: column}
}
