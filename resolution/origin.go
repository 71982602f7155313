package resolution

import (
	"github.com/viant/dcl/language"
	"github.com/viant/dcl/schema"
)

// ObjectOrigin describes where a resolved value comes from.
// Origins form a DAG: receivers and arguments point at earlier origins.
// An origin is never modified once created.
type ObjectOrigin interface {
	Type() schema.DataType
	Element() language.Element
	isOrigin()
}

type origin struct {
	Src language.Element
}

func (o *origin) Element() language.Element { return o.Src }
func (o *origin) isOrigin()                 {}

// ConstantOrigin is a literal value: string, int32, int64 or bool
type ConstantOrigin struct {
	origin
	Value     interface{}
	ValueType schema.DataType
}

func (c *ConstantOrigin) Type() schema.DataType { return c.ValueType }

// NullOrigin is the null literal
type NullOrigin struct {
	origin
}

func (n *NullOrigin) Type() schema.DataType { return schema.NullType }

// TopLevelReceiver is the object the script configures
type TopLevelReceiver struct {
	origin
	ReceiverType schema.DataType
}

func (t *TopLevelReceiver) Type() schema.DataType { return t.ReceiverType }

// ImplicitThisReceiver is a scope receiver used without naming it
type ImplicitThisReceiver struct {
	origin
	ResolvedTo ObjectOrigin
	// CurrentScope is false when the receiver belongs to an enclosing lambda
	CurrentScope bool
}

func (i *ImplicitThisReceiver) Type() schema.DataType { return i.ResolvedTo.Type() }

// FromLocalValue is a value read through a local binding
type FromLocalValue struct {
	origin
	Name     string
	Assigned ObjectOrigin
}

func (f *FromLocalValue) Type() schema.DataType { return f.Assigned.Type() }

// PropertyReference reads a property of the receiver
type PropertyReference struct {
	origin
	Receiver ObjectOrigin
	Property *schema.DataProperty
}

func (p *PropertyReference) Type() schema.DataType { return p.Property.Type }

// NewObjectFromMemberFunction is the value returned by an adding, pure or configuring member call.
// Arguments are aligned with the function parameters, nil marks a defaulted parameter.
type NewObjectFromMemberFunction struct {
	origin
	Function     *schema.MemberFunction
	Receiver     ObjectOrigin
	Arguments    []ObjectOrigin
	InvocationID int64
}

func (n *NewObjectFromMemberFunction) Type() schema.DataType { return n.Function.ReturnType() }

// NewObjectFromTopLevelFunction is the value returned by an imported function
type NewObjectFromTopLevelFunction struct {
	origin
	Function     *schema.TopLevelFunction
	Arguments    []ObjectOrigin
	InvocationID int64
}

func (n *NewObjectFromTopLevelFunction) Type() schema.DataType { return n.Function.ReturnType() }

// BuilderReturnedReceiver is the receiver handed back by a builder call
type BuilderReturnedReceiver struct {
	origin
	Function     *schema.MemberFunction
	Receiver     ObjectOrigin
	Argument     ObjectOrigin
	InvocationID int64
}

func (b *BuilderReturnedReceiver) Type() schema.DataType { return b.Receiver.Type() }

// ConfigureReceiver is the nested object reached by a configuring call
type ConfigureReceiver struct {
	origin
	Receiver     ObjectOrigin
	Function     *schema.MemberFunction
	Accessor     *schema.ConfigureAccessor
	InvocationID int64
}

func (c *ConfigureReceiver) Type() schema.DataType { return schema.ClassRef(c.Accessor.ObjectType) }

// AddAndConfigureReceiver is the receiver of the lambda passed to an adding call
type AddAndConfigureReceiver struct {
	origin
	Receiver ObjectOrigin
}

func (a *AddAndConfigureReceiver) Type() schema.DataType { return a.Receiver.Type() }

// External is an imported object
type External struct {
	origin
	Key        schema.FQName
	ObjectType schema.FQName
}

func (e *External) Type() schema.DataType { return schema.ClassRef(e.ObjectType) }
