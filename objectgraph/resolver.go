package objectgraph

import (
	"strconv"

	"github.com/viant/dcl/resolution"
	"github.com/viant/dcl/schema"
)

// ObjectKey identifies an object across origins: $top for the top-level receiver,
// #<invocation> for created objects, @<name> for imported objects and
// <parent>.<property> for nested objects.
type ObjectKey string

const topLevelKey ObjectKey = "$top"

func (k ObjectKey) property(name string) ObjectKey {
	return k + "." + ObjectKey(name)
}

// Resolved is the outcome of resolving an origin against the current assignments
type Resolved interface {
	isResolved()
}

// ObjectReference is a resolved value; Key is empty for constants
type ObjectReference struct {
	Origin resolution.ObjectOrigin
	Key    ObjectKey
}

// UnassignedValue is a property read before anything was assigned to it
type UnassignedValue struct {
	Reference *resolution.PropertyReference
	Key       ObjectKey
}

func (*ObjectReference) isResolved() {}
func (*UnassignedValue) isResolved() {}

// AdditionResult is the outcome of AddAssignment
type AdditionResult interface {
	isAdditionResult()
}

// AssignmentAdded means the property now holds Value, resolved before the store
type AssignmentAdded struct {
	Value      *ObjectReference
	Reassigned bool
}

// UnresolvedValueUsedInLhs means the assignment target belongs to an unassigned value
type UnresolvedValueUsedInLhs struct {
	Value *UnassignedValue
}

// UnresolvedValueUsedInRhs means the assigned value reads an unassigned property
type UnresolvedValueUsedInRhs struct {
	Value *UnassignedValue
}

func (*AssignmentAdded) isAdditionResult()          {}
func (*UnresolvedValueUsedInLhs) isAdditionResult() {}
func (*UnresolvedValueUsedInRhs) isAdditionResult() {}

// AssignmentResolver tracks the current value of every assigned property path.
// Each path is Unassigned until an assignment stores a value; later assignments overwrite it.
type AssignmentResolver struct {
	assigned map[ObjectKey]*ObjectReference
}

// AddAssignment stores rhs as the value of lhs
func (r *AssignmentResolver) AddAssignment(lhs resolution.PropertyReferenceResolution, rhs resolution.ObjectOrigin) AdditionResult {
	receiver := r.Resolve(lhs.Receiver)
	if unassigned, ok := receiver.(*UnassignedValue); ok {
		return &UnresolvedValueUsedInLhs{Value: unassigned}
	}
	value := r.Resolve(rhs)
	if unassigned, ok := value.(*UnassignedValue); ok {
		return &UnresolvedValueUsedInRhs{Value: unassigned}
	}
	reference := value.(*ObjectReference)
	key := receiver.(*ObjectReference).Key.property(lhs.Property.Name)
	_, reassigned := r.assigned[key]
	r.assigned[key] = reference
	return &AssignmentAdded{Value: reference, Reassigned: reassigned}
}

// Resolve follows local values, receivers and assigned properties to the origin
// that currently provides the value
func (r *AssignmentResolver) Resolve(origin resolution.ObjectOrigin) Resolved {
	switch actual := origin.(type) {
	case *resolution.TopLevelReceiver:
		return &ObjectReference{Origin: actual, Key: topLevelKey}
	case *resolution.ImplicitThisReceiver:
		return r.Resolve(actual.ResolvedTo)
	case *resolution.FromLocalValue:
		return r.Resolve(actual.Assigned)
	case *resolution.AddAndConfigureReceiver:
		return r.Resolve(actual.Receiver)
	case *resolution.BuilderReturnedReceiver:
		return r.Resolve(actual.Receiver)
	case *resolution.NewObjectFromMemberFunction:
		return &ObjectReference{Origin: actual, Key: invocationKey(actual.InvocationID)}
	case *resolution.NewObjectFromTopLevelFunction:
		return &ObjectReference{Origin: actual, Key: invocationKey(actual.InvocationID)}
	case *resolution.External:
		return &ObjectReference{Origin: actual, Key: ObjectKey("@" + string(actual.Key))}
	case *resolution.ConfigureReceiver:
		receiver := r.Resolve(actual.Receiver)
		reference, ok := receiver.(*ObjectReference)
		if !ok {
			return receiver
		}
		name := actual.Accessor.Name
		if actual.Accessor.Kind == schema.AccessorFunction {
			name += "()"
		}
		key := reference.Key.property(name)
		if value, ok := r.assigned[key]; ok {
			return value
		}
		return &ObjectReference{Origin: actual, Key: key}
	case *resolution.PropertyReference:
		return r.property(actual)
	}
	return &ObjectReference{Origin: origin}
}

func (r *AssignmentResolver) property(reference *resolution.PropertyReference) Resolved {
	receiver := r.Resolve(reference.Receiver)
	receiverRef, ok := receiver.(*ObjectReference)
	if !ok {
		return receiver
	}
	key := receiverRef.Key.property(reference.Property.Name)
	if value, ok := r.assigned[key]; ok {
		return value
	}
	if reference.Property.ReadOnly || reference.Property.HasDefault {
		// the live object supplies the value
		return &ObjectReference{Origin: reference, Key: key}
	}
	return &UnassignedValue{Reference: reference, Key: key}
}

// Value returns the current value of property on receiver
func (r *AssignmentResolver) Value(receiver resolution.ObjectOrigin, property string) (*ObjectReference, bool) {
	reference, ok := r.Resolve(receiver).(*ObjectReference)
	if !ok {
		return nil, false
	}
	value, ok := r.assigned[reference.Key.property(property)]
	return value, ok
}

func invocationKey(id int64) ObjectKey {
	return ObjectKey("#" + strconv.FormatInt(id, 10))
}

// NewAssignmentResolver creates an empty resolver
func NewAssignmentResolver() *AssignmentResolver {
	return &AssignmentResolver{assigned: map[ObjectKey]*ObjectReference{}}
}
