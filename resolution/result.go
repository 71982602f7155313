package resolution

import (
	"sort"

	"github.com/viant/dcl/language"
	"github.com/viant/dcl/schema"
)

// AssignmentMethod says how an assignment record came to be
type AssignmentMethod string

const (
	// Property is an explicit lhs = rhs statement
	Property AssignmentMethod = "property"
	// AsConstructed is an argument stored into the object a call produced
	AsConstructed AssignmentMethod = "asConstructed"
	// BuilderFunction is a property set through a builder call
	BuilderFunction AssignmentMethod = "builder"
)

// PropertyReferenceResolution is a resolved assignment target
type PropertyReferenceResolution struct {
	Receiver ObjectOrigin
	Property *schema.DataProperty
}

// AssignmentRecord is one resolved property set
type AssignmentRecord struct {
	LHS         PropertyReferenceResolution
	RHS         ObjectOrigin
	OperationID int64
	Method      AssignmentMethod
	Element     language.Element
}

// DataAdditionRecord is an object appended to its container by an adding call
type DataAdditionRecord struct {
	Container   ObjectOrigin
	DataObject  *NewObjectFromMemberFunction
	OperationID int64
}

// NestedObjectAccessRecord is a nested object reached by a configuring call
type NestedObjectAccessRecord struct {
	Container   ObjectOrigin
	DataObject  *ConfigureReceiver
	OperationID int64
}

// ResolutionResult is the outcome of resolving one document
type ResolutionResult struct {
	TopLevelReceiver   *TopLevelReceiver
	Assignments        []*AssignmentRecord
	Additions          []*DataAdditionRecord
	NestedObjectAccess []*NestedObjectAccessRecord
	// Errors are ordered by source offset
	Errors             []*ResolutionError
}

// HasErrors reports whether resolution found any problem
func (r *ResolutionResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Operation is any record carrying an operation id
type Operation interface {
	ID() int64
}

func (a *AssignmentRecord) ID() int64         { return a.OperationID }
func (a *DataAdditionRecord) ID() int64       { return a.OperationID }
func (a *NestedObjectAccessRecord) ID() int64 { return a.OperationID }

// Operations returns all records ordered by operation id
func (r *ResolutionResult) Operations() []Operation {
	var result []Operation
	for _, item := range r.Assignments {
		result = append(result, item)
	}
	for _, item := range r.Additions {
		result = append(result, item)
	}
	for _, item := range r.NestedObjectAccess {
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}
