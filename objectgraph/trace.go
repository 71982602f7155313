package objectgraph

import (
	"sort"

	"github.com/viant/dcl/resolution"
)

// TraceElement is one replayed assignment
type TraceElement interface {
	Record() *resolution.AssignmentRecord
	isTraceElement()
}

// RecordedAssignment is an assignment whose target and value resolved
type RecordedAssignment struct {
	LHS        resolution.PropertyReferenceResolution
	RHS        resolution.ObjectOrigin
	Value      resolution.ObjectOrigin
	Reassigned bool
	record     *resolution.AssignmentRecord
}

// UnassignedValueUsed is an assignment that reads or writes through an unassigned property
type UnassignedValueUsed struct {
	LHS    resolution.PropertyReferenceResolution
	RHS    resolution.ObjectOrigin
	Result AdditionResult
	record *resolution.AssignmentRecord
}

func (r *RecordedAssignment) Record() *resolution.AssignmentRecord  { return r.record }
func (r *UnassignedValueUsed) Record() *resolution.AssignmentRecord { return r.record }
func (*RecordedAssignment) isTraceElement()                         {}
func (*UnassignedValueUsed) isTraceElement()                        {}

// Property returns the unassigned property the assignment touched
func (u *UnassignedValueUsed) Property() string {
	switch actual := u.Result.(type) {
	case *UnresolvedValueUsedInLhs:
		return actual.Value.Reference.Property.Name
	case *UnresolvedValueUsedInRhs:
		return actual.Value.Reference.Property.Name
	}
	return ""
}

// InLhs reports whether the unassigned value was part of the assignment target
func (u *UnassignedValueUsed) InLhs() bool {
	_, ok := u.Result.(*UnresolvedValueUsedInLhs)
	return ok
}

// AssignmentTrace is the replay of all assignment records in operation order
type AssignmentTrace struct {
	Elements []TraceElement
	resolver *AssignmentResolver
}

// Value returns the final value of property on receiver
func (t *AssignmentTrace) Value(receiver resolution.ObjectOrigin, property string) (resolution.ObjectOrigin, bool) {
	reference, ok := t.resolver.Value(receiver, property)
	if !ok {
		return nil, false
	}
	return reference.Origin, true
}

// Resolve resolves origin against the final assignment state
func (t *AssignmentTrace) Resolve(origin resolution.ObjectOrigin) Resolved {
	return t.resolver.Resolve(origin)
}

// Unassigned returns elements that used an unassigned value
func (t *AssignmentTrace) Unassigned() []*UnassignedValueUsed {
	var result []*UnassignedValueUsed
	for _, element := range t.Elements {
		if unassigned, ok := element.(*UnassignedValueUsed); ok {
			result = append(result, unassigned)
		}
	}
	return result
}

// Find returns the element replayed for the record with operationID
func (t *AssignmentTrace) Find(operationID int64) (TraceElement, bool) {
	index := sort.Search(len(t.Elements), func(i int) bool {
		return t.Elements[i].Record().OperationID >= operationID
	})
	if index < len(t.Elements) && t.Elements[index].Record().OperationID == operationID {
		return t.Elements[index], true
	}
	return nil, false
}

// Trace replays the assignments of result in operation order
func Trace(result *resolution.ResolutionResult) *AssignmentTrace {
	records := append([]*resolution.AssignmentRecord(nil), result.Assignments...)
	sort.SliceStable(records, func(i, j int) bool { return records[i].OperationID < records[j].OperationID })

	trace := &AssignmentTrace{resolver: NewAssignmentResolver()}
	for _, record := range records {
		outcome := trace.resolver.AddAssignment(record.LHS, record.RHS)
		switch actual := outcome.(type) {
		case *AssignmentAdded:
			trace.Elements = append(trace.Elements, &RecordedAssignment{
				LHS:        record.LHS,
				RHS:        record.RHS,
				Value:      actual.Value.Origin,
				Reassigned: actual.Reassigned,
				record:     record,
			})
		default:
			trace.Elements = append(trace.Elements, &UnassignedValueUsed{
				LHS:    record.LHS,
				RHS:    record.RHS,
				Result: outcome,
				record: record,
			})
		}
	}
	return trace
}
