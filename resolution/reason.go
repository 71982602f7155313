package resolution

import (
	"fmt"
	"strings"

	"github.com/viant/dcl/language"
	"github.com/viant/dcl/schema"
)

// ErrorReason explains a resolution error
type ErrorReason interface {
	String() string
	isReason()
}

type (
	// UnitAssignment is a unit returning expression used as a value
	UnitAssignment struct{}
	// AssignmentTypeMismatch is a value whose type does not fit the target property
	AssignmentTypeMismatch struct {
		Expected schema.DataType
		Actual   schema.DataType
	}
	UnresolvedReference struct {
		Name string
	}
	UnresolvedFunctionCallSignature struct {
		Name string
	}
	UnresolvedFunctionCallReceiver struct {
		Name string
	}
	// UnresolvedFunctionCallArguments is a known function called with arguments no overload accepts
	UnresolvedFunctionCallArguments struct {
		Name string
	}
	AmbiguousFunctions struct {
		Name       string
		Candidates []string
	}
	AmbiguousImport struct {
		Name string
	}
	DuplicateLocalValue struct {
		Name string
	}
	ValReassignment struct {
		Name string
	}
	ReadOnlyPropertyAssignment struct {
		Property string
	}
	UnresolvedAssignmentLhs struct{}
	UnresolvedAssignmentRhs struct{}
	// DanglingPureExpression is a statement whose value is discarded
	DanglingPureExpression struct{}
	MissingConfigureLambda struct {
		Name string
	}
	// AccessOnCurrentReceiverOnlyViolation is a mutation of an enclosing receiver from a nested lambda
	AccessOnCurrentReceiverOnlyViolation struct {
		Name string
	}
	UnusedConfigureLambda struct {
		Name string
	}
)

func (UnitAssignment) String() string { return "unit value assigned" }
func (r AssignmentTypeMismatch) String() string {
	return fmt.Sprintf("type mismatch: expected %v, actual %v", r.Expected, r.Actual)
}
func (r UnresolvedReference) String() string { return "unresolved reference: " + r.Name }
func (r UnresolvedFunctionCallSignature) String() string {
	return "unresolved function: " + r.Name
}
func (r UnresolvedFunctionCallReceiver) String() string {
	return "function " + r.Name + " called on a value that is not an object"
}
func (r UnresolvedFunctionCallArguments) String() string {
	return "no overload of " + r.Name + " accepts the arguments"
}
func (r AmbiguousFunctions) String() string {
	return fmt.Sprintf("ambiguous call to %v: %v", r.Name, strings.Join(r.Candidates, ", "))
}
func (r AmbiguousImport) String() string       { return "ambiguous import: " + r.Name }
func (r DuplicateLocalValue) String() string   { return "duplicate value: " + r.Name }
func (r ValReassignment) String() string       { return "val cannot be reassigned: " + r.Name }
func (r ReadOnlyPropertyAssignment) String() string {
	return "read-only property: " + r.Property
}
func (UnresolvedAssignmentLhs) String() string { return "unresolved assignment target" }
func (UnresolvedAssignmentRhs) String() string { return "unresolved assigned value" }
func (DanglingPureExpression) String() string  { return "expression value is not used" }
func (r MissingConfigureLambda) String() string {
	return "missing configuration block for " + r.Name
}
func (r AccessOnCurrentReceiverOnlyViolation) String() string {
	return r.Name + " can only be used on the current receiver"
}
func (r UnusedConfigureLambda) String() string {
	return r.Name + " does not accept a configuration block"
}

func (UnitAssignment) isReason()                       {}
func (AssignmentTypeMismatch) isReason()               {}
func (UnresolvedReference) isReason()                  {}
func (UnresolvedFunctionCallSignature) isReason()      {}
func (UnresolvedFunctionCallReceiver) isReason()       {}
func (UnresolvedFunctionCallArguments) isReason()      {}
func (AmbiguousFunctions) isReason()                   {}
func (AmbiguousImport) isReason()                      {}
func (DuplicateLocalValue) isReason()                  {}
func (ValReassignment) isReason()                      {}
func (ReadOnlyPropertyAssignment) isReason()           {}
func (UnresolvedAssignmentLhs) isReason()              {}
func (UnresolvedAssignmentRhs) isReason()              {}
func (DanglingPureExpression) isReason()               {}
func (MissingConfigureLambda) isReason()               {}
func (AccessOnCurrentReceiverOnlyViolation) isReason() {}
func (UnusedConfigureLambda) isReason()                {}

// ResolutionError is a problem found while resolving an element
type ResolutionError struct {
	Element language.Element
	Reason  ErrorReason
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%v: %v", e.Element.Source(), e.Reason)
}
