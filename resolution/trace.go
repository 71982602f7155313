package resolution

import (
	"fmt"

	"github.com/viant/dcl/language"
)

// ElementResult is the recorded outcome of an expression or local value
type ElementResult struct {
	// Origin is nil when the element could not be resolved
	Origin ObjectOrigin
	Errors []*ResolutionError
}

// AssignmentResult is the recorded outcome of an assignment statement
type AssignmentResult struct {
	LHS    *PropertyReferenceResolution
	RHS    ObjectOrigin
	Errors []*ResolutionError
}

// Trace answers what the resolver decided for each visited element
type Trace struct {
	expressions map[language.Element]*ElementResult
	assignments map[*language.Assignment]*AssignmentResult
	locals      map[*language.LocalValue]*ElementResult
	errors      map[language.Element][]*ResolutionError
}

// Expression returns the resolution of e; e must have been visited by the resolver
func (t *Trace) Expression(e language.Expr) ElementResult {
	result, ok := t.expressions[e]
	if !ok {
		panic(fmt.Sprintf("expression at %v was not resolved", e.Source()))
	}
	return ElementResult{Origin: result.Origin, Errors: t.errors[e]}
}

// Assignment returns the resolution of a; a must have been visited by the resolver
func (t *Trace) Assignment(a *language.Assignment) AssignmentResult {
	result, ok := t.assignments[a]
	if !ok {
		panic(fmt.Sprintf("assignment at %v was not resolved", a.Source()))
	}
	return AssignmentResult{LHS: result.LHS, RHS: result.RHS, Errors: t.errors[a]}
}

// LocalValue returns the resolution of l; l must have been visited by the resolver
func (t *Trace) LocalValue(l *language.LocalValue) ElementResult {
	result, ok := t.locals[l]
	if !ok {
		panic(fmt.Sprintf("local value at %v was not resolved", l.Source()))
	}
	return ElementResult{Origin: result.Origin, Errors: t.errors[l]}
}

func (t *Trace) expression(e language.Expr, origin ObjectOrigin) {
	t.expressions[e] = &ElementResult{Origin: origin}
}

func (t *Trace) error(err *ResolutionError) {
	t.errors[err.Element] = append(t.errors[err.Element], err)
}

func newTrace() *Trace {
	return &Trace{
		expressions: map[language.Element]*ElementResult{},
		assignments: map[*language.Assignment]*AssignmentResult{},
		locals:      map[*language.LocalValue]*ElementResult{},
		errors:      map[language.Element][]*ResolutionError{},
	}
}
