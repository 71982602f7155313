package analyzer

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/viant/dcl/check"
	"github.com/viant/dcl/language"
	"github.com/viant/dcl/objectgraph"
	"github.com/viant/dcl/resolution"
)

// Severity of a diagnostic
type Severity string

const (
	SeverityError Severity = "error"
)

// Diagnostic is a single problem found in a document, whatever stage reported it
type Diagnostic struct {
	Severity Severity            `yaml:"severity" json:"severity"`
	Kind     string              `yaml:"kind" json:"kind"`
	Message  string              `yaml:"message" json:"message"`
	Source   language.SourceData `yaml:"source" json:"source"`
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%v: %v: %v", d.Source, d.Kind, d.Message)
}

// Document is the outcome of analyzing one source
type Document struct {
	Identifier  string
	Language    *language.Result
	Resolution  *resolution.ResolutionResult
	Trace       *resolution.Trace
	Assignments *objectgraph.AssignmentTrace
	Failures    []*check.Failure
}

// Diagnostics returns every problem of the document ordered by position
func (d *Document) Diagnostics() []*Diagnostic {
	var result []*Diagnostic
	if d.Language != nil {
		for _, failure := range d.Language.Failures {
			result = append(result, &Diagnostic{
				Severity: SeverityError,
				Kind:     string(failure.Kind),
				Message:  failure.Message,
				Source:   failure.Source,
			})
		}
	}
	if d.Resolution != nil {
		for _, err := range d.Resolution.Errors {
			result = append(result, &Diagnostic{
				Severity: SeverityError,
				Kind:     reflect.TypeOf(err.Reason).Name(),
				Message:  err.Reason.String(),
				Source:   err.Element.Source(),
			})
		}
	}
	if d.Assignments != nil {
		for _, unassigned := range d.Assignments.Unassigned() {
			side := "rhs"
			if unassigned.InLhs() {
				side = "lhs"
			}
			result = append(result, &Diagnostic{
				Severity: SeverityError,
				Kind:     "UnassignedValueUsed",
				Message:  fmt.Sprintf("unassigned property %v used in %v", unassigned.Property(), side),
				Source:   unassigned.Record().Element.Source(),
			})
		}
	}
	for _, failure := range d.Failures {
		message := failure.Message
		if message == "" {
			message = string(failure.Reason)
		}
		result = append(result, &Diagnostic{
			Severity: SeverityError,
			Kind:     string(failure.Reason),
			Message:  message,
			Source:   failure.Source,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Source.StartOffset < result[j].Source.StartOffset
	})
	return result
}

// HasErrors reports whether any stage reported a problem
func (d *Document) HasErrors() bool {
	for _, diagnostic := range d.Diagnostics() {
		if diagnostic.Severity == SeverityError {
			return true
		}
	}
	return false
}
