// Package check runs structural checks over parsed documents
package check

import (
	"fmt"
	"sort"

	"github.com/viant/dcl/language"
)

// Reason names a structural problem
type Reason string

// Failure is a problem found by a DocumentCheck
type Failure struct {
	Reason  Reason              `yaml:"reason"`
	Source  language.SourceData `yaml:"source"`
	Message string              `yaml:"message,omitempty"`
}

func (f *Failure) String() string {
	if f.Message == "" {
		return fmt.Sprintf("%v: %v", f.Source, f.Reason)
	}
	return fmt.Sprintf("%v: %v: %v", f.Source, f.Reason, f.Message)
}

// DocumentCheck inspects a document without resolving it
type DocumentCheck interface {
	Name() string
	Detect(doc *language.Result) []*Failure
}

// Run applies checks to doc and returns failures ordered by position
func Run(doc *language.Result, checks ...DocumentCheck) []*Failure {
	var result []*Failure
	for _, c := range checks {
		result = append(result, c.Detect(doc)...)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Source.StartOffset < result[j].Source.StartOffset
	})
	return result
}
