package language

import "fmt"

// FailureKind classifies a parse failure
type FailureKind string

const (
	// ParsingError is a syntax error in the source text
	ParsingError FailureKind = "ParsingError"
	// UnsupportedConstruct is valid syntax the language does not accept
	UnsupportedConstruct FailureKind = "UnsupportedConstruct"
)

// Failure is a statement the parser dropped
type Failure struct {
	Kind      FailureKind `yaml:"kind"`
	Construct string      `yaml:"construct,omitempty"`
	Message   string      `yaml:"message"`
	Source    SourceData  `yaml:"source"`
}

func (f *Failure) Error() string {
	if f.Construct == "" {
		return fmt.Sprintf("%v: %s: %s", f.Source, f.Kind, f.Message)
	}
	return fmt.Sprintf("%v: %s(%s): %s", f.Source, f.Kind, f.Construct, f.Message)
}

// Result is the language tree of one source file
type Result struct {
	Identifier    string
	Imports       []*Import
	TopLevelBlock *Block
	Failures      []*Failure
}

// HasFailures reports whether any statement was dropped
func (r *Result) HasFailures() bool {
	return len(r.Failures) > 0
}
