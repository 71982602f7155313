package check

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dcl/language"
)

// callsNamed flags every top-level call with the given name
type callsNamed string

func (c callsNamed) Name() string { return string(c) }

func (c callsNamed) Detect(doc *language.Result) []*Failure {
	var result []*Failure
	for _, statement := range doc.TopLevelBlock.Statements {
		if call, ok := statement.(*language.FunctionCall); ok && call.Name == string(c) {
			result = append(result, &Failure{Reason: Reason(c), Source: statement.Source()})
		}
	}
	return result
}

func TestRun(t *testing.T) {
	doc, err := language.NewParser().Parse(context.Background(), "test.dcl", []byte(`b()
a()
b()
a()
`))
	require.NoError(t, err)

	failures := Run(doc, callsNamed("a"), callsNamed("b"))
	require.Len(t, failures, 4)
	var lines []int
	var reasons []Reason
	for _, f := range failures {
		lines = append(lines, f.Source.StartLine)
		reasons = append(reasons, f.Reason)
	}
	assert.EqualValues(t, []int{1, 2, 3, 4}, lines)
	assert.EqualValues(t, []Reason{"b", "a", "b", "a"}, reasons)

	assert.Empty(t, Run(doc))
	assert.EqualValues(t, "test.dcl:1:1: b", failures[0].String())
}
