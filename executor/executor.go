package executor

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/dcl/objectgraph"
	"github.com/viant/dcl/resolution"
	"github.com/viant/dcl/schema"
)

// Executor replays a resolved document against live Go objects
type Executor struct {
	properties PropertyResolver
	functions  FunctionResolver
	topLevel   map[schema.FQName]interface{}
	objects    map[schema.FQName]interface{}
	logger     *slog.Logger
}

// Option configures an Executor
type Option func(e *Executor)

// WithLogger sets executor logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithPropertyResolver replaces reflective property access
func WithPropertyResolver(resolver PropertyResolver) Option {
	return func(e *Executor) {
		e.properties = resolver
	}
}

// WithFunctionResolver replaces reflective method invocation
func WithFunctionResolver(resolver FunctionResolver) Option {
	return func(e *Executor) {
		e.functions = resolver
	}
}

// WithFunction binds an importable function to a Go func
func WithFunction(name schema.FQName, fn interface{}) Option {
	return func(e *Executor) {
		e.topLevel[name] = fn
	}
}

// WithObject binds an importable object to a live value
func WithObject(name schema.FQName, value interface{}) Option {
	return func(e *Executor) {
		e.objects[name] = value
	}
}

// Apply mutates root according to result. It refuses to run when the document
// has resolution errors or reads unassigned values.
func (e *Executor) Apply(result *resolution.ResolutionResult, trace *objectgraph.AssignmentTrace, root interface{}) error {
	if trace == nil {
		trace = objectgraph.Trace(result)
	}
	if err := notEvaluated(result, trace); err != nil {
		return err
	}
	run := &execution{executor: e, root: root, objects: map[int64]interface{}{}}
	for _, operation := range result.Operations() {
		if err := run.apply(operation, trace); err != nil {
			return err
		}
	}
	e.logger.Debug("applied document",
		slog.Int("operations", len(result.Operations())),
		slog.Int("objects", len(run.objects)))
	return nil
}

func notEvaluated(result *resolution.ResolutionResult, trace *objectgraph.AssignmentTrace) error {
	var reasons []string
	for _, err := range result.Errors {
		reasons = append(reasons, err.Error())
	}
	for _, element := range trace.Unassigned() {
		reasons = append(reasons, fmt.Sprintf("%v: unassigned value %v used", element.Record().Element.Source(), element.Property()))
	}
	if len(reasons) == 0 {
		return nil
	}
	return &NotEvaluatedError{Reasons: reasons}
}

// New creates an executor using reflection
func New(opts ...Option) *Executor {
	e := &Executor{
		properties: Reflection{},
		functions:  Reflection{},
		topLevel:   map[schema.FQName]interface{}{},
		objects:    map[schema.FQName]interface{}{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
