package resolution

import (
	"io"
	"log/slog"
	"sort"

	"github.com/viant/dcl/language"
	"github.com/viant/dcl/schema"
)

// Resolver resolves language trees against a schema.
// It holds no per-document state and can be shared.
type Resolver struct {
	schema *schema.AnalysisSchema
	logger *slog.Logger
}

// Option configures a Resolver
type Option func(r *Resolver)

// WithLogger sets resolver logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// Resolve resolves a parsed document
func (r *Resolver) Resolve(doc *language.Result) (*ResolutionResult, *Trace) {
	block := doc.TopLevelBlock
	if block == nil {
		block = &language.Block{}
	}
	result, trace := r.resolve(doc.Imports, block)
	r.logger.Debug("resolved document",
		slog.String("identifier", doc.Identifier),
		slog.Int("assignments", len(result.Assignments)),
		slog.Int("additions", len(result.Additions)),
		slog.Int("nested", len(result.NestedObjectAccess)),
		slog.Int("errors", len(result.Errors)))
	return result, trace
}

func (r *Resolver) resolve(imports []*language.Import, block *language.Block) (*ResolutionResult, *Trace) {
	s := &session{
		schema: r.schema,
		result: &ResolutionResult{},
		trace:  newTrace(),
	}
	s.result.TopLevelReceiver = &TopLevelReceiver{
		origin:       origin{Src: block},
		ReceiverType: schema.ClassRef(r.schema.TopLevelReceiver()),
	}
	s.imports = s.importTable(imports)
	s.block(scope{receiver: s.result.TopLevelReceiver}, block)
	errors := s.result.Errors
	sort.SliceStable(errors, func(i, j int) bool {
		return errors[i].Element.Source().StartOffset < errors[j].Element.Source().StartOffset
	})
	return s.result, s.trace
}

// Resolve resolves block with imports against analysisSchema
func Resolve(analysisSchema *schema.AnalysisSchema, imports []*language.Import, block *language.Block) *ResolutionResult {
	result, _ := New(analysisSchema).resolve(imports, block)
	return result
}

// New creates a resolver
func New(analysisSchema *schema.AnalysisSchema, opts ...Option) *Resolver {
	r := &Resolver{schema: analysisSchema, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// session is the state of one Resolve call
type session struct {
	schema       *schema.AnalysisSchema
	result       *ResolutionResult
	trace        *Trace
	imports      *importTable
	invocationID int64
	operationID  int64
}

func (s *session) nextInvocation() int64 {
	s.invocationID++
	return s.invocationID
}

func (s *session) nextOperation() int64 {
	s.operationID++
	return s.operationID
}

func (s *session) report(element language.Element, reason ErrorReason) {
	err := &ResolutionError{Element: element, Reason: reason}
	s.result.Errors = append(s.result.Errors, err)
	s.trace.error(err)
}

func (s *session) block(sc scope, block *language.Block) {
	for _, statement := range block.Statements {
		sc = s.statement(sc, statement)
	}
}

func (s *session) statement(sc scope, statement language.Element) scope {
	switch actual := statement.(type) {
	case *language.LocalValue:
		return s.localValue(sc, actual)
	case *language.Assignment:
		s.assignment(sc, actual)
	case *language.FunctionCall:
		s.call(sc, actual, true)
	case language.Expr:
		s.expression(sc, actual)
		s.report(actual, DanglingPureExpression{})
	}
	return sc
}

func (s *session) localValue(sc scope, local *language.LocalValue) scope {
	value := s.expression(sc, local.RHS)
	result := &ElementResult{}
	s.trace.locals[local] = result
	if sc.declared(local.Name) {
		s.report(local, DuplicateLocalValue{Name: local.Name})
		return sc
	}
	if value == nil {
		return sc
	}
	if value.Type() == schema.UnitType {
		s.report(local, UnitAssignment{})
		return sc
	}
	bound := &FromLocalValue{origin: origin{Src: local}, Name: local.Name, Assigned: value}
	result.Origin = bound
	return sc.bind(bound)
}

func (s *session) assignment(sc scope, assignment *language.Assignment) {
	result := &AssignmentResult{}
	s.trace.assignments[assignment] = result

	errorCount := len(s.result.Errors)
	lhs := s.assignmentTarget(sc, assignment.LHS)
	if lhs == nil && errorCount == len(s.result.Errors) {
		s.report(assignment, UnresolvedAssignmentLhs{})
	}
	errorCount = len(s.result.Errors)
	rhs := s.expression(sc, assignment.RHS)
	if rhs == nil && errorCount == len(s.result.Errors) {
		s.report(assignment, UnresolvedAssignmentRhs{})
	}
	result.LHS, result.RHS = lhs, rhs
	if lhs == nil || rhs == nil {
		return
	}
	if rhs.Type() == schema.UnitType {
		s.report(assignment, UnitAssignment{})
		return
	}
	if !s.schema.IsAssignable(lhs.Property.Type, rhs.Type()) {
		s.report(assignment, AssignmentTypeMismatch{Expected: lhs.Property.Type, Actual: rhs.Type()})
		return
	}
	s.result.Assignments = append(s.result.Assignments, &AssignmentRecord{
		LHS:         *lhs,
		RHS:         rhs,
		OperationID: s.nextOperation(),
		Method:      Property,
		Element:     assignment,
	})
}

// assignmentTarget resolves the lhs of an assignment; without an explicit receiver
// only the current receiver may be assigned.
func (s *session) assignmentTarget(sc scope, access *language.PropertyAccess) *PropertyReferenceResolution {
	var target *PropertyReferenceResolution
	if access.Receiver == nil {
		if _, ok := sc.local(access.Name); ok {
			s.trace.expression(access, nil)
			s.report(access, ValReassignment{Name: access.Name})
			return nil
		}
		for depth, receiver := range sc.receivers() {
			property := s.property(receiver.Type(), access.Name)
			if property == nil {
				continue
			}
			if depth > 0 {
				s.trace.expression(access, nil)
				s.report(access, AccessOnCurrentReceiverOnlyViolation{Name: access.Name})
				return nil
			}
			target = &PropertyReferenceResolution{
				Receiver: &ImplicitThisReceiver{origin: origin{Src: access}, ResolvedTo: receiver, CurrentScope: true},
				Property: property,
			}
			break
		}
		if target == nil {
			s.trace.expression(access, nil)
			s.report(access, UnresolvedReference{Name: access.Name})
			return nil
		}
	} else {
		receiver := s.expression(sc, access.Receiver)
		if receiver == nil {
			s.trace.expression(access, nil)
			return nil
		}
		property := s.property(receiver.Type(), access.Name)
		if property == nil {
			s.trace.expression(access, nil)
			s.report(access, UnresolvedReference{Name: access.Name})
			return nil
		}
		target = &PropertyReferenceResolution{Receiver: receiver, Property: property}
	}
	s.trace.expression(access, &PropertyReference{origin: origin{Src: access}, Receiver: target.Receiver, Property: target.Property})
	if target.Property.ReadOnly {
		s.report(access, ReadOnlyPropertyAssignment{Property: access.Name})
		return nil
	}
	return target
}

func (s *session) property(t schema.DataType, name string) *schema.DataProperty {
	class, ok := s.schema.ClassOf(t)
	if !ok {
		return nil
	}
	return s.schema.FindProperty(class, name)
}
