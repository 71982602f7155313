package resolution

import (
	"github.com/viant/dcl/language"
	"github.com/viant/dcl/schema"
)

// candidate is a function that may serve a call
type candidate struct {
	member   *schema.MemberFunction
	topLevel *schema.TopLevelFunction
	receiver ObjectOrigin
}

func (c *candidate) parameters() []*schema.DataParameter {
	if c.member != nil {
		return c.member.Parameters
	}
	return c.topLevel.Parameters
}

func (c *candidate) semantics() schema.FunctionSemantics {
	if c.member != nil {
		return c.member.Semantics
	}
	return c.topLevel.Semantics
}

func (c *candidate) String() string {
	if c.member != nil {
		return c.member.String()
	}
	return c.topLevel.String()
}

// call resolves a function call; statement is true when the call value is discarded
func (s *session) call(sc scope, call *language.FunctionCall, statement bool) ObjectOrigin {
	result := s.resolveCall(sc, call, statement)
	s.trace.expression(call, result)
	return result
}

func (s *session) resolveCall(sc scope, call *language.FunctionCall, statement bool) ObjectOrigin {
	var receiver ObjectOrigin
	if call.Receiver != nil {
		if receiver = s.expression(sc, call.Receiver); receiver == nil {
			s.arguments(sc, call)
			return nil
		}
	}
	args, ok := s.arguments(sc, call)
	if !ok {
		return nil
	}
	candidates, ok := s.candidates(sc, call, receiver)
	if !ok {
		return nil
	}
	var matches []*candidate
	var bindings [][]ObjectOrigin
	for _, c := range candidates {
		if bound, ok := s.bind(c.parameters(), call.ValueArgs(), args); ok {
			matches = append(matches, c)
			bindings = append(bindings, bound)
		}
	}
	switch len(matches) {
	case 0:
		s.report(call, UnresolvedFunctionCallArguments{Name: call.Name})
		return nil
	case 1:
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.String())
		}
		s.report(call, AmbiguousFunctions{Name: call.Name, Candidates: names})
		return nil
	}
	fn, bound := matches[0], bindings[0]
	semantics := fn.semantics()
	lambda := call.Lambda()
	if lambda != nil && !semantics.AcceptsLambda() {
		s.report(lambda, UnusedConfigureLambda{Name: call.Name})
		lambda = nil
	}
	if lambda == nil && semantics.Lambda == schema.LambdaRequired && call.Lambda() == nil {
		s.report(call, MissingConfigureLambda{Name: call.Name})
	}
	if fn.topLevel != nil {
		return s.topLevelCall(call, fn.topLevel, bound, statement)
	}
	switch semantics.Kind {
	case schema.Adding:
		return s.addingCall(sc, call, fn, bound, lambda)
	case schema.Configuring:
		return s.configuringCall(sc, call, fn, bound, lambda)
	case schema.BuilderFunction:
		return s.builderCall(call, fn, bound)
	}
	if statement {
		s.report(call, DanglingPureExpression{})
	}
	created := s.newObject(call, fn, bound)
	s.storeArguments(call, created, fn.parameters(), bound)
	return created
}

// arguments resolves every value argument in source order
func (s *session) arguments(sc scope, call *language.FunctionCall) ([]ObjectOrigin, bool) {
	ok := true
	var result []ObjectOrigin
	for _, arg := range call.ValueArgs() {
		var value ObjectOrigin
		switch actual := arg.(type) {
		case *language.PositionalArgument:
			value = s.expression(sc, actual.Expr)
		case *language.NamedArgument:
			value = s.expression(sc, actual.Expr)
		}
		if value == nil {
			ok = false
		}
		result = append(result, value)
	}
	return result, ok
}

// candidates collects functions named like the call. Without an explicit receiver the
// innermost receiver declaring the name wins; functions with side effects are only
// allowed on the current receiver.
func (s *session) candidates(sc scope, call *language.FunctionCall, receiver ObjectOrigin) ([]*candidate, bool) {
	var result []*candidate
	if receiver != nil {
		class, ok := s.schema.ClassOf(receiver.Type())
		if !ok {
			s.report(call, UnresolvedFunctionCallReceiver{Name: call.Name})
			return nil, false
		}
		for _, fn := range s.schema.FindFunctions(class, call.Name) {
			result = append(result, &candidate{member: fn, receiver: receiver})
		}
		if len(result) == 0 {
			s.report(call, UnresolvedFunctionCallSignature{Name: call.Name})
			return nil, false
		}
		return result, true
	}
	for depth, scopeReceiver := range sc.receivers() {
		class, ok := s.schema.ClassOf(scopeReceiver.Type())
		if !ok {
			continue
		}
		functions := s.schema.FindFunctions(class, call.Name)
		if len(functions) == 0 {
			continue
		}
		this := &ImplicitThisReceiver{origin: origin{Src: call}, ResolvedTo: scopeReceiver, CurrentScope: depth == 0}
		for _, fn := range functions {
			if depth > 0 && fn.Semantics.Kind != schema.Pure {
				continue
			}
			result = append(result, &candidate{member: fn, receiver: this})
		}
		if len(result) == 0 {
			s.report(call, AccessOnCurrentReceiverOnlyViolation{Name: call.Name})
			return nil, false
		}
		return result, true
	}
	if fn, ok := s.imports.functions[call.Name]; ok {
		return []*candidate{{topLevel: fn}}, true
	}
	s.report(call, UnresolvedFunctionCallSignature{Name: call.Name})
	return nil, false
}

// bind matches arguments to parameters by position, then by name.
// The result is aligned with params; nil marks a parameter left to its default.
func (s *session) bind(params []*schema.DataParameter, args []language.FunctionArgument, values []ObjectOrigin) ([]ObjectOrigin, bool) {
	bound := make([]ObjectOrigin, len(params))
	assigned := make([]bool, len(params))
	named := false
	for i, arg := range args {
		index := -1
		switch actual := arg.(type) {
		case *language.PositionalArgument:
			if named {
				return nil, false
			}
			index = i
		case *language.NamedArgument:
			named = true
			for j, param := range params {
				if param.Name == actual.Name {
					index = j
					break
				}
			}
		}
		if index < 0 || index >= len(params) || assigned[index] {
			return nil, false
		}
		if !s.schema.IsAssignable(params[index].Type, values[i].Type()) {
			return nil, false
		}
		bound[index] = values[i]
		assigned[index] = true
	}
	for i, param := range params {
		if !assigned[i] && !param.IsDefault {
			return nil, false
		}
	}
	return bound, true
}

func (s *session) newObject(call *language.FunctionCall, fn *candidate, args []ObjectOrigin) *NewObjectFromMemberFunction {
	return &NewObjectFromMemberFunction{
		origin:       origin{Src: call},
		Function:     fn.member,
		Receiver:     fn.receiver,
		Arguments:    args,
		InvocationID: s.nextInvocation(),
	}
}

func (s *session) addingCall(sc scope, call *language.FunctionCall, fn *candidate, args []ObjectOrigin, lambda *language.LambdaArgument) ObjectOrigin {
	created := s.newObject(call, fn, args)
	s.result.Additions = append(s.result.Additions, &DataAdditionRecord{
		Container:   fn.receiver,
		DataObject:  created,
		OperationID: s.nextOperation(),
	})
	s.storeArguments(call, created, fn.parameters(), args)
	if lambda != nil {
		configured := &AddAndConfigureReceiver{origin: origin{Src: lambda}, Receiver: created}
		s.block(sc.nested(configured), lambda.Block)
	}
	return created
}

func (s *session) configuringCall(sc scope, call *language.FunctionCall, fn *candidate, args []ObjectOrigin, lambda *language.LambdaArgument) ObjectOrigin {
	configured := &ConfigureReceiver{
		origin:       origin{Src: call},
		Receiver:     fn.receiver,
		Function:     fn.member,
		Accessor:     fn.member.Semantics.Accessor,
		InvocationID: s.nextInvocation(),
	}
	s.result.NestedObjectAccess = append(s.result.NestedObjectAccess, &NestedObjectAccessRecord{
		Container:   fn.receiver,
		DataObject:  configured,
		OperationID: s.nextOperation(),
	})
	if lambda != nil {
		s.block(sc.nested(configured), lambda.Block)
	}
	if fn.member.ReturnType() != schema.UnitType {
		return configured
	}
	return &NewObjectFromMemberFunction{
		origin:       origin{Src: call},
		Function:     fn.member,
		Receiver:     fn.receiver,
		Arguments:    args,
		InvocationID: configured.InvocationID,
	}
}

func (s *session) builderCall(call *language.FunctionCall, fn *candidate, args []ObjectOrigin) ObjectOrigin {
	var argument ObjectOrigin
	if len(args) > 0 {
		argument = args[0]
	}
	result := &BuilderReturnedReceiver{
		origin:       origin{Src: call},
		Function:     fn.member,
		Receiver:     fn.receiver,
		Argument:     argument,
		InvocationID: s.nextInvocation(),
	}
	property := s.property(fn.receiver.Type(), fn.member.Semantics.Property)
	if property != nil && argument != nil {
		s.result.Assignments = append(s.result.Assignments, &AssignmentRecord{
			LHS:         PropertyReferenceResolution{Receiver: fn.receiver, Property: property},
			RHS:         argument,
			OperationID: s.nextOperation(),
			Method:      BuilderFunction,
			Element:     call,
		})
	}
	return result
}

func (s *session) topLevelCall(call *language.FunctionCall, fn *schema.TopLevelFunction, args []ObjectOrigin, statement bool) ObjectOrigin {
	if statement {
		s.report(call, DanglingPureExpression{})
	}
	created := &NewObjectFromTopLevelFunction{
		origin:       origin{Src: call},
		Function:     fn,
		Arguments:    args,
		InvocationID: s.nextInvocation(),
	}
	s.storeArguments(call, created, fn.Parameters, args)
	return created
}

// storeArguments records arguments of parameters stored into a property of the created object
func (s *session) storeArguments(call *language.FunctionCall, created ObjectOrigin, params []*schema.DataParameter, args []ObjectOrigin) {
	for i, param := range params {
		if param.StoreInProperty == "" || args[i] == nil {
			continue
		}
		property := s.property(created.Type(), param.StoreInProperty)
		if property == nil {
			continue
		}
		s.result.Assignments = append(s.result.Assignments, &AssignmentRecord{
			LHS:         PropertyReferenceResolution{Receiver: created, Property: property},
			RHS:         args[i],
			OperationID: s.nextOperation(),
			Method:      AsConstructed,
			Element:     call,
		})
	}
}
