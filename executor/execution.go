package executor

import (
	"fmt"
	"reflect"

	"github.com/viant/dcl/objectgraph"
	"github.com/viant/dcl/resolution"
	"github.com/viant/dcl/schema"
)

// execution is the state of one Apply call; invocations are memoized so each
// call in the document runs exactly once
type execution struct {
	executor *Executor
	root     interface{}
	objects  map[int64]interface{}
}

func (x *execution) apply(operation resolution.Operation, trace *objectgraph.AssignmentTrace) error {
	switch record := operation.(type) {
	case *resolution.DataAdditionRecord:
		_, err := x.materialize(record.DataObject)
		return err
	case *resolution.NestedObjectAccessRecord:
		_, err := x.materialize(record.DataObject)
		return err
	case *resolution.AssignmentRecord:
		if record.Method == resolution.AsConstructed {
			return nil
		}
		receiver, err := x.materialize(record.LHS.Receiver)
		if err != nil {
			return err
		}
		valueOrigin := record.RHS
		if element, ok := trace.Find(record.OperationID); ok {
			if recorded, ok := element.(*objectgraph.RecordedAssignment); ok {
				valueOrigin = recorded.Value
			}
		}
		value, err := x.materialize(valueOrigin)
		if err != nil {
			return err
		}
		if err = x.executor.properties.SetProperty(receiver, record.LHS.Property.Name, value); err != nil {
			return fmt.Errorf("%v: %w", record.Element.Source(), err)
		}
		x.executor.logger.Debug("set property",
			"property", record.LHS.Property.Name,
			"method", string(record.Method),
			"source", record.Element.Source().String())
	}
	return nil
}

// materialize returns the live object an origin stands for
func (x *execution) materialize(origin resolution.ObjectOrigin) (interface{}, error) {
	switch actual := origin.(type) {
	case *resolution.ConstantOrigin:
		return actual.Value, nil
	case *resolution.NullOrigin:
		return nil, nil
	case *resolution.TopLevelReceiver:
		return x.root, nil
	case *resolution.ImplicitThisReceiver:
		return x.materialize(actual.ResolvedTo)
	case *resolution.FromLocalValue:
		return x.materialize(actual.Assigned)
	case *resolution.AddAndConfigureReceiver:
		return x.materialize(actual.Receiver)
	case *resolution.BuilderReturnedReceiver:
		return x.materialize(actual.Receiver)
	case *resolution.PropertyReference:
		receiver, err := x.materialize(actual.Receiver)
		if err != nil {
			return nil, err
		}
		return x.executor.properties.GetProperty(receiver, actual.Property.Name)
	case *resolution.External:
		value, ok := x.executor.objects[actual.Key]
		if !ok {
			return nil, fmt.Errorf("failed to resolve object %v: not bound", actual.Key)
		}
		return value, nil
	case *resolution.NewObjectFromMemberFunction:
		return x.memoized(actual.InvocationID, func() (interface{}, error) {
			receiver, err := x.materialize(actual.Receiver)
			if err != nil {
				return nil, err
			}
			args, err := x.arguments(actual.Arguments)
			if err != nil {
				return nil, err
			}
			return x.executor.functions.Invoke(receiver, actual.Function.Name, args)
		})
	case *resolution.NewObjectFromTopLevelFunction:
		return x.memoized(actual.InvocationID, func() (interface{}, error) {
			fn, ok := x.executor.topLevel[actual.Function.FQName()]
			if !ok {
				return nil, fmt.Errorf("failed to invoke %v: function not bound", actual.Function.FQName())
			}
			args, err := x.arguments(actual.Arguments)
			if err != nil {
				return nil, err
			}
			return call(reflect.ValueOf(fn), actual.Function.Name, args)
		})
	case *resolution.ConfigureReceiver:
		return x.memoized(actual.InvocationID, func() (interface{}, error) {
			receiver, err := x.materialize(actual.Receiver)
			if err != nil {
				return nil, err
			}
			if actual.Accessor.Kind == schema.AccessorFunction {
				return x.executor.functions.Invoke(receiver, actual.Accessor.Name, nil)
			}
			return x.executor.properties.GetProperty(receiver, actual.Accessor.Name)
		})
	}
	return nil, fmt.Errorf("unsupported origin %T", origin)
}

func (x *execution) memoized(id int64, create func() (interface{}, error)) (interface{}, error) {
	if object, ok := x.objects[id]; ok {
		return object, nil
	}
	object, err := create()
	if err != nil {
		return nil, err
	}
	x.objects[id] = object
	return object, nil
}

func (x *execution) arguments(origins []resolution.ObjectOrigin) ([]interface{}, error) {
	args := make([]interface{}, len(origins))
	for i, origin := range origins {
		if origin == nil {
			continue
		}
		value, err := x.materialize(origin)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	return args, nil
}
