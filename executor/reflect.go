package executor

import (
	"fmt"
	"reflect"
	"strings"
)

// PropertyResolver reads and writes properties of live objects
type PropertyResolver interface {
	GetProperty(receiver interface{}, name string) (interface{}, error)
	SetProperty(receiver interface{}, name string, value interface{}) error
}

// FunctionResolver invokes functions of live objects
type FunctionResolver interface {
	Invoke(receiver interface{}, name string, args []interface{}) (interface{}, error)
}

// Reflection resolves properties and functions with Go reflection:
// a property is a Get<Name>/<Name> method, a Set<Name> method or an exported field,
// matched case-insensitively or through a `dcl` tag; a function is the exported method <Name>.
type Reflection struct{}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func exported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (Reflection) GetProperty(receiver interface{}, name string) (interface{}, error) {
	value := reflect.ValueOf(receiver)
	if !value.IsValid() {
		return nil, fmt.Errorf("failed to get %v: receiver is nil", name)
	}
	for _, methodName := range []string{"Get" + exported(name), exported(name)} {
		method := value.MethodByName(methodName)
		if method.IsValid() && method.Type().NumIn() == 0 && method.Type().NumOut() >= 1 {
			out := method.Call(nil)
			if err := callError(out); err != nil {
				return nil, err
			}
			return out[0].Interface(), nil
		}
	}
	field, ok := findField(value, name)
	if !ok {
		return nil, fmt.Errorf("failed to get %v: no such property on %T", name, receiver)
	}
	if field.Kind() == reflect.Struct && field.CanAddr() {
		return field.Addr().Interface(), nil
	}
	return field.Interface(), nil
}

func (Reflection) SetProperty(receiver interface{}, name string, value interface{}) error {
	target := reflect.ValueOf(receiver)
	if !target.IsValid() {
		return fmt.Errorf("failed to set %v: receiver is nil", name)
	}
	if method := target.MethodByName("Set" + exported(name)); method.IsValid() && method.Type().NumIn() == 1 {
		arg, err := convert(value, method.Type().In(0))
		if err != nil {
			return fmt.Errorf("failed to set %v: %w", name, err)
		}
		return callError(method.Call([]reflect.Value{arg}))
	}
	field, ok := findField(target, name)
	if !ok || !field.CanSet() {
		return fmt.Errorf("failed to set %v: no settable property on %T", name, receiver)
	}
	converted, err := convert(value, field.Type())
	if err != nil {
		return fmt.Errorf("failed to set %v: %w", name, err)
	}
	field.Set(converted)
	return nil
}

func (Reflection) Invoke(receiver interface{}, name string, args []interface{}) (interface{}, error) {
	target := reflect.ValueOf(receiver)
	if !target.IsValid() {
		return nil, fmt.Errorf("failed to invoke %v: receiver is nil", name)
	}
	method := target.MethodByName(exported(name))
	if !method.IsValid() {
		return nil, fmt.Errorf("failed to invoke %v: no such method on %T", name, receiver)
	}
	return call(method, name, args)
}

func call(fn reflect.Value, name string, args []interface{}) (interface{}, error) {
	fnType := fn.Type()
	if fnType.NumIn() != len(args) {
		return nil, fmt.Errorf("failed to invoke %v: expected %d arguments, got %d", name, fnType.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		converted, err := convert(arg, fnType.In(i))
		if err != nil {
			return nil, fmt.Errorf("failed to invoke %v: argument %d: %w", name, i, err)
		}
		in[i] = converted
	}
	out := fn.Call(in)
	if err := callError(out); err != nil {
		return nil, err
	}
	if len(out) == 0 || out[0].Type() == errorType {
		return nil, nil
	}
	return out[0].Interface(), nil
}

func callError(out []reflect.Value) error {
	if len(out) == 0 {
		return nil
	}
	last := out[len(out)-1]
	if last.Type() != errorType || last.IsNil() {
		return nil
	}
	return last.Interface().(error)
}

// findField locates an exported struct field by dcl tag or case-insensitive name
func findField(value reflect.Value, name string) (reflect.Value, bool) {
	for value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return reflect.Value{}, false
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	valueType := value.Type()
	for i := 0; i < valueType.NumField(); i++ {
		field := valueType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		if tag, ok := field.Tag.Lookup("dcl"); ok {
			if tag == name {
				return value.Field(i), true
			}
			continue
		}
		if strings.EqualFold(field.Name, name) {
			return value.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// convert adapts a DSL value to the Go type it is stored in; nil becomes the zero value
func convert(value interface{}, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}
	source := reflect.ValueOf(value)
	if source.Type().AssignableTo(target) {
		return source, nil
	}
	if isNumber(source.Kind()) && isNumber(target.Kind()) {
		return source.Convert(target), nil
	}
	if source.Kind() == reflect.Ptr && source.Elem().Type().AssignableTo(target) {
		return source.Elem(), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %v", value, target)
}

func isNumber(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
