package di

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/kbukum/inject/errors"
	"github.com/kbukum/inject/validation"
)

// assign stores value in the declared field of obj, following dotted paths
// into embedded structs. Unexported fields are written through an
// addressable alias of the same memory.
func assign(obj any, f Field, value any) error {
	if setter, ok := obj.(FieldSetter); ok {
		return setter.SetField(f.Field, value)
	}

	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return invalidInjection(obj, f, "target is not a pointer to a struct")
	}

	fv := rv.Elem()
	for _, name := range strings.Split(f.Field, ".") {
		if fv.Kind() != reflect.Struct {
			return invalidInjection(obj, f, "no such field")
		}
		if fv = fv.FieldByName(name); !fv.IsValid() {
			return invalidInjection(obj, f, "no such field")
		}
	}
	if !fv.CanSet() {
		fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
	}

	if value == nil {
		return invalidInjection(obj, f, "resolved value is nil")
	}
	val := reflect.ValueOf(value)
	switch {
	case val.Type().AssignableTo(fv.Type()):
		fv.Set(val)
	case isNumeric(val.Kind()) && isNumeric(fv.Kind()):
		fv.Set(val.Convert(fv.Type()))
	default:
		return invalidInjection(obj, f, val.Type().String()+" is not assignable to "+fv.Type().String())
	}
	return nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func invalidInjection(obj any, f Field, reason string) error {
	return errors.Newf(errors.ErrCodeInvalidInjection, "cannot inject %s.%s: %s", typeNameOf(obj), f.Field, reason).
		WithDetail("field", f.Field).
		WithDetail("type", f.Type)
}

// validateInstance runs struct validation on pointer-to-struct instances.
func validateInstance(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil
	}
	return validation.Validate(v)
}
