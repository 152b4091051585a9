package di

import (
	"fmt"

	"github.com/kbukum/inject/errors"
)

// MustResolve resolves the default binding for typ as T, panics on error.
//
// Example:
//
//	greeter := di.MustResolve[Greeter](inj, "Greeter")
func MustResolve[T any](inj *Injector, typ string) T {
	result, err := Resolve[T](inj, typ)
	if err != nil {
		panic(fmt.Sprintf("di: %v", err))
	}
	return result
}

// Resolve resolves the default binding for typ as T.
//
// Example:
//
//	greeter, err := di.Resolve[Greeter](inj, "Greeter")
//	if err != nil {
//	    return fmt.Errorf("failed to get greeter: %w", err)
//	}
func Resolve[T any](inj *Injector, typ string) (T, error) {
	return ResolveNamed[T](inj, typ, "")
}

// ResolveNamed resolves the binding for (typ, name) as T.
func ResolveNamed[T any](inj *Injector, typ, name string) (T, error) {
	var zero T
	instance, err := inj.ResolveInstance(typ, name)
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, errors.Newf(errors.ErrCodeInvalidInjection, "binding [%s] is %T, expected %T",
			NewKey(typ, name), instance, zero)
	}
	return result, nil
}

// TryResolve resolves typ as T, returns zero value and false on any failure.
// Use this when a dependency is optional.
//
// Example:
//
//	if clock, ok := di.TryResolve[Clock](inj, "Clock"); ok {
//	    clock.Now()
//	}
func TryResolve[T any](inj *Injector, typ string) (T, bool) {
	result, err := Resolve[T](inj, typ)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
