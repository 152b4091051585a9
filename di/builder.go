package di

import (
	"reflect"

	"github.com/kbukum/inject/errors"
)

// Builder collects one binding for a requested type. The terminal calls To,
// ToInstance and ToProvider never panic: a failure is recorded and returned
// by Binding, which Module.Initialize reports. A later terminal call replaces
// the result of an earlier one, including a recorded failure.
type Builder struct {
	source    string
	primitive bool

	binding Binding
	err     error
}

func newBuilder(typ string) *Builder {
	canonical, primitive := CanonicalPrimitive(typ)
	return &Builder{source: canonical, primitive: primitive}
}

// To binds the type to a target type constructed through the catalog.
func (b *Builder) To(target string) Options {
	if b.primitive {
		return b.fail(errors.Newf(errors.ErrCodePrimitiveBindingRejected,
			"primitive [%s] must be bound to an instance or provider", b.source))
	}
	if target == "" {
		return b.fail(errors.Newf(errors.ErrCodeMissingArgument, "no target type given for [%s]", b.source))
	}
	return b.set(&ClassBinding{
		binding: b.base(),
		target:  target,
	})
}

// ToInstance binds the type to a fixed instance. Instance bindings are always
// singletons.
func (b *Builder) ToInstance(instance any) Options {
	if isNil(instance) {
		return b.fail(errors.Newf(errors.ErrCodeMissingArgument, "no instance given for [%s]", b.source))
	}
	base := b.base()
	base.singleton = true
	return b.set(&InstanceBinding{
		binding:  base,
		instance: instance,
	})
}

// ToProvider binds the type to a provider, given as a Provider value or as
// the catalog name of a provider type.
func (b *Builder) ToProvider(provider any) Options {
	pb := &ProviderBinding{binding: b.base()}
	switch p := provider.(type) {
	case string:
		if p == "" {
			return b.fail(errors.Newf(errors.ErrCodeMissingArgument, "no provider given for [%s]", b.source))
		}
		pb.providerType = p
	case Provider:
		if isNil(p) {
			return b.fail(errors.Newf(errors.ErrCodeMissingArgument, "no provider given for [%s]", b.source))
		}
		pb.provider = p
	case nil:
		return b.fail(errors.Newf(errors.ErrCodeMissingArgument, "no provider given for [%s]", b.source))
	default:
		return b.fail(errors.Newf(errors.ErrCodeCorruptBinding,
			"provider for [%s] must be a Provider or a type name, got %T", b.source, provider))
	}
	return b.set(pb)
}

// Binding returns the binding produced by the last terminal call.
func (b *Builder) Binding() (Binding, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.binding == nil {
		return nil, errors.Newf(errors.ErrCodeCorruptBinding, "corrupt binding for [%s]: no target given", b.source)
	}
	return b.binding, nil
}

func (b *Builder) base() binding {
	return binding{source: b.source, primitive: b.primitive}
}

func (b *Builder) set(bd Binding) Options {
	b.binding = bd
	b.err = nil
	return builderOptions{b}
}

func (b *Builder) fail(err *errors.AppError) Options {
	b.binding = nil
	b.err = err.WithDetail("type", b.source)
	return builderOptions{b}
}

// builderOptions applies options to the builder's current binding and is a
// no-op after a failed terminal call.
type builderOptions struct {
	b *Builder
}

func (o builderOptions) Named(name string) Options {
	if opts, ok := o.b.binding.(Options); ok {
		opts.Named(name)
	}
	return o
}

func (o builderOptions) AsSingleton() Options {
	if opts, ok := o.b.binding.(Options); ok {
		opts.AsSingleton()
	}
	return o
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
