package di

import (
	"fmt"
	"sync"

	"github.com/kbukum/inject/errors"
)

// Binding describes how an instance is produced for a Key.
type Binding interface {
	Key() Key
	// SourceType is the requested type name, canonical for primitives.
	SourceType() string
	// TargetType is the implementation type name.
	TargetType() string
	Name() string
	IsPrimitive() bool
	IsSingleton() bool
	// Instance produces the bound value. Types are constructed through c.
	Instance(c *Catalog) (any, error)
	String() string
}

// Options refines a binding after its terminal builder call.
type Options interface {
	Named(name string) Options
	AsSingleton() Options
}

type binding struct {
	source    string
	name      string
	primitive bool
	singleton bool
}

func (b *binding) Key() Key           { return NewKey(b.source, b.name) }
func (b *binding) SourceType() string { return b.source }
func (b *binding) Name() string       { return b.name }
func (b *binding) IsPrimitive() bool  { return b.primitive }
func (b *binding) IsSingleton() bool  { return b.singleton }

// Named qualifies the binding with a name.
func (b *binding) Named(name string) Options {
	b.name = name
	return b
}

// AsSingleton marks the binding as producing one shared instance.
func (b *binding) AsSingleton() Options {
	b.singleton = true
	return b
}

// ClassBinding produces instances of a target type constructed through the
// catalog.
type ClassBinding struct {
	binding
	target string

	mu       sync.Mutex
	instance any
}

// TargetType returns the implementation type name.
func (b *ClassBinding) TargetType() string { return b.target }

// Instance constructs the target type. Singletons are constructed once.
func (b *ClassBinding) Instance(c *Catalog) (any, error) {
	if !b.singleton {
		return c.New(b.target)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.instance == nil {
		v, err := c.New(b.target)
		if err != nil {
			return nil, err
		}
		b.instance = v
	}
	return b.instance, nil
}

func (b *ClassBinding) String() string {
	return fmt.Sprintf("ClassBinding[%s -> %s singleton=%t]", b.Key(), b.target, b.singleton)
}

// InstanceBinding always produces the instance it was configured with.
type InstanceBinding struct {
	binding
	instance any
}

// TargetType returns the dynamic type name of the instance, or the source
// type for primitives.
func (b *InstanceBinding) TargetType() string {
	if b.primitive {
		return b.source
	}
	return typeNameOf(b.instance)
}

// Instance returns the configured instance.
func (b *InstanceBinding) Instance(*Catalog) (any, error) {
	return b.instance, nil
}

// IsSingleton is always true for instance bindings.
func (b *InstanceBinding) IsSingleton() bool { return true }

func (b *InstanceBinding) String() string {
	return fmt.Sprintf("InstanceBinding[%s -> %s]", b.Key(), b.TargetType())
}

// ProviderBinding delegates production to a Provider, given either as a
// value or as a catalog type name.
type ProviderBinding struct {
	binding
	providerType string
	provider     Provider
	target       string

	mu     sync.Mutex
	cached Provider
}

// TargetType returns the type name reported by the provider.
func (b *ProviderBinding) TargetType() string {
	if b.provider != nil {
		return b.provider.Type()
	}
	return b.target
}

// Provider returns the provider for this binding. A provider value, or any
// provider of a singleton binding, is created at most once and reused;
// otherwise a new provider is constructed per call.
func (b *ProviderBinding) Provider(c *Catalog) (Provider, error) {
	if b.provider != nil {
		return b.provider, nil
	}
	if !b.singleton {
		return b.newProvider(c)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cached == nil {
		p, err := b.newProvider(c)
		if err != nil {
			return nil, err
		}
		b.cached = p
	}
	return b.cached, nil
}

// Instance returns the result of the provider's Get.
func (b *ProviderBinding) Instance(c *Catalog) (any, error) {
	p, err := b.Provider(c)
	if err != nil {
		return nil, err
	}
	v, err := p.Get()
	if err != nil {
		return nil, errors.Newf(errors.ErrCodeProviderFailed, "provider for [%s] failed", b.Key()).
			WithDetail("provider", b.providerName()).
			WithCause(err)
	}
	return v, nil
}

func (b *ProviderBinding) String() string {
	return fmt.Sprintf("ProviderBinding[%s -> %s via %s singleton=%t]",
		b.Key(), b.TargetType(), b.providerName(), b.singleton)
}

func (b *ProviderBinding) providerName() string {
	if b.provider != nil {
		return typeNameOf(b.provider)
	}
	return b.providerType
}

func (b *ProviderBinding) newProvider(c *Catalog) (Provider, error) {
	v, err := c.New(b.providerType)
	if err != nil {
		return nil, err
	}
	p, ok := v.(Provider)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeCorruptBinding,
			"type [%s] does not implement Provider", b.providerType).
			WithDetail("type", b.providerType)
	}
	return p, nil
}

// resolveTarget reads the produced type from a sample provider when the
// provider was given by type name.
func (b *ProviderBinding) resolveTarget(c *Catalog) error {
	if b.provider != nil || b.target != "" {
		return nil
	}
	p, err := b.newProvider(c)
	if err != nil {
		return err
	}
	b.target = p.Type()
	return nil
}
