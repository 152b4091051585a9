package di

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kbukum/inject/errors"
	"github.com/kbukum/inject/logger"
)

// Configurer declares a module's bindings.
type Configurer interface {
	Configure(m *Module) error
}

// ModuleFunc adapts a function into a Configurer.
type ModuleFunc func(m *Module) error

// Configure calls f(m).
func (f ModuleFunc) Configure(m *Module) error { return f(m) }

// Module is a registry of bindings. It is configured and indexed once, by the
// injector it is first initialized against, and is read-only afterwards.
type Module struct {
	id         uuid.UUID
	name       string
	configurer Configurer

	mu          sync.Mutex
	initialized atomic.Bool
	builders    []*Builder

	bindings   map[Key]Binding
	ordered    []Binding
	boundTypes map[string]Key
}

// NewModule creates a module whose bindings are declared by c.
func NewModule(name string, c Configurer) *Module {
	return &Module{
		id:         uuid.New(),
		name:       name,
		configurer: c,
	}
}

// Initialize binds the injector under InjectorType, runs the configurer and
// indexes the bindings. Calls after the first successful one are no-ops. On
// failure the module stays uninitialized.
func (m *Module) Initialize(inj *Injector) error {
	if inj == nil {
		return errors.Newf(errors.ErrCodeMissingArgument, "no injector given for module %s", m.name).
			WithDetail("module", m.name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized.Load() {
		return nil
	}

	m.builders = nil
	m.Bind(InjectorType).ToInstance(inj)

	if m.configurer != nil {
		if err := m.configurer.Configure(m); err != nil {
			m.builders = nil
			return fmt.Errorf("configuring module %s: %w", m.name, err)
		}
	}

	if err := m.index(inj.catalog); err != nil {
		m.builders = nil
		return err
	}

	m.builders = nil
	m.initialized.Store(true)

	inj.log.Debug("module indexed", logger.Fields(
		logger.FieldModule, m.name,
		logger.FieldCount, len(m.ordered),
	))
	return nil
}

// Bind starts a binding for typ. Only valid from within Configure.
func (m *Module) Bind(typ string) *Builder {
	b := newBuilder(typ)
	m.builders = append(m.builders, b)
	return b
}

func (m *Module) index(c *Catalog) error {
	bindings := make(map[Key]Binding, len(m.builders))
	boundTypes := make(map[string]Key)
	ordered := make([]Binding, 0, len(m.builders))

	for _, b := range m.builders {
		bd, err := b.Binding()
		if err != nil {
			return err
		}
		if pb, ok := bd.(*ProviderBinding); ok {
			if err := pb.resolveTarget(c); err != nil {
				return err
			}
		}

		key := bd.Key()
		if _, exists := bindings[key]; exists {
			return errors.Newf(errors.ErrCodeDuplicateBinding, "binding already exists %s", bd).
				WithDetail("module", m.name).
				WithDetail("key", key.String())
		}
		bindings[key] = bd
		ordered = append(ordered, bd)

		if bd.IsPrimitive() {
			continue
		}
		// Default bindings always take the slot; a named binding only
		// fills it while the type has no other entry.
		if _, taken := boundTypes[bd.SourceType()]; key.IsDefault() || !taken {
			boundTypes[bd.SourceType()] = key
		}
	}

	m.bindings = bindings
	m.boundTypes = boundTypes
	m.ordered = ordered
	return nil
}

// Binding returns the binding for (typ, name). A primitive alias is retried
// under its canonical name. A missing binding is reported as (nil, nil) once
// the module is initialized.
func (m *Module) Binding(typ, name string) (Binding, error) {
	if !m.initialized.Load() {
		return nil, m.notInitialized(NewKey(typ, name))
	}

	key := NewKey(typ, name)
	if b, ok := m.bindings[key]; ok {
		return b, nil
	}
	if canonical := key.Canonical(); canonical != key {
		if b, ok := m.bindings[canonical]; ok {
			return b, nil
		}
	}
	return nil, nil
}

// BindingForType returns the default binding for typ without primitive alias
// fallback, or (nil, nil) if there is none. An uninitialized module binds
// nothing.
func (m *Module) BindingForType(typ string) (Binding, error) {
	if !m.initialized.Load() {
		return nil, nil
	}

	key, ok := m.boundTypes[typ]
	if !ok {
		return nil, nil
	}
	return m.bindings[key], nil
}

// Bindings returns the indexed bindings in registration order.
func (m *Module) Bindings() []Binding {
	if !m.initialized.Load() {
		return nil
	}
	out := make([]Binding, len(m.ordered))
	copy(out, m.ordered)
	return out
}

// Initialized reports whether the module has been indexed.
func (m *Module) Initialized() bool { return m.initialized.Load() }

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// ID returns the module's unique identifier.
func (m *Module) ID() uuid.UUID { return m.id }

func (m *Module) String() string {
	return fmt.Sprintf("Module[%s@%s bindings=%d]", m.name, m.id, len(m.Bindings()))
}

func (m *Module) notInitialized(key Key) error {
	return errors.Newf(errors.ErrCodeNotInitialized, "module %s is not initialized, cannot look up [%s]", m.name, key).
		WithDetail("module", m.name)
}
