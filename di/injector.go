package di

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/inject/errors"
	"github.com/kbukum/inject/logger"
	"github.com/kbukum/inject/observability"
)

// Injector resolves bindings of its module, falling back to its parent
// chain. Each injector keeps its own identity cache of instances it has
// member-injected.
type Injector struct {
	id     uuid.UUID
	module *Module
	parent *Injector
	opts   options

	catalog *Catalog
	log     *logger.Logger

	mu    sync.Mutex
	cache map[identity]any
	order []any
}

// identity is the dynamic type and address of a pointer instance.
type identity struct {
	typ reflect.Type
	ptr uintptr
}

// New creates a root injector and initializes m against it.
func New(m *Module, opts ...Option) (*Injector, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return newInjector(m, nil, o)
}

// CreateChild creates an injector for m whose parent is i. The child
// inherits i's options; opts override them.
func (i *Injector) CreateChild(m *Module, opts ...Option) (*Injector, error) {
	o := i.opts
	for _, opt := range opts {
		opt(&o)
	}
	child, err := newInjector(m, i, o)
	if err != nil {
		return nil, err
	}
	i.log.Debug("child injector created", logger.Fields(
		logger.FieldInjector, child.id.String(),
		logger.FieldParent, i.id.String(),
		logger.FieldModule, m.Name(),
	))
	return child, nil
}

func newInjector(m *Module, parent *Injector, o options) (*Injector, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeMissingArgument, "no module given for injector")
	}
	o.applyDefaults()

	inj := &Injector{
		id:      uuid.New(),
		module:  m,
		parent:  parent,
		opts:    o,
		catalog: o.catalog,
		cache:   make(map[identity]any),
	}
	inj.log = o.log.WithFields(logger.Fields(logger.FieldInjector, inj.id.String()))

	if err := m.Initialize(inj); err != nil {
		inj.log.Warn("module initialization failed", logger.ErrorFields("initialize", err))
		return nil, err
	}
	return inj, nil
}

// CreateInstance resolves the default binding for typ in this injector or
// the nearest ancestor that binds it.
func (i *Injector) CreateInstance(typ string) (any, error) {
	return i.observe(OpCreateInstance, typ, "", func(r *resolution) (any, error) {
		return i.createInstance(r, typ)
	})
}

// ResolveInstance resolves the binding for (typ, name). An empty name
// behaves as CreateInstance.
func (i *Injector) ResolveInstance(typ, name string) (any, error) {
	op := OpResolveInstance
	if name == "" {
		op = OpCreateInstance
	}
	return i.observe(op, typ, name, func(r *resolution) (any, error) {
		return i.resolveInstance(r, typ, name)
	})
}

// Provider returns the provider bound as the default binding for typ in this
// injector or the nearest ancestor that has one.
func (i *Injector) Provider(typ string) (Provider, error) {
	v, err := i.observe(OpProvider, typ, "", func(*resolution) (any, error) {
		return i.provider(typ)
	})
	if err != nil {
		return nil, err
	}
	return v.(Provider), nil
}

// InjectMembers populates the injectable fields of obj, which must be a
// non-nil pointer. An object this injector already processed is left as is.
func (i *Injector) InjectMembers(obj any) error {
	_, err := i.observe(OpInjectMembers, typeNameOf(obj), "", func(r *resolution) (any, error) {
		if _, ok := identityOf(obj); !ok {
			return nil, errors.Newf(errors.ErrCodeInvalidInjection,
				"member injection needs a non-nil pointer, got %T", obj)
		}
		return i.process(r, NewKey(typeNameOf(obj), ""), obj)
	})
	return err
}

// Parent returns the parent injector, or nil for a root.
func (i *Injector) Parent() *Injector { return i.parent }

// Module returns the injector's module.
func (i *Injector) Module() *Module { return i.module }

// Catalog returns the catalog used to construct types.
func (i *Injector) Catalog() *Catalog { return i.catalog }

// ID returns the injector's unique identifier.
func (i *Injector) ID() uuid.UUID { return i.id }

func (i *Injector) String() string {
	parent := "none"
	if i.parent != nil {
		parent = i.parent.id.String()
	}
	return fmt.Sprintf("Injector[%s module=%s parent=%s]", i.id, i.module.Name(), parent)
}

// Close closes every cached instance implementing Close() error, newest
// first, and empties the cache. Injectors themselves are skipped.
func (i *Injector) Close() error {
	i.mu.Lock()
	order := i.order
	i.order = nil
	i.cache = make(map[identity]any)
	i.mu.Unlock()

	var errs []error
	for idx := len(order) - 1; idx >= 0; idx-- {
		if _, ok := order[idx].(*Injector); ok {
			continue
		}
		if closer, ok := order[idx].(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return stderrors.Join(errs...)
}

// resolution carries per-call state through recursive member injection.
type resolution struct {
	ctx   context.Context
	stack []frame
}

// frame is a binding being member-injected. Keys are unique per module
// only, so the owning injector is part of the identity.
type frame struct {
	owner *Injector
	key   Key
}

func (r *resolution) onStack(f frame) bool {
	for _, s := range r.stack {
		if s == f {
			return true
		}
	}
	return false
}

func (r *resolution) path(f frame) string {
	var s string
	for _, p := range r.stack {
		s += p.key.String() + " -> "
	}
	return s + f.key.String()
}

func (i *Injector) createInstance(r *resolution, typ string) (any, error) {
	b, err := i.module.BindingForType(typ)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return i.materialize(r, b)
	}
	if i.parent != nil {
		return i.parent.createInstance(r, typ)
	}
	return nil, errors.Newf(errors.ErrCodeUnboundType, "type not bound [%s]", typ).
		WithDetail("type", typ)
}

func (i *Injector) resolveInstance(r *resolution, typ, name string) (any, error) {
	if name == "" {
		return i.createInstance(r, typ)
	}
	b, err := i.module.Binding(typ, name)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return i.materialize(r, b)
	}
	if i.parent != nil {
		return i.parent.resolveInstance(r, typ, name)
	}
	return nil, unboundNamed(typ, name)
}

func (i *Injector) provider(typ string) (Provider, error) {
	b, err := i.module.BindingForType(typ)
	if err != nil {
		return nil, err
	}
	if pb, ok := b.(*ProviderBinding); ok {
		return pb.Provider(i.catalog)
	}
	if i.parent != nil {
		return i.parent.provider(typ)
	}
	return nil, errors.Newf(errors.ErrCodeNoProviderBound, "no provider bound for type [%s]", typ).
		WithDetail("type", typ)
}

// lookupAnnotated finds the binding for an injected field in this injector
// or the nearest ancestor, returning the injector that owns it.
func (i *Injector) lookupAnnotated(typ, name string) (Binding, *Injector, error) {
	b, err := i.module.Binding(typ, name)
	if err != nil {
		return nil, nil, err
	}
	if b != nil {
		return b, i, nil
	}
	if i.parent != nil {
		return i.parent.lookupAnnotated(typ, name)
	}
	return nil, nil, unboundNamed(typ, name)
}

// materialize produces the binding's instance and member-injects it unless
// it is primitive or already processed by this injector.
func (i *Injector) materialize(r *resolution, b Binding) (any, error) {
	v, err := b.Instance(i.catalog)
	if err != nil {
		return nil, err
	}
	if b.IsPrimitive() {
		return v, nil
	}
	return i.process(r, b.Key(), v)
}

func (i *Injector) process(r *resolution, key Key, v any) (any, error) {
	id, ok := identityOf(v)
	if !ok {
		return v, nil
	}

	i.mu.Lock()
	if cached, hit := i.cache[id]; hit {
		i.mu.Unlock()
		return cached, nil
	}
	f := frame{owner: i, key: key}
	if r.onStack(f) {
		i.mu.Unlock()
		return nil, errors.Newf(errors.ErrCodeCircularDependency, "circular dependency %s", r.path(f)).
			WithDetail("key", key.String())
	}
	i.cache[id] = v
	i.order = append(i.order, v)
	i.mu.Unlock()

	r.stack = append(r.stack, f)
	err := i.injectMembers(r, v)
	r.stack = r.stack[:len(r.stack)-1]

	if err == nil && i.opts.validate {
		err = validateInstance(v)
	}
	if err != nil {
		i.evict(id, v)
		return nil, err
	}
	return v, nil
}

func (i *Injector) evict(id identity, v any) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.cache, id)
	for idx := len(i.order) - 1; idx >= 0; idx-- {
		if i.order[idx] == v {
			i.order = append(i.order[:idx], i.order[idx+1:]...)
			break
		}
	}
}

func (i *Injector) injectMembers(r *resolution, obj any) error {
	fields, err := i.opts.annotations.Fields(obj)
	if err != nil {
		return err
	}

	for _, f := range fields {
		value, err := i.resolveField(r, f)
		if err != nil {
			i.log.Debug("member injection failed", logger.Fields(
				logger.FieldType, typeNameOf(obj),
				logger.FieldField, f.Field,
				logger.FieldError, err.Error(),
			))
			return err
		}
		if err := assign(obj, f, value); err != nil {
			return err
		}
		if i.opts.metrics != nil {
			i.opts.metrics.RecordInjectedField(r.ctx, typeNameOf(obj))
		}
	}
	return nil
}

func (i *Injector) resolveField(r *resolution, f Field) (any, error) {
	b, owner, err := i.lookupAnnotated(f.Type, f.Name)
	if err != nil {
		return nil, err
	}
	if f.Provider {
		if pb, ok := b.(*ProviderBinding); ok {
			return pb.Provider(owner.catalog)
		}
	}
	return owner.materialize(r, b)
}

// observe wraps a public operation with tracing, metrics and logging.
func (i *Injector) observe(op, typ, name string, fn func(r *resolution) (any, error)) (any, error) {
	ctx := context.Background()
	start := time.Now()

	var span trace.Span
	if i.opts.tracing {
		ctx, span = observability.StartSpan(ctx, observability.SpanInjectPrefix+op, trace.WithAttributes(
			attribute.String(observability.AttrInjectType, typ),
			attribute.String(observability.AttrInjectName, name),
			attribute.String(observability.AttrInjectInjector, i.id.String()),
			attribute.String(observability.AttrInjectModule, i.module.Name()),
		))
		defer span.End()
	}

	v, err := fn(&resolution{ctx: ctx})

	if span != nil && err != nil {
		observability.SetSpanError(ctx, err)
	}
	if i.opts.metrics != nil {
		i.opts.metrics.RecordResolution(ctx, op, err, time.Since(start))
	}
	if err != nil {
		i.log.Debug("resolution failed", logger.Fields(
			logger.FieldOperation, op,
			logger.FieldType, typ,
			logger.FieldName, name,
			logger.FieldError, err.Error(),
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	}
	return v, err
}

func identityOf(v any) (identity, bool) {
	if v == nil {
		return identity{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return identity{}, false
	}
	return identity{typ: rv.Type(), ptr: rv.Pointer()}, true
}

func unboundNamed(typ, name string) error {
	return errors.Newf(errors.ErrCodeUnboundNamedType, "type and/or name not bound [%s]", NewKey(typ, name)).
		WithDetail("type", typ).
		WithDetail("name", name)
}
