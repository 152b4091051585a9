package di

import (
	"reflect"
	"sort"
	"sync"

	"github.com/kbukum/inject/errors"
	"github.com/kbukum/inject/validation"
)

// Factory constructs a fresh instance of a registered type.
type Factory func() any

// Catalog constructs instances by type name. Class bindings and provider
// bindings given by type name are instantiated through it.
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{factories: make(map[string]Factory)}
}

// Register adds a factory under name. A later registration replaces an
// earlier one.
func (c *Catalog) Register(name string, f Factory) error {
	if err := validation.New().
		Required("name", name).
		NotNil("factory", f).
		ValidateAs(errors.ErrCodeMissingArgument); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = f
	return nil
}

// RegisterType registers a factory that builds zero values shaped like
// sample. A pointer sample yields a new pointer to a zero element on every
// call; any other sample yields a zero value of its type.
func (c *Catalog) RegisterType(name string, sample any) error {
	if sample == nil {
		return errors.Newf(errors.ErrCodeMissingArgument, "catalog sample for [%s] is nil", name)
	}
	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Pointer {
		elem := t.Elem()
		return c.Register(name, func() any { return reflect.New(elem).Interface() })
	}
	return c.Register(name, func() any { return reflect.New(t).Elem().Interface() })
}

// New constructs an instance of the named type.
func (c *Catalog) New(name string) (any, error) {
	if c == nil {
		return nil, errors.Newf(errors.ErrCodeUnknownType, "no catalog to construct [%s]", name).
			WithDetail("type", name)
	}

	c.mu.RLock()
	f, ok := c.factories[name]
	c.mu.RUnlock()
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownType, "type not registered in catalog [%s]", name).
			WithDetail("type", name)
	}
	return f(), nil
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.factories[name]
	return ok
}

// Names returns the registered type names in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	c.mu.RUnlock()
	sort.Strings(names)
	return names
}

// RegisterType registers T with the catalog. Instances are built as *T (the
// pointer is stripped first if T is itself a pointer type). An empty name
// defaults to TypeName[T]().
//
//	di.RegisterType[EnglishGreeter](catalog, "")
func RegisterType[T any](c *Catalog, name string) error {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name == "" {
		name = t.String()
	}
	return c.Register(name, func() any { return reflect.New(t).Interface() })
}

// TypeName returns the conventional binding name for T: the package
// qualified type name with pointers stripped, e.g. "app.EnglishGreeter".
func TypeName[T any]() string {
	return typeName(reflect.TypeFor[T]())
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// typeNameOf returns the conventional type name of v's dynamic type.
func typeNameOf(v any) string {
	if v == nil {
		return ""
	}
	return typeName(reflect.TypeOf(v))
}
