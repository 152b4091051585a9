package di

import (
	"fmt"
	"testing"

	"github.com/kbukum/inject/errors"
	"github.com/kbukum/inject/logger"
)

type Foo interface {
	Name() string
}

type FooImpl struct {
	name string
}

func (f *FooImpl) Name() string { return f.name }

type Bar struct {
	label string
}

type Baa struct {
	Value string
}

type baaProvider struct {
	calls int
}

func (p *baaProvider) Type() string { return "Baa" }

func (p *baaProvider) Get() (any, error) {
	p.calls++
	return &Baa{Value: fmt.Sprintf("baa-%d", p.calls)}, nil
}

type failingProvider struct {
	id int
}

func (p *failingProvider) Type() string { return "Baa" }

func (p *failingProvider) Get() (any, error) { return nil, fmt.Errorf("provider exploded") }

type Greeter struct {
	Greeting string   `inject:"string" named:"greeting"`
	Baa      *Baa     `inject:"Baa"`
	BaaP     Provider `inject:"Baa" provider:""`
	Plain    string
}

type nodeA struct {
	B *nodeB `inject:"NodeB"`
}

type nodeB struct {
	A *nodeA `inject:"NodeA"`
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("catalog registration failed: %v", err)
		}
	}
	must(RegisterType[FooImpl](c, "FooImpl"))
	must(RegisterType[Bar](c, "Bar"))
	must(RegisterType[Greeter](c, "Greeter"))
	must(RegisterType[baaProvider](c, "baaProvider"))
	must(RegisterType[nodeA](c, "nodeA"))
	must(RegisterType[nodeB](c, "nodeB"))
	return c
}

// testModule builds a module from a configure function that cannot fail.
func testModule(name string, fn func(m *Module)) *Module {
	return NewModule(name, ModuleFunc(func(m *Module) error {
		fn(m)
		return nil
	}))
}

func newTestInjector(t *testing.T, m *Module, opts ...Option) *Injector {
	t.Helper()
	base := []Option{WithCatalog(newTestCatalog(t)), WithLogger(logger.Nop())}
	inj, err := New(m, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return inj
}

func hasCode(err error, code errors.ErrorCode) bool {
	return errors.HasCode(err, code)
}
