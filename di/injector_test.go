package di

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestCreateInstanceUnboundType(t *testing.T) {
	inj := newTestInjector(t, testModule("empty", func(*Module) {}))

	for _, typ := range []string{"Foo", "Nope", "string"} {
		if _, err := inj.CreateInstance(typ); !IsUnboundType(err) {
			t.Errorf("expected UNBOUND_TYPE for %q, got %v", typ, err)
		}
	}
}

func TestClassBindingSingleton(t *testing.T) {
	inj := newTestInjector(t, testModule("m1", func(m *Module) {
		m.Bind("Foo").To("FooImpl").AsSingleton()
	}))

	x, err := inj.CreateInstance("Foo")
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if _, ok := x.(*FooImpl); !ok {
		t.Fatalf("expected *FooImpl, got %T", x)
	}
	y, _ := inj.CreateInstance("Foo")
	if x != y {
		t.Error("expected singleton resolutions to be the same instance")
	}
}

func TestClassBindingNotSingleton(t *testing.T) {
	inj := newTestInjector(t, testModule("m1", func(m *Module) {
		m.Bind("Foo").To("FooImpl")
	}))

	x, _ := inj.CreateInstance("Foo")
	y, _ := inj.CreateInstance("Foo")
	if x == nil || x == y {
		t.Error("expected distinct instances for a non-singleton binding")
	}
}

func TestInstanceBindingAlwaysSame(t *testing.T) {
	foo := &FooImpl{name: "configured"}
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("Foo").ToInstance(foo)
	}))

	for i := 0; i < 3; i++ {
		got, err := inj.CreateInstance("Foo")
		if err != nil {
			t.Fatalf("CreateInstance failed: %v", err)
		}
		if got != foo {
			t.Fatal("expected the configured instance")
		}
	}
}

func TestResolvePrimitiveUnderAliases(t *testing.T) {
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("integer").ToInstance(8080).Named("port")
	}))

	for _, typ := range []string{"int", "integer", "Integer"} {
		got, err := inj.ResolveInstance(typ, "port")
		if err != nil {
			t.Fatalf("ResolveInstance(%q) failed: %v", typ, err)
		}
		if got != 8080 {
			t.Errorf("expected 8080 under %q, got %v", typ, got)
		}
	}
}

func TestResolveInstanceNamed(t *testing.T) {
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("Foo").To("FooImpl").AsSingleton()
		m.Bind("Foo").ToInstance(&FooImpl{name: "special"}).Named("special")
	}))

	got, err := inj.ResolveInstance("Foo", "special")
	if err != nil {
		t.Fatalf("ResolveInstance failed: %v", err)
	}
	if got.(*FooImpl).name != "special" {
		t.Errorf("expected the named binding, got %#v", got)
	}

	def, _ := inj.ResolveInstance("Foo", "")
	if def == got {
		t.Error("expected an empty name to resolve the default binding")
	}

	if _, err := inj.ResolveInstance("Foo", "missing"); !IsUnboundNamedType(err) {
		t.Errorf("expected UNBOUND_NAMED_TYPE, got %v", err)
	}
	if _, err := inj.ResolveInstance("Nope", ""); !IsUnboundType(err) {
		t.Errorf("expected UNBOUND_TYPE for empty name, got %v", err)
	}
}

func TestChildDelegatesToParent(t *testing.T) {
	i1 := newTestInjector(t, testModule("m1", func(m *Module) {
		m.Bind("Foo").To("FooImpl").AsSingleton()
	}))
	i2, err := i1.CreateChild(testModule("m2", func(m *Module) {
		m.Bind("Bar").To("Bar")
	}))
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	if i2.Parent() != i1 {
		t.Error("expected child parent to be i1")
	}
	if i1.Parent() != nil {
		t.Error("expected root to have no parent")
	}

	fromChild, err := i2.CreateInstance("Foo")
	if err != nil {
		t.Fatalf("child CreateInstance failed: %v", err)
	}
	if _, ok := fromChild.(*FooImpl); !ok {
		t.Fatalf("expected *FooImpl, got %T", fromChild)
	}
	fromParent, _ := i1.CreateInstance("Foo")
	if fromChild != fromParent {
		t.Error("expected the parent's singleton")
	}

	if _, err := i2.CreateInstance("Bar"); err != nil {
		t.Errorf("expected child to resolve its own binding, got %v", err)
	}
	if _, err := i1.CreateInstance("Bar"); !IsUnboundType(err) {
		t.Errorf("expected parent not to see child bindings, got %v", err)
	}
}

func TestChildOverridesParent(t *testing.T) {
	parentFoo := &FooImpl{name: "parent"}
	childFoo := &FooImpl{name: "child"}

	root := newTestInjector(t, testModule("root", func(m *Module) {
		m.Bind("Foo").ToInstance(parentFoo)
		m.Bind("string").ToInstance("parent").Named("who")
	}))
	child, err := root.CreateChild(testModule("child", func(m *Module) {
		m.Bind("Foo").ToInstance(childFoo)
		m.Bind("String").ToInstance("child").Named("who")
	}))
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	if got, _ := child.CreateInstance("Foo"); got != childFoo {
		t.Error("expected child binding to win")
	}
	if got, _ := root.CreateInstance("Foo"); got != parentFoo {
		t.Error("expected parent binding unchanged")
	}
	if got, _ := child.ResolveInstance("str", "who"); got != "child" {
		t.Errorf("expected child primitive, got %v", got)
	}
}

func TestChildResolvesItselfAsInjector(t *testing.T) {
	root := newTestInjector(t, testModule("root", func(*Module) {}))
	child, err := root.CreateChild(testModule("child", func(*Module) {}))
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	got, _ := child.CreateInstance(InjectorType)
	if got != child {
		t.Error("expected child to resolve to itself")
	}
	if child.Module().Name() != "child" || child.Catalog() != root.Catalog() {
		t.Error("expected child to own its module and inherit the catalog")
	}
}

func TestCreateChildOverrideOptions(t *testing.T) {
	root := newTestInjector(t, testModule("root", func(m *Module) {
		m.Bind("Foo").To("FooImpl")
	}))
	other := NewCatalog()
	_ = other.Register("FooImpl", func() any { return &FooImpl{name: "other"} })

	child, err := root.CreateChild(testModule("child", func(m *Module) {
		m.Bind("Bar").To("FooImpl")
	}), WithCatalog(other))
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	got, _ := child.CreateInstance("Bar")
	if got.(*FooImpl).name != "other" {
		t.Errorf("expected child catalog to be used, got %#v", got)
	}
	fromRoot, _ := child.CreateInstance("Foo")
	if fromRoot.(*FooImpl).name != "" {
		t.Errorf("expected parent binding built by the parent catalog, got %#v", fromRoot)
	}
}

func TestNewWithoutModule(t *testing.T) {
	if _, err := New(nil); !IsMissingArgument(err) {
		t.Errorf("expected MISSING_ARGUMENT, got %v", err)
	}
}

func TestProviderBindingResolution(t *testing.T) {
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("Baa").ToProvider("baaProvider")
		m.Bind("Foo").To("FooImpl")
	}))

	v, err := inj.CreateInstance("Baa")
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if baa, ok := v.(*Baa); !ok || baa.Value != "baa-1" {
		t.Errorf("expected product of a fresh provider, got %#v", v)
	}

	p1, err := inj.Provider("Baa")
	if err != nil {
		t.Fatalf("Provider failed: %v", err)
	}
	p2, _ := inj.Provider("Baa")
	if p1 == p2 {
		t.Error("expected a new provider per call for a non-singleton type-name binding")
	}
	if _, ok := p1.(*baaProvider); !ok {
		t.Errorf("expected *baaProvider, got %T", p1)
	}

	if _, err := inj.Provider("Foo"); !IsNoProviderBound(err) {
		t.Errorf("expected NO_PROVIDER_BOUND for a class binding, got %v", err)
	}
	if _, err := inj.Provider("Nope"); !IsNoProviderBound(err) {
		t.Errorf("expected NO_PROVIDER_BOUND for an unbound type, got %v", err)
	}
}

func TestProviderBindingSingletonCachesProvider(t *testing.T) {
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("Baa").ToProvider("baaProvider").AsSingleton()
	}))

	p1, _ := inj.Provider("Baa")
	p2, _ := inj.Provider("Baa")
	if p1 == nil || p1 != p2 {
		t.Fatal("expected the provider to be cached")
	}

	a, _ := inj.CreateInstance("Baa")
	b, _ := inj.CreateInstance("Baa")
	if a.(*Baa).Value != "baa-1" || b.(*Baa).Value != "baa-2" {
		t.Errorf("expected the cached provider to produce successive values, got %v, %v", a, b)
	}
}

func TestProviderBindingValueReused(t *testing.T) {
	p := &baaProvider{}
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("Baa").ToProvider(p)
	}))

	got, _ := inj.Provider("Baa")
	if got != p {
		t.Error("expected the configured provider")
	}
	if _, err := inj.CreateInstance("Baa"); err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if p.calls != 1 {
		t.Errorf("expected one Get call, got %d", p.calls)
	}
}

func TestProviderFromParent(t *testing.T) {
	p := &baaProvider{}
	root := newTestInjector(t, testModule("root", func(m *Module) {
		m.Bind("Baa").ToProvider(p)
	}))
	child, _ := root.CreateChild(testModule("child", func(m *Module) {
		m.Bind("Foo").To("FooImpl")
	}))

	got, err := child.Provider("Baa")
	if err != nil || got != p {
		t.Errorf("expected parent provider, got %v, %v", got, err)
	}
}

func TestProviderFuncBinding(t *testing.T) {
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("Bar").ToProvider(NewProviderFunc("Bar", func() (any, error) {
			return &Bar{label: "from func"}, nil
		}))
	}))

	v, err := inj.CreateInstance("Bar")
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if v.(*Bar).label != "from func" {
		t.Errorf("unexpected product %#v", v)
	}
}

func TestProviderFailure(t *testing.T) {
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("Baa").ToProvider(&failingProvider{})
	}))

	_, err := inj.CreateInstance("Baa")
	if !hasCode(err, "PROVIDER_FAILED") {
		t.Fatalf("expected PROVIDER_FAILED, got %v", err)
	}
	if !strings.Contains(err.Error(), "provider exploded") {
		t.Errorf("expected cause in error, got %q", err.Error())
	}
}

func TestClassBindingUnknownTarget(t *testing.T) {
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("Foo").To("NotRegistered")
	}))

	if _, err := inj.CreateInstance("Foo"); !hasCode(err, "UNKNOWN_TYPE") {
		t.Errorf("expected UNKNOWN_TYPE, got %v", err)
	}
}

func TestConcurrentSingletonResolution(t *testing.T) {
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("Foo").To("FooImpl").AsSingleton()
	}))

	const workers = 16
	results := make([]any, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w], _ = inj.CreateInstance("Foo")
		}(w)
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		if results[w] == nil || results[w] != results[0] {
			t.Fatalf("expected one singleton across goroutines, worker %d got %v", w, results[w])
		}
	}
}

type closable struct {
	name   string
	log    *[]string
	failed bool
}

func (c *closable) Close() error {
	*c.log = append(*c.log, c.name)
	if c.failed {
		return fmt.Errorf("close %s failed", c.name)
	}
	return nil
}

func TestInjectorClose(t *testing.T) {
	var closed []string
	first := &closable{name: "first", log: &closed}
	second := &closable{name: "second", log: &closed, failed: true}

	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("First").ToInstance(first)
		m.Bind("Second").ToInstance(second)
	}))
	if _, err := inj.CreateInstance("First"); err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if _, err := inj.CreateInstance("Second"); err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if _, err := inj.CreateInstance(InjectorType); err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}

	err := inj.Close()
	if err == nil || !strings.Contains(err.Error(), "close second failed") {
		t.Errorf("expected joined close error, got %v", err)
	}
	if strings.Join(closed, ",") != "second,first" {
		t.Errorf("expected newest first, got %v", closed)
	}

	if err := inj.Close(); err != nil {
		t.Errorf("expected second Close to be a no-op, got %v", err)
	}
}

func TestInjectorIdentity(t *testing.T) {
	root := newTestInjector(t, testModule("root", func(*Module) {}))
	child, _ := root.CreateChild(testModule("child", func(*Module) {}))

	if root.ID() == child.ID() {
		t.Error("expected distinct injector ids")
	}
	s := child.String()
	if !strings.Contains(s, child.ID().String()) || !strings.Contains(s, root.ID().String()) {
		t.Errorf("expected ids in string, got %q", s)
	}
	if !strings.Contains(root.String(), "parent=none") {
		t.Errorf("expected root to have no parent, got %q", root.String())
	}
}

func TestTreeCreate(t *testing.T) {
	tree := NewTree(WithCatalog(newTestCatalog(t)))
	if tree.Root() != nil {
		t.Fatal("expected empty tree")
	}

	root, err := tree.Create(testModule("root", func(m *Module) {
		m.Bind("Foo").To("FooImpl").AsSingleton()
	}))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if tree.Root() != root || root.Parent() != nil {
		t.Fatal("expected first Create to make the root")
	}

	a, _ := tree.Create(testModule("a", func(*Module) {}))
	b, _ := tree.Create(testModule("b", func(*Module) {}))
	if a.Parent() != root || b.Parent() != root {
		t.Error("expected later modules to become children of the root")
	}
	if _, err := a.CreateInstance("Foo"); err != nil {
		t.Errorf("expected child to resolve root binding, got %v", err)
	}
}

func TestTreesAreIndependent(t *testing.T) {
	t1 := NewTree(WithCatalog(newTestCatalog(t)))
	t2 := NewTree(WithCatalog(newTestCatalog(t)))

	r1, _ := t1.Create(testModule("one", func(m *Module) { m.Bind("Foo").To("FooImpl") }))
	r2, _ := t2.Create(testModule("two", func(*Module) {}))

	if _, err := r1.CreateInstance("Foo"); err != nil {
		t.Errorf("expected first tree to resolve Foo, got %v", err)
	}
	if _, err := r2.CreateInstance("Foo"); !IsUnboundType(err) {
		t.Errorf("expected second tree not to see Foo, got %v", err)
	}
}

func TestTreeCreateFailure(t *testing.T) {
	tree := NewTree()
	if _, err := tree.Create(testModule("bad", func(m *Module) { m.Bind("int").To("x") })); err == nil {
		t.Fatal("expected error")
	}
	if tree.Root() != nil {
		t.Error("expected failed Create not to set a root")
	}
}

func TestResolveGeneric(t *testing.T) {
	inj := newTestInjector(t, testModule("m", func(m *Module) {
		m.Bind("Foo").ToInstance(&FooImpl{name: "typed"})
		m.Bind("string").ToInstance("hi").Named("greeting")
	}))

	foo, err := Resolve[Foo](inj, "Foo")
	if err != nil || foo.Name() != "typed" {
		t.Fatalf("expected typed Foo, got %v, %v", foo, err)
	}
	if got := MustResolve[*FooImpl](inj, "Foo"); got.name != "typed" {
		t.Errorf("unexpected MustResolve result %#v", got)
	}
	if s, err := ResolveNamed[string](inj, "string", "greeting"); err != nil || s != "hi" {
		t.Errorf("expected 'hi', got %q, %v", s, err)
	}

	if _, err := Resolve[*Bar](inj, "Foo"); !hasCode(err, "INVALID_INJECTION") {
		t.Errorf("expected INVALID_INJECTION for mismatched type, got %v", err)
	}
	if _, ok := TryResolve[Foo](inj, "Missing"); ok {
		t.Error("expected TryResolve to fail for unbound type")
	}
	if got, ok := TryResolve[Foo](inj, "Foo"); !ok || got == nil {
		t.Error("expected TryResolve to succeed")
	}
}

func TestMustResolvePanics(t *testing.T) {
	inj := newTestInjector(t, testModule("m", func(*Module) {}))

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic")
		}
	}()
	MustResolve[Foo](inj, "Foo")
}
