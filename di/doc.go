// Package di provides a hierarchical dependency injection container.
//
// Bindings are declared on a Module, which is indexed once when an Injector
// is created for it. Injectors form a tree: a child resolves against its own
// module first and falls back to its ancestors, never the other way around.
//
// # Configuration
//
//	m := di.NewModule("app", di.ModuleFunc(func(m *di.Module) error {
//	    m.Bind("Greeter").To("app.EnglishGreeter").AsSingleton()
//	    m.Bind("string").ToInstance("hello").Named("greeting")
//	    m.Bind("Clock").ToProvider(clockProvider)
//	    return nil
//	}))
//
// # Resolution
//
//	inj, err := di.New(m, di.WithCatalog(catalog))
//	greeter, err := di.Resolve[Greeter](inj, "Greeter")
//
// # Member injection
//
// Fields are declared with struct tags (or by implementing Injectable):
//
//	type EnglishGreeter struct {
//	    Greeting string      `inject:"string" named:"greeting"`
//	    Clock    Clock       `inject:"Clock"`
//	    Clocks   di.Provider `inject:"Clock" provider:""`
//	}
package di
