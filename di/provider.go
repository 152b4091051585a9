package di

// Provider is a factory object bound to a type. Type reports the name of the
// type the provider produces; Get produces an instance.
type Provider interface {
	Type() string
	Get() (any, error)
}

// ProviderFunc adapts a function into a Provider for the given type name.
type ProviderFunc struct {
	typ string
	fn  func() (any, error)
}

// NewProviderFunc creates a Provider that produces typ by calling fn.
func NewProviderFunc(typ string, fn func() (any, error)) *ProviderFunc {
	return &ProviderFunc{typ: typ, fn: fn}
}

// Type returns the produced type name.
func (p *ProviderFunc) Type() string { return p.typ }

// Get calls the wrapped function.
func (p *ProviderFunc) Get() (any, error) { return p.fn() }
