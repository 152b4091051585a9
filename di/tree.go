package di

import "sync"

// Tree holds the root of an injector hierarchy. The first module given to
// Create becomes the root; later modules become children of the root.
type Tree struct {
	mu   sync.Mutex
	root *Injector
	opts []Option
}

// NewTree creates an empty tree whose root is created with opts.
func NewTree(opts ...Option) *Tree {
	return &Tree{opts: opts}
}

// Create creates the root injector for m, or a child of the root once one
// exists.
func (t *Tree) Create(m *Module) (*Injector, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.root != nil {
		return t.root.CreateChild(m)
	}
	root, err := New(m, t.opts...)
	if err != nil {
		return nil, err
	}
	t.root = root
	return root, nil
}

// Root returns the root injector, or nil before the first Create.
func (t *Tree) Root() *Injector {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root
}
