package di

// Key identifies a binding by requested type name and optional binding name.
// An empty Name denotes the default binding for the type.
type Key struct {
	Type string
	Name string
}

// NewKey creates a key, keeping the type spelling as given.
func NewKey(typ, name string) Key {
	return Key{Type: typ, Name: name}
}

// Canonical returns the key with a primitive type alias replaced by its
// canonical name. Non-primitive keys are returned unchanged.
func (k Key) Canonical() Key {
	if c, ok := CanonicalPrimitive(k.Type); ok {
		k.Type = c
	}
	return k
}

// IsDefault reports whether the key addresses the unnamed binding.
func (k Key) IsDefault() bool {
	return k.Name == ""
}

func (k Key) String() string {
	if k.Name == "" {
		return k.Type
	}
	return k.Type + "#" + k.Name
}
