package di

import (
	"reflect"
	"sync"
)

// Field declares one injectable member of an object.
type Field struct {
	// Field is the struct field name, or the key passed to FieldSetter.
	// Fields of embedded structs are addressed by a dotted path.
	Field string
	// Type is the requested binding type.
	Type string
	// Name is the optional binding name.
	Name string
	// Provider requests the provider itself rather than its product.
	Provider bool
}

// AnnotationSource reports the injectable fields of an object.
type AnnotationSource interface {
	Fields(obj any) ([]Field, error)
}

// Injectable is implemented by objects that declare their injectable fields
// explicitly instead of through struct tags.
type Injectable interface {
	InjectableFields() []Field
}

// FieldSetter is implemented by objects that assign injected values
// themselves.
type FieldSetter interface {
	SetField(field string, value any) error
}

// DefaultAnnotationSource uses Injectable when an object implements it and
// falls back to struct tags.
func DefaultAnnotationSource() AnnotationSource {
	return defaultSource{tags: NewTagSource()}
}

type defaultSource struct {
	tags *TagSource
}

func (s defaultSource) Fields(obj any) ([]Field, error) {
	if inj, ok := obj.(Injectable); ok {
		return inj.InjectableFields(), nil
	}
	return s.tags.Fields(obj)
}

// TagSource reads field declarations from struct tags:
//
//	Greeting string      `inject:"string" named:"greeting"`
//	Clock    Clock       `inject:"Clock"`
//	Clocks   di.Provider `inject:"Clock" provider:""`
//
// An empty inject tag requests the field's own type name. Untagged embedded
// structs are searched too and their fields reported as "Embedded.Field".
// Embedded pointers are skipped since they may be nil. Results are cached per
// struct type.
type TagSource struct {
	cache sync.Map // reflect.Type -> []Field
}

// NewTagSource creates a tag reader.
func NewTagSource() *TagSource {
	return &TagSource{}
}

// Fields returns the tagged fields of a struct or pointer to struct, in
// declaration order. Other values have no fields.
func (s *TagSource) Fields(obj any) ([]Field, error) {
	if obj == nil {
		return nil, nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, nil
	}

	if cached, ok := s.cache.Load(t); ok {
		return cached.([]Field), nil
	}

	fields := tagFields(t, "", nil)
	s.cache.Store(t, fields)
	return fields, nil
}

func tagFields(t reflect.Type, prefix string, fields []Field) []Field {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		typ, ok := sf.Tag.Lookup(TagInject)
		if !ok {
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				fields = tagFields(sf.Type, prefix+sf.Name+".", fields)
			}
			continue
		}
		if typ == "" {
			typ = typeName(sf.Type)
		}
		_, provider := sf.Tag.Lookup(TagProvider)
		fields = append(fields, Field{
			Field:    prefix + sf.Name,
			Type:     typ,
			Name:     sf.Tag.Get(TagNamed),
			Provider: provider,
		})
	}
	return fields
}
