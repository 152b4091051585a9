package config

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/spf13/viper"

	"github.com/kbukum/inject/di"
	"github.com/kbukum/inject/errors"
	"github.com/kbukum/inject/logger"
	"github.com/kbukum/inject/validation"
)

// BindingsModule reads a configuration file (any format viper supports) and
// returns a module binding every leaf key as a named primitive instance:
//
//	listen:
//	  port: 80      => Bind("int").ToInstance(80).Named("listen.port")
//	  host: example => Bind("string").ToInstance("example").Named("listen.host")
//
// Values are bound under int, int64, float64, bool, string, array or map
// according to their decoded type. Keys are bound in sorted order.
func BindingsModule(name, path string, opts ...LoaderOption) (*di.Module, error) {
	if err := validation.New().
		Required("name", name).
		Required("path", path).
		Validate(); err != nil {
		return nil, err
	}

	lc := newLoaderConfig(append([]LoaderOption{WithConfigFile(path)}, opts...))
	if !lc.FileSystem.Exists(lc.ConfigFile) {
		return nil, errors.ConfigLoad(lc.ConfigFile, nil).WithDetail("reason", "file not found")
	}

	v := viper.New()
	v.SetConfigFile(lc.ConfigFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.ConfigLoad(lc.ConfigFile, err)
	}

	values := make(map[string]any)
	for _, key := range v.AllKeys() {
		values[key] = v.Get(key)
	}

	logger.Get("config").Debug("bindings loaded", logger.Fields(
		logger.FieldModule, name,
		logger.FieldCount, len(values),
	))
	return NewValuesModule(name, values), nil
}

// NewValuesModule returns a module binding each entry of values as a named
// primitive instance, as BindingsModule does for file contents.
func NewValuesModule(name string, values map[string]any) *di.Module {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return di.NewModule(name, di.ModuleFunc(func(m *di.Module) error {
		for _, k := range keys {
			if values[k] == nil {
				continue
			}
			typ, value := primitiveValue(values[k])
			m.Bind(typ).ToInstance(value).Named(k)
		}
		return nil
	}))
}

// primitiveValue returns the canonical primitive type a decoded value binds
// as, and the value to bind. Values of other types are bound as strings.
func primitiveValue(v any) (string, any) {
	switch val := v.(type) {
	case bool:
		return "bool", val
	case int:
		return "int", val
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int64", reflect.ValueOf(val).Convert(reflect.TypeOf(int64(0))).Interface()
	case float32:
		return "float64", float64(val)
	case float64:
		return "float64", val
	case string:
		return "string", val
	case []any, []string, []int:
		return "array", val
	case map[string]any, map[string]string:
		return "map", val
	default:
		return "string", fmt.Sprint(val)
	}
}
