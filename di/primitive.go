package di

// primitives maps every recognised primitive spelling to its canonical name.
var primitives = map[string]string{
	"bool":    "bool",
	"boolean": "bool",
	"Boolean": "bool",

	"int":     "int",
	"integer": "int",
	"Integer": "int",

	"int64": "int64",
	"long":  "int64",
	"Long":  "int64",

	"float64": "float64",
	"float":   "float64",
	"double":  "float64",
	"Float":   "float64",
	"Double":  "float64",
	"float32": "float32",

	"string": "string",
	"String": "string",
	"str":    "string",

	"array":         "array",
	"Array":         "array",
	"slice":         "array",
	"[]any":         "array",
	"[]interface{}": "array",

	"map":                    "map",
	"Map":                    "map",
	"dict":                   "map",
	"map[string]any":         "map",
	"map[string]interface{}": "map",

	"int8":   "int8",
	"int16":  "int16",
	"int32":  "int32",
	"rune":   "int32",
	"uint":   "uint",
	"uint8":  "uint8",
	"byte":   "uint8",
	"uint16": "uint16",
	"uint32": "uint32",
	"uint64": "uint64",
}

// CanonicalPrimitive returns the canonical primitive name for typ and true,
// or typ and false if typ is not a primitive.
func CanonicalPrimitive(typ string) (string, bool) {
	if c, ok := primitives[typ]; ok {
		return c, true
	}
	return typ, false
}

// IsPrimitive reports whether typ names a primitive under any alias.
func IsPrimitive(typ string) bool {
	_, ok := primitives[typ]
	return ok
}
