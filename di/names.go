package di

// InjectorType is the type name every module binds its own injector under.
const InjectorType = "Injector"

// Struct tag keys read by TagSource.
const (
	TagInject   = "inject"
	TagNamed    = "named"
	TagProvider = "provider"
)

// Operation names used for spans, metrics and log fields.
const (
	OpCreateInstance  = "CreateInstance"
	OpResolveInstance = "ResolveInstance"
	OpProvider        = "Provider"
	OpInjectMembers   = "InjectMembers"
)
