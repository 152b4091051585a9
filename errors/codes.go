package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors, raised while a module is being configured or indexed.
const (
	// ErrCodeNotInitialized indicates a lookup on a module before initialization.
	ErrCodeNotInitialized ErrorCode = "NOT_INITIALIZED"
	// ErrCodeDuplicateBinding indicates two bindings share a type and name.
	ErrCodeDuplicateBinding ErrorCode = "DUPLICATE_BINDING"
	// ErrCodeCorruptBinding indicates a builder without a terminal call.
	ErrCodeCorruptBinding ErrorCode = "CORRUPT_BINDING"
	// ErrCodePrimitiveBindingRejected indicates To() was used for a primitive type.
	ErrCodePrimitiveBindingRejected ErrorCode = "PRIMITIVE_BINDING_REJECTED"
	// ErrCodeMissingArgument indicates an empty argument to a terminal call.
	ErrCodeMissingArgument ErrorCode = "MISSING_ARGUMENT"
	// ErrCodeUnknownType indicates a type name the catalog cannot construct.
	ErrCodeUnknownType ErrorCode = "UNKNOWN_TYPE"
)

// Resolution errors, raised while an injector produces or populates instances.
const (
	// ErrCodeUnboundType indicates no default binding exists in the injector chain.
	ErrCodeUnboundType ErrorCode = "UNBOUND_TYPE"
	// ErrCodeUnboundNamedType indicates no binding exists for a type and name.
	ErrCodeUnboundNamedType ErrorCode = "UNBOUND_NAMED_TYPE"
	// ErrCodeNoProviderBound indicates the type is not bound to a provider.
	ErrCodeNoProviderBound ErrorCode = "NO_PROVIDER_BOUND"
	// ErrCodeInvalidInjection indicates a resolved value does not fit its field.
	ErrCodeInvalidInjection ErrorCode = "INVALID_INJECTION"
	// ErrCodeCircularDependency indicates distinct instances depend on each other.
	ErrCodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
	// ErrCodeProviderFailed indicates a provider returned an error.
	ErrCodeProviderFailed ErrorCode = "PROVIDER_FAILED"
)

// Supporting errors
const (
	// ErrCodeValidationFailed indicates struct validation failed.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrCodeConfigLoadFailed indicates a configuration source could not be read.
	ErrCodeConfigLoadFailed ErrorCode = "CONFIG_LOAD_FAILED"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var configurationCodes = map[ErrorCode]bool{
	ErrCodeNotInitialized:           true,
	ErrCodeDuplicateBinding:         true,
	ErrCodeCorruptBinding:           true,
	ErrCodePrimitiveBindingRejected: true,
	ErrCodeMissingArgument:          true,
	ErrCodeUnknownType:              true,
	ErrCodeConfigLoadFailed:         true,
}

// IsConfigurationCode returns true if the code is raised while configuring
// bindings rather than while resolving them.
func IsConfigurationCode(code ErrorCode) bool {
	return configurationCodes[code]
}
