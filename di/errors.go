package di

import "github.com/kbukum/inject/errors"

// IsNotInitialized reports a lookup on a module before initialization.
func IsNotInitialized(err error) bool { return errors.HasCode(err, errors.ErrCodeNotInitialized) }

// IsDuplicateBinding reports two bindings with the same key in one module.
func IsDuplicateBinding(err error) bool { return errors.HasCode(err, errors.ErrCodeDuplicateBinding) }

// IsCorruptBinding reports a builder without a valid terminal call.
func IsCorruptBinding(err error) bool { return errors.HasCode(err, errors.ErrCodeCorruptBinding) }

// IsPrimitiveBindingRejected reports To called for a primitive type.
func IsPrimitiveBindingRejected(err error) bool {
	return errors.HasCode(err, errors.ErrCodePrimitiveBindingRejected)
}

// IsMissingArgument reports an empty or nil required argument.
func IsMissingArgument(err error) bool { return errors.HasCode(err, errors.ErrCodeMissingArgument) }

// IsUnboundType reports a default lookup that exhausted the injector chain.
func IsUnboundType(err error) bool { return errors.HasCode(err, errors.ErrCodeUnboundType) }

// IsUnboundNamedType reports a (type, name) lookup that exhausted the chain.
func IsUnboundNamedType(err error) bool { return errors.HasCode(err, errors.ErrCodeUnboundNamedType) }

// IsNoProviderBound reports a type without a provider binding.
func IsNoProviderBound(err error) bool { return errors.HasCode(err, errors.ErrCodeNoProviderBound) }

// IsCircularDependency reports distinct instances depending on each other.
func IsCircularDependency(err error) bool {
	return errors.HasCode(err, errors.ErrCodeCircularDependency)
}
