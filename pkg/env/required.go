package env

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Required resolves a variable with no default: absence and malformed text
// are always surfaced to the caller, never swallowed. Unlike Var, it holds
// no cache and performs the full lookup and parse on every Get.
type Required[T Scalar] struct {
	name     string
	notices  bool
	registry *Registry
}

// Require binds name to the target type T with no fallback.
//
// Example:
//
//	dsn := env.Require[string]("DATABASE_URL")
//	value, err := dsn.Get()
func Require[T Scalar](name string, opts ...Option) *Required[T] {
	s := newSettings(opts)
	return &Required[T]{
		name:     name,
		notices:  s.notices,
		registry: s.registry,
	}
}

// Name returns the bound variable name, including any source prefix.
func (r *Required[T]) Name() string {
	return r.name
}

// Get returns the parsed value of the variable. It fails with ErrNotSet when
// the variable is absent and with a *ConversionError (matched by
// ErrConversion) when the text does not parse as T. A diagnostic is logged on
// every failure before it is returned.
func (r *Required[T]) Get() (T, error) {
	var zero T

	raw, found, err := r.registry.Lookup(r.name)
	if err != nil {
		log.Error().
			Str("var", r.name).
			Err(err).
			Msg("Lookup failed")
		return zero, err
	}

	if !found {
		log.Error().
			Str("var", r.name).
			Msg("Not set and no default value is provided")
		return zero, errors.Wrap(ErrNotSet, r.name)
	}

	if r.notices {
		log.Info().
			Str("var", r.name).
			Str("value", raw).
			Msg("Variable is set")
	}

	parsed, err := Parse[T](raw)
	if err != nil {
		log.Error().
			Str("var", r.name).
			Str("value", raw).
			Err(err).
			Msg("Conversion failed")
		return zero, &ConversionError{Name: r.name, Raw: raw, Err: err}
	}

	return parsed, nil
}
