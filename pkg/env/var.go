package env

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Var resolves a variable with a default value fallback. Get never fails:
// absence, lookup failure and malformed text all substitute the default, so
// the failure is only ever logged.
//
// The configuration (name, default, notices flag, registry) is fixed at
// construction. Resolution runs exactly once, on first Get; the outcome is
// cached for the lifetime of the process and the environment is never
// re-read, even if the variable changes afterwards. Concurrent first callers
// trigger at most one evaluation and all observe the same cached result.
type Var[T Scalar] struct {
	name     string
	def      Default[T]
	notices  bool
	registry *Registry

	once  sync.Once
	value T
}

// WithDefault binds name to the target type T with a default value.
//
// Example:
//
//	port := env.WithDefault("PORT", int32(8080))
//	token := env.WithDefault("vault:API_TOKEN", "", env.Notices(false))
func WithDefault[T Scalar](name string, def T, opts ...Option) *Var[T] {
	s := newSettings(opts)
	return &Var[T]{
		name:     name,
		def:      NewDefault(def),
		notices:  s.notices,
		registry: s.registry,
	}
}

// Name returns the bound variable name, including any source prefix.
func (v *Var[T]) Name() string {
	return v.name
}

// Default returns the configured fallback value.
func (v *Var[T]) Default() T {
	return v.def.Value()
}

// Get returns the resolved value: the parsed variable when it is set and
// parses, the default otherwise. Side-effect-free after the first call.
func (v *Var[T]) Get() T {
	v.once.Do(v.resolve)
	return v.value
}

func (v *Var[T]) resolve() {
	raw, found, err := v.registry.Lookup(v.name)
	if err != nil {
		log.Error().
			Str("var", v.name).
			Err(err).
			Msg("Lookup failed, using default value")
		v.value = v.def.Value()
		return
	}

	if !found {
		if v.notices {
			log.Info().
				Str("var", v.name).
				Msg("Not set, using default value")
		}
		v.value = v.def.Value()
		return
	}

	if v.notices {
		log.Info().
			Str("var", v.name).
			Str("value", raw).
			Msg("Variable is set")
	}

	parsed, err := Parse[T](raw)
	if err != nil {
		log.Error().
			Str("var", v.name).
			Str("value", raw).
			Err(err).
			Msg("Conversion failed, using default value")
		v.value = v.def.Value()
		return
	}

	v.value = parsed
}
