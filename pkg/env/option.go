package env

// Option configures a resolver at definition time. A resolver is immutable
// once constructed; options cannot be applied afterwards.
type Option func(*settings)

type settings struct {
	notices  bool
	registry *Registry
}

func newSettings(opts []Option) settings {
	s := settings{
		notices:  true,
		registry: defaultRegistry,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Notices controls whether informational notices (variable found, variable
// missing) are emitted during resolution. Enabled by default. Diagnostics on
// failure are always emitted regardless of this flag.
func Notices(enabled bool) Option {
	return func(s *settings) {
		s.notices = enabled
	}
}

// From makes the resolver look up its variable through the given registry
// instead of the global one.
func From(registry *Registry) Option {
	return func(s *settings) {
		s.registry = registry
	}
}
