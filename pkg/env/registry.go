package env

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Registry manages the registration and lookup of sources. It provides a
// thread-safe mapping from name prefixes to the source serving them.
//
// Variable names are split at the first colon: "vault:DB_PASSWORD" routes the
// key "DB_PASSWORD" to the source registered under "vault". A name without a
// prefix routes to "env", the process environment.
type Registry struct {
	sources map[string]Source
	mu      sync.RWMutex
}

// defaultRegistry is the global registry used by the package-level functions
// and by resolvers constructed without an explicit registry.
var defaultRegistry = NewRegistry()

// NewRegistry creates a registry with the process environment pre-registered
// under the "env" prefix.
func NewRegistry() *Registry {
	return &Registry{
		sources: map[string]Source{"env": OS{}},
	}
}

// Register registers a source for a specific prefix. The prefix should not
// include the trailing colon (e.g. "vault", not "vault:").
//
// If a source is already registered for the prefix, it is replaced and a
// warning is logged.
//
// Thread-safe: this method can be called concurrently.
func (r *Registry) Register(prefix string, source Source) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[prefix]; exists {
		log.Warn().Str("prefix", prefix).Msg("Overriding existing source")
	}

	r.sources[prefix] = source
}

// Unregister removes the source for a specific prefix. Useful for testing or
// dynamic reconfiguration.
//
// Thread-safe: this method can be called concurrently.
func (r *Registry) Unregister(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sources, prefix)
}

// Lookup resolves a variable name through the appropriate source. The name
// should be in the format "prefix:key" or just "key" (defaults to env).
//
// found reports whether the key exists in its source. An error means either
// no source is registered for the prefix or the source itself failed.
//
// Thread-safe: this method can be called concurrently.
func (r *Registry) Lookup(name string) (string, bool, error) {
	prefix, key := splitName(name)

	r.mu.RLock()
	source, exists := r.sources[prefix]
	r.mu.RUnlock()

	if !exists {
		return "", false, errors.Errorf("no source registered for prefix %q", prefix)
	}

	value, found, err := source.Lookup(key)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to look up %q using %s source", name, source.Name())
	}

	return value, found, nil
}

// Source returns the source registered for a specific prefix, or nil when
// none is registered.
func (r *Registry) Source(prefix string) Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources[prefix]
}

// Prefixes returns all registered prefixes. Useful for debugging.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefixes := make([]string, 0, len(r.sources))
	for prefix := range r.sources {
		prefixes = append(prefixes, prefix)
	}
	return prefixes
}

// splitName splits a variable name into prefix and key at the first colon.
// Names without a colon default to the "env" prefix.
//
// Examples:
//   - "vault:SECRET_KEY" -> ("vault", "SECRET_KEY")
//   - "PORT"             -> ("env", "PORT")
//   - "custom:db:pass"   -> ("custom", "db:pass")
func splitName(name string) (prefix string, key string) {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i], name[i+1:]
		}
	}
	return "env", name
}

// RegisterSource registers a source in the global registry.
//
// Example:
//
//	env.RegisterSource("vault", sources.NewVault(client, path))
func RegisterSource(prefix string, source Source) {
	defaultRegistry.Register(prefix, source)
}

// UnregisterSource removes a source from the global registry. Useful for
// testing.
func UnregisterSource(prefix string) {
	defaultRegistry.Unregister(prefix)
}

// DefaultRegistry returns the global registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
