package env

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Expand replaces ${name} and ${prefix:key} references in s with values
// resolved through the registry. A reference whose variable is absent, or
// whose prefix has no registered source, fails the whole expansion.
func (r *Registry) Expand(s string) (string, error) {
	var expandErr error
	expanded := os.Expand(s, func(ref string) string {
		if expandErr != nil {
			return ""
		}
		value, found, err := r.Lookup(strings.TrimSpace(ref))
		if err != nil {
			expandErr = errors.Wrapf(err, "error resolving %q", ref)
			return ""
		}
		if !found {
			expandErr = errors.Errorf("reference %q is not set", ref)
			return ""
		}
		return value
	})
	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}

// Expand resolves references through the global registry.
func Expand(s string) (string, error) {
	return defaultRegistry.Expand(s)
}
