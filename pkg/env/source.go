package env

import "os"

// Source defines the interface that all lookup sources must implement.
// A source is responsible for retrieving the raw text of a variable.
//
// Example implementations:
//   - OS: the process environment (the default)
//   - sources.File: reads secrets from files in a directory
//   - sources.Vault: retrieves secrets from HashiCorp Vault
//   - sources.AWS: retrieves secrets from AWS Secrets Manager
type Source interface {
	// Lookup retrieves the raw value for the given key. found reports
	// whether the key exists in the source; err reports a failure of the
	// source itself (unreachable backend, unreadable file), not absence.
	Lookup(key string) (value string, found bool, err error)

	// Name returns a human-readable name for this source (for logging).
	Name() string
}

// OS resolves variables from the process environment. Lookup is case
// sensitive with platform-native semantics and never writes or mutates
// any variable.
type OS struct{}

// Lookup retrieves an environment variable value. A variable set to the
// empty string is found; an unset variable is not.
func (OS) Lookup(key string) (string, bool, error) {
	value, found := os.LookupEnv(key)
	return value, found, nil
}

// Name returns the source name
func (OS) Name() string {
	return "Environment"
}
