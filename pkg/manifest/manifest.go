// Package manifest loads declarative variable bindings from YAML or TOML
// files and resolves them through an env.Registry. A binding names a
// variable, its target type, and either a default value or a required flag:
//
//	vars:
//	  - name: PORT
//	    type: int32
//	    default: "8080"
//	  - name: vault:DB_PASSWORD
//	    type: string
//	    required: true
//	    notices: false
//
// Malformed declarations (unknown type, required with a default, a default
// that does not parse as the declared type) are rejected at load time, before
// any resolution can run.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/animalet/entorn-go/pkg/env"
)

type (
	// Manifest holds a set of variable bindings loaded from a file.
	Manifest struct {
		Vars []Binding `yaml:"vars" toml:"vars"`
	}

	// Binding declares one variable: its (possibly prefixed) name, target
	// type, and fallback policy. Notices defaults to true when omitted.
	Binding struct {
		Name     string  `yaml:"name" toml:"name"`
		Type     string  `yaml:"type" toml:"type"`
		Default  *string `yaml:"default,omitempty" toml:"default"`
		Required bool    `yaml:"required,omitempty" toml:"required"`
		Notices  *bool   `yaml:"notices,omitempty" toml:"notices"`
	}
)

// Load reads a manifest file, dispatching on the extension (.yaml, .yml or
// .toml), and validates every binding.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading manifest %q", path)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrapf(err, "error parsing YAML manifest %q", path)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrapf(err, "error parsing TOML manifest %q", path)
		}
	default:
		return nil, errors.Errorf("unsupported manifest format %q", filepath.Ext(path))
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]struct{}, len(m.Vars))
	for i, b := range m.Vars {
		if b.Name == "" {
			return errors.Errorf("var %d: name is required", i)
		}
		if _, dup := seen[b.Name]; dup {
			return errors.Errorf("var %q: declared more than once", b.Name)
		}
		seen[b.Name] = struct{}{}

		kind, err := env.KindOf(b.Type)
		if err != nil {
			return errors.Wrapf(err, "var %q", b.Name)
		}

		if b.Required && b.Default != nil {
			return errors.Errorf("var %q: required and default are mutually exclusive", b.Name)
		}
		if !b.Required && b.Default == nil {
			return errors.Errorf("var %q: needs a default or required: true", b.Name)
		}
		if b.Default != nil {
			if _, err := env.ParseKind(kind, *b.Default); err != nil {
				return errors.Wrapf(err, "var %q: default %q does not parse as %s", b.Name, *b.Default, kind)
			}
		}
	}
	return nil
}

// Values holds the outcome of resolving a manifest: one typed value per
// binding, immutable once returned.
type Values struct {
	values map[string]any
	kinds  map[string]env.Kind
}

// Resolve resolves every binding through the registry with the same policy as
// env.Var and env.Required: defaulted bindings never fail (absence, lookup
// failure and malformed text substitute the default, logging a diagnostic for
// the latter two), required bindings fail the whole resolve with ErrNotSet or
// a ConversionError.
func (m *Manifest) Resolve(registry *env.Registry) (*Values, error) {
	out := &Values{
		values: make(map[string]any, len(m.Vars)),
		kinds:  make(map[string]env.Kind, len(m.Vars)),
	}

	for _, b := range m.Vars {
		kind, err := env.KindOf(b.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "var %q", b.Name)
		}

		value, err := resolveBinding(registry, b, kind)
		if err != nil {
			return nil, err
		}
		out.values[b.Name] = value
		out.kinds[b.Name] = kind
	}
	return out, nil
}

func resolveBinding(registry *env.Registry, b Binding, kind env.Kind) (any, error) {
	notices := b.Notices == nil || *b.Notices

	fallback := func() any {
		// validate() guarantees the default parses.
		v, _ := env.ParseKind(kind, *b.Default)
		return v
	}

	raw, found, err := registry.Lookup(b.Name)
	if err != nil {
		if b.Required {
			log.Error().Str("var", b.Name).Err(err).Msg("Lookup failed")
			return nil, err
		}
		log.Error().Str("var", b.Name).Err(err).Msg("Lookup failed, using default value")
		return fallback(), nil
	}

	if !found {
		if b.Required {
			log.Error().Str("var", b.Name).Msg("Not set and no default value is provided")
			return nil, errors.Wrap(env.ErrNotSet, b.Name)
		}
		if notices {
			log.Info().Str("var", b.Name).Msg("Not set, using default value")
		}
		return fallback(), nil
	}

	if notices {
		log.Info().Str("var", b.Name).Str("value", raw).Msg("Variable is set")
	}

	value, err := env.ParseKind(kind, raw)
	if err != nil {
		if b.Required {
			log.Error().Str("var", b.Name).Str("value", raw).Err(err).Msg("Conversion failed")
			return nil, &env.ConversionError{Name: b.Name, Raw: raw, Err: err}
		}
		log.Error().Str("var", b.Name).Str("value", raw).Err(err).Msg("Conversion failed, using default value")
		return fallback(), nil
	}
	return value, nil
}

// Has reports whether the name was declared (and therefore resolved).
func (v *Values) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Kind returns the declared kind of the named binding.
func (v *Values) Kind(name string) (env.Kind, bool) {
	k, ok := v.kinds[name]
	return k, ok
}

// Len returns the number of resolved bindings.
func (v *Values) Len() int {
	return len(v.values)
}

// Int32 returns the named value when it was declared as int32.
func (v *Values) Int32(name string) (int32, bool) {
	x, ok := v.values[name].(int32)
	return x, ok
}

// Int64 returns the named value when it was declared as int64.
func (v *Values) Int64(name string) (int64, bool) {
	x, ok := v.values[name].(int64)
	return x, ok
}

// Int returns the named value when it was declared as int.
func (v *Values) Int(name string) (int, bool) {
	x, ok := v.values[name].(int)
	return x, ok
}

// Float32 returns the named value when it was declared as float32.
func (v *Values) Float32(name string) (float32, bool) {
	x, ok := v.values[name].(float32)
	return x, ok
}

// Float64 returns the named value when it was declared as float64.
func (v *Values) Float64(name string) (float64, bool) {
	x, ok := v.values[name].(float64)
	return x, ok
}

// Byte returns the named value when it was declared as byte.
func (v *Values) Byte(name string) (byte, bool) {
	x, ok := v.values[name].(byte)
	return x, ok
}

// String returns the named value when it was declared as string.
func (v *Values) String(name string) (string, bool) {
	x, ok := v.values[name].(string)
	return x, ok
}
