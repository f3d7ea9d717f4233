// Package env provides typed, source-pluggable access to process environment
// variables. A variable is bound at construction time to a name, a target type
// and optionally a default value; resolution converts the raw text into the
// target type, falling back to the default (or failing, when no default was
// given) on absence or malformed input.
//
// Two resolver flavors exist:
//   - WithDefault: never fails, resolves exactly once and caches the result
//     for the lifetime of the process.
//   - Require: fallible, re-reads the source on every call.
//
// Lookups go through a Registry of named sources; the bare process environment
// is the default, and names like "vault:DB_PASSWORD" route through whatever
// source is registered under the "vault" prefix.
package env

import "strings"

// Scalar is the closed set of types a resolver can produce. Requesting any
// other type is a compile-time error, not a runtime condition.
type Scalar interface {
	int32 | int64 | int | float32 | float64 | byte | string
}

// Default holds a typed fallback value. It is immutable after construction:
// text defaults are copied into storage owned by the holder so later changes
// to the source of the literal cannot leak through.
type Default[T Scalar] struct {
	value T
}

// NewDefault creates a default-value holder. Any value is accepted; no
// validation is performed here.
func NewDefault[T Scalar](value T) Default[T] {
	if s, ok := any(value).(string); ok {
		value = any(strings.Clone(s)).(T)
	}
	return Default[T]{value: value}
}

// Value returns the stored default in its export form.
func (d Default[T]) Value() T {
	return d.value
}
