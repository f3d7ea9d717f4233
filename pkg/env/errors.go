package env

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotSet reports a variable that is absent from its source when no default
// value is available. Matched with errors.Is.
var ErrNotSet = errors.New("not set and no default value is provided")

// ErrConversion is the sentinel matched by errors.Is against any
// *ConversionError.
var ErrConversion = errors.New("conversion failed")

// ConversionError reports raw text that could not be parsed into the target
// type. Unwrap exposes the underlying parse failure (strconv.ErrSyntax or
// strconv.ErrRange chains).
type ConversionError struct {
	Name string
	Raw  string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s conversion failed (env=%q): %v", e.Name, e.Raw, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}
