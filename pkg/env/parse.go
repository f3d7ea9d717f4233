package env

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind enumerates the supported target types for the dynamic resolution path
// (see pkg/manifest), where the target type is data rather than a type
// parameter. The set mirrors the Scalar constraint exactly.
type Kind int

const (
	KindInt32 Kind = iota
	KindInt64
	KindInt
	KindFloat32
	KindFloat64
	KindByte
	KindString
)

var kindNames = map[Kind]string{
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindInt:     "int",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindByte:    "byte",
	KindString:  "string",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf maps a type name, as written in a manifest, to its Kind.
// Unknown names are a definition-time error.
func KindOf(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if name == kindName {
			return kind, nil
		}
	}
	return 0, errors.Errorf("unsupported target type %q", name)
}

// Parse converts raw text into the target type.
//
// Numeric targets parse the longest leading numeric run after optional
// whitespace and sign, ignoring trailing non-numeric characters: "123abc"
// parses as 123. An empty string, or a string with no numeric prefix at all,
// is a conversion failure, as is an out-of-range prefix (the error chain
// carries strconv.ErrSyntax or strconv.ErrRange respectively).
//
// A byte target takes the first byte of the text verbatim, zero for empty
// text. A string target returns the text unchanged with no validation.
func Parse[T Scalar](raw string) (T, error) {
	var zero T
	v, err := ParseKind(kindOf(zero), raw)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// ParseKind is the dynamic counterpart of Parse: the returned value's dynamic
// type is the Go type the Kind stands for.
func ParseKind(kind Kind, raw string) (any, error) {
	switch kind {
	case KindInt32:
		n, err := parseIntPrefix(raw, 32)
		return int32(n), err
	case KindInt64:
		return parseIntPrefix(raw, 64)
	case KindInt:
		n, err := parseIntPrefix(raw, strconv.IntSize)
		return int(n), err
	case KindFloat32:
		f, err := parseFloatPrefix(raw, 32)
		return float32(f), err
	case KindFloat64:
		return parseFloatPrefix(raw, 64)
	case KindByte:
		if raw == "" {
			return byte(0), nil
		}
		return raw[0], nil
	case KindString:
		return raw, nil
	default:
		return nil, errors.Errorf("unsupported kind %d", int(kind))
	}
}

func kindOf(v any) Kind {
	switch v.(type) {
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case int:
		return KindInt
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	case byte:
		return KindByte
	default:
		return KindString
	}
}

func parseIntPrefix(raw string, bitSize int) (int64, error) {
	prefix := intPrefix(raw)
	if prefix == "" {
		return 0, errors.Wrapf(strconv.ErrSyntax, "parsing %q", raw)
	}
	n, err := strconv.ParseInt(prefix, 10, bitSize)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func parseFloatPrefix(raw string, bitSize int) (float64, error) {
	prefix := floatPrefix(raw)
	if prefix == "" {
		return 0, errors.Wrapf(strconv.ErrSyntax, "parsing %q", raw)
	}
	f, err := strconv.ParseFloat(prefix, bitSize)
	if err != nil {
		return 0, err
	}
	return f, nil
}

// intPrefix returns the longest leading run of s forming a decimal integer,
// after skipping leading whitespace. Empty when no digit leads.
func intPrefix(s string) string {
	i := skipSpace(s, 0)
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digits {
		return ""
	}
	return s[start:i]
}

// floatPrefix returns the longest leading run of s that strconv.ParseFloat
// accepts, after skipping leading whitespace: a decimal literal (optional
// sign, digits, optional fraction, optional exponent), a hexadecimal literal
// ("0x" mantissa with a mandatory binary exponent), or one of the special
// spellings "inf", "infinity" and "nan". Empty when no such prefix exists.
func floatPrefix(s string) string {
	i := skipSpace(s, 0)
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if n := specialFloatPrefix(s[i:]); n > 0 {
		return s[start : i+n]
	}
	if end := hexFloatPrefix(s, i); end > i {
		return s[start:end]
	}
	mantissa := false
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mantissa = true
		}
	}
	if !mantissa {
		return ""
	}
	// Exponent only counts when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return s[start:i]
}

// specialFloatPrefix reports the length of a leading "inf", "infinity" or
// "nan" spelling, case-insensitively, zero when absent. The sign is handled
// by the caller.
func specialFloatPrefix(s string) int {
	for _, spelling := range []string{"infinity", "inf", "nan"} {
		if len(s) >= len(spelling) && strings.EqualFold(s[:len(spelling)], spelling) {
			return len(spelling)
		}
	}
	return 0
}

// hexFloatPrefix scans a hexadecimal float starting at i: "0x" mantissa with
// a mandatory 'p' binary exponent, the only hex form strconv.ParseFloat
// accepts. Returns the end of the literal, or i when none is present.
func hexFloatPrefix(s string, i int) int {
	j := i
	if j+1 >= len(s) || s[j] != '0' || (s[j+1] != 'x' && s[j+1] != 'X') {
		return i
	}
	j += 2

	mantissa := false
	for j < len(s) && isHexDigit(s[j]) {
		j++
		mantissa = true
	}
	if j < len(s) && s[j] == '.' {
		j++
		for j < len(s) && isHexDigit(s[j]) {
			j++
			mantissa = true
		}
	}
	if !mantissa {
		return i
	}

	if j >= len(s) || (s[j] != 'p' && s[j] != 'P') {
		return i
	}
	j++
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	k := j
	for k < len(s) && isDigit(s[k]) {
		k++
	}
	if k == j {
		return i
	}
	return k
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			i++
		default:
			return i
		}
	}
	return i
}
