package env

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

// TestParse_Int32 tests round-trip and prefix parsing for the int32 target
func TestParse_Int32(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int32
	}{
		{"plain", "123", 123},
		{"negative", "-45", -45},
		{"explicit sign", "+7", 7},
		{"leading whitespace", "  42", 42},
		{"trailing garbage", "123abc", 123},
		{"garbage after sign run", "-13x7", -13},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse[int32](tc.raw)
			if err != nil {
				t.Fatalf("Parse[int32](%q) error = %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("Parse[int32](%q) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}

// TestParse_Int32_Failures tests inputs that must be conversion failures
func TestParse_Int32_Failures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"empty string", "", strconv.ErrSyntax},
		{"no digits", "abc", strconv.ErrSyntax},
		{"bare sign", "-", strconv.ErrSyntax},
		{"out of range", "99999999999", strconv.ErrRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse[int32](tc.raw)
			if err == nil {
				t.Fatalf("Parse[int32](%q) expected error, got nil", tc.raw)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("Parse[int32](%q) error = %v, want chain containing %v", tc.raw, err, tc.want)
			}
		})
	}
}

// TestParse_WideIntegers tests int64 and int targets
func TestParse_WideIntegers(t *testing.T) {
	got64, err := Parse[int64]("9223372036854775807")
	if err != nil {
		t.Fatalf("Parse[int64] error = %v", err)
	}
	if got64 != 9223372036854775807 {
		t.Errorf("Expected 9223372036854775807, got %d", got64)
	}

	gotInt, err := Parse[int]("-100000tail")
	if err != nil {
		t.Fatalf("Parse[int] error = %v", err)
	}
	if gotInt != -100000 {
		t.Errorf("Expected -100000, got %d", gotInt)
	}
}

// TestParse_Floats tests float32 and float64 targets including exponents
func TestParse_Floats(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain", "3.25", 3.25},
		{"integer form", "12", 12},
		{"negative", "-0.5", -0.5},
		{"trailing garbage", "3.25xyz", 3.25},
		{"exponent", "1e3", 1000},
		{"exponent with sign", "2.5E-1", 0.25},
		{"dangling exponent marker", "2e", 2},
		{"dangling exponent sign", "2e+", 2},
		{"leading dot fraction", "1.", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse[float64](tc.raw)
			if err != nil {
				t.Fatalf("Parse[float64](%q) error = %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("Parse[float64](%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}

	got32, err := Parse[float32]("2.5")
	if err != nil {
		t.Fatalf("Parse[float32] error = %v", err)
	}
	if got32 != 2.5 {
		t.Errorf("Expected 2.5, got %v", got32)
	}

	if _, err := Parse[float64](".x"); err == nil {
		t.Error("Parse[float64](\".x\") expected error, got nil")
	}
	if _, err := Parse[float64](""); !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("Parse[float64](\"\") error = %v, want strconv.ErrSyntax", err)
	}
}

// TestParse_FloatSpecials tests the inf/nan spellings and hexadecimal
// literals strconv.ParseFloat accepts
func TestParse_FloatSpecials(t *testing.T) {
	t.Run("infinities", func(t *testing.T) {
		cases := []struct {
			raw  string
			sign int
		}{
			{"inf", 1},
			{"-inf", -1},
			{"+Inf", 1},
			{"Infinity", 1},
			{"-INFINITY", -1},
			{"infx", 1}, // longest-prefix rule applies to spellings too
		}
		for _, tc := range cases {
			got, err := Parse[float64](tc.raw)
			if err != nil {
				t.Fatalf("Parse[float64](%q) error = %v", tc.raw, err)
			}
			if !math.IsInf(got, tc.sign) {
				t.Errorf("Parse[float64](%q) = %v, want infinity with sign %d", tc.raw, got, tc.sign)
			}
		}
	})

	t.Run("nan", func(t *testing.T) {
		for _, raw := range []string{"nan", "NaN"} {
			got, err := Parse[float64](raw)
			if err != nil {
				t.Fatalf("Parse[float64](%q) error = %v", raw, err)
			}
			if !math.IsNaN(got) {
				t.Errorf("Parse[float64](%q) = %v, want NaN", raw, got)
			}
		}
	})

	t.Run("hexadecimal literals", func(t *testing.T) {
		cases := []struct {
			raw  string
			want float64
		}{
			{"0x1p2", 4},
			{"-0x1p2", -4},
			{"0x.8p1", 1},
			{"0x1p-1", 0.5},
			{"0X1P+3", 8},
			{"0x1p2zz", 4},
			// Without a binary exponent the hex form is invalid for
			// strconv.ParseFloat; the prefix degrades to the leading "0".
			{"0x1", 0},
			{"0x1p", 0},
			{"0xp2", 0},
		}
		for _, tc := range cases {
			got, err := Parse[float64](tc.raw)
			if err != nil {
				t.Fatalf("Parse[float64](%q) error = %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("Parse[float64](%q) = %v, want %v", tc.raw, got, tc.want)
			}
		}
	})
}

// TestParse_Byte tests the single character target
func TestParse_Byte(t *testing.T) {
	got, err := Parse[byte]("xyz")
	if err != nil {
		t.Fatalf("Parse[byte] error = %v", err)
	}
	if got != 'x' {
		t.Errorf("Expected 'x', got %q", got)
	}

	// The original indexes the terminator of an empty value, yielding NUL.
	got, err = Parse[byte]("")
	if err != nil {
		t.Fatalf("Parse[byte](\"\") error = %v", err)
	}
	if got != 0 {
		t.Errorf("Expected zero byte for empty text, got %q", got)
	}
}

// TestParse_String tests that text targets pass through unchanged
func TestParse_String(t *testing.T) {
	raw := "  raw text, no validation: 123abc  "
	got, err := Parse[string](raw)
	if err != nil {
		t.Fatalf("Parse[string] error = %v", err)
	}
	if got != raw {
		t.Errorf("Expected %q, got %q", raw, got)
	}
}

// TestKindOf tests the manifest type-name mapping
func TestKindOf(t *testing.T) {
	for kind, name := range kindNames {
		got, err := KindOf(name)
		if err != nil {
			t.Fatalf("KindOf(%q) error = %v", name, err)
		}
		if got != kind {
			t.Errorf("KindOf(%q) = %v, want %v", name, got, kind)
		}
	}

	if _, err := KindOf("complex128"); err == nil {
		t.Error("KindOf(\"complex128\") expected error, got nil")
	}
}

// TestParseKind_DynamicTypes tests that ParseKind returns the Go type the
// Kind stands for
func TestParseKind_DynamicTypes(t *testing.T) {
	v, err := ParseKind(KindInt32, "5")
	if err != nil {
		t.Fatalf("ParseKind error = %v", err)
	}
	if _, ok := v.(int32); !ok {
		t.Errorf("Expected int32, got %T", v)
	}

	v, err = ParseKind(KindFloat32, "5.5")
	if err != nil {
		t.Fatalf("ParseKind error = %v", err)
	}
	if _, ok := v.(float32); !ok {
		t.Errorf("Expected float32, got %T", v)
	}

	if _, err := ParseKind(Kind(99), "5"); err == nil {
		t.Error("ParseKind with unknown kind expected error, got nil")
	}
}
