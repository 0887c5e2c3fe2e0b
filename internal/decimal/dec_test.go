package decimal_test

import (
	"errors"
	"testing"

	"abacus/internal/decimal"
)

// ====== Тесты для parse.go ======

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  string // canonical String() form
		scale int32
	}{
		{"0", "0", 0},
		{"7", "7", 0},
		{"007", "7", 0},
		{"123", "123", 0},
		{"0.1", "0.1", 1},
		{"0.10", "0.1", 2},
		{".5", "0.5", 1},
		{"5.", "5", 0},
		{"123.456", "123.456", 3},
		{"000.000", "0", 0},
		{"00012.3400", "12.34", 4},
		{"3.14159265358979323846264338327950288", "3.14159265358979323846264338327950288", 35},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := decimal.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): unexpected error: %v", tt.input, err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
			if d.Scale() != tt.scale {
				t.Errorf("Parse(%q).Scale() = %d, want %d", tt.input, d.Scale(), tt.scale)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		".",
		"..",
		"1.2.3",
		"1..2",
		"abc",
		"1e5",
		"1_000",
		"+1",
		"-1", // знак — дело парсера выражений, не литерала
		" 1",
		"1 ",
		"0x10",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := decimal.Parse(input)
			if !errors.Is(err, decimal.ErrParse) {
				t.Errorf("Parse(%q): expected ErrParse, got %v", input, err)
			}
		})
	}
}

func TestMustParse_NegativeSign(t *testing.T) {
	d := decimal.MustParse("-2.5")
	if d.Sign() >= 0 {
		t.Fatalf("expected negative value, got sign %d", d.Sign())
	}
	if got := d.String(); got != "-2.5" {
		t.Errorf("String() = %q, want %q", got, "-2.5")
	}
}

func TestMustParse_PanicsOnGarbage(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid literal")
		}
	}()
	decimal.MustParse("not a number")
}

// ====== Тесты для format.go ======

func TestString_TrimsTrailingZeros(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.500", "1.5"},
		{"3.000", "3"},
		{"0.000", "0"},
		{"10.0", "10"},
		{"0.0500", "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := decimal.MustParse(tt.input).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	// Канонические строки проходят через Parse/String без изменений.
	tests := []string{
		"0",
		"1",
		"0.1",
		"12.34",
		"-3.5",
		"1000",
		"-0.001",
		"123456789012345678901234567890.123456789",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			if got := decimal.MustParse(s).String(); got != s {
				t.Errorf("round trip changed %q to %q", s, got)
			}
		})
	}
}

// ====== Тесты для dec.go ======

func TestZeroValue_IsCanonicalZero(t *testing.T) {
	var d decimal.Dec
	if !d.IsZero() {
		t.Error("zero value should be zero")
	}
	if d.Sign() != 0 {
		t.Errorf("Sign() = %d, want 0", d.Sign())
	}
	if d.Scale() != 0 {
		t.Errorf("Scale() = %d, want 0", d.Scale())
	}
	if got := d.String(); got != "0" {
		t.Errorf("String() = %q, want %q", got, "0")
	}
	if !d.Equal(decimal.Zero()) {
		t.Error("zero value should equal Zero()")
	}
}

func TestFromInt64(t *testing.T) {
	tests := []struct {
		v    int64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{42, "42"},
		{-9223372036854775808, "-9223372036854775808"},
	}

	for _, tt := range tests {
		if got := decimal.FromInt64(tt.v).String(); got != tt.want {
			t.Errorf("FromInt64(%d).String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestNeg(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0"},
		{"1", "-1"},
		{"-1", "1"},
		{"0.5", "-0.5"},
		{"-2.25", "2.25"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := decimal.MustParse(tt.input).Neg().String(); got != tt.want {
				t.Errorf("Neg() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNeg_ZeroStaysCanonical(t *testing.T) {
	d := decimal.MustParse("0.00").Neg()
	if !d.IsZero() || d.Sign() != 0 {
		t.Errorf("negated zero should stay zero, got %q sign %d", d.String(), d.Sign())
	}
}

func TestCmp_NormalizesScale(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.50", "1.5", 0},
		{"1.5", "1.50", 0},
		{"0", "0.000", 0},
		{"2", "1.5", 1},
		{"1.5", "2", -1},
		{"-1", "1", -1},
		{"-1", "-2", 1},
		{"0.1", "0.10000000000000000001", -1},
		{"-0.5", "0", -1},
		{"0", "-0.5", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, b := decimal.MustParse(tt.a), decimal.MustParse(tt.b)
			if got := a.Cmp(b); got != tt.want {
				t.Errorf("Cmp(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqual_IgnoresScale(t *testing.T) {
	if !decimal.MustParse("1.50").Equal(decimal.MustParse("1.5")) {
		t.Error("1.50 should equal 1.5")
	}
	if decimal.MustParse("1.5").Equal(decimal.MustParse("1.51")) {
		t.Error("1.5 should not equal 1.51")
	}
}
