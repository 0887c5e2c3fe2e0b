package decimal

import (
	"fmt"
	"math/big"
	"strings"

	"fortio.org/safecast"
)

// Parse converts a plain decimal literal into an exact value. The accepted
// grammar is digits with at most one decimal point and at least one digit
// overall; no sign, no exponent notation. The fractional digit count becomes
// the scale, so the text round-trips with no representation loss.
func Parse(s string) (Dec, error) {
	if s == "" {
		return Dec{}, ErrParse
	}

	dot := -1
	digits := 0
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch >= '0' && ch <= '9':
			digits++
		case ch == '.':
			if dot >= 0 {
				return Dec{}, fmt.Errorf("%w: %q has a second decimal point", ErrParse, s)
			}
			dot = i
		default:
			return Dec{}, fmt.Errorf("%w: %q", ErrParse, s)
		}
	}
	if digits == 0 {
		return Dec{}, fmt.Errorf("%w: %q has no digits", ErrParse, s)
	}

	frac := 0
	mantissa := s
	if dot >= 0 {
		frac = len(s) - dot - 1
		mantissa = s[:dot] + s[dot+1:]
	}

	scale, err := safecast.Conv[int32](frac)
	if err != nil {
		return Dec{}, fmt.Errorf("%w: %q scale overflow", ErrParse, s)
	}

	coef, ok := new(big.Int).SetString(mantissa, 10)
	if !ok {
		return Dec{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return newDec(coef, scale), nil
}

// MustParse converts a literal into a Dec, panicking on error.
// Use only for package variable initialization and test code!
func MustParse(s string) Dec {
	neg := strings.HasPrefix(s, "-")
	d, err := Parse(strings.TrimPrefix(s, "-"))
	if err != nil {
		panic(fmt.Errorf("MustParse(%q) failed: %w", s, err))
	}
	if neg {
		return d.Neg()
	}
	return d
}
