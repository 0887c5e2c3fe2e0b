package decimal

import (
	"math/big"
)

// Dec is an exact signed decimal: coef · 10^(−scale).
// The zero value is the canonical 0. Dec values are immutable.
type Dec struct {
	scale int32
	coef  *big.Int // nil шьётся в ноль; после конструирования не мутируется
}

// newDec wraps a freshly-allocated coefficient, canonicalizing zero.
// Ownership of coef passes to the Dec; callers must not retain it.
func newDec(coef *big.Int, scale int32) Dec {
	if coef == nil || coef.Sign() == 0 {
		return Dec{}
	}
	return Dec{scale: scale, coef: coef}
}

var bigZero = new(big.Int)

// coefInt returns the coefficient for read-only use.
func (d Dec) coefInt() *big.Int {
	if d.coef == nil {
		return bigZero
	}
	return d.coef
}

// Zero returns the canonical zero.
func Zero() Dec { return Dec{} }

// One returns the decimal 1.
func One() Dec { return newDec(big.NewInt(1), 0) }

// FromInt64 creates a Dec from an int64.
func FromInt64(v int64) Dec {
	return newDec(big.NewInt(v), 0)
}

// IsZero reports whether the value is zero.
func (d Dec) IsZero() bool {
	return d.coef == nil || d.coef.Sign() == 0
}

// Sign returns -1, 0, or +1.
func (d Dec) Sign() int {
	return d.coefInt().Sign()
}

// Scale returns the count of fractional digits the value carries.
// Trailing fractional zeros are preserved until display.
func (d Dec) Scale() int32 {
	if d.IsZero() {
		return 0
	}
	return d.scale
}

// Neg returns the value with its sign flipped; scale is unchanged.
func (d Dec) Neg() Dec {
	if d.IsZero() {
		return Dec{}
	}
	return newDec(new(big.Int).Neg(d.coef), d.scale)
}

// Cmp compares two values mathematically: scales are normalized before the
// significands are compared.
func (d Dec) Cmp(e Dec) int {
	ds, es := d.Sign(), e.Sign()
	switch {
	case ds != es:
		if ds < es {
			return -1
		}
		return 1
	case ds == 0:
		return 0
	}

	dc, ec := d.coefInt(), e.coefInt()
	switch {
	case d.scale == e.scale:
		return dc.Cmp(ec)
	case d.scale < e.scale:
		aligned := lsh(dc, int(e.scale-d.scale))
		return aligned.Cmp(ec)
	default:
		aligned := lsh(ec, int(d.scale-e.scale))
		return dc.Cmp(aligned)
	}
}

// Equal reports whether two values denote the same mathematical number.
func (d Dec) Equal(e Dec) bool {
	return d.Cmp(e) == 0
}
