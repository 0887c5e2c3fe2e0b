package decimal

import (
	"math/big"

	"fortio.org/safecast"
)

// align brings both coefficients to the larger of the two scales.
// The returned values are read-only.
func align(d, e Dec) (dc, ec *big.Int, scale int32) {
	dc, ec = d.coefInt(), e.coefInt()
	switch {
	case d.scale == e.scale:
		return dc, ec, d.scale
	case d.scale < e.scale:
		return lsh(dc, int(e.scale-d.scale)), ec, e.scale
	default:
		return dc, lsh(ec, int(d.scale-e.scale)), d.scale
	}
}

// Add returns d + e exactly. The result scale is the larger operand scale.
func (d Dec) Add(e Dec, lim Limits) (Dec, error) {
	dc, ec, scale := align(d, e)
	z := new(big.Int).Add(dc, ec)
	if overDigits(z, lim.MaxDigits) {
		return Dec{}, ErrResultTooLarge
	}
	return newDec(z, scale), nil
}

// Sub returns d - e exactly.
func (d Dec) Sub(e Dec, lim Limits) (Dec, error) {
	dc, ec, scale := align(d, e)
	z := new(big.Int).Sub(dc, ec)
	if overDigits(z, lim.MaxDigits) {
		return Dec{}, ErrResultTooLarge
	}
	return newDec(z, scale), nil
}

// Mul returns d * e exactly: significands multiply, scales add.
func (d Dec) Mul(e Dec, lim Limits) (Dec, error) {
	if d.IsZero() || e.IsZero() {
		return Dec{}, nil
	}
	scale, err := safecast.Conv[int32](int64(d.scale) + int64(e.scale))
	if err != nil {
		return Dec{}, ErrResultTooLarge
	}
	z := new(big.Int).Mul(d.coef, e.coef)
	if overDigits(z, lim.MaxDigits) {
		return Dec{}, ErrResultTooLarge
	}
	return newDec(z, scale), nil
}

// Div returns d / e when the quotient terminates in decimal.
// The fraction is reduced first; a reduced divisor with any prime factor
// other than 2 or 5 has no finite decimal expansion and the division fails
// with ErrNonTerminatingDivision. Terminating quotients are exact: no
// rounding, no trailing noise.
func (d Dec) Div(e Dec, lim Limits) (Dec, error) {
	if e.IsZero() {
		return Dec{}, ErrDivisionByZero
	}
	if d.IsZero() {
		return Dec{}, nil
	}

	num := new(big.Int).Abs(d.coef)
	den := new(big.Int).Abs(e.coef)

	g := getBig()
	defer putBig(g)
	if g.GCD(nil, nil, num, den).Cmp(bpow10[0]) > 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}

	// den = 2^twos * 5^fives * rest; rest != 1 means non-terminating.
	twos := den.TrailingZeroBits()
	den.Rsh(den, twos)
	fives := uint(0)
	q, r := getBig(), getBig()
	defer putBig(q)
	defer putBig(r)
	for den.Cmp(bpow10[0]) > 0 {
		q.QuoRem(den, bigFive, r)
		if r.Sign() != 0 {
			return Dec{}, ErrNonTerminatingDivision
		}
		den.Set(q)
		fives++
	}

	// num / (2^a * 5^b) = num * 2^(k-a) * 5^(k-b) / 10^k, k = max(a, b).
	k := twos
	if fives > k {
		k = fives
	}
	if lim.MaxDigits != 0 && k > uint(lim.MaxDigits) {
		return Dec{}, ErrResultTooLarge
	}
	if k > twos {
		num.Lsh(num, k-twos)
	}
	if k > fives {
		exp5 := new(big.Int).SetUint64(uint64(k - fives))
		num.Mul(num, exp5.Exp(bigFive, exp5, nil))
	}

	scale, err := safecast.Conv[int32](int64(d.scale) - int64(e.scale) + int64(k))
	if err != nil {
		return Dec{}, ErrResultTooLarge
	}
	if scale < 0 {
		// Целый результат крупнее единицы масштаба: домножаем и обнуляем scale.
		num = lsh(num, int(-scale))
		scale = 0
	}
	if overDigits(num, lim.MaxDigits) {
		return Dec{}, ErrResultTooLarge
	}
	if (d.coef.Sign() < 0) != (e.coef.Sign() < 0) {
		num.Neg(num)
	}
	return newDec(num, scale), nil
}

// Pow returns d raised to a non-negative integer exponent. Fractional or
// negative exponents fail with ErrUnsupportedExponent; exponents or results
// beyond the limits fail with ErrResultTooLarge. The value is identical to
// repeated exact multiplication, computed by exponentiation by squaring.
func (d Dec) Pow(e Dec, lim Limits) (Dec, error) {
	n, err := e.exponent(lim)
	if err != nil {
		return Dec{}, err
	}
	switch {
	case n == 0:
		// x^0 = 1 для любого x, включая 0^0.
		return One(), nil
	case d.IsZero():
		return Dec{}, nil
	}

	// prec*n bounds the result width from above; compare by division so the
	// product cannot overflow for huge exponents.
	if lim.MaxDigits != 0 && uint64(prec(d.coef)) > uint64(lim.MaxDigits)/n {
		return Dec{}, ErrResultTooLarge
	}
	scale, err := safecast.Conv[int32](int64(d.scale) * int64(n))
	if err != nil {
		return Dec{}, ErrResultTooLarge
	}

	exp := getBig()
	defer putBig(exp)
	exp.SetUint64(n)
	z := new(big.Int).Exp(d.coef, exp, nil)
	if overDigits(z, lim.MaxDigits) {
		return Dec{}, ErrResultTooLarge
	}
	return newDec(z, scale), nil
}

// exponent extracts the value as a non-negative integer exponent.
func (e Dec) exponent(lim Limits) (uint64, error) {
	if e.IsZero() {
		return 0, nil
	}
	if e.Sign() < 0 {
		return 0, ErrUnsupportedExponent
	}

	n := e.coefInt()
	if e.scale > 0 {
		q, r := getBig(), getBig()
		defer putBig(q)
		defer putBig(r)
		q.QuoRem(n, pow10(int(e.scale)), r)
		if r.Sign() != 0 {
			return 0, ErrUnsupportedExponent
		}
		n = q
	}
	if !n.IsUint64() {
		return 0, ErrResultTooLarge
	}
	v := n.Uint64()
	if lim.MaxExponent != 0 && v > uint64(lim.MaxExponent) {
		return 0, ErrResultTooLarge
	}
	return v, nil
}
