package decimal

import (
	"math/big"
	"strings"
)

// String renders d in plain positional notation with the canonical display
// rules: no exponent, no trailing fractional zeros, no "+" sign, a leading
// zero before a bare fraction ("0.5", not ".5").
func (d Dec) String() string {
	if d.IsZero() {
		return "0"
	}

	digits := new(big.Int).Abs(d.coef).Text(10)

	// Integer fast-path.
	if d.scale == 0 {
		if d.coef.Sign() < 0 {
			return "-" + digits
		}
		return digits
	}

	n := int(d.scale)
	if len(digits) <= n {
		digits = strings.Repeat("0", n-len(digits)+1) + digits
	}
	split := len(digits) - n
	intStr, fracStr := digits[:split], digits[split:]
	fracStr = strings.TrimRight(fracStr, "0")

	var sb strings.Builder
	if d.coef.Sign() < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(intStr)
	if fracStr != "" {
		sb.WriteByte('.')
		sb.WriteString(fracStr)
	}
	return sb.String()
}
