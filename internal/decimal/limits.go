package decimal

// Limits bounds the size of intermediate and final values so pathological
// expressions (9^99999999, 1/2^400000, ...) fail fast with ErrResultTooLarge
// instead of exhausting memory. A zero field means "no bound", mirroring the
// MaxErrors convention elsewhere in the pipeline.
type Limits struct {
	// MaxExponent caps the integer exponent accepted by Pow.
	MaxExponent uint32
	// MaxDigits caps the significand length (in decimal digits) of any
	// operation result, and the scale growth of exact division.
	MaxDigits uint32
}

// DefaultLimits returns the production caps used when no configuration
// overrides them.
func DefaultLimits() Limits {
	return Limits{
		MaxExponent: 100_000,
		MaxDigits:   100_000,
	}
}
