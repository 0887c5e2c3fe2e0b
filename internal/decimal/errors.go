package decimal

import "errors"

var (
	// ErrParse reports a literal that is not a plain decimal number.
	ErrParse = errors.New("invalid decimal literal")
	// ErrDivisionByZero reports a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNonTerminatingDivision reports a quotient with no finite decimal form.
	ErrNonTerminatingDivision = errors.New("non-terminating decimal division")
	// ErrUnsupportedExponent reports a fractional or negative exponent.
	ErrUnsupportedExponent = errors.New("unsupported exponent")
	// ErrResultTooLarge reports a result that exceeds the configured limits.
	ErrResultTooLarge = errors.New("result too large")
)
