// Package decimal implements exact scaled-integer decimal arithmetic.
// Invariants:
//   - A Dec value is coef · 10^(−scale) with scale >= 0.
//   - The canonical zero is the zero value Dec{} (nil coef, scale 0).
//   - coef is never mutated after a Dec is constructed; Dec values are
//     immutable and safe for concurrent use.
//   - Operations never round: a result is either mathematically exact or an
//     error (ErrNonTerminatingDivision, ErrResultTooLarge, ...).
//   - Equality is value equality: 0.3, 0.30 and 0.300 are the same number.
package decimal
