package decimal

import (
	"fmt"
	"math/big"
	"sync"
)

// bpow10 is a cache of powers of 10, where bpow10[x] = 10^x.
// Cached values are shared and must never be mutated.
var bpow10 = [...]*big.Int{
	mustParseBig("1"),
	mustParseBig("10"),
	mustParseBig("100"),
	mustParseBig("1000"),
	mustParseBig("10000"),
	mustParseBig("100000"),
	mustParseBig("1000000"),
	mustParseBig("10000000"),
	mustParseBig("100000000"),
	mustParseBig("1000000000"),
	mustParseBig("10000000000"),
	mustParseBig("100000000000"),
	mustParseBig("1000000000000"),
	mustParseBig("10000000000000"),
	mustParseBig("100000000000000"),
	mustParseBig("1000000000000000"),
	mustParseBig("10000000000000000"),
	mustParseBig("100000000000000000"),
	mustParseBig("1000000000000000000"),
	mustParseBig("10000000000000000000"),
}

var (
	bigFive = mustParseBig("5")
	bigTen  = mustParseBig("10")
)

// mustParseBig converts a string to *big.Int, panicking on error.
// Use only for package variable initialization and test code!
func mustParseBig(s string) *big.Int {
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(fmt.Errorf("mustParseBig(%q) failed: parsing error", s))
	}
	return z
}

// pow10 returns 10^power as a read-only value: small powers come from the
// shared cache, larger ones are computed fresh.
func pow10(power int) *big.Int {
	if power < len(bpow10) {
		return bpow10[power]
	}
	e := getBig()
	defer putBig(e)
	e.SetInt64(int64(power))
	return new(big.Int).Exp(bigTen, e, nil)
}

// lsh calculates x * 10^shift into a fresh value.
func lsh(x *big.Int, shift int) *big.Int {
	return new(big.Int).Mul(x, pow10(shift))
}

// bpool is a cache of reusable *big.Int scratch values.
var bpool = sync.Pool{
	New: func() any {
		return new(big.Int)
	},
}

// getBig obtains a scratch *big.Int from the pool.
func getBig() *big.Int {
	return bpool.Get().(*big.Int)
}

// putBig returns the scratch *big.Int into the pool.
func putBig(b *big.Int) {
	bpool.Put(b)
}

// prec returns the length of z in decimal digits; zero has no digits.
// The sign of z is ignored.
func prec(z *big.Int) int {
	if z.Sign() == 0 {
		return 0
	}
	a := z
	if a.Sign() < 0 {
		abs := getBig()
		defer putBig(abs)
		a = abs.Abs(z)
	}
	if a.Cmp(bpow10[len(bpow10)-1]) >= 0 {
		return len(a.Text(10))
	}
	left, right := 0, len(bpow10)
	for left < right {
		mid := (left + right) / 2
		if a.Cmp(bpow10[mid]) < 0 {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}

// overDigits reports whether z has more than max decimal digits.
// max == 0 means unbounded. Bit-length bounds answer almost every call
// without rendering the digits.
func overDigits(z *big.Int, max uint32) bool {
	if max == 0 || z.Sign() == 0 {
		return false
	}
	bits := int64(z.BitLen())
	// digits(z) lies within [lo, hi]; 30102 <= 1e5*log10(2) <= 30103.
	lo := (bits-1)*30102/100000 + 1
	hi := bits*30103/100000 + 1
	switch {
	case hi <= int64(max):
		return false
	case lo > int64(max):
		return true
	}
	return int64(prec(z)) > int64(max)
}
