package bignum

import "math/big"

// Int is an arbitrary-precision signed integer.
//
// Every Int handed out by this package is normalized: the digit buffer is
// non-empty, carries no most-significant zeros, and zero is never negative.
type Int struct {
	neg    bool
	digits digits
}

// zeroWithCapacity returns 0 backed by a buffer that can hold at least n
// digits without growing.
func zeroWithCapacity(n int) Int {
	d := make(digits, 1, max(n, 1))
	return Int{digits: d}
}

// normalize restores the canonical form of x.
func (x Int) normalize() Int {
	x.digits = x.digits.trim()
	if x.digits.isZero() {
		x.neg = false
	}
	return x
}

// abs returns the magnitude buffer, treating the zero value as {0}.
func (x Int) abs() digits {
	if len(x.digits) == 0 {
		return digits{0}
	}
	return x.digits
}

// FromInt64 returns the Int holding v.
func FromInt64(v int64) Int {
	u := uint64(v)
	if v < 0 {
		u = uint64(-(v + 1)) + 1
	}
	z := zeroWithCapacity(20)
	z.digits = z.digits[:0]
	for u > 0 {
		z.digits = append(z.digits, uint8(u%10))
		u /= 10
	}
	z.neg = v < 0
	return z.normalize()
}

// FromBig converts a math/big integer.
func FromBig(b *big.Int) Int {
	return MustParse(b.String())
}

// Big returns x as a newly allocated math/big integer.
func (x Int) Big() *big.Int {
	b, _ := new(big.Int).SetString(x.String(), 10)
	return b
}

// Copy returns a deep copy of x that shares no storage with it.
func (x Int) Copy() Int {
	return Int{neg: x.neg, digits: x.abs().clone()}.normalize()
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Int) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// IsZero reports whether x is 0.
func (x Int) IsZero() bool {
	return x.abs().isZero()
}

// Len returns the number of decimal digits of |x|. Zero has one digit.
func (x Int) Len() int {
	return len(x.abs())
}

// Neg returns -x. The negation of zero is zero.
func (x Int) Neg() Int {
	z := x.Copy()
	z.neg = !x.neg
	return z.normalize()
}

// Abs returns |x|.
func (x Int) Abs() Int {
	z := x.Copy()
	z.neg = false
	return z
}

// CmpAbs compares the magnitudes of a and b, ignoring sign. It returns -1 if
// |a| < |b|, 0 if they are equal and +1 if |a| > |b|.
func CmpAbs(a, b Int) int {
	return cmpDigits(a.abs(), b.abs())
}

// Cmp compares a and b as signed values and returns -1, 0 or +1.
func Cmp(a, b Int) int {
	sa, sb := a.Sign(), b.Sign()
	if sa != sb {
		if sa < sb {
			return -1
		}
		return 1
	}
	c := CmpAbs(a, b)
	if sa < 0 {
		return -c
	}
	return c
}

// Equal reports whether a and b hold the same value.
func Equal(a, b Int) bool {
	return Cmp(a, b) == 0
}
