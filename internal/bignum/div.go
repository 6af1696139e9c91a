package bignum

// divMod performs long division of trimmed magnitudes, most-significant digit
// first. y must not be zero. The running remainder is a private buffer that is
// shifted and reduced in place; x and y are only read.
func divMod(x, y digits) (quo, rem digits) {
	quo = make(digits, len(x))
	rem = zeroWithCapacity(len(y) + 1).digits
	for i := len(x) - 1; i >= 0; i-- {
		rem = rem.shiftIn(x[i])
		var q uint8
		for cmpDigits(rem, y) >= 0 {
			rem = subDigits(rem, rem, y)
			q++
		}
		quo[i] = q
	}
	return quo.trim(), rem
}

// DivRem returns the truncated quotient and remainder of a/b, such that
// a = q*b + r with |r| < |b|. q is rounded toward zero and r has the sign of
// a. It returns ErrDivisionByZero if b is 0.
func DivRem(a, b Int) (q, r Int, err error) {
	if b.IsZero() {
		return Int{}, Int{}, ErrDivisionByZero
	}
	quo, rem := divMod(a.abs(), b.abs())
	q = Int{neg: a.neg != b.neg, digits: quo}.normalize()
	r = Int{neg: a.neg, digits: rem}.normalize()
	return q, r, nil
}

// Mod returns the remainder of the truncated division a/b. The result has the
// sign of a. It returns ErrDivisionByZero if b is 0.
func Mod(a, b Int) (Int, error) {
	_, r, err := DivRem(a, b)
	return r, err
}

// GCD returns the greatest common divisor of |a| and |b| using Euclid's
// algorithm. The result is never negative and GCD(0, 0) is 0.
func GCD(a, b Int) Int {
	x, y := a.abs().clone(), b.abs().clone()
	for !y.isZero() {
		_, r := divMod(x, y)
		x, y = y, r
	}
	return Int{digits: x}.normalize()
}
