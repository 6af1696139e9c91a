package bignum

// subAbs returns |a| - |b| as a non-negative Int.
// It panics if |a| < |b|; callers establish the ordering with CmpAbs first.
func subAbs(a, b Int) Int {
	x, y := a.abs(), b.abs()
	if cmpDigits(x, y) < 0 {
		panic("bignum: subAbs called with |a| < |b|")
	}
	return Int{digits: subDigits(make(digits, len(x)), x, y)}.normalize()
}

// Add returns a+b.
func Add(a, b Int) Int {
	if a.neg == b.neg {
		return Int{neg: a.neg, digits: addDigits(a.abs(), b.abs())}.normalize()
	}
	switch CmpAbs(a, b) {
	case 0:
		return zeroWithCapacity(1)
	case 1:
		z := subAbs(a, b)
		z.neg = a.neg
		return z.normalize()
	default:
		z := subAbs(b, a)
		z.neg = b.neg
		return z.normalize()
	}
}

// Sub returns a-b.
func Sub(a, b Int) Int {
	return Add(a, b.Neg())
}

// Mul returns a*b using grade-school multiplication.
func Mul(a, b Int) Int {
	x, y := a.abs(), b.abs()
	if x.isZero() || y.isZero() {
		return zeroWithCapacity(1)
	}

	// Every slot stays in [0, 9] between steps, so a slot plus 9*9 plus an
	// incoming carry never exceeds 99.
	z := make(digits, len(x)+len(y))
	for i, dx := range x {
		if dx == 0 {
			continue
		}
		var carry uint8
		for j, dy := range y {
			t := z[i+j] + dx*dy + carry
			z[i+j] = t % 10
			carry = t / 10
		}
		for k := i + len(y); carry > 0; k++ {
			t := z[k] + carry
			z[k] = t % 10
			carry = t / 10
		}
	}
	return Int{neg: a.neg != b.neg, digits: z}.normalize()
}
