package bignum

// digits is the raw decimal digit buffer backing an Int, least-significant
// digit first. A trimmed buffer is non-empty and has no most-significant zero
// unless it is exactly {0}.
type digits []uint8

// clone returns an independent copy of d.
func (d digits) clone() digits {
	c := make(digits, len(d))
	copy(c, d)
	return c
}

// trim drops most-significant zeros, keeping at least one digit.
func (d digits) trim() digits {
	n := len(d)
	for n > 1 && d[n-1] == 0 {
		n--
	}
	if n == 0 {
		return digits{0}
	}
	return d[:n]
}

func (d digits) isZero() bool {
	return len(d) == 0 || (len(d) == 1 && d[0] == 0)
}

// shiftIn multiplies the magnitude held in d by ten and adds digit, in place.
// It may reallocate, so callers must use the returned buffer. Only working
// buffers owned by the caller may be passed here.
func (d digits) shiftIn(digit uint8) digits {
	if d.isZero() {
		if len(d) == 0 {
			return append(d, digit)
		}
		d[0] = digit
		return d
	}
	d = append(d, 0)
	copy(d[1:], d[:len(d)-1])
	d[0] = digit
	return d
}

// cmpDigits compares two trimmed magnitudes.
func cmpDigits(x, y digits) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// addDigits returns x+y in a new buffer.
func addDigits(x, y digits) digits {
	n := max(len(x), len(y))
	z := make(digits, 0, n+1)
	var carry uint8
	for i := 0; i < n; i++ {
		s := carry
		if i < len(x) {
			s += x[i]
		}
		if i < len(y) {
			s += y[i]
		}
		z = append(z, s%10)
		carry = s / 10
	}
	if carry > 0 {
		z = append(z, carry)
	}
	return z.trim()
}

// subDigits stores x-y into dst and returns the trimmed result. It requires
// x >= y and len(dst) >= len(x). dst may be x itself: each position is read
// before it is written.
func subDigits(dst, x, y digits) digits {
	var borrow int8
	for i := range x {
		v := int8(x[i]) - borrow
		if i < len(y) {
			v -= int8(y[i])
		}
		if v < 0 {
			v += 10
			borrow = 1
		} else {
			borrow = 0
		}
		dst[i] = uint8(v)
	}
	return dst[:len(x)].trim()
}
