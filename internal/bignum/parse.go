package bignum

import (
	"strings"
	"unicode/utf8"
)

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Parse converts decimal text into an Int.
//
// Leading whitespace is skipped, then an optional '+' or '-' sign, then any
// leading zeros. Everything that remains must be a decimal digit, otherwise a
// *ParseError is returned. Text that is empty after the sign and zeros are
// removed parses as 0.
func Parse(s string) (Int, error) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	for i < len(s) && s[i] == '0' {
		i++
	}
	body := s[i:]
	if body == "" {
		return zeroWithCapacity(1), nil
	}

	d := make(digits, len(body))
	for j := 0; j < len(body); j++ {
		c := body[j]
		if c < '0' || c > '9' {
			r, _ := utf8.DecodeRuneInString(body[j:])
			return Int{}, &ParseError{Offset: i + j, Char: r}
		}
		d[len(body)-1-j] = c - '0'
	}
	return Int{neg: neg, digits: d}.normalize(), nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// literals known to be valid.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// String returns the canonical decimal form of x: a '-' for negative values,
// then the digits most-significant first with no leading zeros.
func (x Int) String() string {
	d := x.abs()
	var b strings.Builder
	b.Grow(len(d) + 1)
	if x.neg && !d.isZero() {
		b.WriteByte('-')
	}
	for i := len(d) - 1; i >= 0; i-- {
		b.WriteByte('0' + d[i])
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
