// Package bignum implements arbitrary-precision signed integers stored as
// base-10 digit sequences.
//
// An Int is an immutable value: every operation returns a freshly allocated
// result and never modifies its operands. The zero value of Int is the number 0
// and is ready to use.
//
// The algorithms are the schoolbook ones: digit-wise addition and subtraction
// with carry/borrow, grade-school multiplication, long division driven by
// repeated subtraction, and Euclid's algorithm for the greatest common divisor.
// Division is truncating: the quotient is rounded toward zero and the
// remainder carries the sign of the dividend, as with Go's / and % operators.
//
// The package performs no I/O and never logs. All failures are reported as
// errors: ErrInvalidCharacter (wrapped in a *ParseError) and ErrDivisionByZero.
package bignum
