package bignum

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter is wrapped by every *ParseError.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrDivisionByZero is returned by DivRem and Mod when the divisor is 0.
	ErrDivisionByZero = errors.New("division by zero")
)

// ParseError reports a character that is not a decimal digit. Offset is the
// byte offset of Char within the parsed text.
type ParseError struct {
	Offset int
	Char   rune
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bignum: %v %q at offset %d", ErrInvalidCharacter, e.Char, e.Offset)
}

// Unwrap allows errors.Is(err, ErrInvalidCharacter).
func (e *ParseError) Unwrap() error { return ErrInvalidCharacter }
