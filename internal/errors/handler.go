package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/bignum"
)

// ColorProvider supplies terminal color codes without importing the ui
// package.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Red() string    { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// ExitCode returns the process exit code for err's class. Unparseable
// operands and zero divisors count as input errors even when they were not
// wrapped in an InputError.
func ExitCode(err error) int {
	var (
		parseErr *bignum.ParseError
		cfgErr   ConfigError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case IsInputError(err), errors.Is(err, bignum.ErrDivisionByZero), errors.As(err, &parseErr):
		return ExitErrorInput
	}
	return ExitErrorGeneric
}

// InputMessage phrases an input error for the user. Zero divisors and bad
// characters get a fixed sentence; other errors keep their own text.
func InputMessage(err error) string {
	var parseErr *bignum.ParseError
	switch {
	case errors.Is(err, bignum.ErrDivisionByZero):
		return "Division by zero."
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Invalid character %q at position %d.", parseErr.Char, parseErr.Offset)
	}
	return err.Error()
}

// HandleCalculationError prints a status line describing err and returns
// ExitCode(err).
//
// Parameters:
//   - err: The error that occurred.
//   - duration: The elapsed time before the failure; omitted when zero.
//   - out: The io.Writer to which the message is written.
//   - colors: Provider for terminal color codes (nil for no colors).
//
// Returns:
//   - int: The exit code for the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	code := ExitCode(err)
	if code == ExitSuccess {
		return code
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	var elapsed string
	if duration > 0 {
		elapsed = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", elapsed)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
	case ExitErrorInput:
		fmt.Fprintf(out, "%sStatus: Failure. %s%s\n", colors.Red(), InputMessage(err), colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sStatus: Failure. Configuration error: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
