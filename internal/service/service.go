// Package service turns textual operands into evaluations. It is the single
// entry point shared by the CLI, batch and HTTP front ends.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// ErrMaxDigitsExceeded is returned when an operand is longer than the
// configured limit.
var ErrMaxDigitsExceeded = errors.New("maximum operand length exceeded")

// Service evaluates textual expressions.
type Service interface {
	// Calculate parses a, op and b and evaluates them with engine.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - engine: The engine name.
	//   - a, op, b: The operands and operator as text.
	//
	// Returns:
	//   - calc.Result: The result.
	//   - error: An apperrors.InputError for bad input, or the evaluation error.
	Calculate(ctx context.Context, engine, a, op, b string) (calc.Result, error)

	// ParseExpression parses a, op and b without evaluating them.
	ParseExpression(a, op, b string) (calc.Expression, error)

	// Evaluate runs an already-parsed expression with engine.
	Evaluate(ctx context.Context, engine string, expr calc.Expression) (calc.Result, error)
}

// CalculatorService implements Service on top of an EvaluatorFactory.
type CalculatorService struct {
	factory   calc.EvaluatorFactory
	maxDigits int
}

var _ Service = (*CalculatorService)(nil)

// NewCalculatorService creates a new CalculatorService.
//
// Parameters:
//   - factory: The factory to retrieve evaluators from.
//   - maxDigits: The maximum operand length in digits (0 for no limit).
func NewCalculatorService(factory calc.EvaluatorFactory, maxDigits int) *CalculatorService {
	return &CalculatorService{factory: factory, maxDigits: maxDigits}
}

// ParseExpression parses a textual expression, enforcing the operand length
// limit.
//
// Parameters:
//   - a, op, b: The operands and operator as text.
//
// Returns:
//   - calc.Expression: The parsed expression.
//   - error: An apperrors.InputError naming the offending field.
func (s *CalculatorService) ParseExpression(a, op, b string) (calc.Expression, error) {
	left, err := s.parseOperand(a)
	if err != nil {
		return calc.Expression{}, apperrors.NewInputError("a", err)
	}
	operator, err := calc.ParseOperator(op)
	if err != nil {
		return calc.Expression{}, apperrors.NewInputError("op", err)
	}
	right, err := s.parseOperand(b)
	if err != nil {
		return calc.Expression{}, apperrors.NewInputError("b", err)
	}
	return calc.Expression{Left: left, Op: operator, Right: right}, nil
}

func (s *CalculatorService) parseOperand(text string) (bignum.Int, error) {
	x, err := bignum.Parse(text)
	if err != nil {
		return bignum.Int{}, err
	}
	if s.maxDigits > 0 && x.Len() > s.maxDigits {
		return bignum.Int{}, fmt.Errorf("%w: %d digits, limit is %d", ErrMaxDigitsExceeded, x.Len(), s.maxDigits)
	}
	return x, nil
}

// Calculate implements Service.
func (s *CalculatorService) Calculate(ctx context.Context, engine, a, op, b string) (calc.Result, error) {
	expr, err := s.ParseExpression(a, op, b)
	if err != nil {
		return calc.Result{}, err
	}
	return s.Evaluate(ctx, engine, expr)
}

// Evaluate implements Service. A zero divisor is reported as an input error
// on field "b".
func (s *CalculatorService) Evaluate(ctx context.Context, engine string, expr calc.Expression) (calc.Result, error) {
	ev, err := s.factory.Get(engine)
	if err != nil {
		return calc.Result{}, err
	}
	res, err := ev.Evaluate(ctx, expr)
	if errors.Is(err, bignum.ErrDivisionByZero) {
		return calc.Result{}, apperrors.NewInputError("b", err)
	}
	return res, err
}
