package calc

import (
	"fmt"
	"math/big"

	"github.com/agbru/bigcalc/internal/bignum"
)

// SchoolbookEngine evaluates expressions with the decimal digit arithmetic of
// package bignum.
type SchoolbookEngine struct{}

// Name returns the engine identifier.
func (SchoolbookEngine) Name() string { return "schoolbook" }

// EvaluateCore performs the operation on the decimal digit representation.
func (SchoolbookEngine) EvaluateCore(expr Expression) (Result, error) {
	a, b := expr.Left, expr.Right
	switch expr.Op {
	case OpAdd:
		return Result{Value: bignum.Add(a, b)}, nil
	case OpSub:
		return Result{Value: bignum.Sub(a, b)}, nil
	case OpMul:
		return Result{Value: bignum.Mul(a, b)}, nil
	case OpDiv:
		q, r, err := bignum.DivRem(a, b)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: q, Remainder: &r}, nil
	case OpMod:
		r, err := bignum.Mod(a, b)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: r}, nil
	case OpGCD:
		return Result{Value: bignum.GCD(a, b)}, nil
	}
	return Result{}, fmt.Errorf("%w: %v", ErrUnknownOperator, expr.Op)
}

// ReferenceEngine evaluates expressions with math/big. It uses truncated
// division, the same convention as the schoolbook engine, and serves as an
// oracle when engines are compared.
type ReferenceEngine struct{}

// Name returns the engine identifier.
func (ReferenceEngine) Name() string { return "reference" }

// EvaluateCore performs the operation on big.Int values.
func (ReferenceEngine) EvaluateCore(expr Expression) (Result, error) {
	a, b := expr.Left.Big(), expr.Right.Big()
	z := new(big.Int)
	switch expr.Op {
	case OpAdd:
		z.Add(a, b)
	case OpSub:
		z.Sub(a, b)
	case OpMul:
		z.Mul(a, b)
	case OpDiv:
		if b.Sign() == 0 {
			return Result{}, bignum.ErrDivisionByZero
		}
		r := new(big.Int)
		z.QuoRem(a, b, r)
		rem := bignum.FromBig(r)
		return Result{Value: bignum.FromBig(z), Remainder: &rem}, nil
	case OpMod:
		if b.Sign() == 0 {
			return Result{}, bignum.ErrDivisionByZero
		}
		z.Rem(a, b)
	case OpGCD:
		z.GCD(nil, nil, a.Abs(a), b.Abs(b))
	default:
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownOperator, expr.Op)
	}
	return Result{Value: bignum.FromBig(z)}, nil
}
