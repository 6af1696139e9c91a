//go:build gmp

// The GMP engine requires the gmp build tag and libgmp installed on the
// system (libgmp-dev on Debian/Ubuntu, brew install gmp on macOS).

package calc

import (
	"fmt"

	"github.com/ncw/gmp"

	"github.com/agbru/bigcalc/internal/bignum"
)

func init() {
	_ = RegisterEngine("gmp", func() coreEvaluator { return GMPEngine{} })
}

// GMPEngine evaluates expressions with the GNU Multiple Precision library.
type GMPEngine struct{}

// Name returns the engine identifier.
func (GMPEngine) Name() string { return "gmp" }

func toGMP(x bignum.Int) *gmp.Int {
	z, _ := new(gmp.Int).SetString(x.String(), 10)
	return z
}

func fromGMP(z *gmp.Int) bignum.Int {
	return bignum.MustParse(z.String())
}

// EvaluateCore performs the operation with GMP.
func (GMPEngine) EvaluateCore(expr Expression) (Result, error) {
	a, b := toGMP(expr.Left), toGMP(expr.Right)
	z := new(gmp.Int)
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
		r := new(gmp.Int)
		z.QuoRem(a, b, r)
		rem := fromGMP(r)
		return Result{Value: fromGMP(z), Remainder: &rem}, nil
	case OpMod:
		if b.Sign() == 0 {
			return Result{}, bignum.ErrDivisionByZero
		}
		z.Rem(a, b)
	case OpGCD:
		a.Abs(a)
		b.Abs(b)
		// mpz_gcd requires positive inputs through this binding.
		switch {
		case a.Sign() == 0:
			z.Set(b)
		case b.Sign() == 0:
			z.Set(a)
		default:
			z.GCD(nil, nil, a, b)
		}
	default:
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownOperator, expr.Op)
	}
	return Result{Value: fromGMP(z)}, nil
}
