package cli

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/agbru/bigcalc/internal/bignum"
)

// ErrInvalidLength is returned by RandomNumber for a non-positive length.
var ErrInvalidLength = errors.New("length must be at least 1")

// RandomNumber returns a pseudo-random positive integer with exactly length
// digits. The first digit is in 1..9 and the rest in 0..9. The same seed
// always yields the same number.
func RandomNumber(seed int64, length int) (bignum.Int, error) {
	if length < 1 {
		return bignum.Int{}, ErrInvalidLength
	}
	rng := rand.New(rand.NewSource(seed))

	var b strings.Builder
	b.Grow(length)
	b.WriteByte(byte('1' + rng.Intn(9)))
	for i := 1; i < length; i++ {
		b.WriteByte(byte('0' + rng.Intn(10)))
	}
	return bignum.Parse(b.String())
}
