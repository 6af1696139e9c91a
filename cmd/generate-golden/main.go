// Command generate-golden writes the arithmetic golden file used by the
// bignum tests. Every expected value is computed with math/big, which serves
// as the oracle.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// GoldenData is one test case in the golden file. Quotient and remainder
// are truncated toward zero.
type GoldenData struct {
	A          string `json:"a"`
	B          string `json:"b"`
	Sum        string `json:"sum"`
	Difference string `json:"difference"`
	Product    string `json:"product"`
	Quotient   string `json:"quotient"`
	Remainder  string `json:"remainder"`
	GCD        string `json:"gcd"`
}

// fixedPairs cover signs, carries, borrows and boundary magnitudes.
var fixedPairs = [][2]string{
	{"0", "1"},
	{"1", "1"},
	{"999", "1"},
	{"5", "8"},
	{"-5", "8"},
	{"123", "456"},
	{"17", "5"},
	{"-17", "5"},
	{"17", "-5"},
	{"-17", "-5"},
	{"48", "18"},
	{"0", "-7"},
	{"1000000000000000000000000000000", "1000000000000007"},
	{"-999999999999999999999999999999999999999", "99999999999"},
	{"170141183460469231731687303715884105727", "2305843009213693951"},
	{"1000000000000000000000000000000000000000", "-100000000000000000000000000000000000000"},
	{"123456789012345678901234567890", "987654321"},
}

func main() {
	outputDir := flag.String("out", "internal/bignum/testdata", "Output directory for the golden file")
	random := flag.Int("random", 13, "Number of additional random pairs")
	seed := flag.Int64("seed", 42, "Seed for the random pairs")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	pairs := append([][2]string{}, fixedPairs...)
	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *random; i++ {
		pairs = append(pairs, [2]string{randomDecimal(rng, 1+rng.Intn(40)), randomDecimal(rng, 1+rng.Intn(30))})
	}

	data := make([]GoldenData, 0, len(pairs))
	for _, p := range pairs {
		gd, err := compute(p[0], p[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing %s, %s: %v\n", p[0], p[1], err)
			os.Exit(1)
		}
		data = append(data, gd)
	}

	filename := filepath.Join(*outputDir, "arith_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d cases to %s\n", len(data), filename)
}

// randomDecimal returns a signed decimal with n digits and a non-zero
// leading digit.
func randomDecimal(rng *rand.Rand, n int) string {
	var b strings.Builder
	if rng.Intn(2) == 0 {
		b.WriteByte('-')
	}
	b.WriteByte(byte('1' + rng.Intn(9)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + rng.Intn(10)))
	}
	return b.String()
}

func compute(as, bs string) (GoldenData, error) {
	a, ok := new(big.Int).SetString(as, 10)
	if !ok {
		return GoldenData{}, fmt.Errorf("invalid operand %q", as)
	}
	b, ok := new(big.Int).SetString(bs, 10)
	if !ok || b.Sign() == 0 {
		return GoldenData{}, fmt.Errorf("invalid divisor %q", bs)
	}
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	return GoldenData{
		A:          as,
		B:          bs,
		Sum:        new(big.Int).Add(a, b).String(),
		Difference: new(big.Int).Sub(a, b).String(),
		Product:    new(big.Int).Mul(a, b).String(),
		Quotient:   q.String(),
		Remainder:  r.String(),
		GCD:        new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b)).String(),
	}, nil
}
