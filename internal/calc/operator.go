package calc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOperator is returned when an operator symbol or name is not recognized.
var ErrUnknownOperator = errors.New("unknown operator")

// Operator identifies one of the supported big-integer operations.
type Operator int

const (
	OpAdd Operator = iota + 1
	OpSub
	OpMul
	OpDiv
	OpMod
	OpGCD
)

var operatorInfo = map[Operator]struct {
	symbol string
	name   string
}{
	OpAdd: {"+", "add"},
	OpSub: {"-", "sub"},
	OpMul: {"*", "mul"},
	OpDiv: {"/", "div"},
	OpMod: {"%", "mod"},
	OpGCD: {"gcd", "gcd"},
}

// Operators lists every operator in display order.
func Operators() []Operator {
	return []Operator{OpAdd, OpSub, OpMul, OpDiv, OpMod, OpGCD}
}

// ParseOperator accepts an operator symbol ("+", "-", "*", "/", "%") or its
// name ("add", "sub", "mul", "div", "mod", "gcd"), case-insensitively.
func ParseOperator(s string) (Operator, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for op, info := range operatorInfo {
		if s == info.symbol || s == info.name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Symbol returns the infix symbol of the operator.
func (o Operator) Symbol() string {
	if info, ok := operatorInfo[o]; ok {
		return info.symbol
	}
	return "?"
}

// String returns the operator name used in logs and metric labels.
func (o Operator) String() string {
	if info, ok := operatorInfo[o]; ok {
		return info.name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.Symbol()), nil
}
