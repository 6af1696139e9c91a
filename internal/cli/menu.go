package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/internal/ui"
)

// MenuConfig holds the settings of an interactive session.
type MenuConfig struct {
	// Engine evaluates every menu operation.
	Engine string
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// Verbose prints results in full.
	Verbose bool
}

type menuOption struct {
	label string
	op    calc.Operator
}

var menuOptions = []menuOption{
	{"Sum", calc.OpAdd},
	{"Subtraction", calc.OpSub},
	{"Multiplication", calc.OpMul},
	{"Division (quotient and remainder)", calc.OpDiv},
	{"Modulo", calc.OpMod},
	{"Greatest common divisor", calc.OpGCD},
}

var (
	optionRandom = len(menuOptions) + 1
	optionExit   = len(menuOptions) + 2
)

// Menu is the numbered-option interactive calculator.
type Menu struct {
	svc     service.Service
	config  MenuConfig
	scanner *bufio.Scanner
	out     io.Writer
}

// NewMenu creates a menu reading choices from in and writing to out.
// A non-positive timeout is replaced by config.DefaultTimeout.
func NewMenu(svc service.Service, in io.Reader, out io.Writer, cfg MenuConfig) *Menu {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &Menu{svc: svc, config: cfg, scanner: scanner, out: out}
}

// Run loops until the exit option is chosen, the input ends, or ctx is done.
// Invalid choices and failed evaluations are reported and the loop
// continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()

		line, ok := m.readLine("Option: ")
		if !ok {
			return m.endOfInput()
		}
		choice, err := strconv.Atoi(line)
		switch {
		case err != nil || choice < 1 || choice > optionExit:
			fmt.Fprintf(m.out, "%sInvalid option: %q%s\n", ColorRed(), line, ColorReset())
		case choice == optionExit:
			fmt.Fprintf(m.out, "%sGoodbye.%s\n", ColorGreen(), ColorReset())
			return nil
		case choice == optionRandom:
			if !m.runRandom() {
				return m.endOfInput()
			}
		default:
			if !m.runOperation(ctx, menuOptions[choice-1].op) {
				return m.endOfInput()
			}
		}
	}
}

func (m *Menu) endOfInput() error {
	fmt.Fprintf(m.out, "\nGoodbye.\n")
	return m.scanner.Err()
}

func (m *Menu) printMenu() {
	fmt.Fprintf(m.out, "\n%sChoose an option:%s\n", ColorBold(), ColorReset())
	for i, o := range menuOptions {
		fmt.Fprintf(m.out, "  %s%d%s - %s\n", ColorYellow(), i+1, ColorReset(), o.label)
	}
	fmt.Fprintf(m.out, "  %s%d%s - Random number from a seed\n", ColorYellow(), optionRandom, ColorReset())
	fmt.Fprintf(m.out, "  %s%d%s - Exit\n", ColorYellow(), optionExit, ColorReset())
}

// readLine prompts and returns the next trimmed line; ok is false at EOF.
func (m *Menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.scanner.Text()), true
}

// runOperation reads two operands and evaluates op. It returns false when
// the input ended.
func (m *Menu) runOperation(ctx context.Context, op calc.Operator) bool {
	a, ok := m.readLine("First number: ")
	if !ok {
		return false
	}
	b, ok := m.readLine("Second number: ")
	if !ok {
		return false
	}

	expr, err := m.svc.ParseExpression(a, op.Symbol(), b)
	if err != nil {
		apperrors.HandleCalculationError(err, 0, m.out, ui.Palette{})
		return true
	}

	evalCtx, cancel := context.WithTimeout(ctx, m.config.Timeout)
	defer cancel()

	start := time.Now()
	res, err := m.svc.Evaluate(evalCtx, m.config.Engine, expr)
	duration := time.Since(start)
	if err != nil {
		apperrors.HandleCalculationError(err, duration, m.out, ui.Palette{})
		return true
	}
	DisplayResult(res, expr, duration, m.config.Verbose, false, m.out)
	return true
}

// runRandom reads a seed and a length and prints the generated number.
func (m *Menu) runRandom() bool {
	seedText, ok := m.readLine("Seed: ")
	if !ok {
		return false
	}
	lengthText, ok := m.readLine("Number of digits: ")
	if !ok {
		return false
	}

	seed, err := strconv.ParseInt(seedText, 10, 64)
	if err != nil {
		fmt.Fprintf(m.out, "%sInvalid seed: %q%s\n", ColorRed(), seedText, ColorReset())
		return true
	}
	length, err := strconv.Atoi(lengthText)
	if err != nil {
		fmt.Fprintf(m.out, "%sInvalid length: %q%s\n", ColorRed(), lengthText, ColorReset())
		return true
	}
	n, err := RandomNumber(seed, length)
	if err != nil {
		fmt.Fprintf(m.out, "%s%v%s\n", ColorRed(), err, ColorReset())
		return true
	}
	fmt.Fprintf(m.out, "Generated number: %s%s%s\n", ColorGreen(), FormatOperand(n, m.config.Verbose), ColorReset())
	return true
}
