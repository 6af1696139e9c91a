package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
)

// GetEvaluatorsToRun returns the evaluators selected by cfg.Engine: every
// registered engine in name order for "all", otherwise the named one.
func GetEvaluatorsToRun(cfg config.AppConfig, factory calc.EvaluatorFactory) []calc.Evaluator {
	if cfg.Engine == "all" {
		names := factory.List()
		evaluators := make([]calc.Evaluator, 0, len(names))
		for _, name := range names {
			if ev, err := factory.Get(name); err == nil {
				evaluators = append(evaluators, ev)
			}
		}
		return evaluators
	}
	if ev, err := factory.Get(cfg.Engine); err == nil {
		return []calc.Evaluator{ev}
	}
	return nil
}

// PrintExecutionConfig prints the expression and limits about to be used.
func PrintExecutionConfig(cfg config.AppConfig, expr calc.Expression, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%s %s %s%s with a timeout of %s%s%s.\n",
		ColorMagenta(), FormatOperand(expr.Left, false), expr.Op.Symbol(), FormatOperand(expr.Right, false), ColorReset(),
		ColorYellow(), cfg.Timeout, ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
}

// PrintExecutionMode prints whether one engine runs or several are compared.
func PrintExecutionMode(evaluators []calc.Evaluator, out io.Writer) {
	var mode string
	switch len(evaluators) {
	case 0:
		mode = "no engine available"
	case 1:
		mode = fmt.Sprintf("Single evaluation with the %s%s%s engine", ColorGreen(), evaluators[0].Name(), ColorReset())
	default:
		mode = fmt.Sprintf("Cross-check of %d engines", len(evaluators))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", mode)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
