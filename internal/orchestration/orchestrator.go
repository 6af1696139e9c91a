// Package orchestration runs one or more engines on the same expression and
// reconciles their answers.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/ui"
)

// EvaluationResult is the outcome of one engine's evaluation.
type EvaluationResult struct {
	// Name is the engine name.
	Name string
	// Result is the engine's answer. It is the zero Result if Err is set.
	Result calc.Result
	// Duration is the wall time of the evaluation.
	Duration time.Duration
	// Err is the evaluation error, if any.
	Err error
}

// ExecuteEvaluations runs every evaluator concurrently on expr while a
// progress display counts finished engines on out. Results are returned in
// the order of evaluators.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - evaluators: The engines to run.
//   - expr: The expression every engine evaluates.
//   - out: The io.Writer for the progress display.
//
// Returns:
//   - []EvaluationResult: One result per evaluator.
func ExecuteEvaluations(ctx context.Context, evaluators []calc.Evaluator, expr calc.Expression, out io.Writer) []EvaluationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]EvaluationResult, len(evaluators))
	events := make(chan calc.Event, len(evaluators))
	progress := calc.NewChannelObserver(events)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, events, len(evaluators), out)

	for i, ev := range evaluators {
		idx, evaluator := i, ev
		g.Go(func() error {
			start := time.Now()
			res, err := evaluator.Evaluate(ctx, expr)
			results[idx] = EvaluationResult{
				Name: evaluator.Name(), Result: res, Duration: time.Since(start), Err: err,
			}
			progress.Observe(calc.Event{
				Engine: evaluator.Name(), Expr: expr, Result: res, Duration: results[idx].Duration, Err: err,
			})
			return nil
		})
	}

	_ = g.Wait()
	close(events)
	displayWg.Wait()

	return results
}

// sameResult reports whether two results carry the same value and remainder.
func sameResult(a, b calc.Result) bool {
	if !bignum.Equal(a.Value, b.Value) {
		return false
	}
	if (a.Remainder == nil) != (b.Remainder == nil) {
		return false
	}
	return a.Remainder == nil || bignum.Equal(*a.Remainder, *b.Remainder)
}

// AnalyzeComparisonResults prints a summary table of results, fastest
// successful engine first, and checks that every successful engine agrees.
// When they do, the agreed result is displayed.
//
// Parameters:
//   - results: The results to analyze. The slice is sorted in place.
//   - expr: The evaluated expression.
//   - cfg: The application configuration.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: ExitSuccess, ExitErrorMismatch when engines disagree, or the exit
//     code of the first failure when no engine succeeded.
func AnalyzeComparisonResults(results []EvaluationResult, expr calc.Expression, cfg config.AppConfig, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var first *EvaluationResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sEngine%s\t%sDuration%s\t%sDigits%s\t%sStatus%s\n",
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(),
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset())

	for i := range results {
		res := &results[i]
		var status, digits string
		if res.Err != nil {
			status = fmt.Sprintf("%sFailure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			digits = "-"
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%sSuccess%s", ui.ColorGreen(), ui.ColorReset())
			digits = fmt.Sprint(res.Result.Value.Len())
			successCount++
			if first == nil {
				first = res
			}
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), cli.FormatExecutionDuration(res.Duration), ui.ColorReset(),
			digits, status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could evaluate the expression.\n")
		return apperrors.HandleCalculationError(firstError, 0, out, ui.Palette{})
	}

	for _, res := range results {
		if res.Err == nil && !sameResult(res.Result, first.Result) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The engines disagree on the result.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	cli.DisplayResult(first.Result, expr, first.Duration, cfg.Verbose, cfg.Details, out)
	return apperrors.ExitSuccess
}
