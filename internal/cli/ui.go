// Package cli implements bigcalc's terminal front end: the interactive menu,
// evaluation progress, result formatting, file output and shell completion.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/ui"
)

const (
	// TruncationLimit is the digit count above which results are shown
	// truncated unless verbose output is requested.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when a
	// value is truncated.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner refresh interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the progress bar in characters. It
	// shrinks on narrow terminals.
	ProgressBarWidth = 20
	// minProgressBarWidth is the narrowest bar drawn.
	minProgressBarWidth = 5
	// progressLabelWidth reserves room for the spinner and counters.
	progressLabelWidth = 40
)

// Aliases of the ui color helpers.
func ColorReset() string   { return ui.ColorReset() }
func ColorRed() string     { return ui.ColorRed() }
func ColorGreen() string   { return ui.ColorGreen() }
func ColorYellow() string  { return ui.ColorYellow() }
func ColorBlue() string    { return ui.ColorBlue() }
func ColorMagenta() string { return ui.ColorMagenta() }
func ColorCyan() string    { return ui.ColorCyan() }
func ColorBold() string    { return ui.ColorBold() }

// FormatExecutionDuration renders d in µs below a millisecond, in ms below a
// second, and with time.Duration's format otherwise.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d == 0:
		return "< 1µs"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// progressBar renders completed out of total as a bar of the given length.
func progressBar(completed, total, length int) string {
	if total <= 0 {
		return strings.Repeat("░", length)
	}
	if completed > total {
		completed = total
	}
	count := completed * length / total
	return strings.Repeat("█", count) + strings.Repeat("░", length-count)
}

// progressBarWidth fits the bar to the terminal behind out.
func progressBarWidth(out io.Writer) int {
	width := ui.TerminalWidth(out, ProgressBarWidth+progressLabelWidth) - progressLabelWidth
	return max(minProgressBarWidth, min(ProgressBarWidth, width))
}

// DisplayProgress shows a spinner with the number of finished engines until
// events is closed. It is meant to run on its own goroutine and calls wg.Done
// on return.
//
// Parameters:
//   - wg: Signalled when the display routine exits.
//   - events: Receives one event per finished evaluation.
//   - numEngines: The number of engines running.
//   - out: The writer the spinner renders to.
func DisplayProgress(wg *sync.WaitGroup, events <-chan calc.Event, numEngines int, out io.Writer) {
	defer wg.Done()
	if numEngines <= 0 {
		for range events {
		}
		return
	}

	barWidth := progressBarWidth(out)
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(fmt.Sprintf(" Evaluating: 0/%d [%s]", numEngines, progressBar(0, numEngines, barWidth)))
	s.Start()

	done, failed := 0, 0
	for e := range events {
		done++
		if e.Err != nil {
			failed++
		}
		s.UpdateSuffix(fmt.Sprintf(" Evaluating: %d/%d [%s]", done, numEngines, progressBar(done, numEngines, barWidth)))
	}
	s.Stop()

	status := ColorGreen() + "done" + ColorReset()
	if failed > 0 {
		status = fmt.Sprintf("%s%d failed%s", ColorRed(), failed, ColorReset())
	}
	fmt.Fprintf(out, "Evaluated: %d/%d [%s] %s\n", done, numEngines, progressBar(done, numEngines, barWidth), status)
}

// truncateDigits shortens s to its DisplayEdges leading and trailing digits
// when it is longer than TruncationLimit.
func truncateDigits(s string) (string, bool) {
	digits := strings.TrimPrefix(s, "-")
	if len(digits) <= TruncationLimit {
		return s, false
	}
	return s[:len(s)-len(digits)] + digits[:DisplayEdges] + "..." + digits[len(digits)-DisplayEdges:], true
}

// FormatOperand renders x for display: with thousands separators when it is
// short or verbose is set, truncated otherwise.
func FormatOperand(x bignum.Int, verbose bool) string {
	s := x.String()
	if verbose {
		return formatNumberString(s)
	}
	if t, truncated := truncateDigits(s); truncated {
		return t
	}
	return formatNumberString(s)
}

// DisplayResult prints an evaluation result. Values longer than
// TruncationLimit digits are truncated unless verbose is set. With details,
// timing and size metadata are printed first.
//
// Parameters:
//   - res: The evaluation result.
//   - expr: The evaluated expression.
//   - duration: The evaluation time.
//   - verbose: Print the full value.
//   - details: Print the detailed analysis section.
//   - out: The destination writer.
func DisplayResult(res calc.Result, expr calc.Expression, duration time.Duration, verbose, details bool, out io.Writer) {
	if details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ColorBold(), ColorReset())
		fmt.Fprintf(out, "Evaluation time   : %s%s%s\n", ColorGreen(), FormatExecutionDuration(duration), ColorReset())
		fmt.Fprintf(out, "Operand digits    : %s%s%s %s %s%s%s\n",
			ColorCyan(), formatNumberString(fmt.Sprint(expr.Left.Len())), ColorReset(),
			expr.Op.Symbol(),
			ColorCyan(), formatNumberString(fmt.Sprint(expr.Right.Len())), ColorReset())
		fmt.Fprintf(out, "Result digits     : %s%s%s\n", ColorCyan(), formatNumberString(fmt.Sprint(res.Value.Len())), ColorReset())
		if res.Remainder != nil {
			fmt.Fprintf(out, "Remainder digits  : %s%s%s\n", ColorCyan(), formatNumberString(fmt.Sprint(res.Remainder.Len())), ColorReset())
		}
	}

	fmt.Fprintf(out, "\n%s--- Result ---%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "%s%s %s %s%s =\n", ColorMagenta(),
		FormatOperand(expr.Left, verbose), expr.Op.Symbol(), FormatOperand(expr.Right, verbose), ColorReset())
	fmt.Fprintf(out, "%s%s%s\n", ColorGreen(), FormatOperand(res.Value, verbose), ColorReset())
	if res.Remainder != nil {
		fmt.Fprintf(out, "Remainder = %s%s%s\n", ColorGreen(), FormatOperand(*res.Remainder, verbose), ColorReset())
	}

	_, truncated := truncateDigits(res.Value.String())
	if !verbose && truncated {
		fmt.Fprintf(out, "(Tip: use the %s-v%s option to display the full value)\n", ColorYellow(), ColorReset())
	}
}

// formatNumberString inserts thousands separators into a decimal string.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	first := n % 3
	if first == 0 {
		first = 3
	}
	builder.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
