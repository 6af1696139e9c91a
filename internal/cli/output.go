package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
)

// OutputConfig controls how a result is presented.
type OutputConfig struct {
	// OutputFile receives the result when non-empty.
	OutputFile string
	// Quiet prints only the value.
	Quiet bool
	// Verbose prints values in full.
	Verbose bool
	// Details prints the analysis section.
	Details bool
}

// WriteResultToFile writes res and its metadata to config.OutputFile,
// creating parent directories as needed. It does nothing when OutputFile is
// empty.
//
// Parameters:
//   - res: The evaluation result.
//   - expr: The evaluated expression.
//   - duration: The evaluation time.
//   - engine: The engine that produced res.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(res calc.Result, expr calc.Expression, duration time.Duration, engine string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# bigcalc result\n")
	fmt.Fprintf(&b, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "# Engine: %s\n", engine)
	fmt.Fprintf(&b, "# Duration: %s\n", duration)
	fmt.Fprintf(&b, "# Operation: %s\n", expr.Op)
	fmt.Fprintf(&b, "# Digits: %d\n", res.Value.Len())
	fmt.Fprintf(&b, "\n%s\n%s\n%s\n=\n", expr.Left, expr.Op.Symbol(), expr.Right)
	b.WriteString(FormatQuietResult(res))
	b.WriteByte('\n')

	if err := os.WriteFile(config.OutputFile, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult renders the bare value for scripting. A division result
// is rendered as the quotient and the remainder on two lines.
func FormatQuietResult(res calc.Result) string {
	if res.Remainder != nil {
		return res.Value.String() + "\n" + res.Remainder.String()
	}
	return res.Value.String()
}

// DisplayQuietResult writes FormatQuietResult(res) and a newline to out.
func DisplayQuietResult(out io.Writer, res calc.Result) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayResultWithConfig presents res according to config and writes it to
// config.OutputFile when set.
func DisplayResultWithConfig(out io.Writer, res calc.Result, expr calc.Expression, duration time.Duration, engine string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, res)
	} else {
		DisplayResult(res, expr, duration, config.Verbose, config.Details, out)
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(res, expr, duration, engine, config); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
	}
	return nil
}
