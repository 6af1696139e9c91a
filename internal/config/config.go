// Package config defines the bigcalc configuration, parses it from
// command-line flags and environment variables, and validates it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// EnvPrefix is the prefix of every environment variable read by bigcalc.
const EnvPrefix = "BIGCALC_"

// Default configuration values.
const (
	DefaultEngine      = "schoolbook"
	DefaultTimeout     = 1 * time.Minute
	DefaultPort        = "8080"
	DefaultInputFile   = "input.txt"
	DefaultBatchOutput = "output.txt"
	// DefaultMaxDigits caps operand length; 0 disables the cap.
	DefaultMaxDigits = 1_000_000
	// DefaultCacheSize is the number of results kept by the server's result
	// cache; 0 disables it.
	DefaultCacheSize = 256
)

// AppConfig aggregates the parsed command-line and environment settings.
type AppConfig struct {
	// A, Op and B form the one-shot expression.
	A  string
	Op string
	B  string

	// Engine is the evaluator name, or "all" to cross-check every engine.
	Engine string

	// Batch reads a three-line job from InputFile and writes the result to
	// OutputFile (DefaultBatchOutput when empty).
	Batch      bool
	InputFile  string
	OutputFile string

	Interactive bool
	ServerMode  bool
	Port        string

	Timeout   time.Duration
	MaxDigits int
	CacheSize int

	JSONOutput bool
	Quiet      bool
	// Verbose prints results in full and enables debug logging.
	Verbose bool
	Details bool
	NoColor bool

	// Completion names a shell ("bash", "zsh", "fish") to print a completion
	// script for.
	Completion string
}

// HasExpression reports whether any part of a one-shot expression was given.
func (c AppConfig) HasExpression() bool {
	return c.A != "" || c.Op != "" || c.B != ""
}

// BatchOutput returns the batch output path.
func (c AppConfig) BatchOutput() string {
	if c.OutputFile == "" {
		return DefaultBatchOutput
	}
	return c.OutputFile
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableEngines: The registered engine names.
//
// Returns:
//   - error: A ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate(availableEngines []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MaxDigits < 0 {
		return apperrors.NewConfigError("max-digits cannot be negative: %d", c.MaxDigits)
	}
	if c.CacheSize < 0 {
		return apperrors.NewConfigError("cache-size cannot be negative: %d", c.CacheSize)
	}
	if c.Engine != "all" && !contains(availableEngines, c.Engine) {
		return apperrors.NewConfigError("unrecognized engine: '%s'. Valid engines are: 'all' or [%s]",
			c.Engine, strings.Join(availableEngines, ", "))
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return apperrors.NewConfigError("invalid port: '%s'", c.Port)
	}
	if c.Batch && c.InputFile == "" {
		return apperrors.NewConfigError("batch mode requires an input file")
	}
	if c.HasExpression() {
		if c.A == "" || c.Op == "" || c.B == "" {
			return apperrors.NewConfigError("an expression needs all of -a, -op and -b")
		}
		if _, err := calc.ParseOperator(c.Op); err != nil {
			return apperrors.NewConfigError("invalid -op: %v", err)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// for flags not given explicitly, and validates the result.
//
// Parameters:
//   - programName: The program name shown in usage output.
//   - args: The command-line arguments without the program name.
//   - errorWriter: Destination of parse errors and usage.
//   - availableEngines: The registered engine names.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp, a parse error, or a validation error.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableEngines []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	engineHelp := fmt.Sprintf("Engine to use: one of [%s], or 'all' to cross-check.", strings.Join(availableEngines, ", "))

	config := AppConfig{}
	fs.StringVar(&config.A, "a", "", "Left operand of a one-shot expression.")
	fs.StringVar(&config.Op, "op", "", "Operator: + - * / % gcd (or add, sub, mul, div, mod).")
	fs.StringVar(&config.B, "b", "", "Right operand of a one-shot expression.")
	fs.StringVar(&config.Engine, "engine", DefaultEngine, engineHelp)
	fs.BoolVar(&config.Batch, "batch", false, "Evaluate the three-line job in the input file.")
	fs.StringVar(&config.InputFile, "input", DefaultInputFile, "Batch input file.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file (batch default: output.txt).")
	fs.StringVar(&config.OutputFile, "o", "", "Output file (shorthand).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive menu.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for an evaluation.")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Maximum operand length in digits (0 for no limit).")
	fs.IntVar(&config.CacheSize, "cache-size", DefaultCacheSize, "Server result cache entries (0 disables the cache).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "v", false, "Print the full result and debug logs.")
	fs.BoolVar(&config.Details, "d", false, "Display timing details and result metadata.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish).")
	fs.Bool("version", false, "Print version information and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errorWriter, "Configuration error: unexpected argument %q\n", fs.Arg(0))
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	applyEnvOverrides(&config, fs)

	config.Engine = strings.ToLower(config.Engine)
	if err := config.Validate(availableEngines); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		var cfgErr apperrors.ConfigError
		if errors.As(err, &cfgErr) {
			return AppConfig{}, cfgErr
		}
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
