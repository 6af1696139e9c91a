package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/bigcalc/internal/batch"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/models"
)

// Application is a configured bigcalc run. Run dispatches to the mode
// selected by Config.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides the evaluation engines.
	Factory calc.EvaluatorFactory
	// ErrWriter receives diagnostics and logs (typically os.Stderr).
	ErrWriter io.Writer
	// In feeds the interactive menu (typically os.Stdin).
	In io.Reader
}

// New creates an Application by parsing command-line arguments against the
// globally registered engines.
//
// Parameters:
//   - args: The command-line arguments, program name first (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: A ConfigError, or flag.ErrHelp when -h was given.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := calc.GlobalFactory()

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
		In:        os.Stdin,
	}, nil
}

// Run executes the configured mode: completion, server, batch, interactive
// menu, or a one-shot evaluation. The menu also starts when no expression was
// given.
//
// Parameters:
//   - ctx: The parent context.
//   - out: The writer for standard output.
//
// Returns:
//   - int: The process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor, out)
	logging.Setup(a.ErrWriter, a.Config.Verbose, ui.IsTerminal(a.ErrWriter))

	svc := service.NewCalculatorService(a.Factory, a.Config.MaxDigits)

	switch {
	case a.Config.ServerMode:
		return a.runServer(ctx)
	case a.Config.Batch:
		return a.runBatch(ctx, svc)
	case a.Config.Interactive || !a.Config.HasExpression():
		return a.runMenu(ctx, svc, out)
	}
	return a.runCalculate(ctx, svc, out)
}

// singleEngine returns the configured engine, or the default one when every
// engine was requested in a mode that evaluates with only one.
func (a *Application) singleEngine() string {
	if a.Config.Engine == "" || a.Config.Engine == "all" {
		return config.DefaultEngine
	}
	return a.Config.Engine
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until ctx is canceled or a termination
// signal arrives.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stop := SignalContext(ctx)
	defer stop()

	cfg := a.Config
	cfg.Engine = a.singleEngine()
	timeouts := server.DefaultServerTimeouts()
	timeouts.RequestTimeout = cfg.Timeout
	srv := server.NewServer(a.Factory, cfg, server.WithTimeouts(timeouts))
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runBatch(ctx context.Context, svc service.Service) int {
	ctx, lc := NewLifecycle(ctx, a.Config.Timeout)
	defer lc.Stop()

	err := batch.Run(ctx, svc, a.singleEngine(), a.Config.InputFile, a.Config.BatchOutput())
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.Palette{})
	}
	return apperrors.ExitSuccess
}

func (a *Application) runMenu(ctx context.Context, svc service.Service, out io.Writer) int {
	ctx, stop := SignalContext(ctx)
	defer stop()

	in := a.In
	if in == nil {
		in = os.Stdin
	}
	menu := cli.NewMenu(svc, in, out, cli.MenuConfig{
		Engine:  a.singleEngine(),
		Timeout: a.Config.Timeout,
		Verbose: a.Config.Verbose,
	})
	if err := menu.Run(ctx); err != nil {
		if apperrors.IsContextError(err) {
			return apperrors.ExitCode(err)
		}
		fmt.Fprintf(a.ErrWriter, "Error reading input: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runCalculate evaluates the one-shot expression with the selected engines.
func (a *Application) runCalculate(ctx context.Context, svc service.Service, out io.Writer) int {
	expr, err := svc.ParseExpression(a.Config.A, a.Config.Op, a.Config.B)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.Palette{})
	}

	ctx, lc := NewLifecycle(ctx, a.Config.Timeout)
	defer lc.Stop()

	evaluators := cli.GetEvaluatorsToRun(a.Config, a.Factory)

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, expr, out)
		cli.PrintExecutionMode(evaluators, out)
	}

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	results := orchestration.ExecuteEvaluations(ctx, evaluators, expr, progressOut)

	if a.Config.JSONOutput {
		return printJSONResults(results, expr, out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}
	return a.analyzeResultsWithOutput(results, expr, outputCfg, out)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.EvaluationResult, expr calc.Expression, outputCfg cli.OutputConfig, out io.Writer) int {
	if outputCfg.Quiet {
		var report bytes.Buffer
		exitCode := orchestration.AnalyzeComparisonResults(results, expr, a.Config, &report)
		if exitCode != apperrors.ExitSuccess {
			_, _ = report.WriteTo(a.ErrWriter)
			return exitCode
		}
		best := findBestResult(results)
		if err := cli.DisplayResultWithConfig(out, best.Result, expr, best.Duration, best.Name, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	exitCode := orchestration.AnalyzeComparisonResults(results, expr, a.Config, out)
	if best := findBestResult(results); best != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(best, expr, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				cli.ColorGreen(), cli.ColorCyan(), outputCfg.OutputFile, cli.ColorReset())
		}
	}
	return exitCode
}

// IsHelpError reports whether err means -h or -help was given.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func findBestResult(results []orchestration.EvaluationResult) *orchestration.EvaluationResult {
	var best *orchestration.EvaluationResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}

func (a *Application) saveResultIfNeeded(res *orchestration.EvaluationResult, expr calc.Expression, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, expr, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}

// printJSONResults writes one models.CalculateResponse per engine as a JSON
// array. The exit code reflects the outcome as AnalyzeComparisonResults
// would report it.
func printJSONResults(results []orchestration.EvaluationResult, expr calc.Expression, out io.Writer) int {
	output := make([]models.CalculateResponse, len(results))
	for i, res := range results {
		jr := models.CalculateResponse{
			A:        expr.Left.String(),
			Op:       expr.Op.Symbol(),
			B:        expr.Right.String(),
			Engine:   res.Name,
			Duration: res.Duration.String(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		} else {
			jr.Result = res.Result.Value.String()
			jr.Digits = res.Result.Value.Len()
			if res.Result.Remainder != nil {
				jr.Remainder = res.Result.Remainder.String()
			}
		}
		output[i] = jr
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return orchestration.AnalyzeComparisonResults(results, expr, config.AppConfig{}, io.Discard)
}
