// Package batch implements the file-based mode: one expression is read from
// an input file and its result, or an error marker, is written to an output
// file.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/service"
)

// ErrMalformedJob is returned when the input does not hold a valid job.
var ErrMalformedJob = errors.New("malformed batch job")

// ErrorMarker prefixes the message written to the output file on failure.
const ErrorMarker = "ERROR: "

// Operators lists the operator characters a job may use.
const Operators = "+-*/%"

// Job is one batch expression in textual form.
type Job struct {
	A  string
	Op string
	B  string
}

// ReadJob reads a job from r: the first operand, a one-character operator and
// the second operand, one per line. Carriage returns and surrounding blanks
// are trimmed. Lines after the third are ignored.
func ReadJob(r io.Reader) (Job, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024*1024)

	var lines [3]string
	for i := range lines {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return Job{}, fmt.Errorf("read job: %w", err)
			}
			return Job{}, fmt.Errorf("%w: expected 3 lines, got %d", ErrMalformedJob, i)
		}
		lines[i] = strings.TrimSpace(scanner.Text())
	}

	op := lines[1]
	if len(op) != 1 || !strings.Contains(Operators, op) {
		return Job{}, fmt.Errorf("%w: operator %q is not one of %s", ErrMalformedJob, op, Operators)
	}
	return Job{A: lines[0], Op: op, B: lines[2]}, nil
}

// Run evaluates the job stored in inPath with engine and writes the result
// followed by a newline to outPath. For division only the quotient is
// written. On failure the output holds ErrorMarker and the error message,
// and the error is returned.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - svc: The service that parses and evaluates the job.
//   - engine: The engine name.
//   - inPath: The input file.
//   - outPath: The output file.
//
// Returns:
//   - error: The read, evaluation or write error, if any.
func Run(ctx context.Context, svc service.Service, engine, inPath, outPath string) error {
	logger := log.With().Str("component", "batch").Str("input", inPath).Str("output", outPath).Logger()
	start := time.Now()

	value, err := evaluate(ctx, svc, engine, inPath)
	content := value + "\n"
	if err != nil {
		content = ErrorMarker + err.Error() + "\n"
	}

	if werr := os.WriteFile(outPath, []byte(content), 0o644); werr != nil {
		logger.Error().Err(werr).Msg("failed to write batch output")
		if err != nil {
			return errors.Join(err, werr)
		}
		return apperrors.WrapError(werr, "write output")
	}

	if err != nil {
		logger.Warn().Err(err).Msg("batch job failed")
		return err
	}
	logger.Info().Dur("duration", time.Since(start)).Int("digits", len(strings.TrimPrefix(value, "-"))).Msg("batch job completed")
	return nil
}

func evaluate(ctx context.Context, svc service.Service, engine, inPath string) (string, error) {
	f, err := os.Open(inPath)
	if err != nil {
		return "", apperrors.WrapError(err, "open input")
	}
	defer f.Close()

	job, err := ReadJob(f)
	if errors.Is(err, ErrMalformedJob) {
		return "", apperrors.NewInputError("job", err)
	}
	if err != nil {
		return "", err
	}
	res, err := svc.Calculate(ctx, engine, job.A, job.Op, job.B)
	if err != nil {
		return "", err
	}
	return res.Value.String(), nil
}
