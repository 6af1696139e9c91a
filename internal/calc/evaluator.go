// Package calc exposes the big-integer operations behind a common Evaluator
// interface so that several engines (the schoolbook digit engine, a math/big
// reference and, with the gmp build tag, GMP) can be used interchangeably and
// cross-checked. Evaluators are instrumented with tracing and Prometheus
// metrics, and notify observers such as LoggingObserver.
package calc

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/bigcalc/internal/bignum"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigcalc_operations_total",
			Help: "The total number of big-integer operations evaluated",
		},
		[]string{"engine", "op", "status"},
	)
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bigcalc_operation_duration_seconds",
			Help: "The duration of big-integer operations in seconds",
		},
		[]string{"engine", "op"},
	)
)

// Expression is a binary operation over two operands.
type Expression struct {
	Left  bignum.Int
	Op    Operator
	Right bignum.Int
}

// String renders the expression in infix form.
func (e Expression) String() string {
	return e.Left.String() + " " + e.Op.Symbol() + " " + e.Right.String()
}

// Result holds the outcome of an evaluation. Remainder is set only for OpDiv.
type Result struct {
	Value     bignum.Int
	Remainder *bignum.Int
}

// Evaluator is the public interface of an arithmetic engine. Implementations
// are safe for concurrent use.
type Evaluator interface {
	// Name returns the engine identifier (e.g. "schoolbook").
	Name() string

	// Evaluate computes expr. It returns ctx.Err() if the context is done
	// before the computation completes, bignum.ErrDivisionByZero for a zero
	// divisor and ErrUnknownOperator for an unsupported operator.
	Evaluate(ctx context.Context, expr Expression) (Result, error)
}

// coreEvaluator is implemented by the engines themselves. It performs the raw
// computation with no instrumentation.
type coreEvaluator interface {
	Name() string
	EvaluateCore(expr Expression) (Result, error)
}

// InstrumentedEvaluator wraps a coreEvaluator with cancellation, tracing,
// metrics and observer notification.
type InstrumentedEvaluator struct {
	core      coreEvaluator
	observers []Observer
}

// NewEvaluator wraps core into an Evaluator. Observers are notified after
// every evaluation, successful or not.
func NewEvaluator(core coreEvaluator, observers ...Observer) *InstrumentedEvaluator {
	return &InstrumentedEvaluator{core: core, observers: observers}
}

// Name returns the name of the wrapped engine.
func (e *InstrumentedEvaluator) Name() string {
	return e.core.Name()
}

type outcome struct {
	result Result
	err    error
}

// Evaluate runs the engine on its own goroutine so that a cancelled or
// expired context releases the caller immediately. The computation itself is
// not interruptible and finishes in the background.
func (e *InstrumentedEvaluator) Evaluate(ctx context.Context, expr Expression) (result Result, err error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	_, span := otel.Tracer("calc").Start(ctx, "Evaluate")
	span.SetAttributes(
		attribute.String("engine", e.core.Name()),
		attribute.String("op", expr.Op.String()),
		attribute.Int("left_digits", expr.Left.Len()),
		attribute.Int("right_digits", expr.Right.Len()),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		name := e.core.Name()
		operationsTotal.WithLabelValues(name, expr.Op.String(), status).Inc()
		operationDuration.WithLabelValues(name, expr.Op.String()).Observe(duration.Seconds())

		event := Event{Engine: name, Expr: expr, Result: result, Duration: duration, Err: err}
		for _, o := range e.observers {
			o.Observe(event)
		}
	}()

	done := make(chan outcome, 1)
	go func() {
		r, err := e.core.EvaluateCore(expr)
		done <- outcome{result: r, err: err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
