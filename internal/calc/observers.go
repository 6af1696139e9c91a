package calc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Event describes a completed evaluation.
type Event struct {
	Engine   string
	Expr     Expression
	Result   Result
	Duration time.Duration
	Err      error
}

// Observer receives an Event after every evaluation. Observe is called on the
// caller's goroutine and must not block.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver forwards events to a channel, dropping them when the
// channel is full.
type ChannelObserver struct {
	channel chan<- Event
}

// NewChannelObserver creates an observer that sends events to ch. A nil
// channel discards every event.
func NewChannelObserver(ch chan<- Event) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Observe implements Observer.
func (o *ChannelObserver) Observe(e Event) {
	if o.channel == nil {
		return
	}
	select {
	case o.channel <- e:
	default:
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs evaluations with zerolog. Failures are logged at warn
// level, successes at debug level.
type LoggingObserver struct {
	logger *zerolog.Logger
}

// NewLoggingObserver creates an observer that logs to logger. With a nil
// logger it writes to the global log.Logger as configured at the time of each
// event.
func NewLoggingObserver(logger *zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// Observe implements Observer.
func (o *LoggingObserver) Observe(e Event) {
	logger := o.logger
	if logger == nil {
		logger = &log.Logger
	}
	if e.Err != nil {
		logger.Warn().
			Err(e.Err).
			Str("engine", e.Engine).
			Str("op", e.Expr.Op.String()).
			Msg("evaluation failed")
		return
	}
	logger.Debug().
		Str("engine", e.Engine).
		Str("op", e.Expr.Op.String()).
		Int("left_digits", e.Expr.Left.Len()).
		Int("right_digits", e.Expr.Right.Len()).
		Int("result_digits", e.Result.Value.Len()).
		Dur("duration", e.Duration).
		Msg("evaluation succeeded")
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer
// ─────────────────────────────────────────────────────────────────────────────

var resultDigits = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bigcalc_result_digits",
		Help:    "Number of decimal digits in evaluation results",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	},
	[]string{"engine", "op"},
)

// MetricsObserver records the size of successful results in Prometheus.
type MetricsObserver struct{}

// NewMetricsObserver creates a MetricsObserver.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// Observe implements Observer.
func (o *MetricsObserver) Observe(e Event) {
	if e.Err != nil {
		return
	}
	resultDigits.WithLabelValues(e.Engine, e.Expr.Op.String()).Observe(float64(e.Result.Value.Len()))
}
