package schedule

import (
	"runtime"

	"github.com/hupe1980/access"
)

type options struct {
	logger           *access.Logger
	metricsCollector access.MetricsCollector
	parallelism      int
	ignored          []uint32
}

func defaultOptions() options {
	return options{
		logger:           access.NoopLogger(),
		metricsCollector: access.NoopMetricsCollector{},
		parallelism:      runtime.GOMAXPROCS(0),
	}
}

// Option configures a Schedule.
type Option func(*options)

// WithLogger configures structured logging.
//
// If nil is passed, logging is disabled.
func WithLogger(l *access.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = access.NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for compatibility
// checks, ambiguity scans and stage plans.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &access.BasicMetricsCollector{}
//	s := schedule.New[access.ComponentID](schedule.WithMetricsCollector(metrics))
//	// ... run scans
//	stats := metrics.GetStats()
func WithMetricsCollector(mc access.MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = access.NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithParallelism limits how many pairs the ambiguity scan checks at once.
//
// Values <= 0 fall back to runtime.GOMAXPROCS(0).
func WithParallelism(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.parallelism = n
	}
}

// WithIgnoredIndices excludes dense indices from ambiguity reports, for
// example resources whose access order is known not to matter. A pair is
// only dropped when every one of its conflicts is ignored.
func WithIgnoredIndices(indices ...uint32) Option {
	return func(o *options) {
		o.ignored = append(o.ignored, indices...)
	}
}
