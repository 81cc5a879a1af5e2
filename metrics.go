package access

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    checkCounter  *prometheus.CounterVec
//	    scanHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordCheck(coarse, compatible bool, duration time.Duration) {
//	    p.checkCounter.WithLabelValues(strconv.FormatBool(coarse)).Inc()
//	}
type MetricsCollector interface {
	// RecordCheck is called after each pairwise compatibility check.
	// coarse is true if the combined access decided the check without the
	// member-by-member fallback.
	RecordCheck(coarse, compatible bool, duration time.Duration)

	// RecordAmbiguityScan is called after each ambiguity scan.
	// pairs is the number of unordered pairs checked, found the number of
	// ambiguities reported.
	RecordAmbiguityScan(pairs, found int, duration time.Duration, err error)

	// RecordStages is called after each stage plan.
	RecordStages(stages, systems int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCheck(bool, bool, time.Duration)              {}
func (NoopMetricsCollector) RecordAmbiguityScan(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordStages(int, int, time.Duration)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CheckCount        atomic.Int64
	CoarseChecks      atomic.Int64
	FallbackChecks    atomic.Int64
	IncompatibleCount atomic.Int64
	CheckTotalNanos   atomic.Int64
	ScanCount         atomic.Int64
	ScanErrors        atomic.Int64
	ScanPairs         atomic.Int64
	AmbiguityCount    atomic.Int64
	StageCount        atomic.Int64
}

// RecordCheck implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCheck(coarse, compatible bool, duration time.Duration) {
	b.CheckCount.Add(1)
	b.CheckTotalNanos.Add(duration.Nanoseconds())
	if coarse {
		b.CoarseChecks.Add(1)
	} else {
		b.FallbackChecks.Add(1)
	}
	if !compatible {
		b.IncompatibleCount.Add(1)
	}
}

// RecordAmbiguityScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAmbiguityScan(pairs, found int, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	b.ScanPairs.Add(int64(pairs))
	b.AmbiguityCount.Add(int64(found))
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// RecordStages implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStages(stages, systems int, duration time.Duration) {
	b.StageCount.Add(int64(stages))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CheckCount:        b.CheckCount.Load(),
		CoarseChecks:      b.CoarseChecks.Load(),
		FallbackChecks:    b.FallbackChecks.Load(),
		IncompatibleCount: b.IncompatibleCount.Load(),
		CheckAvgNanos:     b.getAvgCheckNanos(),
		ScanCount:         b.ScanCount.Load(),
		ScanErrors:        b.ScanErrors.Load(),
		ScanPairs:         b.ScanPairs.Load(),
		AmbiguityCount:    b.AmbiguityCount.Load(),
		StageCount:        b.StageCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgCheckNanos() int64 {
	count := b.CheckCount.Load()
	if count == 0 {
		return 0
	}
	return b.CheckTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of metrics from BasicMetricsCollector.
type BasicMetricsStats struct {
	CheckCount        int64
	CoarseChecks      int64
	FallbackChecks    int64
	IncompatibleCount int64
	CheckAvgNanos     int64
	ScanCount         int64
	ScanErrors        int64
	ScanPairs         int64
	AmbiguityCount    int64
	StageCount        int64
}
