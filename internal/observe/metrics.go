// Package observe provides application-wide observability primitives
// for redline: OpenTelemetry metrics, tracing, structured logging, and
// HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A
// Prometheus exporter bridge is available via [InitProvider] so that
// metrics can still be scraped via the standard /metrics endpoint. A
// package-level default [Metrics] instance ([DefaultMetrics]) is
// provided for convenience; tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all redline metrics.
const meterName = "github.com/redlinehq/redline"

// Metrics holds all OpenTelemetry metric instruments for the engine and
// its HTTP surface. All fields are safe for concurrent use; the
// underlying OTel types handle their own synchronisation.
type Metrics struct {
	// ScanDuration tracks the latency of one full text scan.
	ScanDuration metric.Float64Histogram

	// DiffDuration tracks the latency of one word-diff computation.
	DiffDuration metric.Float64Histogram

	// IssuesFound counts issues emitted by the scanner. Use with
	// attribute.String("kind", ...).
	IssuesFound metric.Int64Counter

	// CorrectionsApplied counts corrections spliced by the applier.
	CorrectionsApplied metric.Int64Counter

	// ApplyFailures counts rejected correction sets. Use with
	// attribute.String("reason", ...) ("overlap" or "out_of_range").
	ApplyFailures metric.Int64Counter

	// ActiveSessions tracks the number of live editing sessions.
	ActiveSessions metric.Int64UpDownCounter

	// HTTPRequestDuration tracks HTTP request processing time. Use with
	// attribute.String("method", ...), attribute.String("path", ...).
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Scans
// of editor-sized documents finish in milliseconds; the upper buckets
// catch pathological inputs.
var latencyBuckets = []float64{
	0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the
// given [metric.MeterProvider]. Returns an error if any instrument
// creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ScanDuration, err = m.Float64Histogram("redline.scan.duration",
		metric.WithDescription("Latency of one full text scan."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DiffDuration, err = m.Float64Histogram("redline.diff.duration",
		metric.WithDescription("Latency of one word-diff computation."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.IssuesFound, err = m.Int64Counter("redline.scan.issues",
		metric.WithDescription("Total issues emitted by the scanner, by kind."),
	); err != nil {
		return nil, err
	}
	if met.CorrectionsApplied, err = m.Int64Counter("redline.apply.corrections",
		metric.WithDescription("Total corrections spliced by the applier."),
	); err != nil {
		return nil, err
	}
	if met.ApplyFailures, err = m.Int64Counter("redline.apply.failures",
		metric.WithDescription("Total rejected correction sets, by reason."),
	); err != nil {
		return nil, err
	}

	if met.ActiveSessions, err = m.Int64UpDownCounter("redline.active_sessions",
		metric.WithDescription("Number of live editing sessions."),
	); err != nil {
		return nil, err
	}

	if met.HTTPRequestDuration, err = m.Float64Histogram("redline.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating
// it on first call using [otel.GetMeterProvider]. Subsequent calls
// return the same pointer. Panics if instrument creation fails (should
// not happen with the global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordIssues records n scanner issues of the given kind.
func (m *Metrics) RecordIssues(ctx context.Context, kind string, n int64) {
	m.IssuesFound.Add(ctx, n,
		metric.WithAttributes(attribute.String("kind", kind)),
	)
}

// RecordApplyFailure records a rejected correction set with its reason.
func (m *Metrics) RecordApplyFailure(ctx context.Context, reason string) {
	m.ApplyFailures.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)),
	)
}
