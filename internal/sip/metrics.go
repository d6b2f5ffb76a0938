package sip

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	projectionCounter   metric.Int64Counter
	projectionHistogram metric.Float64Histogram
	errorCounter        metric.Int64Counter
	cacheCounter        metric.Int64Counter
	futureValueGauge    metric.Float64Gauge
)

// InitMetrics registers the OTel instruments for the SIP domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("sip")

	var err error

	projectionCounter, err = meter.Int64Counter("sip.projections.total",
		metric.WithDescription("Total number of SIP projections computed"),
		metric.WithUnit("{projection}"),
	)
	if err != nil {
		return fmt.Errorf("creating projection counter: %w", err)
	}

	projectionHistogram, err = meter.Float64Histogram("sip.projection.duration",
		metric.WithDescription("Duration of SIP projections in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating projection histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("sip.errors.total",
		metric.WithDescription("Total number of rejected SIP requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	cacheCounter, err = meter.Int64Counter("sip.cache.lookups.total",
		metric.WithDescription("SIP result cache lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return fmt.Errorf("creating cache counter: %w", err)
	}

	futureValueGauge, err = meter.Float64Gauge("sip.last_future_value",
		metric.WithDescription("Future value of the last SIP projection"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating future value gauge: %w", err)
	}

	return nil
}
