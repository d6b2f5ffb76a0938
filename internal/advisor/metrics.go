package advisor

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	recommendationCounter metric.Int64Counter
	errorCounter          metric.Int64Counter
)

// InitMetrics registers the OTel instruments for the advisor domain.
func InitMetrics() error {
	meter := otel.Meter("advisor")

	var err error

	recommendationCounter, err = meter.Int64Counter("advisor.recommendations.total",
		metric.WithDescription("Recommendations served by risk level"),
		metric.WithUnit("{recommendation}"),
	)
	if err != nil {
		return fmt.Errorf("creating recommendation counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("advisor.errors.total",
		metric.WithDescription("Total number of rejected advisor requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
