package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMetrics installs the global meter provider for the given exporter.
func InitMetrics(ctx context.Context, exporterName string) (func(context.Context) error, error) {

	var exporter sdkmetric.Exporter
	var err error

	switch exporterName {
	case ExporterOTLP:
		exporter, err = otlpmetrichttp.New(ctx)
	case ExporterStdout:
		exporter, err = stdoutmetric.New()
	case ExporterNone:
		return noopShutdown, nil
	default:
		return nil, fmt.Errorf("unknown metric exporter %q", exporterName)
	}
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter),
		),
	)

	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

func PrometheusHandler() http.Handler {
	return promhttp.Handler()
}
