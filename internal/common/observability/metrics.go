// internal/common/observability/metrics.go
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics exposes OpenTelemetry instruments backed by the shared Prometheus
// registry, so both promauto vectors and otel instruments land on /metrics.
type Metrics struct {
	provider *sdkmetric.MeterProvider

	ReportsProcessed metric.Int64Counter
	ReportDuration   metric.Float64Histogram
}

// New builds the meter provider with the Prometheus exporter.
func New(serviceName string) (*Metrics, error) {
	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	processed, err := meter.Int64Counter(
		"reports.processed",
		metric.WithDescription("Number of report generations processed"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"reports.duration",
		metric.WithDescription("Report generation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		provider:         provider,
		ReportsProcessed: processed,
		ReportDuration:   duration,
	}, nil
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
