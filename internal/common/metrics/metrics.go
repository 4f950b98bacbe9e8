// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mode label values distinguish the interactive API path from webhook intake.
const (
	ModeAPI     = "api"
	ModeWebhook = "webhook"
)

var (
	// ReportsGenerated counts successfully generated reports by intake mode.
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minus_reports_generated_total",
			Help: "Total number of reports generated successfully",
		},
		[]string{"mode"},
	)

	// ReportsFailed counts failed report generations by intake mode and code.
	ReportsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minus_reports_failed_total",
			Help: "Total number of failed report generations",
		},
		[]string{"mode", "error_code"},
	)

	// ReportDuration observes end-to-end generation latency in seconds.
	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minus_report_duration_seconds",
			Help:    "Report generation duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"mode"},
	)

	// WebhookIntakes counts accepted webhook payloads (ping events excluded).
	WebhookIntakes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "minus_webhook_intakes_total",
			Help: "Total number of webhook submissions accepted",
		},
	)

	// SessionOps counts session store operations by op and outcome.
	SessionOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minus_session_operations_total",
			Help: "Total number of session store operations",
		},
		[]string{"op", "status"},
	)
)
