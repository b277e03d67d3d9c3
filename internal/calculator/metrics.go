package calculator

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"scicalc/internal/history"
)

// Metric instruments, initialized once via InitMetrics().
var (
	evalCounter   metric.Int64Counter
	evalHistogram metric.Float64Histogram
	errorCounter  metric.Int64Counter
	resultGauge   metric.Float64Gauge
	historyGauge  metric.Int64Gauge
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.Setup).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	evalCounter, err = meter.Int64Counter("calculator.evaluations.total",
		metric.WithDescription("Total number of expressions evaluated successfully"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return fmt.Errorf("creating evaluations counter: %w", err)
	}

	evalHistogram, err = meter.Float64Histogram("calculator.evaluation.duration",
		metric.WithDescription("Time spent parsing and evaluating an expression in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating evaluation histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of failed calculator requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last successful evaluation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	historyGauge, err = meter.Int64Gauge("calculator.history.size",
		metric.WithDescription("Number of entries in the calculation history"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return fmt.Errorf("creating history gauge: %w", err)
	}

	return nil
}

// HistoryCollector exposes the size of store on the Prometheus endpoint so
// it is visible without an OTLP collector.
func HistoryCollector(store *history.Store) prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "scicalc",
		Name:      "history_entries",
		Help:      "Number of calculations currently held in history.",
	}, func() float64 {
		return float64(store.Len())
	})
}
