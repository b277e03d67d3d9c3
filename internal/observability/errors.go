package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"scicalc/internal/handlers"
)

// Failure describes a request that could not be served.
type Failure struct {
	// Op is the operation name used as the metric attribute.
	Op string
	// Kind classifies the failure for clients, e.g. "division_by_zero".
	Kind   string
	Msg    string
	Err    error
	Status int
}

// RecordError centralises error handling across all domains: records the error
// on the span, increments counter, logs with trace context and writes the
// JSON error response.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, f Failure, w http.ResponseWriter) {
	span.RecordError(f.Err)
	span.SetStatus(codes.Error, f.Msg)

	attrs := []attribute.KeyValue{attribute.String("operation", f.Op)}
	if f.Kind != "" {
		attrs = append(attrs, attribute.String("kind", f.Kind))
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))

	logger.Error(f.Msg,
		zap.String("operation", f.Op),
		zap.String("kind", f.Kind),
		zap.Int("status", f.Status),
		zap.Error(f.Err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	handlers.WriteError(w, f.Status, f.Msg, f.Kind)
}
