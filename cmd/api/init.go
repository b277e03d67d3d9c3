package main

import (
	"context"
	"errors"

	"scicalc/internal/calculator"
	"scicalc/internal/config"
	"scicalc/internal/converter"
	"scicalc/internal/observability"
)

// initTelemetry starts the exporters and registers every domain's metric
// instruments. Add new domain InitMetrics calls here as the project grows.
func initTelemetry(ctx context.Context, cfg config.Config) (observability.Shutdown, error) {
	shutdown, err := observability.Setup(ctx, cfg.ServiceName, cfg.ExportTelemetry)
	if err != nil {
		return nil, err
	}

	return withDomainMetrics(ctx, shutdown, calculator.InitMetrics, converter.InitMetrics)
}

// withDomainMetrics runs each metric initializer. On failure the exporters
// behind shutdown are stopped before the error is returned.
func withDomainMetrics(ctx context.Context, shutdown observability.Shutdown, inits ...func() error) (observability.Shutdown, error) {
	for _, fn := range inits {
		if err := fn(); err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
	}
	return shutdown, nil
}
