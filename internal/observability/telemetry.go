package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/zap"
)

// Shutdown flushes and stops every provider started by Setup.
type Shutdown func(context.Context) error

// Setup starts tracing, metrics and log export when export is true. With
// export off the global no-op providers stay in place and only the stdout
// logger is active.
func Setup(ctx context.Context, serviceName string, export bool) (Shutdown, error) {
	if !export {
		Logger.Info("telemetry export disabled")
		return func(context.Context) error { return nil }, nil
	}

	res, err := newResource(ctx, serviceName)
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}

	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	steps := []struct {
		name  string
		start func(context.Context, *resource.Resource) (func(context.Context) error, error)
	}{
		{name: "tracing", start: startTracing},
		{name: "metrics", start: startMetrics},
		{name: "logging", start: func(ctx context.Context, res *resource.Resource) (func(context.Context) error, error) {
			return startLogExport(ctx, res, serviceName)
		}},
	}
	for _, step := range steps {
		fn, err := step.start(ctx, res)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("init %s: %w", step.name, err), shutdown(ctx))
		}
		shutdowns = append(shutdowns, fn)
	}

	Logger.Info("telemetry export enabled", zap.String("service", serviceName))
	return shutdown, nil
}
