package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"scicalc/internal/calculator"
	"scicalc/internal/convert"
	"scicalc/internal/converter"
	"scicalc/internal/evaluator"
	"scicalc/internal/handlers"
	"scicalc/internal/history"
	"scicalc/internal/observability"
)

// Deps are the collaborators the router hands to the domain handlers.
type Deps struct {
	History   *history.Store
	Units     *convert.Registry
	AngleMode evaluator.AngleMode
}

func NewRouter(deps Deps) http.Handler {
	if deps.History == nil {
		deps.History = history.NewStore(history.DefaultLimit)
	}
	if deps.Units == nil {
		deps.Units = convert.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calculator.NewHandler(deps.History, deps.AngleMode))
	converter.RegisterRoutes(r, converter.NewHandler(deps.Units))

	return r
}
