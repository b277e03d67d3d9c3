// Package converter serves the unit conversion tables over HTTP.
package converter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"scicalc/internal/convert"
	"scicalc/internal/handlers"
	"scicalc/internal/observability"
)

var tracer = otel.Tracer("converter")

var (
	convertCounter metric.Int64Counter
	errorCounter   metric.Int64Counter
)

// InitMetrics registers the converter's OTel instruments.
func InitMetrics() error {
	meter := otel.Meter("converter")

	var err error
	convertCounter, err = meter.Int64Counter("converter.conversions.total",
		metric.WithDescription("Total number of unit conversions performed"),
		metric.WithUnit("{conversion}"),
	)
	if err != nil {
		return fmt.Errorf("creating conversions counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("converter.errors.total",
		metric.WithDescription("Total number of failed conversions"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}
	return nil
}

// Request is the JSON body for POST /convert/{category}. Value is text, as
// typed into a value box.
type Request struct {
	Value string `json:"value"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type Response struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Result   float64 `json:"result"`
	// Display has six significant digits.
	Display string `json:"display"`
}

// Category lists one category with its units.
type Category struct {
	Name  string         `json:"name"`
	Units []convert.Unit `json:"units"`
}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type Handler struct {
	registry *convert.Registry
}

func NewHandler(registry *convert.Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes mounts the converter endpoints under /convert.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/convert", func(r chi.Router) {
		r.Get("/", h.Categories)
		r.Post("/{category}", h.Convert)
	})
}

// Categories handles GET /convert
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	var resp CategoriesResponse
	for _, name := range h.registry.Categories() {
		units, err := h.registry.Units(name)
		if err != nil {
			continue
		}
		resp.Categories = append(resp.Categories, Category{Name: name, Units: units})
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Convert handles POST /convert/{category}
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	category := chi.URLParam(r, "category")

	ctx, span := tracer.Start(ctx, "converter.convert",
		trace.WithAttributes(
			attribute.String("converter.category", category),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	fail := func(msg string, err error, status int) {
		kind := "invalid_input"
		if errors.Is(err, convert.ErrOutOfRange) {
			kind = "out_of_range"
		}
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Op:     category,
			Kind:   kind,
			Msg:    msg,
			Err:    err,
			Status: status,
		}, w)
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail("invalid request body", err, http.StatusBadRequest)
		return
	}

	value, err := convert.ParseValue(req.Value)
	if err != nil {
		fail(convert.ErrInvalidInput.Error(), err, http.StatusBadRequest)
		return
	}

	result, err := h.registry.Convert(category, value, req.From, req.To)
	switch {
	case errors.Is(err, convert.ErrUnknownCategory):
		fail(err.Error(), err, http.StatusNotFound)
		return
	case errors.Is(err, convert.ErrOutOfRange):
		fail(err.Error(), err, http.StatusUnprocessableEntity)
		return
	case err != nil:
		fail(err.Error(), err, http.StatusBadRequest)
		return
	}

	convertCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
	span.SetAttributes(
		attribute.String("converter.from", req.From),
		attribute.String("converter.to", req.To),
		attribute.Float64("converter.result", result),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("conversion completed",
		zap.String("category", category),
		zap.Float64("value", value),
		zap.String("from", req.From),
		zap.String("to", req.To),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, Response{
		Category: category,
		Value:    value,
		From:     req.From,
		To:       req.To,
		Result:   result,
		Display:  convert.Format(result),
	})
}
