package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"scicalc/internal/evaluator"
	"scicalc/internal/handlers"
	"scicalc/internal/history"
	"scicalc/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator endpoints. Successful evaluations are
// recorded in the history store.
type Handler struct {
	history     *history.Store
	defaultMode evaluator.AngleMode
}

func NewHandler(store *history.Store, defaultMode evaluator.AngleMode) *Handler {
	return &Handler{history: store, defaultMode: defaultMode}
}

// failureFor maps an evaluator error onto an HTTP failure.
func failureFor(opName string, err error) observability.Failure {
	kind := evaluator.KindOf(err)
	f := observability.Failure{
		Op:     opName,
		Kind:   kind.String(),
		Msg:    err.Error(),
		Err:    err,
		Status: http.StatusBadRequest,
	}
	switch kind {
	case evaluator.KindDivisionByZero:
		f.Msg = "division by zero is not allowed"
	case evaluator.KindEvaluation:
		f.Status = http.StatusUnprocessableEntity
	}
	return f
}

func badRequest(opName, msg string, err error) observability.Failure {
	return observability.Failure{Op: opName, Kind: "invalid_request", Msg: msg, Err: err, Status: http.StatusBadRequest}
}

func (h *Handler) angleMode(s string) (evaluator.AngleMode, error) {
	if strings.TrimSpace(s) == "" {
		return h.defaultMode, nil
	}
	return evaluator.ParseAngleMode(s)
}

// run parses and evaluates one expression inside span, recording metrics and
// span events. The elapsed time covers parsing and evaluation.
func run(ctx context.Context, span trace.Span, opName, expression string, mode evaluator.AngleMode) (*evaluator.Expr, evaluator.Result, float64, error) {
	start := time.Now()
	expr, err := evaluator.Parse(expression, mode)
	if err != nil {
		return nil, evaluator.Result{}, 0, err
	}
	span.AddEvent("expression.parsed", trace.WithAttributes(
		attribute.String("normalized", expr.Normalized()),
	))

	result, err := expr.Eval()
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms
	if err != nil {
		return expr, evaluator.Result{}, elapsed, err
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	evalCounter.Add(ctx, 1, attrs)
	evalHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result.Value, attrs)

	return expr, result, elapsed, nil
}

// ---------------------------------------------------------------------------
// Handler: free-form expressions
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(r.Context(), "evaluate", badRequest("evaluate", "invalid request body", err), w)
		return
	}
	h.handleExpression(w, r, "evaluate", req.Expression, req.AngleMode)
}

// fail records a failure that happened before a span was started.
func (h *Handler) fail(ctx context.Context, opName string, f observability.Failure, w http.ResponseWriter) {
	ctx, span := tracer.Start(ctx, "calculator."+opName)
	defer span.End()
	observability.RecordError(ctx, span, observability.LoggerWithTrace(ctx), errorCounter, f, w)
}

// handleExpression is the shared implementation for every endpoint that
// evaluates a single expression: child span, metrics, trace-correlated
// logging, history and the JSON response.
func (h *Handler) handleExpression(w http.ResponseWriter, r *http.Request, opName, expression, angleMode string) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("calculator.expression", expression),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	if strings.TrimSpace(expression) == "" {
		observability.RecordError(ctx, span, logger, errorCounter, badRequest(opName, "expression is empty", errors.New("empty expression")), w)
		return
	}

	mode, err := h.angleMode(angleMode)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, badRequest(opName, err.Error(), err), w)
		return
	}
	span.SetAttributes(attribute.String("calculator.angle_mode", mode.String()))

	expr, result, elapsed, err := run(ctx, span, opName, expression, mode)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, failureFor(opName, err), w)
		return
	}

	entry := h.history.Add(expression, result, mode)
	historyGauge.Record(ctx, int64(h.history.Len()))

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result.Value),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result.Value))
	span.SetStatus(codes.Ok, "")

	logger.Info("expression evaluated",
		zap.String("operation", opName),
		zap.String("expression", expression),
		zap.String("normalized", expr.Normalized()),
		zap.Stringer("angle_mode", mode),
		zap.Float64("result", result.Value),
		zap.String("history_id", entry.ID),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Operation:  opName,
		Expression: expression,
		Normalized: expr.Normalized(),
		AngleMode:  mode,
		Result:     result,
		Display:    result.String(),
	})
}

// ---------------------------------------------------------------------------
// Handlers: binary shortcuts
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, "add", "+")
}

// Subtract handles POST /calculator/subtract
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, "subtract", "-")
}

// Multiply handles POST /calculator/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, "multiply", "×")
}

// Divide handles POST /calculator/divide
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, "divide", "÷")
}

// handleBinaryOp writes the operands as calculator display text, "3 ÷ -2"
// style, and evaluates it like any other expression.
func (h *Handler) handleBinaryOp(w http.ResponseWriter, r *http.Request, opName, symbol string) {
	var req BinaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(r.Context(), opName, badRequest(opName, "invalid request body", err), w)
		return
	}
	if math.IsNaN(req.A) || math.IsInf(req.A, 0) || math.IsNaN(req.B) || math.IsInf(req.B, 0) {
		h.fail(r.Context(), opName, badRequest(opName, "invalid numeric input", fmt.Errorf("a=%g b=%g", req.A, req.B)), w)
		return
	}

	expression := operand(req.A) + " " + symbol + " " + operand(req.B)
	h.handleExpression(w, r, opName, expression, "")
}

func operand(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if x < 0 {
		return "(" + s + ")"
	}
	return s
}

// ---------------------------------------------------------------------------
// Handler: batch (demonstrates nested spans)
// ---------------------------------------------------------------------------

// Batch handles POST /calculator/batch: evaluates every expression with its
// own child span. A failing expression is reported in its item and does not
// stop the rest.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.batch",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, badRequest("batch", "invalid request body", err), w)
		return
	}

	if len(req.Expressions) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, badRequest("batch", "no expressions provided", errors.New("expressions array is empty")), w)
		return
	}

	mode, err := h.angleMode(req.AngleMode)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, badRequest("batch", err.Error(), err), w)
		return
	}

	span.SetAttributes(
		attribute.Int("batch.size", len(req.Expressions)),
		attribute.String("calculator.angle_mode", mode.String()),
	)

	resp := BatchResponse{
		AngleMode: mode,
		Items:     make([]BatchItem, 0, len(req.Expressions)),
	}

	for i, expression := range req.Expressions {
		itemCtx, itemSpan := tracer.Start(ctx, fmt.Sprintf("calculator.batch.item.%d", i),
			trace.WithAttributes(
				attribute.Int("batch.item.index", i),
				attribute.String("batch.item.expression", expression),
			),
		)

		item := BatchItem{Expression: expression}
		_, result, elapsed, err := run(itemCtx, itemSpan, "batch", expression, mode)
		if err != nil {
			kind := evaluator.KindOf(err)
			itemSpan.RecordError(err)
			itemSpan.SetStatus(codes.Error, err.Error())
			errorCounter.Add(itemCtx, 1, metric.WithAttributes(
				attribute.String("operation", "batch"),
				attribute.String("kind", kind.String()),
			))

			logger.Warn("batch item failed",
				zap.Int("index", i),
				zap.String("expression", expression),
				zap.Stringer("kind", kind),
				zap.Error(err),
				zap.String("request_id", requestID),
			)

			item.Error = err.Error()
			item.Kind = kind.String()
			resp.Failed++
		} else {
			h.history.Add(expression, result, mode)

			itemSpan.SetAttributes(attribute.Float64("batch.item.result", result.Value))
			itemSpan.SetStatus(codes.Ok, "")

			logger.Info("batch item evaluated",
				zap.Int("index", i),
				zap.String("expression", expression),
				zap.Float64("result", result.Value),
				zap.Float64("duration_ms", elapsed),
			)

			item.Result = &result
			item.Display = result.String()
			resp.Succeeded++
		}
		itemSpan.End()
		resp.Items = append(resp.Items, item)
	}

	historyGauge.Record(ctx, int64(h.history.Len()))

	span.AddEvent("batch.complete", trace.WithAttributes(
		attribute.Int("succeeded", resp.Succeeded),
		attribute.Int("failed", resp.Failed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("batch evaluated",
		zap.Int("expressions", len(req.Expressions)),
		zap.Int("succeeded", resp.Succeeded),
		zap.Int("failed", resp.Failed),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// Handlers: history and allow-list
// ---------------------------------------------------------------------------

// History handles GET /calculator/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entries := h.history.Entries()
	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{Entries: entries, Count: len(entries)})
}

// ClearHistory handles DELETE /calculator/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n := h.history.Clear()
	historyGauge.Record(ctx, 0)

	observability.LoggerWithTrace(ctx).Info("history cleared",
		zap.Int("entries", n),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, ClearHistoryResponse{Cleared: n})
}

// HistoryEntry handles GET /calculator/history/{index}, index 0 being the
// most recent calculation.
func (h *Handler) HistoryEntry(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.fail(r.Context(), "history", badRequest("history", "history index must be an integer", err), w)
		return
	}

	entry, err := h.history.Get(index)
	if err != nil {
		h.fail(r.Context(), "history", observability.Failure{
			Op:     "history",
			Kind:   "not_found",
			Msg:    err.Error(),
			Err:    err,
			Status: http.StatusNotFound,
		}, w)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, entry)
}

// Functions handles GET /calculator/functions
func (h *Handler) Functions(w http.ResponseWriter, r *http.Request) {
	ns := evaluator.NewNamespace(h.defaultMode)
	handlers.WriteJSON(w, http.StatusOK, FunctionsResponse{
		Functions:  ns.Functions(),
		Constants:  ns.Constants(),
		AngleModes: []string{evaluator.Radians.String(), evaluator.Degrees.String()},
	})
}
