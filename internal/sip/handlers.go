package sip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"investease-api/internal/cache"
	"investease-api/internal/handlers"
	"investease-api/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the SIP domain's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("sip")

// Handler serves the SIP endpoints. Results of /api/sip/calc are cached in
// store when it is non-nil.
type Handler struct {
	store cache.Store
}

func NewHandler(store cache.Store) *Handler {
	return &Handler{store: store}
}

// Calculate handles POST /api/sip/calc.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	const opName = "calc"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "sip.calc",
		trace.WithAttributes(
			attribute.String("sip.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("sip.monthly_amount", req.MonthlyAmount),
		attribute.Float64("sip.expected_return", req.ExpectedReturn),
		attribute.Float64("sip.time_period", req.TimePeriod),
	)

	key := cacheKey(req)
	if calc, ok := h.lookup(ctx, logger, key); ok {
		span.AddEvent("cache.hit")
		span.SetStatus(codes.Ok, "")
		handlers.WriteJSON(w, http.StatusOK, CalcResponse{Status: handlers.StatusSuccess, Calculation: calc})
		return
	}

	start := time.Now()
	res, err := Project(req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return
	}

	calc := NewCalculation(req, res)
	h.record(ctx, opName, calc.FutureValue, elapsed)

	span.AddEvent("projection.complete", trace.WithAttributes(
		attribute.Float64("future_value", calc.FutureValue),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("sip.future_value", calc.FutureValue))
	span.SetStatus(codes.Ok, "")

	logger.Info("sip projection completed",
		zap.Float64("monthly_amount", req.MonthlyAmount),
		zap.Float64("expected_return", req.ExpectedReturn),
		zap.Float64("time_period", req.TimePeriod),
		zap.Float64("future_value", calc.FutureValue),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	h.save(ctx, logger, key, calc)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{Status: handlers.StatusSuccess, Calculation: calc})
}

// Projection handles POST /api/sip/projection. It emits a child span per
// projected year.
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	const opName = "projection"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "sip.projection",
		trace.WithAttributes(
			attribute.String("sip.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	schedule, err := ProjectSchedule(req.Request, req.Inflation)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return
	}

	for _, p := range schedule.Years {
		_, yearSpan := tracer.Start(ctx, fmt.Sprintf("sip.projection.year.%d", p.Year),
			trace.WithAttributes(
				attribute.Int("sip.year", p.Year),
				attribute.Float64("sip.invested", p.Invested),
				attribute.Float64("sip.value", p.Value),
			),
		)
		yearSpan.End()
	}

	h.record(ctx, opName, schedule.Final.FutureValue, elapsed)

	span.SetAttributes(
		attribute.Int("sip.years", len(schedule.Years)),
		attribute.Float64("sip.inflation", req.Inflation),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("sip schedule completed",
		zap.Int("years", len(schedule.Years)),
		zap.Float64("inflation", req.Inflation),
		zap.Float64("future_value", schedule.Final.FutureValue),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, ScheduleResponse{Status: handlers.StatusSuccess, Projection: schedule})
}

func (h *Handler) record(ctx context.Context, opName string, futureValue, elapsed float64) {
	attrs := metric.WithAttributes(attribute.String("operation", opName))
	projectionCounter.Add(ctx, 1, attrs)
	projectionHistogram.Record(ctx, elapsed, attrs)
	futureValueGauge.Record(ctx, futureValue, attrs)
}

func (h *Handler) lookup(ctx context.Context, logger *zap.Logger, key string) (Calculation, bool) {
	if h.store == nil {
		return Calculation{}, false
	}

	raw, ok := h.store.Get(ctx, key)
	if !ok {
		cacheCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "miss")))
		return Calculation{}, false
	}

	var calc Calculation
	if err := json.Unmarshal([]byte(raw), &calc); err != nil {
		logger.Warn("discarding unreadable cached sip result", zap.String("key", key), zap.Error(err))
		cacheCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "corrupt")))
		return Calculation{}, false
	}

	cacheCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "hit")))
	return calc, true
}

func (h *Handler) save(ctx context.Context, logger *zap.Logger, key string, calc Calculation) {
	if h.store == nil {
		return
	}

	raw, err := json.Marshal(calc)
	if err != nil {
		logger.Warn("encoding sip result for cache", zap.Error(err))
		return
	}

	if err := h.store.Set(ctx, key, string(raw)); err != nil {
		logger.Warn("caching sip result", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(req Request) string {
	return "sip:" +
		strconv.FormatFloat(req.MonthlyAmount, 'g', -1, 64) + ":" +
		strconv.FormatFloat(req.ExpectedReturn, 'g', -1, 64) + ":" +
		strconv.FormatFloat(req.TimePeriod, 'g', -1, 64)
}

func statusFor(err error) int {
	if IsInvalidInput(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
