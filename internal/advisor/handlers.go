package advisor

import (
	"context"
	"encoding/json"
	"net/http"

	"investease-api/internal/handlers"
	"investease-api/internal/observability"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("advisor")

const (
	reportPendingMessage     = "PDF generation feature coming soon"
	predictionPendingMessage = "ML prediction feature coming soon"
)

// Handler serves the advisor endpoints.
type Handler struct {
	advisor *Advisor
}

func NewHandler(a *Advisor) *Handler {
	return &Handler{advisor: a}
}

// Recommend handles POST /api/recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	const opName = "recommend"

	ctx, span, logger, requestID := h.begin(r, opName)
	defer span.End()

	var u UserDetails
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.String("advisor.risk_preference", u.RiskPreference))

	rec, err := h.advisor.Recommend(u)
	switch {
	case errors.Is(err, ErrUnknownRiskPreference):
		observability.RecordError(ctx, span, logger, errorCounter, opName, "Invalid risk preference", err, http.StatusBadRequest, w)
		return
	case errors.Is(err, ErrInvalidProfile):
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusUnprocessableEntity, w)
		return
	case err != nil:
		observability.RecordError(ctx, span, logger, errorCounter, opName, "internal error", err, http.StatusInternalServerError, w)
		return
	}

	recommendationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("risk", rec.RiskLevel)))
	span.SetStatus(codes.Ok, "")

	logger.Info("recommendation served",
		zap.String("risk", rec.RiskLevel),
		zap.Int("age", u.Age),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, RecommendResponse{
		Status:         handlers.StatusSuccess,
		Recommendation: rec,
		UserProfile:    u,
	})
}

// Compare handles GET /api/compare.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	_, span, logger, requestID := h.begin(r, "compare")
	defer span.End()

	plans := h.advisor.Plans()

	span.SetAttributes(attribute.Int("advisor.plans", len(plans)))
	span.SetStatus(codes.Ok, "")

	logger.Info("plan comparison served",
		zap.Int("plans", len(plans)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, CompareResponse{
		Status: handlers.StatusSuccess,
		Plans:  plans,
	})
}

// Report handles GET /api/report/pdf. Report rendering is not offered yet.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	_, span, logger, requestID := h.begin(r, "report")
	defer span.End()

	span.SetStatus(codes.Ok, "")
	logger.Info("report requested", zap.String("request_id", requestID))

	handlers.WriteJSON(w, http.StatusOK, ReportResponse{
		Status:  handlers.StatusSuccess,
		Message: reportPendingMessage,
	})
}

// Predict handles POST /api/ml/predict. The body is validated like a
// recommendation request; no prediction is produced yet.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	const opName = "predict"

	ctx, span, logger, requestID := h.begin(r, opName)
	defer span.End()

	var u UserDetails
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if err := h.advisor.Validate(u); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusUnprocessableEntity, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("prediction requested",
		zap.String("risk", u.RiskPreference),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, PredictionResponse{
		Status:  handlers.StatusSuccess,
		Message: predictionPendingMessage,
	})
}

// begin starts the advisor.<opName> span for r.
func (h *Handler) begin(r *http.Request, opName string) (context.Context, trace.Span, *zap.Logger, string) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "advisor."+opName,
		trace.WithAttributes(
			attribute.String("advisor.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	return ctx, span, logger, requestID
}
