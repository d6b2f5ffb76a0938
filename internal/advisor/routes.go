package advisor

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the advisor endpoints onto r.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/recommend", h.Recommend)
	r.Get("/api/compare", h.Compare)
	r.Get("/api/report/pdf", h.Report)
	r.Post("/api/ml/predict", h.Predict)
}
