package sip

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the SIP endpoints under /api/sip.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/sip", func(r chi.Router) {
		r.Post("/calc", h.Calculate)
		r.Post("/projection", h.Projection)
	})
}
