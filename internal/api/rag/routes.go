package rag

import (
	"github.com/Rohang10/saas-copilot/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers knowledge base routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)

	r.Route("/rag", func(r chi.Router) {
		r.With(middleware.RequireAdminKey(h.adminKey)).Post("/ingest", h.Ingest)
		r.Post("/ask", h.Ask)
		r.Post("/evaluate", h.Evaluate)
	})
}
