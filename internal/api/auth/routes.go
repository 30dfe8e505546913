package auth

import (
	"github.com/Rohang10/saas-copilot/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers auth routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)

		r.With(middleware.RequireAuth(h.usecase)).Get("/me", h.Me)
	})
}
