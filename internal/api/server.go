package api

import (
	"net/http"
	"time"

	authapi "github.com/Rohang10/saas-copilot/internal/api/auth"
	"github.com/Rohang10/saas-copilot/internal/api/docs"
	"github.com/Rohang10/saas-copilot/internal/api/middleware"
	ragapi "github.com/Rohang10/saas-copilot/internal/api/rag"
	"github.com/Rohang10/saas-copilot/internal/config"
	"github.com/Rohang10/saas-copilot/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	authHandler *authapi.Handler,
	ragHandler *ragapi.Handler,
	corsCfg config.CORSConfig,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.TraceID)                      // Add trace ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.Recoverer)                    // Recover from panics
	r.Use(middleware.CORS(corsCfg))                // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	authapi.RegisterRoutes(r, authHandler)
	ragapi.RegisterRoutes(r, ragHandler)

	return r
}
