package docs

import (
	"bytes"
	_ "embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const specPath = "/docs/swagger.yaml"

//go:embed swagger.yaml
var swaggerYAML []byte

// builtAt is reported as the modification time of the embedded document
var builtAt = time.Now()

// RegisterRoutes mounts Swagger UI under /docs over the embedded OpenAPI document
func RegisterRoutes(r chi.Router) {
	r.Route("/docs", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/docs/index.html", http.StatusFound)
		})
		r.Get("/swagger.yaml", serveSpec)
		r.Get("/*", httpSwagger.Handler(
			httpSwagger.URL(specPath),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("list"),
		))
	})
}

func serveSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	http.ServeContent(w, r, "swagger.yaml", builtAt, bytes.NewReader(swaggerYAML))
}
