package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/Rohang10/saas-copilot/internal/config"
)

const (
	corsAllowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsAllowHeaders = "Accept, Authorization, Content-Type, X-Admin-Key, X-Request-Id, X-Trace-Id"
	corsMaxAge       = "600"
)

// CORS allows credentialed cross-origin requests from the configured origins
// and answers preflight requests itself.
func CORS(cfg config.CORSConfig) func(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	var pattern *regexp.Regexp
	if cfg.AllowedOriginRegex != "" {
		pattern = regexp.MustCompile(cfg.AllowedOriginRegex)
	}

	isAllowed := func(origin string) bool {
		if _, ok := allowed[origin]; ok {
			return true
		}
		return pattern != nil && pattern.MatchString(origin)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			preflight := r.Method == http.MethodOptions

			if origin != "" && isAllowed(origin) {
				h := w.Header()
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Expose-Headers", TraceIDHeader)

				if preflight {
					h.Set("Access-Control-Allow-Methods", corsAllowMethods)
					h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
					h.Set("Access-Control-Max-Age", corsMaxAge)
				}
			}

			if preflight {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
