package middleware

import (
	"net/http"
	"regexp"

	"github.com/Rohang10/saas-copilot/internal/pkg/logger"
	"github.com/google/uuid"
)

// TraceIDHeader carries the trace id in both directions
const TraceIDHeader = "X-Trace-Id"

var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// TraceID takes the request trace id from the header or generates a new one,
// stores it in the request context and echoes it in the response. Answers
// carry their own trace id in the body.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if !traceIDPattern.MatchString(traceID) {
			traceID = uuid.NewString()
		}

		w.Header().Set(TraceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestTrace(r.Context(), traceID)))
	})
}
