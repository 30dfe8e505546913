package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/pkg/logger"
	"github.com/Rohang10/saas-copilot/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AdminKeyHeader carries the key that guards administrative endpoints
const AdminKeyHeader = "X-Admin-Key"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

type userIDKey struct{}

// UserID returns the id of the user authenticated by RequireAuth
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(auth Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := auth.Authenticate(r.Context(), bearerToken(r))
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				response.FromError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			ctx = logger.AddFields(ctx, zap.String("user_id", userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdminKey rejects requests whose admin key header does not match key.
// An empty key rejects every request.
func RequireAdminKey(key string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminKeyHeader)
			if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				ctxzap.Warn(r.Context(), "admin key rejected", zap.String("path", r.URL.Path))
				response.FromError(w, entity.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
