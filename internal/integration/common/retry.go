package common

import (
	"context"
	"errors"

	pkgRetry "github.com/Rohang10/saas-copilot/internal/pkg/retry"
	pkghttp "github.com/Rohang10/saas-copilot/pkg/http"
	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// DoWithRetry runs fn under cfg and logs every retry.
// Client errors other than 429 are returned without retrying.
func DoWithRetry(ctx context.Context, cfg pkgRetry.RetryConfig, operation string, fn func(ctx context.Context) error) error {
	return pkgRetry.Do(ctx, cfg, func(ctx context.Context) error {
		err := fn(ctx)

		var httpErr *pkghttp.HTTPError
		if errors.As(err, &httpErr) && !httpErr.Retryable() {
			return pkgRetry.Unrecoverable(err)
		}

		return err
	}, retry.OnRetry(func(n uint, err error) {
		ctxzap.Warn(ctx, "retrying external call",
			zap.String("operation", operation),
			zap.Uint("attempt", n+1),
			zap.Error(err),
		)
	}))
}
