package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"200ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	attempts := rc.Attempts
	if attempts == 0 {
		// zero means "retry forever" for retry-go
		attempts = 1
	}

	return []retry.Option{
		retry.Attempts(attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
		retry.LastErrorOnly(true),
	}
}

// Do calls fn until it succeeds, the attempts are exhausted, fn returns an error
// wrapped with Unrecoverable, or ctx is done. Timeout bounds all attempts together.
func Do(ctx context.Context, rc RetryConfig, fn func(ctx context.Context) error, opts ...retry.Option) error {
	if rc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.Timeout)
		defer cancel()
	}

	options := append(rc.ToRetryOptions(), retry.Context(ctx))
	options = append(options, opts...)

	return retry.Do(func() error {
		return fn(ctx)
	}, options...)
}

// Unrecoverable marks err so Do stops retrying and returns it as is.
func Unrecoverable(err error) error {
	return retry.Unrecoverable(err)
}
