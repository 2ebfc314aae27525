package commands

import (
	"context"
	"errors"
	"time"
)

// DefaultCommandTimeout bounds a command when its handler sets no timeout.
// A full sync into a remote catalog is the slowest expected run.
const DefaultCommandTimeout = 30 * time.Second

// scope returns the execution context for one command run. A nil ctx becomes
// Background, a positive timeout adds a deadline, and a context that is
// already done is reported as a tagged context error.
func scope(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cancel := context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}
	if err := ctx.Err(); err != nil {
		cancel()
		return nil, nil, wrapContextError(err)
	}
	return ctx, cancel, nil
}

// outcome classifies a finished run. A handler that returned nil while its
// context expired still counts as a context failure.
func outcome(ctx context.Context, err error) (TelemetryStatus, error) {
	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		return TelemetryStatusContextError, err
	case err != nil:
		return TelemetryStatusFailed, err
	case ctx.Err() != nil:
		return TelemetryStatusContextError, ctx.Err()
	default:
		return TelemetryStatusSuccess, nil
	}
}
