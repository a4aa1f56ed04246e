package api

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
)

// ErrUnavailable is the absent result: the call failed and the caller should
// tell the user the service is unreachable.
var ErrUnavailable = errors.New("stats api unavailable")

// RetryPolicy bounds how often a transient failure is retried. MaxAttempts
// counts the first call.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

type Op[T any] func(ctx context.Context) (T, error)

// WithRetry wraps op so that timeouts and connectivity failures are retried
// with a constant delay until MaxAttempts is reached. Any failure that
// survives the wrapper is reported as ErrUnavailable, except *APIError which
// carries a real answer from the server and is passed through.
func WithRetry[T any](policy RetryPolicy, logger zerolog.Logger, op Op[T]) Op[T] {
	maxRetries := uint64(0)
	if policy.MaxAttempts > 1 {
		maxRetries = uint64(policy.MaxAttempts - 1)
	}

	return func(ctx context.Context) (T, error) {
		var (
			zero    T
			result  T
			attempt int
		)

		backoff := retry.WithMaxRetries(maxRetries, retry.NewConstant(policy.Delay))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			attempt++
			res, err := op(ctx)
			if err == nil {
				result = res
				return nil
			}
			if IsTransient(err) {
				logger.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", policy.MaxAttempts).Msg("api call failed, retrying")
				return retry.RetryableError(err)
			}
			return err
		})
		if err == nil {
			return result, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return zero, err
		}

		if IsTransient(err) {
			logger.Error().Err(err).Int("attempts", attempt).Msg("api unavailable, giving up")
		} else {
			logger.Error().Err(err).Msg("api call failed")
		}
		return zero, ErrUnavailable
	}
}

func IsTransient(err error) bool {
	return IsTimeout(err) || IsConnectivity(err)
}

func IsTimeout(err error) bool {
	if errors.Is(err, fasthttp.ErrTimeout) ||
		errors.Is(err, fasthttp.ErrDialTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func IsConnectivity(err error) bool {
	if errors.Is(err, fasthttp.ErrConnectionClosed) ||
		errors.Is(err, fasthttp.ErrNoFreeConns) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
