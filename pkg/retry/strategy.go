package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/code-payments/token-fusion/pkg/retry/backoff"
)

// Strategy receives the attempt count and the error of the attempt that just
// failed, and returns false to stop.
type Strategy func(attempts uint, err error) bool

// Limit caps the attempt count. Limit(3) means the first try plus two retries.
func Limit(maxAttempts uint) Strategy {
	return func(attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableErrors stops on any error that isn't one of targets, wrapped or not.
func RetriableErrors(targets ...error) Strategy {
	return func(_ uint, err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// Backoff never refuses. It sleeps strategy(attempts), at most maxBackoff.
func Backoff(strategy backoff.Strategy, maxBackoff time.Duration) Strategy {
	return func(attempts uint, _ error) bool {
		sleeperImpl.Sleep(capDelay(strategy(attempts), maxBackoff))
		return true
	}
}

// BackoffWithJitter is Backoff with the capped delay scaled by a random factor
// in [1-jitter, 1+jitter], so clients rate limited together don't retry in
// lockstep.
func BackoffWithJitter(strategy backoff.Strategy, maxBackoff time.Duration, jitter float64) Strategy {
	return func(attempts uint, _ error) bool {
		delay := capDelay(strategy(attempts), maxBackoff)
		factor := 1 + jitter*(2*rand.Float64()-1)
		sleeperImpl.Sleep(time.Duration(float64(delay) * factor))
		return true
	}
}

// Context refuses once ctx is cancelled or past its deadline. Confirmation
// polling uses it so a caller's cancellation ends the wait between polls.
func Context(ctx context.Context) Strategy {
	return func(uint, error) bool {
		return ctx.Err() == nil
	}
}

// Deadline refuses once the wall clock reaches deadline. It bounds how long a
// submitted transaction is polled regardless of the caller's context.
func Deadline(deadline time.Time) Strategy {
	return func(uint, error) bool {
		return nowFunc().Before(deadline)
	}
}

func capDelay(delay, limit time.Duration) time.Duration {
	if delay > limit {
		return limit
	}
	return delay
}

type sleeper interface {
	Sleep(time.Duration)
}

type realSleeper struct{}

func (realSleeper) Sleep(d time.Duration) { time.Sleep(d) }

var (
	sleeperImpl sleeper = realSleeper{}
	nowFunc             = time.Now
)
