// Package backoff computes the sleep between retry attempts.
package backoff

import (
	"math"
	"time"
)

// Strategy maps the number of attempts made so far, starting at 1, to the next
// delay.
type Strategy func(attempts uint) time.Duration

// Constant waits interval every time. Confirmation polling uses it.
func Constant(interval time.Duration) Strategy {
	return func(attempts uint) time.Duration {
		return interval
	}
}

// Exponential multiplies baseDelay by base for every attempt after the first:
// Exponential(time.Second, 3) waits 1s, 3s, 9s.
func Exponential(baseDelay time.Duration, base float64) Strategy {
	return func(attempts uint) time.Duration {
		if delay := baseDelay * time.Duration(math.Pow(base, float64(attempts-1))); delay >= 0 {
			return delay
		}

		return math.MaxInt64
	}
}

// BinaryExponential doubles the delay each attempt. The RPC client backs off
// rate limited reads with it.
func BinaryExponential(baseDelay time.Duration) Strategy {
	return Exponential(baseDelay, 2)
}
