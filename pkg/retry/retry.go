// Package retry repeats failing RPC reads and confirmation polls. Each
// Strategy votes on whether another attempt happens, and may sleep first.
package retry

// Action is one attempt. A nil error ends the retry loop.
type Action func() error

// Retrier holds a strategy set reused across calls, as the RPC client does for
// every read.
type Retrier interface {
	Retry(action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier captures strategies for later Retry calls. An empty set never
// refuses, so the action spins until it succeeds.
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{strategies: strategies}
}

func (r *retrier) Retry(action Action) (uint, error) {
	return Retry(action, r.strategies...)
}

// Retry calls action, then after each failure asks strategies in order whether
// to go again. It returns the attempt count and, on refusal, the last error.
//
// Evaluation stops at the first refusal. Put Limit, Context and Deadline ahead
// of Backoff so a refused attempt doesn't sleep first.
func Retry(action Action, strategies ...Strategy) (uint, error) {
	var attempts uint
	for {
		attempts++

		err := action()
		if err == nil {
			return attempts, nil
		}

		if !shouldRetry(strategies, attempts, err) {
			return attempts, err
		}
	}
}

func shouldRetry(strategies []Strategy, attempts uint, err error) bool {
	for _, s := range strategies {
		if !s(attempts, err) {
			return false
		}
	}
	return true
}
