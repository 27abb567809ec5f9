package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is joined into errors from a remote backend that cannot
// be reached at connect time.
var ErrUnavailable = errors.New("cache backend unavailable")

// Backoff is a retry policy: up to Attempts calls, sleeping Delay after the
// first failure and doubling it after each further one.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff keeps editor round trips short while riding out a
// reconnect.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

type retryable struct{ err error }

func (e retryable) Error() string { return e.err.Error() }
func (e retryable) Unwrap() error { return e.err }

// Retryable marks err as transient. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	return errors.As(err, new(retryable))
}

// Do calls fn until it succeeds, returns an error not marked Retryable, or
// the attempts run out. The last error is returned unwrapped.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	n := max(b.Attempts, 1)
	var err error
	for i := range n {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == n-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	var r retryable
	if errors.As(err, &r) {
		return r.err
	}
	return err
}

// RetryWithBackoff runs fn under DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}
