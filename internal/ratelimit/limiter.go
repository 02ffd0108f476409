// Package ratelimit throttles outgoing control-plane calls client-side.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter wraps a single golang.org/x/time/rate.Limiter. Unlike the
// per-token limiter this is adapted from, an SDK client has exactly one
// caller identity (its own api key) so there is no per-key map to manage.
type Limiter struct {
	rl *rate.Limiter
}

// Default returns a limiter allowing 10 requests/second with a burst of 20.
func Default() *Limiter {
	return New(10, 20)
}

// New creates a limiter with the given requests-per-second and burst size.
func New(requestsPerSecond float64, burst int) *Limiter {
	return &Limiter{rl: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.rl == nil {
		return nil
	}
	return l.rl.Wait(ctx)
}
