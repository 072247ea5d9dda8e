package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle bounds how many documents per second a batch run pushes
// through the pipeline.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle allowing perSecond documents per
// second with the given burst (minimum 1). A zero or negative
// perSecond disables throttling.
func NewThrottle(perSecond float64, burst int) *Throttle {
	if perSecond <= 0 {
		return &Throttle{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until the next document may start, or the context ends.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}

// Allow reports whether a document may start without waiting.
func (t *Throttle) Allow() bool {
	if t.limiter == nil {
		return true
	}
	return t.limiter.Allow()
}
