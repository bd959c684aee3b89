package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter gates calls so that consecutive permits are separated by a
// minimum interval. Concurrent callers block on the same clock; there is
// no fairness guarantee beyond first-come scheduling of the delay.
type Limiter interface {
	Wait(ctx context.Context) error
}

type minInterval struct {
	limiter *rate.Limiter
}

// NewMinInterval returns a limiter that admits one call per interval,
// with no burst allowance. The check-and-reserve step is atomic, so two
// concurrent callers can never compute the same wait window.
func NewMinInterval(interval time.Duration) Limiter {
	return &minInterval{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (m *minInterval) Wait(ctx context.Context) error {
	return m.limiter.Wait(ctx)
}
