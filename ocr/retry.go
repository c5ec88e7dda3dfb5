package ocr

import (
	"context"
	"time"
)

// Backoff maps a retry number (1 for the first retry) to the delay inserted
// before that attempt. Implementations must be pure so retry timing can be
// unit-tested without sleeping.
type Backoff func(retry int) time.Duration

// ExponentialBackoff returns a Backoff that doubles from base on every retry,
// capped at max.
func ExponentialBackoff(base, max time.Duration) Backoff {
	return func(retry int) time.Duration {
		if retry < 1 {
			retry = 1
		}
		d := base
		for i := 1; i < retry; i++ {
			d *= 2
			if d >= max {
				return max
			}
		}
		if d > max {
			return max
		}
		return d
	}
}

// DefaultBackoff doubles from one second and caps at thirty seconds,
// matching the serving deployment's guidance.
var DefaultBackoff = ExponentialBackoff(time.Second, 30*time.Second)

// SleepFunc blocks for the given duration or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// defaultTemperatureSchedule raises sampling temperature on each attempt so a
// stuck generation gets a chance to break loose; clamped at the last entry.
var defaultTemperatureSchedule = []float64{0.1, 0.2, 0.3, 0.5, 0.8}
