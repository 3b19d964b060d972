package responder

import (
	"context"
	"math/rand"
	"time"
)

// backoff implements exponential backoff with jitter for accept retries.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

func newBackoff(initial, max time.Duration) *backoff {
	return &backoff{
		initial: initial,
		max:     max,
		current: initial,
	}
}

// wait sleeps for the current duration (±20%) or until ctx is done, then
// doubles the duration up to max.
func (b *backoff) wait(ctx context.Context) {
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	t := time.NewTimer(time.Duration(float64(b.current) + jitter))
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
}

func (b *backoff) reset() {
	b.current = b.initial
}
