package stats

import (
	"context"
	"time"
)

// CounterStore persists daily counters.
type CounterStore interface {
	Incr(ctx context.Context, kind string, at time.Time) error
	Get(ctx context.Context, kind string, at time.Time) (int64, error)
}
