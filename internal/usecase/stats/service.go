package stats

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Search kinds counted per day.
const (
	KindProducts = "products"
	KindSuggest  = "suggest"
	KindPoints   = "points"
	KindAssets   = "assets"
)

// Kinds lists every counted search kind.
var Kinds = []string{KindProducts, KindSuggest, KindPoints, KindAssets}

// Report is one day of search counters.
type Report struct {
	Day         string
	PeriodStart int64 // unix millis, UTC midnight
	PeriodEnd   int64
	Counts      map[string]int64
}

// Service counts searches.
type Service struct {
	store  CounterStore
	logger *zap.Logger
	now    func() time.Time
}

// New creates a stats service.
func New(store CounterStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// Record counts one search of kind. Failures are logged, never returned.
func (s *Service) Record(ctx context.Context, kind string) {
	if err := s.store.Incr(ctx, kind, s.now()); err != nil {
		s.logger.Warn("Failed to record search stats", zap.String("kind", kind), zap.Error(err))
	}
}

// Today returns the counters of the current UTC day.
func (s *Service) Today(ctx context.Context) (Report, error) {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := make(map[string]int64, len(Kinds))
	for _, kind := range Kinds {
		n, err := s.store.Get(ctx, kind, now)
		if err != nil {
			return Report{}, fmt.Errorf("get %s counter: %w", kind, err)
		}
		counts[kind] = n
	}

	return Report{
		Day:         dayStart.Format(time.DateOnly),
		PeriodStart: dayStart.UnixMilli(),
		PeriodEnd:   dayStart.Add(24 * time.Hour).UnixMilli(),
		Counts:      counts,
	}, nil
}
