// Package stats keeps daily search counters.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/assetsearch/internal/db"
)

const dayLayout = "2006-01-02"

// store is the consumer interface for counters (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store counts events per kind per UTC day (INCRBY + EXPIRE NX).
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a stats store. ttl bounds how long a day's counters live (recommended: 48h).
func New(s store, prefix string, ttl time.Duration) *Store {
	return &Store{store: s, prefix: prefix + "stats:", ttl: ttl}
}

// Incr adds one to the counter of kind for the day of at.
func (s *Store) Incr(ctx context.Context, kind string, at time.Time) error {
	key := s.key(kind, at)
	if err := s.store.IncrBy(ctx, key, 1); err != nil {
		return fmt.Errorf("stats INCRBY %s: %w", key, err)
	}

	// NX keeps the first expiry so the counter dies with its day.
	if err := s.store.Expire(ctx, key, s.ttl, true); err != nil {
		return fmt.Errorf("stats EXPIRE %s: %w", key, err)
	}
	return nil
}

// Get returns the counter of kind for the day of at. Missing counters are 0.
func (s *Store) Get(ctx context.Context, kind string, at time.Time) (int64, error) {
	key := s.key(kind, at)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("stats GET %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stats GET %s parse: %w", key, err)
	}
	return val, nil
}

func (s *Store) key(kind string, at time.Time) string {
	return s.prefix + at.UTC().Format(dayLayout) + ":" + kind
}
