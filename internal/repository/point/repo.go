package point

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/assetsearch/internal/db"
	dompoint "github.com/kailas-cloud/assetsearch/internal/domain/point"
)

// store is the consumer interface for points (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo keeps the whole marker collection as one document. Writes replace it.
type Repo struct {
	store store
	key   string
}

// New creates a point repository. prefix is the global storage key prefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, key: prefix + "points"}
}

// Load returns every stored point in document order. A missing document is an empty collection.
// Malformed features are skipped; the number skipped is returned for logging.
func (r *Repo) Load(ctx context.Context) ([]dompoint.Point, int, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []dompoint.Point{}, 0, nil
		}
		return nil, 0, fmt.Errorf("get %s: %w", r.key, err)
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", r.key, err)
	}

	out := make([]dompoint.Point, 0, len(fc.Features))
	skipped := 0
	for _, f := range fc.Features {
		p, ok := fromFeature(f)
		if !ok {
			skipped++
			continue
		}
		out = append(out, p)
	}
	return out, skipped, nil
}

// Save replaces the stored collection.
func (r *Repo) Save(ctx context.Context, points []dompoint.Point) error {
	fc := featureCollection{Type: "FeatureCollection", Features: make([]feature, len(points))}
	for i := range points {
		fc.Features[i] = toFeature(&points[i])
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("encode points: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}
