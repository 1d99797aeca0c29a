package property

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/assetsearch/internal/db"
	domprop "github.com/kailas-cloud/assetsearch/internal/domain/property"
)

// store is the consumer interface for the vocabulary document (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo keeps the vocabulary as one JSON document.
type Repo struct {
	store store
	key   string
}

// New creates a property repository. prefix is the global storage key prefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, key: prefix + "properties"}
}

// Load returns the stored vocabulary, or the defaults when nothing was saved yet.
func (r *Repo) Load(ctx context.Context) (domprop.Vocabulary, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domprop.Defaults(), nil
		}
		return domprop.Vocabulary{}, fmt.Errorf("get %s: %w", r.key, err)
	}

	var s domprop.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return domprop.Vocabulary{}, fmt.Errorf("decode %s: %w", r.key, err)
	}
	return domprop.FromSnapshot(s), nil
}

// Save replaces the stored vocabulary.
func (r *Repo) Save(ctx context.Context, v *domprop.Vocabulary) error {
	data, err := json.Marshal(v.Snapshot())
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}
