package asset

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"

	"github.com/kailas-cloud/assetsearch/internal/db"
	"github.com/kailas-cloud/assetsearch/internal/domain"
	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
)

// store is the consumer interface for assets (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/asset.Repository. Each asset is one hash keyed by the hash of its path.
type Repo struct {
	store  store
	prefix string
}

// New creates an asset repository. prefix is the global storage key prefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Upsert creates or replaces an asset. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, a *domasset.Asset) (bool, error) {
	key := r.key(a.Path())
	fields, err := buildHashFields(a)
	if err != nil {
		return false, err
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, fields); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}
	return !exists, nil
}

// UpsertMany stores assets in one pipelined round-trip.
func (r *Repo) UpsertMany(ctx context.Context, assets []domasset.Asset) error {
	items := make([]db.HashSetItem, 0, len(assets))
	for i := range assets {
		fields, err := buildHashFields(&assets[i])
		if err != nil {
			return err
		}
		items = append(items, db.HashSetItem{Key: r.key(assets[i].Path()), Fields: fields})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset %d assets: %w", len(items), err)
	}
	return nil
}

// Get returns an asset by path.
func (r *Repo) Get(ctx context.Context, path string) (domasset.Asset, error) {
	key := r.key(path)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domasset.Asset{}, domain.ErrAssetNotFound
		}
		return domasset.Asset{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	return parseHashFields(m), nil
}

// List returns every stored asset ordered by path.
func (r *Repo) List(ctx context.Context) ([]domasset.Asset, error) {
	pattern := r.prefix + "asset:*"
	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}
	if len(keys) == 0 {
		return []domasset.Asset{}, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall %d assets: %w", len(keys), err)
	}

	out := make([]domasset.Asset, 0, len(hashes))
	for _, m := range hashes {
		// deleted between SCAN and HGETALL
		if m["path"] == "" {
			continue
		}
		out = append(out, parseHashFields(m))
	}
	slices.SortFunc(out, func(a, b domasset.Asset) int {
		return cmp.Compare(a.Path(), b.Path())
	})
	return out, nil
}

// Delete removes an asset.
func (r *Repo) Delete(ctx context.Context, path string) error {
	key := r.key(path)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrAssetNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func (r *Repo) key(path string) string {
	h := sha256.Sum256([]byte(path))
	return r.prefix + "asset:" + hex.EncodeToString(h[:])
}
