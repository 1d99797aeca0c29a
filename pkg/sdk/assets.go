package assetsearch

import (
	"context"
	"fmt"
	"time"

	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
)

// AssetService stores and searches assets. Writes invalidate cached catalogs.
type AssetService struct {
	svc assetUseCase
	obs *observer
}

// Upsert creates or replaces an asset. Returns true if created.
func (s *AssetService) Upsert(ctx context.Context, a Asset) (_ bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("asset.upsert", start, err) }()

	ia, err := toInternalAsset(a)
	if err != nil {
		return false, fmt.Errorf("upsert asset: %w", err)
	}
	created, err := s.svc.Upsert(ctx, &ia)
	if err != nil {
		return false, fmt.Errorf("upsert asset: %w", err)
	}
	return created, nil
}

// UpsertBatch stores many assets. Nothing is stored if any asset is invalid.
func (s *AssetService) UpsertBatch(ctx context.Context, assets []Asset) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("asset.upsert_batch", start, err) }()

	internal := make([]domasset.Asset, len(assets))
	for i, a := range assets {
		ia, err := toInternalAsset(a)
		if err != nil {
			return fmt.Errorf("upsert assets: item %d: %w", i, err)
		}
		internal[i] = ia
	}
	if err = s.svc.UpsertMany(ctx, internal); err != nil {
		return fmt.Errorf("upsert assets: %w", err)
	}
	return nil
}

// Get returns an asset by path.
func (s *AssetService) Get(ctx context.Context, path string) (_ Asset, err error) {
	start := time.Now()
	defer func() { s.obs.observe("asset.get", start, err) }()

	a, err := s.svc.Get(ctx, path)
	if err != nil {
		return Asset{}, fmt.Errorf("get asset: %w", err)
	}
	return fromInternalAsset(&a), nil
}

// List ranks assets against query. A blank query returns every asset ordered by path.
func (s *AssetService) List(ctx context.Context, query string) (out []RankedAsset, err error) {
	start := time.Now()
	defer func() { s.obs.observeSearch("asset.list", start, len(out), err) }()

	ranked, err := s.svc.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	out = make([]RankedAsset, len(ranked))
	for i := range ranked {
		out[i] = RankedAsset{Asset: fromInternalAsset(&ranked[i].Asset), Score: ranked[i].Score}
	}
	return out, nil
}

// Delete removes an asset.
func (s *AssetService) Delete(ctx context.Context, path string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("asset.delete", start, err) }()

	if err = s.svc.Delete(ctx, path); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}
