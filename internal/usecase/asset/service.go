package asset

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
	"github.com/kailas-cloud/assetsearch/internal/domain/search/rank"
	"github.com/kailas-cloud/assetsearch/internal/metrics"
	"github.com/kailas-cloud/assetsearch/internal/usecase/stats"
)

// Ranked is an asset with its relevance score.
type Ranked struct {
	Asset domasset.Asset
	Score int
}

// Service handles asset CRUD and ranked listing.
type Service struct {
	repo    Repository
	catalog CatalogInvalidator
	stats   SearchRecorder
	logger  *zap.Logger
}

// New creates an asset service.
func New(repo Repository, catalog CatalogInvalidator, stats SearchRecorder, logger *zap.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, stats: stats, logger: logger}
}

// Upsert creates or replaces one asset. Returns true if created.
func (s *Service) Upsert(ctx context.Context, a *domasset.Asset) (bool, error) {
	created, err := s.repo.Upsert(ctx, a)
	if err != nil {
		return false, fmt.Errorf("upsert asset: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

// UpsertMany stores a batch of assets.
func (s *Service) UpsertMany(ctx context.Context, assets []domasset.Asset) error {
	if len(assets) == 0 {
		return nil
	}
	if err := s.repo.UpsertMany(ctx, assets); err != nil {
		return fmt.Errorf("upsert assets: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Get returns an asset by path.
func (s *Service) Get(ctx context.Context, path string) (domasset.Asset, error) {
	a, err := s.repo.Get(ctx, path)
	if err != nil {
		return domasset.Asset{}, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// Delete removes an asset.
func (s *Service) Delete(ctx context.Context, path string) error {
	if err := s.repo.Delete(ctx, path); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// List ranks every asset against query: file name first, then product name, then folder.
// A blank query returns all assets ordered by path.
func (s *Service) List(ctx context.Context, query string) ([]Ranked, error) {
	assets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	byPath := make(map[string]domasset.Asset, len(assets))
	records := make([]rank.Record[string], len(assets))
	for i := range assets {
		byPath[assets[i].Path()] = assets[i]
		records[i] = assets[i].Record()
	}

	scored := rank.Rank(records, query)
	out := make([]Ranked, len(scored))
	for i, sc := range scored {
		out[i] = Ranked{Asset: byPath[sc.Record.ID], Score: sc.Score}
	}

	metrics.ObserveSearch(stats.KindAssets, len(out))
	s.stats.Record(ctx, stats.KindAssets)
	return out, nil
}

// invalidate drops cached catalogs. Failures only log.
func (s *Service) invalidate(ctx context.Context) {
	if err := s.catalog.Invalidate(ctx); err != nil {
		s.logger.Warn("Catalog invalidation failed", zap.Error(err))
	}
}
