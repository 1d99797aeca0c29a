package asset

import (
	"context"

	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
)

// Repository defines the storage contract for assets.
type Repository interface {
	Upsert(ctx context.Context, a *domasset.Asset) (created bool, err error)
	UpsertMany(ctx context.Context, assets []domasset.Asset) error
	Get(ctx context.Context, path string) (domasset.Asset, error)
	List(ctx context.Context) ([]domasset.Asset, error)
	Delete(ctx context.Context, path string) error
}

// CatalogInvalidator drops cached catalogs after asset writes.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

// SearchRecorder counts searches.
type SearchRecorder interface {
	Record(ctx context.Context, kind string)
}
