package property

import (
	"context"

	"github.com/kailas-cloud/assetsearch/internal/domain/asset"
	domprop "github.com/kailas-cloud/assetsearch/internal/domain/property"
)

// Repository stores the vocabulary document.
type Repository interface {
	Load(ctx context.Context) (domprop.Vocabulary, error)
	Save(ctx context.Context, v *domprop.Vocabulary) error
}

// AssetLister reads every stored asset for usage checks.
type AssetLister interface {
	List(ctx context.Context) ([]asset.Asset, error)
}

// AssetWriter stores renamed assets. Implementations drop cached catalogs.
type AssetWriter interface {
	UpsertMany(ctx context.Context, assets []asset.Asset) error
}
