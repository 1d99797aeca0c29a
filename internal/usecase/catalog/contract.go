package catalog

import (
	"context"

	"github.com/kailas-cloud/assetsearch/internal/domain/asset"
	"github.com/kailas-cloud/assetsearch/internal/domain/product"
)

// AssetLister reads the classified assets products are built from.
type AssetLister interface {
	List(ctx context.Context) ([]asset.Asset, error)
}

// Cache stores built catalogs per content filter.
type Cache interface {
	Get(ctx context.Context, content string) ([]product.Product, bool, error)
	Put(ctx context.Context, content string, products []product.Product) error
	Invalidate(ctx context.Context) error
}

// SearchRecorder counts searches.
type SearchRecorder interface {
	Record(ctx context.Context, kind string)
}

// ProductRegistry records the names and SKUs of built products.
type ProductRegistry interface {
	Register(ctx context.Context, products []product.Product) error
}
