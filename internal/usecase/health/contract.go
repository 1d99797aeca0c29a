package health

import (
	"context"

	"github.com/kailas-cloud/assetsearch/internal/domain/product"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogSource builds (or reads the cached) product catalog.
type CatalogSource interface {
	Products(ctx context.Context, content string, refresh bool) ([]product.Product, error)
}
