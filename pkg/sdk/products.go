package assetsearch

import (
	"context"
	"fmt"
	"time"
)

// ProductService searches the product catalog built from stored assets.
type ProductService struct {
	svc catalogUseCase
	obs *observer
}

// Search matches query against the catalog. A blank query returns the whole catalog.
func (s *ProductService) Search(ctx context.Context, query string, opts ...ProductOption) (out []ProductHit, err error) {
	start := time.Now()
	defer func() { s.obs.observeSearch("product.search", start, len(out), err) }()

	q := newProductQuery(opts)
	hits, err := s.svc.Search(ctx, query, q.content, q.refresh)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return toHits(hits), nil
}

// Suggest returns the first few products matching query.
func (s *ProductService) Suggest(ctx context.Context, query string, opts ...ProductOption) (out []Product, err error) {
	start := time.Now()
	defer func() { s.obs.observeSearch("product.suggest", start, len(out), err) }()

	q := newProductQuery(opts)
	found, err := s.svc.Suggest(ctx, query, q.content)
	if err != nil {
		return nil, fmt.Errorf("suggest products: %w", err)
	}
	return found, nil
}

// Get returns the product named name, ignoring case.
func (s *ProductService) Get(ctx context.Context, name string, opts ...ProductOption) (_ Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("product.get", start, err) }()

	q := newProductQuery(opts)
	p, err := s.svc.Get(ctx, name, q.content)
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Refresh drops cached catalogs so the next search rebuilds them.
func (s *ProductService) Refresh(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("product.refresh", start, err) }()

	if err = s.svc.Invalidate(ctx); err != nil {
		return fmt.Errorf("refresh products: %w", err)
	}
	return nil
}
