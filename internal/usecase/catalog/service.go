package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assetsearch/internal/domain"
	domcatalog "github.com/kailas-cloud/assetsearch/internal/domain/catalog"
	"github.com/kailas-cloud/assetsearch/internal/domain/product"
	"github.com/kailas-cloud/assetsearch/internal/domain/search/match"
	"github.com/kailas-cloud/assetsearch/internal/domain/text"
	"github.com/kailas-cloud/assetsearch/internal/metrics"
	"github.com/kailas-cloud/assetsearch/internal/usecase/stats"
)

// Service builds the product catalog from assets and searches it.
type Service struct {
	assets         AssetLister
	cache          Cache
	stats          SearchRecorder
	registry       ProductRegistry
	logger         *zap.Logger
	defaultContent string
	suggestLimit   int

	// gen counts invalidations. A build only fills the cache when no
	// invalidation happened while it read the assets.
	mu  sync.RWMutex
	gen uint64
}

// New creates a catalog service.
func New(assets AssetLister, cache Cache, stats SearchRecorder, logger *zap.Logger) *Service {
	return &Service{
		assets:         assets,
		cache:          cache,
		stats:          stats,
		logger:         logger,
		defaultContent: domcatalog.ContentProduct,
		suggestLimit:   10,
	}
}

// WithDefaults configures the content filter used when none is given and the suggestion count.
func (s *Service) WithDefaults(defaultContent string, suggestLimit int) *Service {
	if defaultContent != "" {
		s.defaultContent = defaultContent
	}
	if suggestLimit > 0 {
		s.suggestLimit = suggestLimit
	}
	return s
}

// WithProductRegistry makes every rebuild report product names and SKUs to r.
func (s *Service) WithProductRegistry(r ProductRegistry) *Service {
	s.registry = r
	return s
}

// Products returns the catalog for content, from cache unless refresh is set.
// Cache failures degrade to a rebuild.
func (s *Service) Products(ctx context.Context, content string, refresh bool) ([]product.Product, error) {
	if content == "" {
		content = s.defaultContent
	}

	if !refresh {
		cached, ok, err := s.cache.Get(ctx, content)
		switch {
		case err != nil:
			metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
			s.logger.Warn("Catalog cache read failed", zap.String("content", content), zap.Error(err))
		case ok:
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	gen := s.generation()
	assets, err := s.assets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	products := domcatalog.Build(assets, content)
	if s.registry != nil {
		if err := s.registry.Register(ctx, products); err != nil {
			s.logger.Warn("Product registration failed", zap.Error(err))
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gen != gen {
		s.logger.Debug("Catalog changed during build, not caching", zap.String("content", content))
		return products, nil
	}
	if err := s.cache.Put(ctx, content, products); err != nil {
		s.logger.Warn("Catalog cache write failed", zap.String("content", content), zap.Error(err))
	}
	return products, nil
}

func (s *Service) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Search matches query against the catalog. A blank query returns the whole catalog
// with an empty reason.
func (s *Service) Search(ctx context.Context, query, content string, refresh bool) ([]match.Hit, error) {
	products, err := s.Products(ctx, content, refresh)
	if err != nil {
		return nil, err
	}

	var hits []match.Hit
	if strings.TrimSpace(query) == "" {
		hits = make([]match.Hit, len(products))
		for i, p := range products {
			hits[i] = match.Hit{Product: p}
		}
	} else {
		hits = match.Explain(products, query)
		for _, h := range hits {
			metrics.ProductMatchReasonTotal.WithLabelValues(string(h.Reason)).Inc()
		}
	}

	metrics.ObserveSearch(stats.KindProducts, len(hits))
	s.stats.Record(ctx, stats.KindProducts)
	return hits, nil
}

// Suggest returns up to the configured number of matching products.
// Queries too short to match return nothing.
func (s *Service) Suggest(ctx context.Context, query, content string) ([]product.Product, error) {
	if text.Len(text.Normalize(query)) < match.MinQueryLength {
		return []product.Product{}, nil
	}

	products, err := s.Products(ctx, content, false)
	if err != nil {
		return nil, err
	}

	found := match.Search(products, query)
	if len(found) > s.suggestLimit {
		found = found[:s.suggestLimit]
	}

	metrics.ObserveSearch(stats.KindSuggest, len(found))
	s.stats.Record(ctx, stats.KindSuggest)
	return found, nil
}

// Get returns the product whose name equals name ignoring case.
func (s *Service) Get(ctx context.Context, name, content string) (product.Product, error) {
	products, err := s.Products(ctx, content, false)
	if err != nil {
		return product.Product{}, err
	}

	want := text.Normalize(name)
	for _, p := range products {
		if text.Normalize(p.Name) == want {
			return p, nil
		}
	}
	return product.Product{}, fmt.Errorf("product %q: %w", name, domain.ErrProductNotFound)
}

// Invalidate drops every cached catalog. Builds already running when it is
// called will not write their result to the cache.
func (s *Service) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	return nil
}
