package assetsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assetsearch/internal/db"
	dbValkey "github.com/kailas-cloud/assetsearch/internal/db/valkey"
	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
	dompoint "github.com/kailas-cloud/assetsearch/internal/domain/point"
	"github.com/kailas-cloud/assetsearch/internal/domain/product"
	domprop "github.com/kailas-cloud/assetsearch/internal/domain/property"
	"github.com/kailas-cloud/assetsearch/internal/domain/search/match"
	assetrepo "github.com/kailas-cloud/assetsearch/internal/repository/asset"
	"github.com/kailas-cloud/assetsearch/internal/repository/catalogcache"
	pointrepo "github.com/kailas-cloud/assetsearch/internal/repository/point"
	propertyrepo "github.com/kailas-cloud/assetsearch/internal/repository/property"
	statsrepo "github.com/kailas-cloud/assetsearch/internal/repository/stats"
	assetuc "github.com/kailas-cloud/assetsearch/internal/usecase/asset"
	cataloguc "github.com/kailas-cloud/assetsearch/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/assetsearch/internal/usecase/health"
	pointuc "github.com/kailas-cloud/assetsearch/internal/usecase/point"
	propertyuc "github.com/kailas-cloud/assetsearch/internal/usecase/property"
	statsuc "github.com/kailas-cloud/assetsearch/internal/usecase/stats"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type catalogUseCase interface {
	Search(ctx context.Context, query, content string, refresh bool) ([]match.Hit, error)
	Suggest(ctx context.Context, query, content string) ([]product.Product, error)
	Get(ctx context.Context, name, content string) (product.Product, error)
	Invalidate(ctx context.Context) error
}

type pointUseCase interface {
	List(ctx context.Context, query string) ([]pointuc.Ranked, error)
	Get(ctx context.Context, id int) (dompoint.Point, error)
	Create(ctx context.Context, d dompoint.Draft) (dompoint.Point, error)
	Update(ctx context.Context, id int, patch dompoint.Patch) (dompoint.Point, error)
	Delete(ctx context.Context, id int) error
}

type assetUseCase interface {
	Upsert(ctx context.Context, a *domasset.Asset) (bool, error)
	UpsertMany(ctx context.Context, assets []domasset.Asset) error
	Get(ctx context.Context, path string) (domasset.Asset, error)
	List(ctx context.Context, query string) ([]assetuc.Ranked, error)
	Delete(ctx context.Context, path string) error
}

type propertyUseCase interface {
	Get(ctx context.Context) (domprop.Snapshot, error)
	Add(ctx context.Context, key, value, parent string) (bool, error)
	Rename(ctx context.Context, key, oldValue, newValue, parent string) (int, error)
	Usage(ctx context.Context, key, value, parent string) ([]string, error)
	Delete(ctx context.Context, key, value, parent string, force bool) error
}

// Client is the assetsearch SDK entry point.
type Client struct {
	store     db.Store
	catalog   catalogUseCase
	points    pointUseCase
	assets    assetUseCase
	props     propertyUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("assetsearch: database address required (use WithValkey or WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("assetsearch: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	s, err := dbValkey.NewStore(dbValkey.Config{
		Driver:   cfg.driver,
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("assetsearch: create %s store: %w", cfg.driver, err)
	}
	return s, nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	// Internal services log through zap; SDK callers observe through slog.
	logger := zap.NewNop()

	assetRepo := assetrepo.New(store, cfg.keyPrefix)
	cache := catalogcache.New(store, cfg.keyPrefix, cfg.catalogTTL)

	statsSvc := statsuc.New(statsrepo.New(store, cfg.keyPrefix, cfg.statsTTL), logger)
	catalogSvc := cataloguc.New(assetRepo, cache, statsSvc, logger).
		WithDefaults(cfg.defaultContent, cfg.suggestLimit)
	assetSvc := assetuc.New(assetRepo, catalogSvc, statsSvc, logger)
	propertySvc := propertyuc.New(propertyrepo.New(store, cfg.keyPrefix), assetRepo, assetSvc, logger)
	catalogSvc.WithProductRegistry(propertySvc)

	return &Client{
		store:     store,
		catalog:   catalogSvc,
		points:    pointuc.New(pointrepo.New(store, cfg.keyPrefix), statsSvc, logger),
		assets:    assetSvc,
		props:     propertySvc,
		healthSvc: healthuc.New(store, catalogSvc),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Products returns the product catalog service.
func (c *Client) Products() *ProductService {
	return &ProductService{svc: c.catalog, obs: c.obs}
}

// Points returns the map point service.
func (c *Client) Points() *PointService {
	return &PointService{svc: c.points, obs: c.obs}
}

// Assets returns the asset service.
func (c *Client) Assets() *AssetService {
	return &AssetService{svc: c.assets, obs: c.obs}
}

// Properties returns the property vocabulary service.
func (c *Client) Properties() *PropertyService {
	return &PropertyService{svc: c.props, obs: c.obs}
}
