package assetsearch

import (
	"context"

	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
	dompoint "github.com/kailas-cloud/assetsearch/internal/domain/point"
	"github.com/kailas-cloud/assetsearch/internal/domain/product"
	"github.com/kailas-cloud/assetsearch/internal/domain/search/match"
	assetuc "github.com/kailas-cloud/assetsearch/internal/usecase/asset"
	healthuc "github.com/kailas-cloud/assetsearch/internal/usecase/health"
	pointuc "github.com/kailas-cloud/assetsearch/internal/usecase/point"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	searchFn     func(ctx context.Context, query, content string, refresh bool) ([]match.Hit, error)
	suggestFn    func(ctx context.Context, query, content string) ([]product.Product, error)
	getFn        func(ctx context.Context, name, content string) (product.Product, error)
	invalidateFn func(ctx context.Context) error
}

func (m *mockCatalogUC) Search(ctx context.Context, query, content string, refresh bool) ([]match.Hit, error) {
	return m.searchFn(ctx, query, content, refresh)
}

func (m *mockCatalogUC) Suggest(ctx context.Context, query, content string) ([]product.Product, error) {
	return m.suggestFn(ctx, query, content)
}

func (m *mockCatalogUC) Get(ctx context.Context, name, content string) (product.Product, error) {
	return m.getFn(ctx, name, content)
}

func (m *mockCatalogUC) Invalidate(ctx context.Context) error {
	return m.invalidateFn(ctx)
}

// --- pointUseCase mock ---

type mockPointUC struct {
	listFn   func(ctx context.Context, query string) ([]pointuc.Ranked, error)
	getFn    func(ctx context.Context, id int) (dompoint.Point, error)
	createFn func(ctx context.Context, d dompoint.Draft) (dompoint.Point, error)
	updateFn func(ctx context.Context, id int, p dompoint.Patch) (dompoint.Point, error)
	deleteFn func(ctx context.Context, id int) error
}

func (m *mockPointUC) List(ctx context.Context, query string) ([]pointuc.Ranked, error) {
	return m.listFn(ctx, query)
}

func (m *mockPointUC) Get(ctx context.Context, id int) (dompoint.Point, error) {
	return m.getFn(ctx, id)
}

func (m *mockPointUC) Create(ctx context.Context, d dompoint.Draft) (dompoint.Point, error) {
	return m.createFn(ctx, d)
}

func (m *mockPointUC) Update(ctx context.Context, id int, p dompoint.Patch) (dompoint.Point, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockPointUC) Delete(ctx context.Context, id int) error {
	return m.deleteFn(ctx, id)
}

// --- assetUseCase mock ---

type mockAssetUC struct {
	upsertFn     func(ctx context.Context, a *domasset.Asset) (bool, error)
	upsertManyFn func(ctx context.Context, assets []domasset.Asset) error
	getFn        func(ctx context.Context, path string) (domasset.Asset, error)
	listFn       func(ctx context.Context, query string) ([]assetuc.Ranked, error)
	deleteFn     func(ctx context.Context, path string) error
}

func (m *mockAssetUC) Upsert(ctx context.Context, a *domasset.Asset) (bool, error) {
	return m.upsertFn(ctx, a)
}

func (m *mockAssetUC) UpsertMany(ctx context.Context, assets []domasset.Asset) error {
	return m.upsertManyFn(ctx, assets)
}

func (m *mockAssetUC) Get(ctx context.Context, path string) (domasset.Asset, error) {
	return m.getFn(ctx, path)
}

func (m *mockAssetUC) List(ctx context.Context, query string) ([]assetuc.Ranked, error) {
	return m.listFn(ctx, query)
}

func (m *mockAssetUC) Delete(ctx context.Context, path string) error {
	return m.deleteFn(ctx, path)
}

// --- helpers ---

func testClient(catalog catalogUseCase, points pointUseCase, assets assetUseCase) *Client {
	return &Client{
		catalog: catalog,
		points:  points,
		assets:  assets,
	}
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }
