package asset

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assetsearch/internal/domain"
	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
	"github.com/kailas-cloud/assetsearch/internal/domain/search/rank"
)

// --- Mocks ---

type mockRepo struct {
	assets    []domasset.Asset
	created   bool
	upsertErr error
	getErr    error
	listErr   error
	deleteErr error
	batches   [][]domasset.Asset
}

func (m *mockRepo) Upsert(_ context.Context, _ *domasset.Asset) (bool, error) {
	return m.created, m.upsertErr
}

func (m *mockRepo) UpsertMany(_ context.Context, assets []domasset.Asset) error {
	m.batches = append(m.batches, assets)
	return m.upsertErr
}

func (m *mockRepo) Get(_ context.Context, path string) (domasset.Asset, error) {
	if m.getErr != nil {
		return domasset.Asset{}, m.getErr
	}
	for _, a := range m.assets {
		if a.Path() == path {
			return a, nil
		}
	}
	return domasset.Asset{}, domain.ErrAssetNotFound
}

func (m *mockRepo) List(_ context.Context) ([]domasset.Asset, error) {
	return m.assets, m.listErr
}

func (m *mockRepo) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

type mockInvalidator struct {
	calls int
	err   error
}

func (m *mockInvalidator) Invalidate(_ context.Context) error {
	m.calls++
	return m.err
}

type mockRecorder struct {
	kinds []string
}

func (m *mockRecorder) Record(_ context.Context, kind string) {
	m.kinds = append(m.kinds, kind)
}

func makeAsset(t *testing.T, path, productName string) domasset.Asset {
	t.Helper()
	a, err := domasset.New(path, "", domasset.TypeFile, domasset.Meta{},
		map[string]string{domasset.PropProductName: productName})
	if err != nil {
		t.Fatalf("asset.New: %v", err)
	}
	return a
}

// --- Tests ---

func TestUpsert_InvalidatesCatalog(t *testing.T) {
	repo := &mockRepo{created: true}
	inv := &mockInvalidator{}
	svc := New(repo, inv, &mockRecorder{}, zap.NewNop())
	a := makeAsset(t, "/a.jpg", "Смазка")

	created, err := svc.Upsert(context.Background(), &a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created || inv.calls != 1 {
		t.Errorf("created=%v invalidations=%d", created, inv.calls)
	}
}

func TestUpsert_Error(t *testing.T) {
	inv := &mockInvalidator{}
	svc := New(&mockRepo{upsertErr: errors.New("down")}, inv, &mockRecorder{}, zap.NewNop())
	a := makeAsset(t, "/a.jpg", "Смазка")

	if _, err := svc.Upsert(context.Background(), &a); err == nil {
		t.Fatal("expected error")
	}
	if inv.calls != 0 {
		t.Error("catalog invalidated after failed write")
	}
}

func TestUpsert_InvalidationFailureIgnored(t *testing.T) {
	svc := New(&mockRepo{}, &mockInvalidator{err: errors.New("scan")}, &mockRecorder{}, zap.NewNop())
	a := makeAsset(t, "/a.jpg", "Смазка")

	if _, err := svc.Upsert(context.Background(), &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpsertMany(t *testing.T) {
	repo := &mockRepo{}
	inv := &mockInvalidator{}
	svc := New(repo, inv, &mockRecorder{}, zap.NewNop())

	if err := svc.UpsertMany(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.batches) != 0 || inv.calls != 0 {
		t.Error("empty batch reached the repository")
	}

	batch := []domasset.Asset{makeAsset(t, "/a.jpg", "A"), makeAsset(t, "/b.jpg", "B")}
	if err := svc.UpsertMany(context.Background(), batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.batches) != 1 || len(repo.batches[0]) != 2 || inv.calls != 1 {
		t.Errorf("batches=%d invalidations=%d", len(repo.batches), inv.calls)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := New(&mockRepo{}, &mockInvalidator{}, &mockRecorder{}, zap.NewNop())

	_, err := svc.Get(context.Background(), "/missing")
	if !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	inv := &mockInvalidator{}
	svc := New(&mockRepo{}, inv, &mockRecorder{}, zap.NewNop())

	if err := svc.Delete(context.Background(), "/a.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.calls != 1 {
		t.Errorf("invalidations = %d", inv.calls)
	}

	svc = New(&mockRepo{deleteErr: domain.ErrAssetNotFound}, inv, &mockRecorder{}, zap.NewNop())
	if err := svc.Delete(context.Background(), "/a.jpg"); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestList_Ranked(t *testing.T) {
	repo := &mockRepo{assets: []domasset.Asset{
		makeAsset(t, "/photos/smazka-valera/front.jpg", "Смазка Валера"),
		makeAsset(t, "/docs/валера.pdf", "Прочее"),
		makeAsset(t, "/other/x.png", "Фильтр"),
	}}
	rec := &mockRecorder{}
	svc := New(repo, &mockInvalidator{}, rec, zap.NewNop())

	got, err := svc.List(context.Background(), "валера")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Asset.Path() != "/docs/валера.pdf" || got[0].Score != rank.ScorePrimaryPrefix {
		t.Errorf("first = %s (%d)", got[0].Asset.Path(), got[0].Score)
	}
	if got[1].Asset.Path() != "/photos/smazka-valera/front.jpg" || got[1].Score != rank.ScoreSecondaryContains {
		t.Errorf("second = %s (%d)", got[1].Asset.Path(), got[1].Score)
	}
	if len(rec.kinds) != 1 || rec.kinds[0] != "assets" {
		t.Errorf("recorded %v", rec.kinds)
	}
}

func TestList_BlankQuery(t *testing.T) {
	repo := &mockRepo{assets: []domasset.Asset{makeAsset(t, "/b.jpg", "B"), makeAsset(t, "/a.jpg", "A")}}
	svc := New(repo, &mockInvalidator{}, &mockRecorder{}, zap.NewNop())

	got, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Asset.Path() != "/a.jpg" || got[0].Score != rank.ScoreNone {
		t.Errorf("got %+v", got)
	}
}

func TestList_Error(t *testing.T) {
	svc := New(&mockRepo{listErr: errors.New("scan")}, &mockInvalidator{}, &mockRecorder{}, zap.NewNop())
	if _, err := svc.List(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}
