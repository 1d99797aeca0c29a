package asset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/assetsearch/internal/db"
	"github.com/kailas-cloud/assetsearch/internal/domain"
	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
)

const prefix = "assetsearch:"

func mustAsset(t *testing.T, path string, props map[string]string) domasset.Asset {
	t.Helper()
	a, err := domasset.New(path, "", domasset.TypeFile, domasset.Meta{Size: 512, Preview: "https://preview/x"}, props)
	if err != nil {
		t.Fatalf("asset.New: %v", err)
	}
	return a
}

func TestUpsert_Created(t *testing.T) {
	var gotKey string
	var gotFields map[string]string
	ms := &mockStore{
		hsetFn: func(_ context.Context, key string, fields map[string]string) error {
			gotKey, gotFields = key, fields
			return nil
		},
	}
	r := New(ms, prefix)
	a := mustAsset(t, "/catalog/smazka/main.jpg", map[string]string{domasset.PropProductName: "Смазка"})

	created, err := r.Upsert(context.Background(), &a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
	if !strings.HasPrefix(gotKey, prefix+"asset:") || len(gotKey) != len(prefix)+len("asset:")+64 {
		t.Errorf("unexpected key %q", gotKey)
	}
	if gotFields["path"] != "/catalog/smazka/main.jpg" || gotFields["size"] != "512" || gotFields["type"] != "file" {
		t.Errorf("unexpected fields: %v", gotFields)
	}
	if gotFields["props"] != `{"Название товара":"Смазка"}` {
		t.Errorf("props = %q", gotFields["props"])
	}
}

func TestUpsert_Updated(t *testing.T) {
	ms := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	r := New(ms, prefix)
	a := mustAsset(t, "/a.jpg", nil)

	created, err := r.Upsert(context.Background(), &a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false")
	}
}

func TestUpsert_StoreError(t *testing.T) {
	ms := &mockStore{
		hsetFn: func(_ context.Context, _ string, _ map[string]string) error {
			return errors.New("connection reset")
		},
	}
	r := New(ms, prefix)
	a := mustAsset(t, "/a.jpg", nil)

	if _, err := r.Upsert(context.Background(), &a); err == nil {
		t.Fatal("expected error")
	}
}

func TestUpsertMany(t *testing.T) {
	var items []db.HashSetItem
	ms := &mockStore{
		hsetMultiFn: func(_ context.Context, it []db.HashSetItem) error {
			items = it
			return nil
		},
	}
	r := New(ms, prefix)

	assets := []domasset.Asset{mustAsset(t, "/a.jpg", nil), mustAsset(t, "/b.jpg", nil)}
	if err := r.UpsertMany(context.Background(), assets); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].Fields["path"] != "/a.jpg" || items[1].Fields["path"] != "/b.jpg" {
		t.Errorf("unexpected items: %+v", items)
	}
	if items[0].Key == items[1].Key {
		t.Error("different paths share a key")
	}
}

func TestGet_RoundTrip(t *testing.T) {
	var stored map[string]string
	ms := &mockStore{
		hsetFn: func(_ context.Context, _ string, fields map[string]string) error {
			stored = fields
			return nil
		},
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return stored, nil
		},
	}
	r := New(ms, prefix)
	a := mustAsset(t, "/catalog/manual.pdf", map[string]string{domasset.PropSKU: "VL-100"})
	if _, err := r.Upsert(context.Background(), &a); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := r.Get(context.Background(), "/catalog/manual.pdf")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Path() != a.Path() || got.Name() != "manual.pdf" || got.Meta() != a.Meta() {
		t.Errorf("got %+v", got)
	}
	if got.Property(domasset.PropSKU) != "VL-100" {
		t.Errorf("SKU = %q", got.Property(domasset.PropSKU))
	}
}

func TestGet_NotFound(t *testing.T) {
	r := New(&mockStore{}, prefix)

	_, err := r.Get(context.Background(), "/missing.jpg")
	if !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestList_SortedAndSkipsVanished(t *testing.T) {
	ms := &mockStore{
		scanFn: func(_ context.Context, pattern string) ([]string, error) {
			if pattern != prefix+"asset:*" {
				t.Errorf("pattern = %q", pattern)
			}
			return []string{"k1", "k2", "k3"}, nil
		},
		hgetAllMultiFn: func(_ context.Context, keys []string) ([]map[string]string, error) {
			return []map[string]string{
				{"path": "/b.jpg", "name": "b.jpg", "type": "file", "size": "1", "props": `{"SKU":"B"}`},
				{},
				{"path": "/a.jpg", "name": "a.jpg", "size": "oops", "props": "not json"},
			}, nil
		},
	}
	r := New(ms, prefix)

	got, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(got))
	}
	if got[0].Path() != "/a.jpg" || got[1].Path() != "/b.jpg" {
		t.Errorf("order = %q, %q", got[0].Path(), got[1].Path())
	}
	if got[0].Type() != domasset.TypeFile || got[0].Meta().Size != 0 || len(got[0].Properties()) != 0 {
		t.Errorf("broken fields not defaulted: %+v", got[0])
	}
	if got[1].Property(domasset.PropSKU) != "B" {
		t.Errorf("SKU = %q", got[1].Property(domasset.PropSKU))
	}
}

func TestList_Empty(t *testing.T) {
	r := New(&mockStore{}, prefix)

	got, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestDelete(t *testing.T) {
	deleted := ""
	ms := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
		delFn: func(_ context.Context, key string) error {
			deleted = key
			return nil
		},
	}
	r := New(ms, prefix)

	if err := r.Delete(context.Background(), "/a.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != r.key("/a.jpg") {
		t.Errorf("deleted %q", deleted)
	}
}

func TestDelete_NotFound(t *testing.T) {
	r := New(&mockStore{}, prefix)

	err := r.Delete(context.Background(), "/a.jpg")
	if !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}
