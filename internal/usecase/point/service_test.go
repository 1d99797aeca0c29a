package point

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assetsearch/internal/domain"
	dompoint "github.com/kailas-cloud/assetsearch/internal/domain/point"
	"github.com/kailas-cloud/assetsearch/internal/domain/search/rank"
)

// --- Mocks ---

type memRepo struct {
	mu      sync.Mutex
	points  []dompoint.Point
	skipped int
	loadErr error
	saveErr error
	saves   int
}

func (m *memRepo) Load(_ context.Context) ([]dompoint.Point, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, 0, m.loadErr
	}
	return slices.Clone(m.points), m.skipped, nil
}

func (m *memRepo) Save(_ context.Context, points []dompoint.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.points = slices.Clone(points)
	return nil
}

type mockRecorder struct {
	mu    sync.Mutex
	kinds []string
}

func (m *mockRecorder) Record(_ context.Context, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kinds = append(m.kinds, kind)
}

func ptr[T any](v T) *T { return &v }

func seed(t *testing.T, drafts ...dompoint.Draft) *memRepo {
	t.Helper()
	repo := &memRepo{}
	for i, d := range drafts {
		p, err := dompoint.New(i+1, d)
		if err != nil {
			t.Fatalf("point.New: %v", err)
		}
		repo.points = append(repo.points, p)
	}
	return repo
}

func newTestService(repo *memRepo) (*Service, *mockRecorder) {
	rec := &mockRecorder{}
	return New(repo, rec, zap.NewNop()), rec
}

// --- Tests ---

func TestList_Ranked(t *testing.T) {
	repo := seed(t,
		dompoint.Draft{Name: "Дилер Невский", Address: "Невский пр. 1"},
		dompoint.Draft{Name: "Прочее"},
		dompoint.Draft{Name: "Склад", Address: "Невский пр. 100"},
	)
	svc, rec := newTestService(repo)

	got, err := svc.List(context.Background(), "невский")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Point.ID() != 1 || got[0].Score != rank.ScorePrimaryContains {
		t.Errorf("first = id %d score %d", got[0].Point.ID(), got[0].Score)
	}
	if got[1].Point.ID() != 3 || got[1].Score != rank.ScoreSecondaryPrefix {
		t.Errorf("second = id %d score %d", got[1].Point.ID(), got[1].Score)
	}
	if len(rec.kinds) != 1 || rec.kinds[0] != "points" {
		t.Errorf("recorded %v", rec.kinds)
	}
}

func TestList_BlankQuery(t *testing.T) {
	repo := seed(t, dompoint.Draft{Name: "a"}, dompoint.Draft{Name: "b"})
	svc, _ := newTestService(repo)

	got, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Point.ID() != 1 || got[1].Point.ID() != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestList_LoadError(t *testing.T) {
	svc, _ := newTestService(&memRepo{loadErr: errors.New("timeout")})
	if _, err := svc.List(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestGet(t *testing.T) {
	svc, _ := newTestService(seed(t, dompoint.Draft{Name: "Склад"}))

	p, err := svc.Get(context.Background(), 1)
	if err != nil || p.Header() != "Склад" {
		t.Fatalf("Get = %+v, %v", p, err)
	}

	_, err = svc.Get(context.Background(), 2)
	if !errors.Is(err, domain.ErrPointNotFound) {
		t.Errorf("expected ErrPointNotFound, got %v", err)
	}
}

func TestCreate_FirstID(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(repo)

	p, err := svc.Create(context.Background(), dompoint.Draft{Name: "Первый"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != 1 || len(repo.points) != 1 {
		t.Errorf("id=%d stored=%d", p.ID(), len(repo.points))
	}
}

func TestCreate_MaxPlusOne(t *testing.T) {
	repo := &memRepo{points: []dompoint.Point{
		dompoint.Reconstruct(7, 1, 1, "a", "a", "", "", "", dompoint.DefaultPreset),
		dompoint.Reconstruct(3, 1, 1, "b", "b", "", "", "", dompoint.DefaultPreset),
	}}
	svc, _ := newTestService(repo)

	p, err := svc.Create(context.Background(), dompoint.Draft{Name: "Новый"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != 8 {
		t.Errorf("id = %d, want 8", p.ID())
	}
	if repo.points[2].ID() != 8 {
		t.Errorf("new point not appended: %+v", repo.points)
	}
}

func TestCreate_Invalid(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(repo)

	for _, d := range []dompoint.Draft{
		{Lat: ptr(100.0)},
		{Lat: ptr(math.NaN())},
		{Lon: ptr(math.Inf(1))},
	} {
		_, err := svc.Create(context.Background(), d)
		if !errors.Is(err, domain.ErrInvalidPoint) {
			t.Errorf("expected ErrInvalidPoint, got %v", err)
		}
	}
	if repo.saves != 0 {
		t.Error("invalid point saved")
	}
}

func TestCreate_Concurrent(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(repo)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(context.Background(), dompoint.Draft{Name: "p"}); err != nil {
				t.Errorf("Create: %v", err)
			}
		}()
	}
	wg.Wait()

	seen := map[int]bool{}
	for i := range repo.points {
		id := repo.points[i].ID()
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != 20 {
		t.Errorf("stored %d points, want 20", len(seen))
	}
}

func TestUpdate(t *testing.T) {
	repo := seed(t, dompoint.Draft{Name: "Старый", Contacts: dompoint.Contacts{Phone: "111"}})
	svc, _ := newTestService(repo)

	patch, err := dompoint.NewPatch(dompoint.PatchFields{Name: ptr("Новый"), Email: ptr("a@b.by")})
	if err != nil {
		t.Fatalf("NewPatch: %v", err)
	}

	p, err := svc.Update(context.Background(), 1, patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Header() != "Новый" || p.Contacts().Phone != "111" || p.Contacts().Email != "a@b.by" {
		t.Errorf("updated = %+v", p)
	}
	if repo.points[0].Header() != "Новый" {
		t.Error("update not saved")
	}
}

func TestUpdate_Errors(t *testing.T) {
	repo := seed(t, dompoint.Draft{Name: "a"})
	svc, _ := newTestService(repo)

	patch, _ := dompoint.NewPatch(dompoint.PatchFields{Name: ptr("b")})
	if _, err := svc.Update(context.Background(), 9, patch); !errors.Is(err, domain.ErrPointNotFound) {
		t.Errorf("expected ErrPointNotFound, got %v", err)
	}

	bad, _ := dompoint.NewPatch(dompoint.PatchFields{Lat: ptr(-91.0)})
	if _, err := svc.Update(context.Background(), 1, bad); !errors.Is(err, domain.ErrInvalidPoint) {
		t.Errorf("expected ErrInvalidPoint, got %v", err)
	}
	if repo.saves != 0 {
		t.Error("failed update saved")
	}
}

func TestDelete(t *testing.T) {
	repo := seed(t, dompoint.Draft{Name: "a"}, dompoint.Draft{Name: "b"}, dompoint.Draft{Name: "c"})
	svc, _ := newTestService(repo)

	if err := svc.Delete(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.points) != 2 || repo.points[0].ID() != 1 || repo.points[1].ID() != 3 {
		t.Errorf("remaining = %+v", repo.points)
	}

	if err := svc.Delete(context.Background(), 2); !errors.Is(err, domain.ErrPointNotFound) {
		t.Errorf("expected ErrPointNotFound, got %v", err)
	}
}

func TestSaveError(t *testing.T) {
	repo := seed(t, dompoint.Draft{Name: "a"})
	repo.saveErr = errors.New("readonly")
	svc, _ := newTestService(repo)

	if _, err := svc.Create(context.Background(), dompoint.Draft{}); err == nil {
		t.Error("expected error from Create")
	}
	if err := svc.Delete(context.Background(), 1); err == nil {
		t.Error("expected error from Delete")
	}
}
