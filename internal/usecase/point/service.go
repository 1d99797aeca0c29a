package point

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assetsearch/internal/domain"
	dompoint "github.com/kailas-cloud/assetsearch/internal/domain/point"
	"github.com/kailas-cloud/assetsearch/internal/domain/search/rank"
	"github.com/kailas-cloud/assetsearch/internal/metrics"
	"github.com/kailas-cloud/assetsearch/internal/usecase/stats"
)

// Ranked is a point with its relevance score.
type Ranked struct {
	Point dompoint.Point
	Score int
}

// Service handles map point CRUD and ranked search.
// Writes rewrite the whole collection and are serialized within the process.
type Service struct {
	repo   Repository
	stats  SearchRecorder
	logger *zap.Logger
	mu     sync.Mutex
}

// New creates a point service.
func New(repo Repository, stats SearchRecorder, logger *zap.Logger) *Service {
	return &Service{repo: repo, stats: stats, logger: logger}
}

// List ranks points against query: name, then address, then footer, then id.
// A blank query returns every point ordered by id.
func (s *Service) List(ctx context.Context, query string) ([]Ranked, error) {
	points, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]dompoint.Point, len(points))
	records := make([]rank.Record[int], len(points))
	for i := range points {
		byID[points[i].ID()] = points[i]
		records[i] = points[i].Record()
	}

	scored := rank.Rank(records, query)
	out := make([]Ranked, len(scored))
	for i, sc := range scored {
		out[i] = Ranked{Point: byID[sc.Record.ID], Score: sc.Score}
	}

	metrics.ObserveSearch(stats.KindPoints, len(out))
	s.stats.Record(ctx, stats.KindPoints)
	return out, nil
}

// Get returns a point by id.
func (s *Service) Get(ctx context.Context, id int) (dompoint.Point, error) {
	points, err := s.load(ctx)
	if err != nil {
		return dompoint.Point{}, err
	}
	i := indexOf(points, id)
	if i < 0 {
		return dompoint.Point{}, fmt.Errorf("point %d: %w", id, domain.ErrPointNotFound)
	}
	return points[i], nil
}

// Create adds a point with the next free id (max+1, starting at 1).
func (s *Service) Create(ctx context.Context, d dompoint.Draft) (dompoint.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	points, err := s.load(ctx)
	if err != nil {
		return dompoint.Point{}, err
	}

	maxID := 0
	for i := range points {
		maxID = max(maxID, points[i].ID())
	}

	p, err := dompoint.New(maxID+1, d)
	if err != nil {
		return dompoint.Point{}, fmt.Errorf("%w: %w", domain.ErrInvalidPoint, err)
	}

	if err := s.repo.Save(ctx, append(points, p)); err != nil {
		return dompoint.Point{}, fmt.Errorf("save points: %w", err)
	}
	return p, nil
}

// Update applies a partial patch to a point.
func (s *Service) Update(ctx context.Context, id int, patch dompoint.Patch) (dompoint.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	points, err := s.load(ctx)
	if err != nil {
		return dompoint.Point{}, err
	}
	i := indexOf(points, id)
	if i < 0 {
		return dompoint.Point{}, fmt.Errorf("point %d: %w", id, domain.ErrPointNotFound)
	}

	updated, err := points[i].Apply(patch)
	if err != nil {
		return dompoint.Point{}, fmt.Errorf("%w: %w", domain.ErrInvalidPoint, err)
	}
	points[i] = updated

	if err := s.repo.Save(ctx, points); err != nil {
		return dompoint.Point{}, fmt.Errorf("save points: %w", err)
	}
	return updated, nil
}

// Delete removes a point.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	points, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(points, id)
	if i < 0 {
		return fmt.Errorf("point %d: %w", id, domain.ErrPointNotFound)
	}

	if err := s.repo.Save(ctx, slices.Delete(points, i, i+1)); err != nil {
		return fmt.Errorf("save points: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context) ([]dompoint.Point, error) {
	points, skipped, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}
	if skipped > 0 {
		s.logger.Warn("Skipped malformed points", zap.Int("count", skipped))
	}
	return points, nil
}

func indexOf(points []dompoint.Point, id int) int {
	return slices.IndexFunc(points, func(p dompoint.Point) bool { return p.ID() == id })
}
