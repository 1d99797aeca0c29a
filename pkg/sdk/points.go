package assetsearch

import (
	"context"
	"fmt"
	"time"
)

// PointService manages map points.
type PointService struct {
	svc pointUseCase
	obs *observer
}

// List ranks points against query. A blank query returns every point ordered by id.
func (s *PointService) List(ctx context.Context, query string) (out []RankedPoint, err error) {
	start := time.Now()
	defer func() { s.obs.observeSearch("point.list", start, len(out), err) }()

	ranked, err := s.svc.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	out = make([]RankedPoint, len(ranked))
	for i := range ranked {
		out[i] = RankedPoint{Point: fromInternalPoint(&ranked[i].Point), Score: ranked[i].Score}
	}
	return out, nil
}

// Get returns a point by id.
func (s *PointService) Get(ctx context.Context, id int) (_ Point, err error) {
	start := time.Now()
	defer func() { s.obs.observe("point.get", start, err) }()

	p, err := s.svc.Get(ctx, id)
	if err != nil {
		return Point{}, fmt.Errorf("get point: %w", err)
	}
	return fromInternalPoint(&p), nil
}

// Create adds a point with the next free id.
func (s *PointService) Create(ctx context.Context, d PointDraft) (_ Point, err error) {
	start := time.Now()
	defer func() { s.obs.observe("point.create", start, err) }()

	p, err := s.svc.Create(ctx, toInternalDraft(d))
	if err != nil {
		return Point{}, fmt.Errorf("create point: %w", err)
	}
	return fromInternalPoint(&p), nil
}

// Update applies a partial update to a point.
func (s *PointService) Update(ctx context.Context, id int, patch PointPatch) (_ Point, err error) {
	start := time.Now()
	defer func() { s.obs.observe("point.update", start, err) }()

	ip, err := toInternalPatch(patch)
	if err != nil {
		return Point{}, fmt.Errorf("update point: %w", err)
	}
	p, err := s.svc.Update(ctx, id, ip)
	if err != nil {
		return Point{}, fmt.Errorf("update point: %w", err)
	}
	return fromInternalPoint(&p), nil
}

// Delete removes a point.
func (s *PointService) Delete(ctx context.Context, id int) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("point.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete point: %w", err)
	}
	return nil
}
