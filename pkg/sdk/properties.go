package assetsearch

import (
	"context"
	"fmt"
	"time"

	propertyuc "github.com/kailas-cloud/assetsearch/internal/usecase/property"
)

// Properties is the allowed value list per property key.
// Subcategories are listed per parent category.
type Properties struct {
	Values        map[string][]string
	Subcategories map[string][]string
}

// PropertyInUseError lists the assets that block deleting a value.
// It matches ErrPropertyInUse with errors.Is.
type PropertyInUseError = propertyuc.UsageError

// PropertyService manages the property vocabulary.
type PropertyService struct {
	svc propertyUseCase
	obs *observer
}

// Get returns the whole vocabulary.
func (s *PropertyService) Get(ctx context.Context) (_ Properties, err error) {
	start := time.Now()
	defer func() { s.obs.observe("property.get", start, err) }()

	snap, err := s.svc.Get(ctx)
	if err != nil {
		return Properties{}, fmt.Errorf("get properties: %w", err)
	}
	return Properties{Values: snap.Values, Subcategories: snap.Subcategories}, nil
}

// Add appends a value to key. parent is required for subcategories.
// Returns false if the value already existed.
func (s *PropertyService) Add(ctx context.Context, key, value, parent string) (_ bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("property.add", start, err) }()

	added, err := s.svc.Add(ctx, key, value, parent)
	if err != nil {
		return false, fmt.Errorf("add property: %w", err)
	}
	return added, nil
}

// Rename replaces a value and rewrites every asset carrying it.
// Returns the number of assets rewritten.
func (s *PropertyService) Rename(ctx context.Context, key, oldValue, newValue, parent string) (_ int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("property.rename", start, err) }()

	n, err := s.svc.Rename(ctx, key, oldValue, newValue, parent)
	if err != nil {
		return 0, fmt.Errorf("rename property: %w", err)
	}
	return n, nil
}

// Usage returns the paths of assets carrying value under key.
func (s *PropertyService) Usage(ctx context.Context, key, value, parent string) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("property.usage", start, err) }()

	paths, err := s.svc.Usage(ctx, key, value, parent)
	if err != nil {
		return nil, fmt.Errorf("property usage: %w", err)
	}
	return paths, nil
}

// Delete removes a value. Without force a value still in use is kept and
// a wrapped *PropertyInUseError is returned.
func (s *PropertyService) Delete(ctx context.Context, key, value, parent string, force bool) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("property.delete", start, err) }()

	if err = s.svc.Delete(ctx, key, value, parent, force); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	return nil
}
