package property

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assetsearch/internal/domain"
	"github.com/kailas-cloud/assetsearch/internal/domain/asset"
	"github.com/kailas-cloud/assetsearch/internal/domain/product"
	domprop "github.com/kailas-cloud/assetsearch/internal/domain/property"
)

// UsageError reports the assets that still carry a value being deleted.
type UsageError struct {
	Key   string
	Value string
	Paths []string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s %q is used by %d assets", e.Key, e.Value, len(e.Paths))
}

func (e *UsageError) Unwrap() error { return domain.ErrPropertyInUse }

// Service manages the property vocabulary and keeps assets consistent with renames.
// Writes load, modify and save the whole document and are serialized within the process.
type Service struct {
	repo   Repository
	assets AssetLister
	writer AssetWriter
	logger *zap.Logger
	mu     sync.Mutex
}

// New creates a property service.
func New(repo Repository, assets AssetLister, writer AssetWriter, logger *zap.Logger) *Service {
	return &Service{repo: repo, assets: assets, writer: writer, logger: logger}
}

// Get returns the current vocabulary.
func (s *Service) Get(ctx context.Context) (domprop.Snapshot, error) {
	v, err := s.load(ctx)
	if err != nil {
		return domprop.Snapshot{}, err
	}
	return v.Snapshot(), nil
}

// Add appends a value. It reports false when the value already existed.
func (s *Service) Add(ctx context.Context, key, value, parent string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	added, err := v.Add(key, value, parent)
	if err != nil || !added {
		return false, err
	}
	if err := s.repo.Save(ctx, &v); err != nil {
		return false, fmt.Errorf("save properties: %w", err)
	}
	return true, nil
}

// Rename replaces a value in the vocabulary and in every asset that carries it.
// It returns the number of assets rewritten.
func (s *Service) Rename(ctx context.Context, key, oldValue, newValue, parent string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if err := v.Rename(key, oldValue, newValue, parent); err != nil {
		return 0, err
	}

	all, err := s.assets.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list assets: %w", err)
	}
	var changed []asset.Asset
	for i := range all {
		a := &all[i]
		if !uses(a, key, oldValue, parent) {
			continue
		}
		props := maps.Clone(a.Properties())
		props[key] = newValue
		changed = append(changed, asset.Reconstruct(a.Path(), a.Name(), a.Type(), a.Meta(), props))
	}

	// Assets first: a failed asset write leaves the old value valid everywhere.
	if err := s.writer.UpsertMany(ctx, changed); err != nil {
		return 0, fmt.Errorf("rewrite assets: %w", err)
	}
	if err := s.repo.Save(ctx, &v); err != nil {
		return 0, fmt.Errorf("save properties: %w", err)
	}

	s.logger.Info("Property renamed",
		zap.String("key", key),
		zap.String("from", oldValue),
		zap.String("to", newValue),
		zap.Int("assets", len(changed)),
	)
	return len(changed), nil
}

// Usage returns the paths of assets carrying value under key.
func (s *Service) Usage(ctx context.Context, key, value, parent string) ([]string, error) {
	if !domprop.IsKnown(key) {
		return nil, fmt.Errorf("unknown property %q: %w", key, domain.ErrInvalidProperty)
	}
	all, err := s.assets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	paths := []string{}
	for i := range all {
		if uses(&all[i], key, value, parent) {
			paths = append(paths, all[i].Path())
		}
	}
	return paths, nil
}

// Delete removes a value. Unless force is set, a value still carried by assets
// is kept and a *UsageError is returned.
func (s *Service) Delete(ctx context.Context, key, value, parent string, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force {
		paths, err := s.Usage(ctx, key, value, parent)
		if err != nil {
			return err
		}
		if len(paths) > 0 {
			return &UsageError{Key: key, Value: value, Paths: paths}
		}
	}

	v, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := v.Remove(key, value, parent); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, &v); err != nil {
		return fmt.Errorf("save properties: %w", err)
	}
	return nil
}

// Register adds the names and SKUs of built products to the vocabulary.
// The document is saved only when something new appeared.
func (s *Service) Register(ctx context.Context, products []product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.load(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range products {
		if v.RegisterProduct(products[i].Name, products[i].SKUs...) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := s.repo.Save(ctx, &v); err != nil {
		return fmt.Errorf("save properties: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context) (domprop.Vocabulary, error) {
	v, err := s.repo.Load(ctx)
	if err != nil {
		return domprop.Vocabulary{}, fmt.Errorf("load properties: %w", err)
	}
	return v, nil
}

// uses reports whether a carries value under key. Subcategories also match on parent when given.
func uses(a *asset.Asset, key, value, parent string) bool {
	if a.Property(key) != value {
		return false
	}
	return key != asset.PropSubcategory || parent == "" || a.Property(asset.PropCategory) == parent
}
