package assetsearch

import "github.com/kailas-cloud/assetsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrPointNotFound   = domain.ErrPointNotFound
	ErrProductNotFound = domain.ErrProductNotFound
	ErrAssetNotFound   = domain.ErrAssetNotFound
	ErrInvalidPoint    = domain.ErrInvalidPoint
	ErrInvalidAsset    = domain.ErrInvalidAsset

	ErrPropertyNotFound = domain.ErrPropertyNotFound
	ErrInvalidProperty  = domain.ErrInvalidProperty
	ErrPropertyConflict = domain.ErrPropertyConflict
	ErrPropertyInUse    = domain.ErrPropertyInUse
)
