package point

import (
	"context"

	dompoint "github.com/kailas-cloud/assetsearch/internal/domain/point"
)

// Repository stores the whole point collection.
type Repository interface {
	Load(ctx context.Context) (points []dompoint.Point, skipped int, err error)
	Save(ctx context.Context, points []dompoint.Point) error
}

// SearchRecorder counts searches.
type SearchRecorder interface {
	Record(ctx context.Context, kind string)
}
