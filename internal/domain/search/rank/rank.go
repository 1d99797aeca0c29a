// Package rank orders map points and asset entries by how well they answer a query.
package rank

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kailas-cloud/assetsearch/internal/domain/text"
)

// Scores, highest first. A record takes the first score whose rule holds.
const (
	ScoreExactPrimary      = 100
	ScorePrimaryPrefix     = 80
	ScorePrimaryContains   = 60
	ScoreSecondaryPrefix   = 40
	ScoreSecondaryContains = 20
	ScoreID                = 10
	ScoreNone              = 0
)

// Record is the ranked view of a point or an asset.
type Record[K cmp.Ordered] struct {
	ID        K
	Primary   string
	Secondary string
	Tertiary  string
	IDText    string
}

// Scored is a record with its relevance score.
type Scored[K cmp.Ordered] struct {
	Record Record[K]
	Score  int
}

// Score rates rec against q, which must already be normalized (trimmed and folded).
// Every field, IDText included, is folded before comparison.
func Score[K cmp.Ordered](rec Record[K], q string) int {
	primary := text.Canonical(rec.Primary)
	secondary := text.Canonical(rec.Secondary)

	if primary == q {
		return ScoreExactPrimary
	}
	if strings.HasPrefix(primary, q) {
		return ScorePrimaryPrefix
	}
	if strings.Contains(primary, q) {
		return ScorePrimaryContains
	}
	if strings.HasPrefix(secondary, q) {
		return ScoreSecondaryPrefix
	}
	if strings.Contains(secondary, q) || strings.Contains(text.Canonical(rec.Tertiary), q) {
		return ScoreSecondaryContains
	}
	if strings.Contains(text.Canonical(rec.IDText), q) {
		return ScoreID
	}
	return ScoreNone
}

// Rank scores records against query and returns the relevant ones, best first.
// Equal scores are ordered by ascending ID. A blank query returns every record
// ordered by ID with score 0.
func Rank[K cmp.Ordered](records []Record[K], query string) []Scored[K] {
	q := text.Normalize(query)

	out := make([]Scored[K], 0, len(records))
	for _, rec := range records {
		if q == "" {
			out = append(out, Scored[K]{Record: rec})
			continue
		}
		if s := Score(rec, q); s > ScoreNone {
			out = append(out, Scored[K]{Record: rec, Score: s})
		}
	}

	slices.SortStableFunc(out, func(a, b Scored[K]) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Record.ID, b.Record.ID)
	})
	return out
}
