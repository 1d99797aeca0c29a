package assetsearch

import (
	"cmp"

	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
	domcatalog "github.com/kailas-cloud/assetsearch/internal/domain/catalog"
	"github.com/kailas-cloud/assetsearch/internal/domain/levenshtein"
	"github.com/kailas-cloud/assetsearch/internal/domain/product"
	"github.com/kailas-cloud/assetsearch/internal/domain/search/match"
	"github.com/kailas-cloud/assetsearch/internal/domain/search/rank"
	"github.com/kailas-cloud/assetsearch/internal/domain/text"
)

// Product is a catalog entry assembled from asset properties.
type Product = product.Product

// File is a media file of a product card.
type File = product.File

// Record is the ranked view of anything with a primary, secondary and tertiary text.
type Record[K cmp.Ordered] = rank.Record[K]

// Scored is a record with its relevance score.
type Scored[K cmp.Ordered] = rank.Scored[K]

// Relevance scores assigned by RankRecords, highest first.
const (
	ScoreExactPrimary      = rank.ScoreExactPrimary
	ScorePrimaryPrefix     = rank.ScorePrimaryPrefix
	ScorePrimaryContains   = rank.ScorePrimaryContains
	ScoreSecondaryPrefix   = rank.ScoreSecondaryPrefix
	ScoreSecondaryContains = rank.ScoreSecondaryContains
	ScoreID                = rank.ScoreID
)

// MatchReason names the rule that accepted a product.
type MatchReason string

// ProductHit is a matched product with the rule that accepted it.
type ProductHit struct {
	Product Product
	Reason  MatchReason
}

// SearchProducts returns the products of catalog matching query, in catalog order.
// The query may be Cyrillic, transliterated Latin, typed with the wrong keyboard layout,
// or carry a typo.
func SearchProducts(catalog []Product, query string) []Product {
	return match.Search(catalog, query)
}

// ExplainProducts is SearchProducts that also reports why each product matched.
func ExplainProducts(catalog []Product, query string) []ProductHit {
	return toHits(match.Explain(catalog, query))
}

// RankRecords scores records against query and returns the relevant ones, best first,
// ties broken by ascending ID. A blank query returns every record ordered by ID.
func RankRecords[K cmp.Ordered](records []Record[K], query string) []Scored[K] {
	return rank.Rank(records, query)
}

// BuildCatalog groups file assets into products by their product name property.
// With content "Товар", assets of other content types are skipped.
func BuildCatalog(assets []Asset, content string) ([]Product, error) {
	internal := make([]domasset.Asset, len(assets))
	for i, a := range assets {
		ia, err := toInternalAsset(a)
		if err != nil {
			return nil, err
		}
		internal[i] = ia
	}
	return domcatalog.Build(internal, content), nil
}

// Transliterate maps Cyrillic letters to Latin.
func Transliterate(s string) string { return text.Transliterate(s) }

// FixLayout rewrites text typed on a Latin keyboard layout as the Cyrillic it was meant to be.
func FixLayout(s string) string { return text.FixLayout(s) }

// Distance is the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int { return levenshtein.Distance(a, b) }

func toHits(hits []match.Hit) []ProductHit {
	out := make([]ProductHit, len(hits))
	for i, h := range hits {
		out[i] = ProductHit{Product: h.Product, Reason: MatchReason(h.Reason)}
	}
	return out
}
