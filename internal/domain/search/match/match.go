// Package match decides which catalog products answer a free-text query.
//
// A query may be typed in Cyrillic, in Latin transliteration, with the wrong
// keyboard layout active, or with a typo or two. Matching is a filter: every
// product either matches or not, and the catalog order is kept.
package match

import (
	"strings"

	"github.com/kailas-cloud/assetsearch/internal/domain/levenshtein"
	"github.com/kailas-cloud/assetsearch/internal/domain/product"
	"github.com/kailas-cloud/assetsearch/internal/domain/text"
)

const (
	// MinQueryLength is the shortest query (in runes) that can match anything.
	MinQueryLength = 2
	// MinFuzzyLength is the shortest query for which typo tolerance kicks in.
	MinFuzzyLength = 3

	maxPrefixDistance = 2
	maxWindowDistance = 1
	minPartialLength  = 2
)

// Reason names the rule that accepted a product.
type Reason string

// Rules in the order they are tried.
const (
	ReasonName                Reason = "name"
	ReasonNameTranslit        Reason = "name_translit"
	ReasonNameLayout          Reason = "name_layout"
	ReasonSKU                 Reason = "sku"
	ReasonFuzzyPrefix         Reason = "fuzzy_prefix"
	ReasonFuzzyPrefixTranslit Reason = "fuzzy_prefix_translit"
	ReasonPartial             Reason = "partial"
	ReasonPartialTranslit     Reason = "partial_translit"
	ReasonWindow              Reason = "window"
	ReasonWindowTranslit      Reason = "window_translit"
)

// Reasons lists every Reason in evaluation order.
var Reasons = []Reason{
	ReasonName, ReasonNameTranslit, ReasonNameLayout, ReasonSKU,
	ReasonFuzzyPrefix, ReasonFuzzyPrefixTranslit,
	ReasonPartial, ReasonPartialTranslit,
	ReasonWindow, ReasonWindowTranslit,
}

// Hit is a matched product together with the rule that accepted it.
type Hit struct {
	Product product.Product
	Reason  Reason
}

// Query holds the three spellings of a search string a product is checked against.
type Query struct {
	plain       string
	translit    string
	fixed       string
	plainLen    int
	translitLen int
}

// NewQuery normalizes raw. It returns false when the query is too short to match anything.
func NewQuery(raw string) (Query, bool) {
	plain := text.Normalize(raw)
	n := text.Len(plain)
	if n < MinQueryLength {
		return Query{}, false
	}
	translit := text.Fold(text.Transliterate(plain))
	return Query{
		plain:       plain,
		translit:    translit,
		fixed:       text.Fold(text.FixLayout(plain)),
		plainLen:    n,
		translitLen: text.Len(translit),
	}, true
}

// String returns the normalized query.
func (q Query) String() string { return q.plain }

// Match reports whether p answers the query and which rule accepted it.
func (q Query) Match(p product.Product) (Reason, bool) {
	name := text.Canonical(p.Name)
	nameTranslit := text.Fold(text.Transliterate(name))

	switch {
	case strings.Contains(name, q.plain):
		return ReasonName, true
	case strings.Contains(nameTranslit, q.translit):
		return ReasonNameTranslit, true
	case strings.Contains(name, q.fixed):
		return ReasonNameLayout, true
	case q.matchSKU(p.SKUs):
		return ReasonSKU, true
	}

	if q.plainLen < MinFuzzyLength {
		return "", false
	}

	switch {
	case closePrefix(q.plain, q.plainLen, name):
		return ReasonFuzzyPrefix, true
	case closePrefix(q.translit, q.translitLen, nameTranslit):
		return ReasonFuzzyPrefixTranslit, true
	case strings.Contains(name, partial(q.plain, q.plainLen)):
		return ReasonPartial, true
	case strings.Contains(nameTranslit, partial(q.translit, q.translitLen)):
		return ReasonPartialTranslit, true
	case closeWindow(q.plain, q.plainLen, name):
		return ReasonWindow, true
	case closeWindow(q.translit, q.translitLen, nameTranslit):
		return ReasonWindowTranslit, true
	}

	return "", false
}

func (q Query) matchSKU(skus []string) bool {
	for _, sku := range skus {
		s := text.Canonical(sku)
		if strings.Contains(s, q.plain) || strings.Contains(s, q.fixed) {
			return true
		}
	}
	return false
}

// Search returns the products of catalog that match query, in catalog order.
func Search(catalog []product.Product, query string) []product.Product {
	hits := Explain(catalog, query)
	out := make([]product.Product, len(hits))
	for i, h := range hits {
		out[i] = h.Product
	}
	return out
}

// Explain is Search that also reports why each product matched.
func Explain(catalog []product.Product, query string) []Hit {
	q, ok := NewQuery(query)
	if !ok {
		return []Hit{}
	}
	hits := make([]Hit, 0)
	for _, p := range catalog {
		if reason, ok := q.Match(p); ok {
			hits = append(hits, Hit{Product: p, Reason: reason})
		}
	}
	return hits
}

// closePrefix compares q with the start of name of the same length.
// The distance must be at most 2 and strictly below half the query length.
func closePrefix(q string, qLen int, name string) bool {
	d := levenshtein.Distance(q, text.Prefix(name, qLen))
	return d <= maxPrefixDistance && float64(d) < float64(qLen)/2
}

// partial drops the last rune of q, keeping at least two.
func partial(q string, qLen int) string {
	return text.Prefix(q, max(minPartialLength, qLen-1))
}

// closeWindow slides a qLen-rune window over name looking for a single edit.
func closeWindow(q string, qLen int, name string) bool {
	runes := []rune(name)
	for i := 0; i+qLen <= len(runes); i++ {
		if levenshtein.Distance(q, string(runes[i:i+qLen])) <= maxWindowDistance {
			return true
		}
	}
	return false
}
