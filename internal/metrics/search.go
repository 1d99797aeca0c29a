package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assetsearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"kind", "outcome"}, // kind: products|points|assets; outcome: hit|empty|rejected
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assetsearch",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"kind"},
	)

	ProductMatchReasonTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assetsearch",
			Name:      "product_match_reason_total",
			Help:      "Matched products by the rule that accepted them",
		},
		[]string{"reason"},
	)

	CatalogCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assetsearch",
			Name:      "catalog_cache_total",
			Help:      "Product catalog cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(ProductMatchReasonTotal)
	prometheus.MustRegister(CatalogCacheTotal)
	searchMetricsRegistered = true
}

// ObserveSearch records one search of the given kind that returned n results.
func ObserveSearch(kind string, n int) {
	outcome := "hit"
	if n == 0 {
		outcome = "empty"
	}
	SearchRequestsTotal.WithLabelValues(kind, outcome).Inc()
	SearchResults.WithLabelValues(kind).Observe(float64(n))
}

// ObserveRejected records a search refused before it ran.
func ObserveRejected(kind string) {
	SearchRequestsTotal.WithLabelValues(kind, "rejected").Inc()
}
