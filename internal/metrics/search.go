package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and content Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "siteapi",
			Name:      "search_requests_total",
			Help:      "Total number of federated search invocations",
		},
		[]string{"status"}, // "ok" / "empty_query"
	)

	SearchSourceResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "siteapi",
			Name:      "search_source_results_total",
			Help:      "Results contributed per search source",
		},
		[]string{"source"},
	)

	SearchSourceErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "siteapi",
			Name:      "search_source_errors_total",
			Help:      "Tolerated per-source failures during aggregation",
		},
		[]string{"source"},
	)

	ContentRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "siteapi",
			Name:      "content_requests_total",
			Help:      "Total content API fetches",
		},
		[]string{"status"}, // "success" / "error"
	)

	ContentRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "siteapi",
			Name:      "content_request_duration_seconds",
			Help:      "Content API fetch duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ContentCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "siteapi",
			Name:      "content_cache_total",
			Help:      "Article cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search/content metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchSourceResultsTotal)
	prometheus.MustRegister(SearchSourceErrorsTotal)
	prometheus.MustRegister(ContentRequestsTotal)
	prometheus.MustRegister(ContentRequestDuration)
	prometheus.MustRegister(ContentCacheTotal)
	searchMetricsRegistered = true
}
