package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the Recommend HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommendation requests by variant and outcome",
	}, []string{"variant", "outcome"})

	// Cache hits/misses for the recommendation result cache
	RecommendCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_cache_lookups_total",
		Help: "Recommendation cache lookups by result",
	}, []string{"result"})

	BatchCustomersProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "batch_customers_processed_total",
		Help: "Customers with recommendations persisted by batch runs",
	})

	BatchCustomersSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "batch_customers_skipped_total",
		Help: "Customers skipped by batch runs (no candidates)",
	})

	BatchRunDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "batch_run_duration_seconds",
		Help: "Duration of the last completed batch run",
	})

	NarrationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "narration_failures_total",
		Help: "Failed narration service calls (served degraded)",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		RecommendCacheLookups,
		BatchCustomersProcessed,
		BatchCustomersSkipped,
		BatchRunDuration,
		NarrationFailures,
	)
}
