package metrics

import (
	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coursefinder"

// Metrics are the go-kit instruments of the service, backed by Prometheus collectors.
type Metrics struct {
	RequestCount   metrics.Counter   // labels: method, error
	RequestLatency metrics.Histogram // labels: method, error
	CoursesFound   metrics.Histogram // courses returned per successful request
	FetchOutcomes  metrics.Counter   // labels: outcome
	PathsFetched   metrics.Histogram // paths produced per map data query
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestCount: kitprometheus.NewCounter(factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recommend",
			Name:      "requests_total",
			Help:      "Number of course recommendation requests received.",
		}, []string{"method", "error"})),
		RequestLatency: kitprometheus.NewHistogram(factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "recommend",
			Name:      "request_duration_seconds",
			Help:      "Time spent answering course recommendation requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "error"})),
		CoursesFound: kitprometheus.NewHistogram(factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "recommend",
			Name:      "courses_returned",
			Help:      "Number of courses returned per recommendation.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}, []string{})),
		FetchOutcomes: kitprometheus.NewCounter(factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "overpass",
			Name:      "fetch_total",
			Help:      "Map data queries by outcome.",
		}, []string{"outcome"})),
		PathsFetched: kitprometheus.NewHistogram(factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "overpass",
			Name:      "paths_fetched",
			Help:      "Number of usable paths per map data query.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}, []string{})),
	}
}
