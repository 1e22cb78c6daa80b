package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "marketplace_"

	ResultSuccess = "success"
	ResultError   = "error"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	cacheLookups *prometheus.CounterVec

	queryLatency *prometheus.HistogramVec

	rateSyncTotal   *prometheus.CounterVec
	rateSyncLatency prometheus.Histogram

	exportTotal *prometheus.CounterVec
)

// Init registers the service metrics on the default registry.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
		cacheLookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cache_lookups_total",
				Help: "Read-through cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		)
		queryLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "analytics_query_duration_seconds",
				Help:    "Latency of analytics read queries in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"query", "result"},
		)
		rateSyncTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exchange_rate_sync_total",
				Help: "Exchange rate sync runs by result",
			},
			[]string{"result"},
		)
		rateSyncLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "exchange_rate_sync_duration_seconds",
				Help:    "Exchange rate sync latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "commission_export_total",
				Help: "Commission statement exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			cacheLookups,
			queryLatency,
			rateSyncTotal,
			rateSyncLatency,
			exportTotal,
		)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveHTTP(method, route string, status int, duration time.Duration) {
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

func IncCache(cache, result string) {
	if cacheLookups != nil {
		cacheLookups.WithLabelValues(cache, result).Inc()
	}
}

// ObserveQuery records the latency of one analytics read query.
func ObserveQuery(query string, err error, duration time.Duration) {
	if queryLatency != nil {
		queryLatency.WithLabelValues(query, resultOf(err)).Observe(duration.Seconds())
	}
}

func ObserveRateSync(err error, duration time.Duration) {
	if rateSyncTotal != nil {
		rateSyncTotal.WithLabelValues(resultOf(err)).Inc()
	}
	if rateSyncLatency != nil {
		rateSyncLatency.Observe(duration.Seconds())
	}
}

func IncExport(format string, err error) {
	if format == "" {
		format = "unknown"
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, resultOf(err)).Inc()
	}
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// TimeQuery runs fn and records its latency under query.
func TimeQuery(query string, fn func() error) error {
	start := time.Now()
	err := fn()
	ObserveQuery(query, err, time.Since(start))
	return err
}
