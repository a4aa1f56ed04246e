package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dota-tracker/internal/config"
)

type Recorder interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncMatchesAppended()
	ObserveRemoteCall(endpoint, outcome string, duration time.Duration)
	WatchStore(counter StoreCounter)
	Handler() http.Handler
}

type StoreCounter interface {
	Counts() (players, matches int)
}

type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	matchesAppended prometheus.Counter
	remoteCalls     *prometheus.HistogramVec
}

func New(cfg *config.Config) Recorder {
	if !cfg.MetricsEnabled {
		return &noopMetrics{}
	}
	return NewMetrics(prometheus.NewRegistry())
}

// NewMetrics registers every collector on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dota_tracker_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dota_tracker_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "dota_tracker_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "dota_tracker_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		matchesAppended: factory.NewCounter(prometheus.CounterOpts{
			Name: "dota_tracker_matches_appended_total",
			Help: "Total number of matches appended to player histories",
		}),

		remoteCalls: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dota_tracker_remote_call_duration_seconds",
			Help:    "Duration of bot calls to the stats API, retries included",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "outcome"}),
	}
}

func (m *Metrics) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *Metrics) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Metrics) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *Metrics) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *Metrics) IncMatchesAppended() {
	m.matchesAppended.Inc()
}

func (m *Metrics) ObserveRemoteCall(endpoint, outcome string, duration time.Duration) {
	m.remoteCalls.WithLabelValues(endpoint, outcome).Observe(duration.Seconds())
}

func (m *Metrics) WatchStore(counter StoreCounter) {
	factory := promauto.With(m.registry)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "dota_tracker_players",
		Help: "Number of players in the store",
	}, func() float64 {
		players, _ := counter.Counts()
		return float64(players)
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "dota_tracker_matches",
		Help: "Number of matches across all player histories",
	}, func() float64 {
		_, matches := counter.Counts()
		return float64(matches)
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(string, int)                            {}
func (n *noopMetrics) ObserveRequestDuration(string, time.Duration)            {}
func (n *noopMetrics) IncCacheHits()                                           {}
func (n *noopMetrics) IncCacheMisses()                                         {}
func (n *noopMetrics) IncMatchesAppended()                                     {}
func (n *noopMetrics) ObserveRemoteCall(string, string, time.Duration)         {}
func (n *noopMetrics) WatchStore(StoreCounter)                                 {}
func (n *noopMetrics) Handler() http.Handler                                   { return http.NotFoundHandler() }

// Noop returns a recorder that discards everything.
func Noop() Recorder {
	return &noopMetrics{}
}
