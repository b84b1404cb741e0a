package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. All methods are safe on
// a nil receiver so components can run without instrumentation.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Chat metrics
	MessagesTotal  *prometheus.CounterVec
	MatchesTotal   *prometheus.CounterVec
	RateLimited    prometheus.Counter
	SessionsActive prometheus.Gauge

	// Browser metrics
	NavigationsTotal *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sonora_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sonora_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		MessagesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sonora_chat_messages_total",
				Help: "Chat messages added to transcripts, by role",
			},
			[]string{"role"},
		),
		MatchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sonora_resolver_matches_total",
				Help: "Resolved chat inputs, by matching stage",
			},
			[]string{"stage"},
		),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "sonora_chat_rate_limited_total",
			Help: "Chat messages rejected by the per-session rate limit",
		}),
		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "sonora_sessions_active",
			Help: "Number of live visitor sessions",
		}),
		NavigationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sonora_browser_navigations_total",
				Help: "Browser pane operations that changed state, by operation",
			},
			[]string{"op"},
		),
		WSConnections: f.NewGauge(prometheus.GaugeOpts{
			Name: "sonora_ws_connections",
			Help: "Open event stream connections",
		}),
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) ObserveMessage(role string) {
	if m == nil {
		return
	}
	m.MessagesTotal.WithLabelValues(role).Inc()
}

func (m *Metrics) ObserveMatch(stage string) {
	if m == nil {
		return
	}
	m.MatchesTotal.WithLabelValues(stage).Inc()
}

func (m *Metrics) ObserveNavigation(op string) {
	if m == nil {
		return
	}
	m.NavigationsTotal.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.SessionsActive.Set(float64(n))
}

func (m *Metrics) WSConnected() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

func (m *Metrics) WSDisconnected() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}
