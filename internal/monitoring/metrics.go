package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the backend.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// PTY session metrics
	PtySessionsActive  prometheus.Gauge
	PtySessionsSpawned prometheus.Counter
	PtySessionsKilled  prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector registered on the default
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		PtySessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "pty_sessions_active",
			Help: "Currently live PTY sessions",
		}),

		PtySessionsSpawned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pty_sessions_spawned_total",
			Help: "Total PTY sessions spawned",
		}),

		PtySessionsKilled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pty_sessions_killed_total",
			Help: "Total PTY sessions killed",
		}),

		WSConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ws_connections_active",
			Help: "Active WebSocket connections",
		}),

		WSMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ws_messages_total",
			Help: "WebSocket messages by type",
		}, []string{"type"}),

		Uptime: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "uptime_seconds",
			Help: "Server uptime in seconds",
		}),
	}

	go m.trackUptime()
	return m
}

// RecordRequest records one handled HTTP request.
func (m *Metrics) RecordRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SessionSpawned records a spawn and the new live-session count.
func (m *Metrics) SessionSpawned(active int) {
	m.PtySessionsSpawned.Inc()
	m.PtySessionsActive.Set(float64(active))
}

// SessionKilled records a kill and the new live-session count.
func (m *Metrics) SessionKilled(active int) {
	m.PtySessionsKilled.Inc()
	m.PtySessionsActive.Set(float64(active))
}

// SessionsActive sets the live-session gauge directly (registry teardown).
func (m *Metrics) SessionsActive(active int) {
	m.PtySessionsActive.Set(float64(active))
}

// WSConnected records a new WebSocket connection.
func (m *Metrics) WSConnected() { m.WSConnections.Inc() }

// WSDisconnected records a closed WebSocket connection.
func (m *Metrics) WSDisconnected() { m.WSConnections.Dec() }

// WSMessage records one inbound or outbound WebSocket message.
func (m *Metrics) WSMessage(msgType string) {
	m.WSMessages.WithLabelValues(msgType).Inc()
}

func (m *Metrics) trackUptime() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}
