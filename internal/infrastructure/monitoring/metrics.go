package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Desktop metrics
	SessionsActive   prometheus.Gauge
	SessionsTotal    prometheus.Counter
	SessionsRejected prometheus.Counter
	Commands         *prometheus.CounterVec
	WindowOps        *prometheus.CounterVec
	PhaseTransitions *prometheus.CounterVec

	// WebSocket metrics
	WSMessages *prometheus.CounterVec

	startTime time.Time

	// Snapshot for the JSON health endpoint
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values for JSON responses
type Snapshot struct {
	TotalRequests  int64   `json:"total_requests"`
	TotalErrors    int64   `json:"total_errors"`
	ActiveSessions int64   `json:"active_sessions"`
	TotalSessions  int64   `json:"total_sessions"`
	Commands       int64   `json:"commands"`
	AvgLatencyMS   float64 `json:"avg_latency_ms"`
	UptimeSeconds  float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a metrics collector registered with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fakeos_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fakeos_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fakeos_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Desktop metrics
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fakeos_desktop_sessions_active",
				Help: "Number of live desktop sessions",
			},
		),
		SessionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fakeos_desktop_sessions_total",
				Help: "Total number of desktop sessions started",
			},
		),
		SessionsRejected: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fakeos_desktop_sessions_rejected_total",
				Help: "Connections refused because the session limit was reached",
			},
		),
		Commands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fakeos_terminal_commands_total",
				Help: "Terminal commands by name and outcome",
			},
			[]string{"command", "outcome"},
		),
		WindowOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fakeos_window_operations_total",
				Help: "Window operations by kind and window",
			},
			[]string{"op", "window"},
		),
		PhaseTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fakeos_phase_transitions_total",
				Help: "Session phase transitions by target phase",
			},
			[]string{"phase"},
		),

		// WebSocket metrics
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fakeos_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "fakeos_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordCommand implements desktop.Recorder. Unknown commands share one label
// so user input cannot grow the series count.
func (m *Metrics) RecordCommand(command, outcome string) {
	if outcome == "unknown" {
		command = "other"
	}
	m.Commands.WithLabelValues(command, outcome).Inc()

	m.mu.Lock()
	m.snapshot.Commands++
	m.mu.Unlock()
}

// RecordWindowOp implements desktop.Recorder
func (m *Metrics) RecordWindowOp(op, window string) {
	m.WindowOps.WithLabelValues(op, window).Inc()
}

// RecordPhase implements desktop.Recorder
func (m *Metrics) RecordPhase(phase string) {
	m.PhaseTransitions.WithLabelValues(phase).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SessionStarted marks a new live session
func (m *Metrics) SessionStarted() {
	m.SessionsActive.Inc()
	m.SessionsTotal.Inc()

	m.mu.Lock()
	m.snapshot.ActiveSessions++
	m.snapshot.TotalSessions++
	m.mu.Unlock()
}

// SessionEnded marks a session as gone
func (m *Metrics) SessionEnded() {
	m.SessionsActive.Dec()

	m.mu.Lock()
	m.snapshot.ActiveSessions--
	m.mu.Unlock()
}

// SessionRejected counts a refused connection
func (m *Metrics) SessionRejected() {
	m.SessionsRejected.Inc()
}

// Snapshot returns the current values for JSON responses
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	snap := m.snapshot
	m.mu.RUnlock()

	if snap.TotalRequests > 0 {
		snap.AvgLatencyMS = snap.totalDuration / float64(snap.TotalRequests) * 1000
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
