// Package metrics owns the Prometheus collectors exported by the service.
package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector the API and the event worker export.
type Metrics struct {
	RequestOutcomes     *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	NotificationsSent   *prometheus.CounterVec
	ResetTokensIssued   prometheus.Counter
	ResetTokensConsumed prometheus.Counter
	ResetTokensRejected prometheus.Counter
	EventsReceived      *prometheus.CounterVec
	DBPoolConnections   *prometheus.GaugeVec
	DBPoolWaits         prometheus.Counter
	DBPoolWaitSeconds   prometheus.Counter
}

// New registers every collector on reg. Production passes prometheus.DefaultRegisterer,
// tests pass a fresh prometheus.NewRegistry so repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "funntour_request_outcomes_total",
			Help: "Requests by classified outcome and error code",
		}, []string{"outcome", "code"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "funntour_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
		NotificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "funntour_notifications_total",
			Help: "Password recovery notifications by channel and result",
		}, []string{"channel", "result"}),
		ResetTokensIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "funntour_reset_tokens_issued_total",
			Help: "Password reset tokens issued",
		}),
		ResetTokensConsumed: factory.NewCounter(prometheus.CounterOpts{
			Name: "funntour_reset_tokens_consumed_total",
			Help: "Password reset tokens successfully redeemed",
		}),
		ResetTokensRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "funntour_reset_tokens_rejected_total",
			Help: "Password reset attempts rejected for an invalid, expired or reused token",
		}),
		EventsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "funntour_account_events_received_total",
			Help: "Account events pushed to the audit worker by result",
		}, []string{"result"}),
		DBPoolConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "funntour_db_pool_connections",
			Help: "Database pool connections by state",
		}, []string{"state"}),
		DBPoolWaits: factory.NewCounter(prometheus.CounterOpts{
			Name: "funntour_db_pool_waits_total",
			Help: "Connections the pool could only hand out after a wait",
		}),
		DBPoolWaitSeconds: factory.NewCounter(prometheus.CounterOpts{
			Name: "funntour_db_pool_wait_seconds_total",
			Help: "Time spent waiting for a pooled connection",
		}),
	}
}

// NewDefault registers the collectors on the global Prometheus registry.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// ObserveOutcome counts one finished request.
func (m *Metrics) ObserveOutcome(outcome, code string) {
	if m == nil {
		return
	}
	m.RequestOutcomes.WithLabelValues(outcome, code).Inc()
}

// ObserveRequest records the latency of a finished request.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}

// ObserveNotification counts one delivery attempt on a channel.
func (m *Metrics) ObserveNotification(channel string, delivered bool) {
	if m == nil {
		return
	}
	result := "failed"
	if delivered {
		result = "sent"
	}
	m.NotificationsSent.WithLabelValues(channel, result).Inc()
}

// IncrementResetTokensIssued records an issued reset token.
func (m *Metrics) IncrementResetTokensIssued() {
	if m == nil {
		return
	}
	m.ResetTokensIssued.Inc()
}

// IncrementResetTokensConsumed records a redeemed reset token.
func (m *Metrics) IncrementResetTokensConsumed() {
	if m == nil {
		return
	}
	m.ResetTokensConsumed.Inc()
}

// IncrementResetTokensRejected records a rejected reset attempt.
func (m *Metrics) IncrementResetTokensRejected() {
	if m == nil {
		return
	}
	m.ResetTokensRejected.Inc()
}

// ObserveEventReceived counts one pushed account event: recorded, dropped or retried.
func (m *Metrics) ObserveEventReceived(result string) {
	if m == nil {
		return
	}
	m.EventsReceived.WithLabelValues(result).Inc()
}

// ObserveDBPool publishes a pool snapshot. waits and waited are the deltas
// since the previous snapshot.
func (m *Metrics) ObserveDBPool(stats sql.DBStats, waits int64, waited time.Duration) {
	if m == nil {
		return
	}
	m.DBPoolConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.DBPoolConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.DBPoolConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	m.DBPoolWaits.Add(float64(waits))
	m.DBPoolWaitSeconds.Add(waited.Seconds())
}
