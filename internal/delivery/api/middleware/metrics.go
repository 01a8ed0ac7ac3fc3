package middleware

import (
	"net/http"
	"strconv"
	"time"

	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request latency per route. Failed requests are
// counted by ErrorMiddleware; this one counts the successful outcomes.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates the latency middleware. A nil collector disables it.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Handle observes the request once the response status is final.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.metrics == nil {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		if err != nil {
			// Render now so the recorded status is the one the client sees.
			c.Error(err)
		}

		status := c.Response().Status
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.metrics.ObserveRequest(c.Request().Method, route, strconv.Itoa(status), start)
		if err == nil && status < http.StatusBadRequest {
			m.metrics.ObserveOutcome(domainerrors.OutcomeOK.String(), "")
		}

		return nil
	}
}
