package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"funntour/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPoolMonitor_Sample(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := metrics.New(prometheus.NewRegistry())
	monitor := newPoolMonitor(nil, logger, m)
	ctx := context.Background()

	t.Run("idle pool logs nothing", func(t *testing.T) {
		monitor.sample(ctx, sql.DBStats{OpenConnections: 2, Idle: 2})

		assert.Empty(t, buf.String())
		assert.InDelta(t, 2, testutil.ToFloat64(m.DBPoolConnections.WithLabelValues("idle")), 0)
	})

	t.Run("short waits are debug", func(t *testing.T) {
		buf.Reset()
		monitor.sample(ctx, sql.DBStats{OpenConnections: 2, InUse: 2, WaitCount: 1, WaitDuration: time.Millisecond})

		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "wait_count=1")
	})

	t.Run("long waits are warnings", func(t *testing.T) {
		buf.Reset()
		monitor.sample(ctx, sql.DBStats{OpenConnections: 2, InUse: 2, WaitCount: 3, WaitDuration: time.Second})

		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "wait_count=2")
		assert.InDelta(t, 3, testutil.ToFloat64(m.DBPoolWaits), 0)
	})
}

func TestPoolMonitor_StopWithoutStart(t *testing.T) {
	monitor := newPoolMonitor(nil, nil, nil)

	assert.NotPanics(t, func() {
		monitor.start()
		monitor.stop()
	})
}
