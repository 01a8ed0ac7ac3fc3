package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"funntour/internal/infra/metrics"
)

const (
	poolMonitorInterval   = 5 * time.Second
	poolWaitWarnThreshold = 50 * time.Millisecond
)

// poolMonitor samples sql.DBStats periodically. Each sample is exported as
// gauges, and connection waits since the previous sample are logged.
type poolMonitor struct {
	db       *sql.DB
	logger   *slog.Logger
	metrics  *metrics.Metrics
	interval time.Duration

	prev   sql.DBStats
	cancel context.CancelFunc
	done   chan struct{}
}

func newPoolMonitor(db *sql.DB, logger *slog.Logger, m *metrics.Metrics) *poolMonitor {
	return &poolMonitor{
		db:       db,
		logger:   logger,
		metrics:  m,
		interval: poolMonitorInterval,
	}
}

func (p *poolMonitor) start() {
	if p.db == nil || p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.prev = p.db.Stats()

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.sample(ctx, p.db.Stats())
			}
		}
	}()
}

func (p *poolMonitor) stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
}

func (p *poolMonitor) sample(ctx context.Context, cur sql.DBStats) {
	waits := cur.WaitCount - p.prev.WaitCount
	waited := cur.WaitDuration - p.prev.WaitDuration
	p.prev = cur

	p.metrics.ObserveDBPool(cur, waits, waited)
	if waits <= 0 || p.logger == nil {
		return
	}

	level := slog.LevelDebug
	if waited >= poolWaitWarnThreshold {
		level = slog.LevelWarn
	}
	p.logger.LogAttrs(ctx, level, "Postgres pool wait",
		slog.Int64("wait_count", waits),
		slog.Duration("wait_duration", waited),
		slog.Duration("avg_wait", waited/time.Duration(waits)),
		slog.Int("max_open", cur.MaxOpenConnections),
		slog.Int("open", cur.OpenConnections),
		slog.Int("in_use", cur.InUse),
		slog.Int("idle", cur.Idle),
	)
}
