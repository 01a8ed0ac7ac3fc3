package notification

import (
	"context"
	"log/slog"
	"time"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/service"
	"funntour/internal/infra/metrics"

	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const (
	channelEmail    = "email"
	channelWhatsApp = "whatsapp"
)

// DispatcherParams holds dependencies for the dispatcher, injected by Fx.
// Senders are nil when their channel is not configured.
type DispatcherParams struct {
	fx.In

	Email    service.EmailSender   `optional:"true"`
	WhatsApp service.MessageSender `optional:"true"`
	Metrics  *metrics.Metrics      `optional:"true"`
	Logger   *slog.Logger
}

// dispatcher fans a recovery token out to the configured channels concurrently.
type dispatcher struct {
	email    service.EmailSender
	whatsApp service.MessageSender
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewDispatcher builds the PasswordResetNotifier.
func NewDispatcher(params DispatcherParams) service.PasswordResetNotifier {
	return &dispatcher{
		email:    params.Email,
		whatsApp: params.WhatsApp,
		metrics:  params.Metrics,
		logger:   params.Logger,
	}
}

// NotifyPasswordReset never fails: each channel reports its own delivery.
func (d *dispatcher) NotifyPasswordReset(ctx context.Context, recipient *entity.ResetRecipient, token string, expiresAt time.Time) entity.NotificationReport {
	var report entity.NotificationReport
	if recipient == nil {
		return report
	}

	// Goroutines write disjoint fields, and Wait orders those writes before the return.
	var g errgroup.Group

	if d.email != nil && recipient.Email != "" {
		g.Go(func() error {
			err := d.email.SendPasswordResetEmail(ctx, recipient.Email, recipient.Name, token, expiresAt)
			report.Email = d.record(ctx, channelEmail, recipient.UserID, err)

			return nil
		})
	}

	if d.whatsApp != nil && recipient.WhatsApp != "" {
		g.Go(func() error {
			err := d.whatsApp.SendPasswordResetMessage(ctx, recipient.WhatsApp, recipient.Name, token)
			report.WhatsApp = d.record(ctx, channelWhatsApp, recipient.UserID, err)

			return nil
		})
	}

	_ = g.Wait()

	return report
}

func (d *dispatcher) record(ctx context.Context, channel string, userID uint, err error) bool {
	delivered := err == nil
	d.metrics.ObserveNotification(channel, delivered)

	if !delivered {
		d.logger.WarnContext(ctx, "Password recovery notification failed",
			slog.String("channel", channel),
			slog.Uint64("user_id", uint64(userID)),
			slog.Any("error", err),
		)
	}

	return delivered
}
