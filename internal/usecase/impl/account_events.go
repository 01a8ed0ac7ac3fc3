package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "funntour/internal/delivery/context"
	"funntour/internal/domain/service"

	"github.com/google/uuid"
)

// accountEvents publishes account changes after they are committed. Failures are only logged.
type accountEvents struct {
	publisher service.EventPublisher
	now       func() time.Time
}

func newAccountEvents(publisher service.EventPublisher) accountEvents {
	return accountEvents{publisher: publisher, now: time.Now}
}

func (e accountEvents) publish(ctx context.Context, logger *slog.Logger, eventType string, userID uint) {
	if e.publisher == nil {
		return
	}

	event := &service.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: e.now().UTC(),
	}

	if err := e.publisher.PublishAccountEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish account event",
			slog.String("event_type", eventType),
			slog.Uint64("user_id", uint64(userID)),
			slog.Any("error", err),
		)
	}
}
