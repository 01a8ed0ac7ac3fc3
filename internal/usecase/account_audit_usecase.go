package usecase

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
)

// AccountAuditUsecase keeps the audit trail of account events.
type AccountAuditUsecase interface {
	// RecordEvent stores a delivered event. Redeliveries of the same event are ignored.
	RecordEvent(ctx context.Context, event *entity.AccountEvent) error

	// ListUserEvents returns the audit trail of an existing user, newest first.
	ListUserEvents(ctx context.Context, userID uint, page repository.Page) ([]*entity.AccountEvent, error)
}
