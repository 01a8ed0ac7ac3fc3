package repository

import (
	"context"

	"funntour/internal/domain/entity"
)

// AccountEventRepository stores the account audit trail.
type AccountEventRepository interface {
	// Record stores the event once per EventID. It returns false when the event was already recorded.
	Record(ctx context.Context, event *entity.AccountEvent) (bool, error)

	// ListByUser returns the user's events, newest first.
	ListByUser(ctx context.Context, userID uint, page Page) ([]*entity.AccountEvent, error)
}
