package repository

import (
	"context"
	"time"
)

// ResetTokenStore remembers consumed password-reset token ids until they expire,
// making each token single-use.
type ResetTokenStore interface {
	// Consume marks tokenID as used. It returns false when the token had already been consumed.
	Consume(ctx context.Context, tokenID string, userID uint, expiresAt time.Time) (bool, error)

	// IsConsumed reports whether tokenID has been used.
	IsConsumed(ctx context.Context, tokenID string) (bool, error)
}
