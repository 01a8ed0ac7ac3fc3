package redis

import (
	"context"
	"errors"
	"time"

	"funntour/internal/domain/repository"

	goredis "github.com/redis/go-redis/v9"
)

const consumedResetTokenKeyPrefix = "funntour:reset:jti:"

// ResetTokenStore keeps consumed reset-token ids in Redis until the token would expire anyway.
type ResetTokenStore struct {
	client *goredis.Client
	now    func() time.Time
}

var _ repository.ResetTokenStore = (*ResetTokenStore)(nil)

// NewResetTokenStore constructs a Redis-backed reset token store.
func NewResetTokenStore(client *goredis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client, now: time.Now}
}

// Consume records tokenID with SETNX so concurrent resets race on a single key.
func (s *ResetTokenStore) Consume(ctx context.Context, tokenID string, userID uint, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		// Already unusable; keep a short marker so a racing request still loses.
		ttl = time.Second
	}

	ok, err := s.client.SetNX(ctx, consumedResetTokenKeyPrefix+tokenID, userID, ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// IsConsumed reports whether tokenID has already been used.
func (s *ResetTokenStore) IsConsumed(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.client.Get(ctx, consumedResetTokenKeyPrefix+tokenID).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
