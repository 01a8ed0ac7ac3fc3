package postgres

import (
	"context"
	"time"

	"funntour/internal/domain/repository"
	"funntour/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// resetTokenStore implements repository.ResetTokenStore on the consumed_reset_tokens table.
// It is used when no Redis instance is configured.
type resetTokenStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewResetTokenStore is the constructor for resetTokenStore.
func NewResetTokenStore(db *gorm.DB) repository.ResetTokenStore {
	return &resetTokenStore{db: db, now: time.Now}
}

func (s *resetTokenStore) Consume(ctx context.Context, tokenID string, userID uint, expiresAt time.Time) (bool, error) {
	db := s.db.WithContext(ctx)

	// Expired ids can never verify again, so they are safe to forget.
	if err := db.Where("expires_at < ?", s.now()).Delete(&model.ConsumedResetTokenModel{}).Error; err != nil {
		return false, translateWriteError(err, "failed to purge expired reset tokens")
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.ConsumedResetTokenModel{
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
	if result.Error != nil {
		return false, translateWriteError(result.Error, "failed to record consumed reset token")
	}

	return result.RowsAffected == 1, nil
}

func (s *resetTokenStore) IsConsumed(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.ConsumedResetTokenModel{}).
		Where("token_id = ?", tokenID).
		Count(&count).Error
	if err != nil {
		return false, translateReadError(err, "failed to check reset token")
	}

	return count > 0, nil
}
