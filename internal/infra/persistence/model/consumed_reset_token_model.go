package model

import "time"

// ConsumedResetTokenModel records a password-reset token id that has already been used.
type ConsumedResetTokenModel struct {
	TokenID   string    `gorm:"type:varchar(64);primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ConsumedResetTokenModel) TableName() string {
	return "consumed_reset_tokens"
}
