package model

import "time"

// AccountEventModel is one row of the account audit trail.
type AccountEventModel struct {
	ID         uint      `gorm:"primaryKey"`
	EventID    string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Type       string    `gorm:"type:varchar(64);not null"`
	UserID     uint      `gorm:"not null;index:idx_account_events_user,priority:1"`
	RequestID  string    `gorm:"type:varchar(128)"`
	OccurredAt time.Time `gorm:"not null;index:idx_account_events_user,priority:2"`
	ReceivedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (AccountEventModel) TableName() string {
	return "account_events"
}
