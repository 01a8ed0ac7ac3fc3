package model

import (
	"time"

	"gorm.io/gorm"
)

// ProfileModel is the GORM-specific struct for the 'profiles' table.
type ProfileModel struct {
	ID          uint   `gorm:"primaryKey"`
	Description string `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
