package model

import (
	"time"

	"gorm.io/gorm"
)

// StateModel is the GORM-specific struct for the 'states' table.
type StateModel struct {
	ID        uint          `gorm:"primaryKey"`
	CountryID uint          `gorm:"not null;index"`
	Country   *CountryModel `gorm:"foreignKey:CountryID"`
	Name      string        `gorm:"type:varchar(255);not null"`
	Code      string        `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (StateModel) TableName() string {
	return "states"
}
