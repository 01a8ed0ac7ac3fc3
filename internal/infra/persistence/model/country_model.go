package model

import (
	"time"

	"gorm.io/gorm"
)

// CountryModel is the GORM-specific struct for the 'countries' table.
type CountryModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255);not null"`
	Code      string `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (CountryModel) TableName() string {
	return "countries"
}
