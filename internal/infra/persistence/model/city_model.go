package model

import (
	"time"

	"gorm.io/gorm"
)

// CityModel is the GORM-specific struct for the 'cities' table.
type CityModel struct {
	ID        uint        `gorm:"primaryKey"`
	StateID   uint        `gorm:"not null;index"`
	State     *StateModel `gorm:"foreignKey:StateID"`
	Name      string      `gorm:"type:varchar(255);not null"`
	Code      *string     `gorm:"type:varchar(10)"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (CityModel) TableName() string {
	return "cities"
}
