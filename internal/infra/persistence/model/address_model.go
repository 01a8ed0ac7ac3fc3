package model

import (
	"time"

	"gorm.io/gorm"
)

// AddressModel is the GORM-specific struct for the 'addresses' table.
type AddressModel struct {
	ID         uint       `gorm:"primaryKey"`
	CityID     uint       `gorm:"not null;index"`
	City       *CityModel `gorm:"foreignKey:CityID"`
	PostalCode *string    `gorm:"type:varchar(20)"`
	Complement *string    `gorm:"type:varchar(255)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
