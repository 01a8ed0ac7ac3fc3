package model

import (
	"time"

	"gorm.io/gorm"
)

// UserModel is the GORM-specific struct for the 'users' table.
type UserModel struct {
	ID            uint          `gorm:"primaryKey"`
	AddressID     uint          `gorm:"not null;index"`
	Address       *AddressModel `gorm:"foreignKey:AddressID"`
	ProfileID     uint          `gorm:"not null;index"`
	Profile       *ProfileModel `gorm:"foreignKey:ProfileID"`
	TaxID         string        `gorm:"type:varchar(20);not null"`
	TaxIDDigits   string        `gorm:"type:varchar(20);not null"`
	Name          string        `gorm:"type:varchar(255);not null"`
	Email         *string       `gorm:"type:varchar(255)"`
	Phone         *string       `gorm:"type:varchar(20)"`
	WhatsApp      *string       `gorm:"column:whatsapp;type:varchar(20)"`
	BirthDate     *time.Time    `gorm:"type:date"`
	Avatar        *string       `gorm:"type:varchar(512)"`
	AcceptedTerms *bool
	IsAdult       *bool
	PasswordHash  string `gorm:"type:varchar(255);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
