package entity

import "time"

// User is the aggregate root for an account. It owns its Address and references a Profile.
type User struct {
	ID            uint
	AddressID     uint
	ProfileID     uint
	TaxID         string     // CPF or CNPJ, formatted.
	Name          string     // Each word capitalized.
	Email         *string    // Unique case-insensitively when present.
	Phone         *string    // Formatted Brazilian number.
	WhatsApp      *string    // Formatted Brazilian number used for recovery messages.
	BirthDate     *time.Time // Date only.
	Avatar        *string    // Public URL of the avatar image.
	AcceptedTerms *bool
	IsAdult       *bool
	PasswordHash  string // bcrypt hash; never serialized.
	Address       *Address
	Profile       *Profile
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EmailValue returns the email or an empty string.
func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}

	return *u.Email
}

// WhatsAppValue returns the WhatsApp number or an empty string.
func (u *User) WhatsAppValue() string {
	if u.WhatsApp == nil {
		return ""
	}

	return *u.WhatsApp
}
