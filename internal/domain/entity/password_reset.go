package entity

import "time"

// ResetRecipient is the minimal view of a user exposed alongside a reset token.
type ResetRecipient struct {
	UserID   uint
	Name     string
	TaxID    string
	Email    string
	WhatsApp string
}

// ResetToken is an issued password-reset credential.
type ResetToken struct {
	Token     string    // Signed JWT handed to the user.
	TokenID   string    // Unique identifier (jti) used for one-time consumption.
	UserID    uint      // Subject of the token.
	ExpiresAt time.Time // Absolute expiry.
}

// PasswordResetTicket is the result of a reset request: the token plus who it was issued for.
type PasswordResetTicket struct {
	Token     *ResetToken
	Recipient *ResetRecipient
}

// NotificationReport records which channels delivered a recovery message.
type NotificationReport struct {
	Email    bool
	WhatsApp bool
}
