package service

import (
	"time"

	"funntour/internal/domain/entity"
)

// AccessClaims is the verified content of an access token.
type AccessClaims struct {
	UserID    uint
	ProfileID uint
	ExpiresAt time.Time
}

// TokenService issues and validates short-lived access tokens returned by login.
type TokenService interface {
	GenerateAccessToken(userID, profileID uint) (token string, expiresAt time.Time, err error)

	// ValidateAccessToken returns domainerrors.ErrAccessTokenInvalid for any invalid token.
	ValidateAccessToken(token string) (*AccessClaims, error)
}

// ResetTokenClaims is the verified content of a password-reset token.
type ResetTokenClaims struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

// ResetTokenService issues and verifies signed, time-boxed password-reset tokens.
type ResetTokenService interface {
	Issue(userID uint) (*entity.ResetToken, error)

	// Verify folds malformed, wrongly signed and expired tokens into domainerrors.ErrResetTokenInvalid.
	Verify(token string) (*ResetTokenClaims, error)
}
