package usecase

import (
	"context"

	"funntour/internal/domain/entity"
)

// PasswordResetRequestOutput is the result of a recovery request.
// Ticket is nil when the credential matched no user.
type PasswordResetRequestOutput struct {
	Ticket *entity.PasswordResetTicket
	Report entity.NotificationReport
}

// TokenValidationOutput reports whether a reset token can still be used.
type TokenValidationOutput struct {
	Valid   bool
	UserID  uint
	Message string
}

// PasswordResetUsecase drives the password-recovery flow:
// NoToken -> TokenIssued (up to 10 minutes) -> Consumed or Expired.
type PasswordResetUsecase interface {
	// GenerateResetToken issues a token for the user matching credential, or fails with ErrUserNotFound.
	GenerateResetToken(ctx context.Context, credential string) (*entity.PasswordResetTicket, error)

	// VerifyResetToken returns the token subject. Every failure is ErrResetTokenInvalid.
	VerifyResetToken(ctx context.Context, token string) (uint, error)

	// ResetPasswordWithToken verifies the token, consumes it and sets the new password.
	ResetPasswordWithToken(ctx context.Context, token, newPassword string) error

	// RequestPasswordReset issues a token and sends it on every channel the user has.
	RequestPasswordReset(ctx context.Context, credential string) (*PasswordResetRequestOutput, error)

	ValidateResetToken(ctx context.Context, token string) (*TokenValidationOutput, error)
}
