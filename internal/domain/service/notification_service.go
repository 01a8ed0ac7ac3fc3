package service

import (
	"context"
	"time"

	"funntour/internal/domain/entity"
)

// EmailSender delivers the password-recovery email.
type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, recipient, userName, token string, expiresAt time.Time) error
}

// MessageSender delivers the password-recovery instant message (WhatsApp).
type MessageSender interface {
	SendPasswordResetMessage(ctx context.Context, phoneNumber, userName, token string) error
}

// PasswordResetNotifier fans a recovery token out to every channel the user has.
// Delivery is best effort: failures are reported, never returned.
type PasswordResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, recipient *entity.ResetRecipient, token string, expiresAt time.Time) entity.NotificationReport
}
