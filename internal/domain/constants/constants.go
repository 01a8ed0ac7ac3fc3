// Package constants contains values shared across layers.
package constants

import "time"

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// MaxPasswordBytes is the longest password bcrypt accepts. It counts bytes, so
// accented characters use more than one.
const MaxPasswordBytes = 72

// PasswordResetTokenTTL is how long a password-reset token stays valid after issuance.
const PasswordResetTokenTTL = 10 * time.Minute

// Pagination defaults for list operations
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// Account event types
const (
	EventUserCreated            = "user.created"
	EventUserDeleted            = "user.deleted"
	EventPasswordChanged        = "user.password_changed"
	EventPasswordResetRequested = "user.password_reset_requested"
	EventPasswordReset          = "user.password_reset"
)
