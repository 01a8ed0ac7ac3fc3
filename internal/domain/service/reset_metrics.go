package service

// ResetTokenMetrics counts password-reset token lifecycle transitions.
type ResetTokenMetrics interface {
	IncrementResetTokensIssued()
	IncrementResetTokensConsumed()
	IncrementResetTokensRejected()
}
