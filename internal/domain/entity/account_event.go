package entity

import "time"

// AccountEvent is an audited change to a user account, as received from the event stream.
type AccountEvent struct {
	ID         uint
	EventID    string
	Type       string
	UserID     uint
	RequestID  string
	OccurredAt time.Time
	ReceivedAt time.Time
}
