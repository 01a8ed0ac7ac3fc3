package entity

import "time"

// Profile is a role label assigned to users, e.g. "Administrador" or "Turista".
type Profile struct {
	ID          uint
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
