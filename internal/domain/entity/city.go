package entity

import "time"

// City belongs to a State. The code is optional.
type City struct {
	ID        uint
	StateID   uint
	Name      string
	Code      *string
	State     *State // Resolved parent chain (State -> Country).
	CreatedAt time.Time
	UpdatedAt time.Time
}
