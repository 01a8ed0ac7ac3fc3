package entity

import "time"

// State belongs to a Country. Name and code are unique within the country.
type State struct {
	ID        uint
	CountryID uint
	Name      string
	Code      string
	Country   *Country // Resolved parent; nil when the country is missing or deleted.
	CreatedAt time.Time
	UpdatedAt time.Time
}
