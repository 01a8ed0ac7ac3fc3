package entity

import "time"

// Address is a postal address in a City, owned by exactly one User.
type Address struct {
	ID         uint
	CityID     uint
	PostalCode *string // Brazilian CEP, formatted NNNNN-NNN when complete.
	Complement *string // Free text: street, number, apartment.
	City       *City   // Resolved chain City -> State -> Country.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
