// Package entity contains the core business objects of the project.
package entity

import "time"

// Country is the root of the geographic hierarchy.
type Country struct {
	ID        uint      // Surrogate key.
	Name      string    // Title-cased display name, e.g. "Brazil".
	Code      string    // Uppercase short code, e.g. "BR".
	CreatedAt time.Time // Timestamp of creation.
	UpdatedAt time.Time // Timestamp of the last modification.
}
