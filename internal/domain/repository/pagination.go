package repository

import "funntour/internal/domain/constants"

// Page is an offset window over an id-ordered listing.
type Page struct {
	Skip  int
	Limit int
}

// NewPage clamps skip and limit to sane bounds.
func NewPage(skip, limit int) Page {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = constants.DefaultPageLimit
	}
	if limit > constants.MaxPageLimit {
		limit = constants.MaxPageLimit
	}

	return Page{Skip: skip, Limit: limit}
}
