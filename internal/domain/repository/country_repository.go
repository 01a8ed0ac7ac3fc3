package repository

import (
	"context"

	"funntour/internal/domain/entity"
)

// CountryRepository defines persistence operations for countries.
type CountryRepository interface {
	List(ctx context.Context, page Page) ([]*entity.Country, error)

	// FindByID returns ErrNotFound when the country is missing or soft-deleted.
	FindByID(ctx context.Context, id uint) (*entity.Country, error)

	// FindConflicting returns a live country, other than excludeID, whose name or code
	// matches case-insensitively. It returns nil when there is none.
	FindConflicting(ctx context.Context, name, code string, excludeID uint) (*entity.Country, error)

	Create(ctx context.Context, country *entity.Country) error
	Update(ctx context.Context, country *entity.Country) error

	// Delete soft-deletes the country. Returns ErrNotFound when no live row matched.
	Delete(ctx context.Context, id uint) error
}
