package repository

import (
	"context"

	"funntour/internal/domain/entity"
)

// StateRepository defines persistence operations for states. Reads preload the country.
type StateRepository interface {
	List(ctx context.Context, page Page) ([]*entity.State, error)
	ListByCountry(ctx context.Context, countryID uint) ([]*entity.State, error)
	FindByID(ctx context.Context, id uint) (*entity.State, error)

	// FindConflicting returns a live state in countryID, other than excludeID, whose name or
	// code matches case-insensitively. It returns nil when there is none.
	FindConflicting(ctx context.Context, countryID uint, name, code string, excludeID uint) (*entity.State, error)

	Create(ctx context.Context, state *entity.State) error
	Update(ctx context.Context, state *entity.State) error
	Delete(ctx context.Context, id uint) error
}
