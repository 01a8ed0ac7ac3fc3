package repository

import (
	"context"

	"funntour/internal/domain/entity"
)

// CityRepository defines persistence operations for cities. Reads preload State.Country.
type CityRepository interface {
	List(ctx context.Context, page Page) ([]*entity.City, error)
	ListByState(ctx context.Context, stateID uint) ([]*entity.City, error)
	FindByID(ctx context.Context, id uint) (*entity.City, error)

	// FindByName returns the live city in stateID with the given name (case-insensitive), or nil.
	FindByName(ctx context.Context, stateID uint, name string, excludeID uint) (*entity.City, error)

	// FindByCode returns the live city in stateID with the given code (case-insensitive), or nil.
	FindByCode(ctx context.Context, stateID uint, code string, excludeID uint) (*entity.City, error)

	Create(ctx context.Context, city *entity.City) error
	Update(ctx context.Context, city *entity.City) error
	Delete(ctx context.Context, id uint) error
}
