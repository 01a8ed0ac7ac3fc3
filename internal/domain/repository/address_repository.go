package repository

import (
	"context"

	"funntour/internal/domain/entity"
)

// AddressRepository defines persistence operations for addresses. Reads preload City.State.Country.
type AddressRepository interface {
	List(ctx context.Context, page Page) ([]*entity.Address, error)
	FindByID(ctx context.Context, id uint) (*entity.Address, error)
	Create(ctx context.Context, address *entity.Address) error
	Update(ctx context.Context, address *entity.Address) error
	Delete(ctx context.Context, id uint) error
}
