package usecase

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
)

// AddressInput defines a postal address. It is also embedded in user creation.
type AddressInput struct {
	CityID     uint
	PostalCode *string
	Complement *string
}

// AddressPatch is a partial address update.
type AddressPatch struct {
	CityID     *uint
	PostalCode *string
	Complement *string
}

// IsEmpty reports whether the patch changes nothing.
func (p *AddressPatch) IsEmpty() bool {
	return p == nil || (p.CityID == nil && p.PostalCode == nil && p.Complement == nil)
}

// AddressUsecase defines the standalone address operations.
// Addresses are usually managed through the user aggregate.
type AddressUsecase interface {
	ListAddresses(ctx context.Context, page repository.Page) ([]*entity.Address, error)
	GetAddress(ctx context.Context, id uint) (*entity.Address, error)
	CreateAddress(ctx context.Context, input AddressInput) (*entity.Address, error)
	UpdateAddress(ctx context.Context, id uint, patch AddressPatch) (*entity.Address, error)
	DeleteAddress(ctx context.Context, id uint) error
}
