package repository

import (
	"context"

	"funntour/internal/domain/entity"
)

// UserRepository defines persistence operations for users.
// Reads preload Profile and Address.City.State.Country.
type UserRepository interface {
	List(ctx context.Context, page Page) ([]*entity.User, error)
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByTaxIDDigits looks a user up by the digits of the CPF/CNPJ, ignoring punctuation.
	// Returns ErrNotFound when no live user matches.
	FindByTaxIDDigits(ctx context.Context, digits string) (*entity.User, error)

	// FindByEmail looks a user up by email, case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	UpdateAvatar(ctx context.Context, id uint, avatar string) error
	Delete(ctx context.Context, id uint) error
}
