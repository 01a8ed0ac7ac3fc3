package repository

import (
	"context"

	"funntour/internal/domain/entity"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	List(ctx context.Context, page Page) ([]*entity.Profile, error)
	FindByID(ctx context.Context, id uint) (*entity.Profile, error)

	// FindByDescription returns the live profile with the description (case-insensitive), or nil.
	FindByDescription(ctx context.Context, description string, excludeID uint) (*entity.Profile, error)

	Create(ctx context.Context, profile *entity.Profile) error
	Update(ctx context.Context, profile *entity.Profile) error
	Delete(ctx context.Context, id uint) error
}
