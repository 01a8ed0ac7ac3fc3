package usecase

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
)

// ProfileInput defines the data required to create a profile.
type ProfileInput struct {
	Description string
}

// ProfilePatch is a partial profile update.
type ProfilePatch struct {
	Description *string
}

// ProfileUsecase defines the profile registry operations.
type ProfileUsecase interface {
	ListProfiles(ctx context.Context, page repository.Page) ([]*entity.Profile, error)
	GetProfile(ctx context.Context, id uint) (*entity.Profile, error)
	CreateProfile(ctx context.Context, input ProfileInput) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, id uint, patch ProfilePatch) (*entity.Profile, error)
	DeleteProfile(ctx context.Context, id uint) error
}
