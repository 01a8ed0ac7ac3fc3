package postgres

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
	"funntour/internal/errors"
	"funntour/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// profileRepository implements the repository.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (repo *profileRepository) List(ctx context.Context, page repository.Page) ([]*entity.Profile, error) {
	var rows []*model.ProfileModel
	if err := repo.db.WithContext(ctx).Scopes(paginate(page)).Find(&rows).Error; err != nil {
		return nil, translateReadError(err, "failed to list profiles")
	}

	profiles := make([]*entity.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, toProfileDomain(row))
	}

	return profiles, nil
}

func (repo *profileRepository) FindByID(ctx context.Context, id uint) (*entity.Profile, error) {
	var row model.ProfileModel
	if err := repo.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateReadError(err, "failed to find profile by ID")
	}

	return toProfileDomain(&row), nil
}

func (repo *profileRepository) FindByDescription(ctx context.Context, description string, excludeID uint) (*entity.Profile, error) {
	var row model.ProfileModel
	err := repo.db.WithContext(ctx).
		Scopes(excludingID(excludeID)).
		Where("lower(description) = lower(?)", description).
		Order("id").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, translateReadError(err, "failed to look up profile by description")
	}

	return toProfileDomain(&row), nil
}

func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	row := fromProfileDomain(profile)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return translateWriteError(err, "failed to create profile")
	}

	*profile = *toProfileDomain(row)

	return nil
}

func (repo *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{ID: profile.ID}).
		Updates(map[string]any{"description": profile.Description})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	updated, err := repo.FindByID(ctx, profile.ID)
	if err != nil {
		return err
	}
	*profile = *updated

	return nil
}

func (repo *profileRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProfileModel{}, id)
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to delete profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		ID:          data.ID,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	return &model.ProfileModel{
		ID:          data.ID,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
