// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
	"funntour/internal/errors"
	"funntour/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// countryRepository implements the repository.CountryRepository interface.
type countryRepository struct {
	db *gorm.DB
}

// NewCountryRepository is the constructor for countryRepository.
func NewCountryRepository(db *gorm.DB) repository.CountryRepository {
	return &countryRepository{db: db}
}

func (repo *countryRepository) List(ctx context.Context, page repository.Page) ([]*entity.Country, error) {
	var rows []*model.CountryModel
	if err := repo.db.WithContext(ctx).Scopes(paginate(page)).Find(&rows).Error; err != nil {
		return nil, translateReadError(err, "failed to list countries")
	}

	countries := make([]*entity.Country, 0, len(rows))
	for _, row := range rows {
		countries = append(countries, toCountryDomain(row))
	}

	return countries, nil
}

func (repo *countryRepository) FindByID(ctx context.Context, id uint) (*entity.Country, error) {
	var row model.CountryModel
	if err := repo.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateReadError(err, "failed to find country by ID")
	}

	return toCountryDomain(&row), nil
}

func (repo *countryRepository) FindConflicting(ctx context.Context, name, code string, excludeID uint) (*entity.Country, error) {
	var row model.CountryModel
	err := repo.db.WithContext(ctx).
		Scopes(excludingID(excludeID), nameMatchFirst(name)).
		Where("lower(name) = lower(?) OR upper(code) = upper(?)", name, code).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, translateReadError(err, "failed to look up conflicting country")
	}

	return toCountryDomain(&row), nil
}

func (repo *countryRepository) Create(ctx context.Context, country *entity.Country) error {
	row := fromCountryDomain(country)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return translateWriteError(err, "failed to create country")
	}

	*country = *toCountryDomain(row)

	return nil
}

func (repo *countryRepository) Update(ctx context.Context, country *entity.Country) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CountryModel{ID: country.ID}).
		Updates(map[string]any{
			"name": country.Name,
			"code": country.Code,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update country")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	updated, err := repo.FindByID(ctx, country.ID)
	if err != nil {
		return err
	}
	*country = *updated

	return nil
}

func (repo *countryRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.CountryModel{}, id)
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to delete country")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toCountryDomain(data *model.CountryModel) *entity.Country {
	if data == nil {
		return nil
	}

	return &entity.Country{
		ID:        data.ID,
		Name:      data.Name,
		Code:      data.Code,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromCountryDomain(data *entity.Country) *model.CountryModel {
	return &model.CountryModel{
		ID:        data.ID,
		Name:      data.Name,
		Code:      data.Code,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
