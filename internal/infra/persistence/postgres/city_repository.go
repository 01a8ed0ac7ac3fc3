package postgres

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
	"funntour/internal/errors"
	"funntour/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cityRepository implements the repository.CityRepository interface.
type cityRepository struct {
	db *gorm.DB
}

// NewCityRepository is the constructor for cityRepository.
func NewCityRepository(db *gorm.DB) repository.CityRepository {
	return &cityRepository{db: db}
}

func (repo *cityRepository) List(ctx context.Context, page repository.Page) ([]*entity.City, error) {
	var rows []*model.CityModel
	err := repo.db.WithContext(ctx).
		Preload(preloadCityStateCountry).
		Scopes(paginate(page)).
		Find(&rows).Error
	if err != nil {
		return nil, translateReadError(err, "failed to list cities")
	}

	return toCityDomains(rows), nil
}

func (repo *cityRepository) ListByState(ctx context.Context, stateID uint) ([]*entity.City, error) {
	var rows []*model.CityModel
	err := repo.db.WithContext(ctx).
		Preload(preloadCityStateCountry).
		Where("state_id = ?", stateID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, translateReadError(err, "failed to list cities by state")
	}

	return toCityDomains(rows), nil
}

func (repo *cityRepository) FindByID(ctx context.Context, id uint) (*entity.City, error) {
	var row model.CityModel
	if err := repo.db.WithContext(ctx).Preload(preloadCityStateCountry).First(&row, id).Error; err != nil {
		return nil, translateReadError(err, "failed to find city by ID")
	}

	return toCityDomain(&row), nil
}

func (repo *cityRepository) FindByName(ctx context.Context, stateID uint, name string, excludeID uint) (*entity.City, error) {
	return repo.findOne(ctx, excludeID, "state_id = ? AND lower(name) = lower(?)", stateID, name)
}

func (repo *cityRepository) FindByCode(ctx context.Context, stateID uint, code string, excludeID uint) (*entity.City, error) {
	return repo.findOne(ctx, excludeID, "state_id = ? AND upper(code) = upper(?)", stateID, code)
}

func (repo *cityRepository) findOne(ctx context.Context, excludeID uint, query string, args ...any) (*entity.City, error) {
	var row model.CityModel
	err := repo.db.WithContext(ctx).
		Scopes(excludingID(excludeID)).
		Where(query, args...).
		Order("id").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, translateReadError(err, "failed to look up city")
	}

	return toCityDomain(&row), nil
}

func (repo *cityRepository) Create(ctx context.Context, city *entity.City) error {
	row := fromCityDomain(city)
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translateWriteError(err, "failed to create city")
	}

	created, err := repo.FindByID(ctx, row.ID)
	if err != nil {
		return err
	}
	*city = *created

	return nil
}

func (repo *cityRepository) Update(ctx context.Context, city *entity.City) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CityModel{ID: city.ID}).
		Updates(map[string]any{
			"state_id": city.StateID,
			"name":     city.Name,
			"code":     city.Code,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update city")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	updated, err := repo.FindByID(ctx, city.ID)
	if err != nil {
		return err
	}
	*city = *updated

	return nil
}

func (repo *cityRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.CityModel{}, id)
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to delete city")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toCityDomain(data *model.CityModel) *entity.City {
	if data == nil {
		return nil
	}

	return &entity.City{
		ID:        data.ID,
		StateID:   data.StateID,
		Name:      data.Name,
		Code:      data.Code,
		State:     toStateDomain(data.State),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toCityDomains(rows []*model.CityModel) []*entity.City {
	cities := make([]*entity.City, 0, len(rows))
	for _, row := range rows {
		cities = append(cities, toCityDomain(row))
	}

	return cities
}

func fromCityDomain(data *entity.City) *model.CityModel {
	return &model.CityModel{
		ID:        data.ID,
		StateID:   data.StateID,
		Name:      data.Name,
		Code:      data.Code,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
