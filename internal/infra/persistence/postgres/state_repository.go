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

// stateRepository implements the repository.StateRepository interface.
type stateRepository struct {
	db *gorm.DB
}

// NewStateRepository is the constructor for stateRepository.
func NewStateRepository(db *gorm.DB) repository.StateRepository {
	return &stateRepository{db: db}
}

func (repo *stateRepository) List(ctx context.Context, page repository.Page) ([]*entity.State, error) {
	var rows []*model.StateModel
	err := repo.db.WithContext(ctx).
		Preload(preloadStateCountry).
		Scopes(paginate(page)).
		Find(&rows).Error
	if err != nil {
		return nil, translateReadError(err, "failed to list states")
	}

	return toStateDomains(rows), nil
}

func (repo *stateRepository) ListByCountry(ctx context.Context, countryID uint) ([]*entity.State, error) {
	var rows []*model.StateModel
	err := repo.db.WithContext(ctx).
		Preload(preloadStateCountry).
		Where("country_id = ?", countryID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, translateReadError(err, "failed to list states by country")
	}

	return toStateDomains(rows), nil
}

func (repo *stateRepository) FindByID(ctx context.Context, id uint) (*entity.State, error) {
	var row model.StateModel
	if err := repo.db.WithContext(ctx).Preload(preloadStateCountry).First(&row, id).Error; err != nil {
		return nil, translateReadError(err, "failed to find state by ID")
	}

	return toStateDomain(&row), nil
}

func (repo *stateRepository) FindConflicting(ctx context.Context, countryID uint, name, code string, excludeID uint) (*entity.State, error) {
	var row model.StateModel
	err := repo.db.WithContext(ctx).
		Scopes(excludingID(excludeID), nameMatchFirst(name)).
		Where("country_id = ?", countryID).
		Where("lower(name) = lower(?) OR upper(code) = upper(?)", name, code).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, translateReadError(err, "failed to look up conflicting state")
	}

	return toStateDomain(&row), nil
}

func (repo *stateRepository) Create(ctx context.Context, state *entity.State) error {
	row := fromStateDomain(state)
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translateWriteError(err, "failed to create state")
	}

	created, err := repo.FindByID(ctx, row.ID)
	if err != nil {
		return err
	}
	*state = *created

	return nil
}

func (repo *stateRepository) Update(ctx context.Context, state *entity.State) error {
	result := repo.db.WithContext(ctx).
		Model(&model.StateModel{ID: state.ID}).
		Updates(map[string]any{
			"country_id": state.CountryID,
			"name":       state.Name,
			"code":       state.Code,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update state")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	updated, err := repo.FindByID(ctx, state.ID)
	if err != nil {
		return err
	}
	*state = *updated

	return nil
}

func (repo *stateRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.StateModel{}, id)
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to delete state")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toStateDomain(data *model.StateModel) *entity.State {
	if data == nil {
		return nil
	}

	return &entity.State{
		ID:        data.ID,
		CountryID: data.CountryID,
		Name:      data.Name,
		Code:      data.Code,
		Country:   toCountryDomain(data.Country),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toStateDomains(rows []*model.StateModel) []*entity.State {
	states := make([]*entity.State, 0, len(rows))
	for _, row := range rows {
		states = append(states, toStateDomain(row))
	}

	return states
}

func fromStateDomain(data *entity.State) *model.StateModel {
	return &model.StateModel{
		ID:        data.ID,
		CountryID: data.CountryID,
		Name:      data.Name,
		Code:      data.Code,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
