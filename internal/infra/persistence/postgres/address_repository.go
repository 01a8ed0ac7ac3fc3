package postgres

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
	"funntour/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// addressRepository implements the repository.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

func (repo *addressRepository) List(ctx context.Context, page repository.Page) ([]*entity.Address, error) {
	var rows []*model.AddressModel
	err := repo.db.WithContext(ctx).
		Preload(preloadAddressChain).
		Scopes(paginate(page)).
		Find(&rows).Error
	if err != nil {
		return nil, translateReadError(err, "failed to list addresses")
	}

	addresses := make([]*entity.Address, 0, len(rows))
	for _, row := range rows {
		addresses = append(addresses, toAddressDomain(row))
	}

	return addresses, nil
}

func (repo *addressRepository) FindByID(ctx context.Context, id uint) (*entity.Address, error) {
	var row model.AddressModel
	if err := repo.db.WithContext(ctx).Preload(preloadAddressChain).First(&row, id).Error; err != nil {
		return nil, translateReadError(err, "failed to find address by ID")
	}

	return toAddressDomain(&row), nil
}

func (repo *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	row := fromAddressDomain(address)
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translateWriteError(err, "failed to create address")
	}

	created, err := repo.FindByID(ctx, row.ID)
	if err != nil {
		return err
	}
	*address = *created

	return nil
}

func (repo *addressRepository) Update(ctx context.Context, address *entity.Address) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AddressModel{ID: address.ID}).
		Updates(map[string]any{
			"city_id":     address.CityID,
			"postal_code": address.PostalCode,
			"complement":  address.Complement,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	updated, err := repo.FindByID(ctx, address.ID)
	if err != nil {
		return err
	}
	*address = *updated

	return nil
}

func (repo *addressRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.AddressModel{}, id)
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to delete address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:         data.ID,
		CityID:     data.CityID,
		PostalCode: data.PostalCode,
		Complement: data.Complement,
		City:       toCityDomain(data.City),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromAddressDomain(data *entity.Address) *model.AddressModel {
	return &model.AddressModel{
		ID:         data.ID,
		CityID:     data.CityID,
		PostalCode: data.PostalCode,
		Complement: data.Complement,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
