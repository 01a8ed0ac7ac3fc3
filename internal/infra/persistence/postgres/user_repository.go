package postgres

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
	"funntour/internal/infra/persistence/model"
	"funntour/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// withUserGraph preloads the profile and the full address chain.
func withUserGraph(db *gorm.DB) *gorm.DB {
	return db.Preload(preloadUserProfile).Preload(preloadUserAddressChain)
}

func (repo *userRepository) List(ctx context.Context, page repository.Page) ([]*entity.User, error) {
	var rows []*model.UserModel
	err := repo.db.WithContext(ctx).
		Scopes(withUserGraph, paginate(page)).
		Find(&rows).Error
	if err != nil {
		return nil, translateReadError(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toUserDomain(row))
	}

	return users, nil
}

// FindByID retrieves a single user by their unique ID with profile and address chain.
func (repo *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return repo.findOne(ctx, "failed to find user by id", "id = ?", id)
}

func (repo *userRepository) FindByTaxIDDigits(ctx context.Context, digits string) (*entity.User, error) {
	return repo.findOne(ctx, "failed to find user by tax id", "tax_id_digits = ?", digits)
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "failed to find user by email", "lower(email) = lower(?)", email)
}

func (repo *userRepository) findOne(ctx context.Context, details, query string, args ...any) (*entity.User, error) {
	var row model.UserModel
	err := repo.db.WithContext(ctx).
		Scopes(withUserGraph).
		Where(query, args...).
		Order("id").
		First(&row).Error
	if err != nil {
		return nil, translateReadError(err, details)
	}

	return toUserDomain(&row), nil
}

// Create persists the user row only. The address must already exist.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	row := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translateWriteError(err, "failed to create user")
	}

	created, err := repo.FindByID(ctx, row.ID)
	if err != nil {
		return err
	}
	*user = *created

	return nil
}

// Update writes the mutable profile columns. Password and avatar have dedicated methods.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{ID: user.ID}).
		Updates(map[string]any{
			"address_id":     user.AddressID,
			"profile_id":     user.ProfileID,
			"tax_id":         user.TaxID,
			"tax_id_digits":  util.DigitsOnly(user.TaxID),
			"name":           user.Name,
			"email":          user.Email,
			"phone":          user.Phone,
			"whatsapp":       user.WhatsApp,
			"birth_date":     user.BirthDate,
			"accepted_terms": user.AcceptedTerms,
			"is_adult":       user.IsAdult,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	updated, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		return err
	}
	*user = *updated

	return nil
}

func (repo *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return repo.updateColumn(ctx, id, "password_hash", passwordHash, "failed to update user password")
}

func (repo *userRepository) UpdateAvatar(ctx context.Context, id uint, avatar string) error {
	return repo.updateColumn(ctx, id, "avatar", avatar, "failed to update user avatar")
}

func (repo *userRepository) updateColumn(ctx context.Context, id uint, column string, value any, details string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{ID: id}).
		Update(column, value)
	if result.Error != nil {
		return translateWriteError(result.Error, details)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (repo *userRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.UserModel{}, id)
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		AddressID:     data.AddressID,
		ProfileID:     data.ProfileID,
		TaxID:         data.TaxID,
		Name:          data.Name,
		Email:         data.Email,
		Phone:         data.Phone,
		WhatsApp:      data.WhatsApp,
		BirthDate:     data.BirthDate,
		Avatar:        data.Avatar,
		AcceptedTerms: data.AcceptedTerms,
		IsAdult:       data.IsAdult,
		PasswordHash:  data.PasswordHash,
		Address:       toAddressDomain(data.Address),
		Profile:       toProfileDomain(data.Profile),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:            data.ID,
		AddressID:     data.AddressID,
		ProfileID:     data.ProfileID,
		TaxID:         data.TaxID,
		TaxIDDigits:   util.DigitsOnly(data.TaxID),
		Name:          data.Name,
		Email:         data.Email,
		Phone:         data.Phone,
		WhatsApp:      data.WhatsApp,
		BirthDate:     data.BirthDate,
		Avatar:        data.Avatar,
		AcceptedTerms: data.AcceptedTerms,
		IsAdult:       data.IsAdult,
		PasswordHash:  data.PasswordHash,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
