package impl

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"funntour/config"
	deliverycontext "funntour/internal/delivery/context"
	"funntour/internal/domain/constants"
	"funntour/internal/domain/entity"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"
	"funntour/internal/domain/service"
	"funntour/internal/errors"
	"funntour/internal/usecase"
	"funntour/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const fallbackMaxAvatarBytes = 2 << 20

// userService implements the UserUsecase interface.
type userService struct {
	txManager      repository.TransactionManager
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	avatars        service.AvatarStorage
	events         accountEvents
	maxAvatarBytes int64
	logger         *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	AvatarStorage  service.AvatarStorage  `optional:"true"`
	EventPublisher service.EventPublisher `optional:"true"`
	Config         *config.Config
	Logger         *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	maxAvatarBytes := int64(fallbackMaxAvatarBytes)
	if params.Config != nil && params.Config.Storage != nil && params.Config.Storage.MaxAvatarBytes > 0 {
		maxAvatarBytes = params.Config.Storage.MaxAvatarBytes
	}

	return &userService{
		txManager:      params.TxManager,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		avatars:        params.AvatarStorage,
		events:         newAccountEvents(params.EventPublisher),
		maxAvatarBytes: maxAvatarBytes,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) ListUsers(ctx context.Context, page repository.Page) ([]*entity.User, error) {
	var users []*entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		users, err = repoFactory.UserRepo().List(ctx, page)

		return translateUserError(err)
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (srv *userService) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		user, err = repoFactory.UserRepo().FindByID(ctx, id)

		return translateUserError(err)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUser writes the address first and then the user referencing it, in one transaction.
func (srv *userService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	passwordHash, err := srv.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ProfileID:     input.ProfileID,
		TaxID:         util.FormatTaxID(input.TaxID),
		Name:          util.CapitalizeWords(input.Name),
		Email:         normalizeEmail(input.Email),
		Phone:         normalizePhone(input.Phone),
		WhatsApp:      normalizePhone(input.WhatsApp),
		BirthDate:     normalizeBirthDate(input.BirthDate),
		AcceptedTerms: input.AcceptedTerms,
		IsAdult:       input.IsAdult,
		PasswordHash:  passwordHash,
	}
	if err := requireNotBlank("name", user.Name, "tax_id", user.TaxID); err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ProfileRepo().FindByID(ctx, user.ProfileID); err != nil {
			return parentLookupError(err, domainerrors.ErrProfileNotFound)
		}

		userRepo := repoFactory.UserRepo()
		if err := checkTaxIDAvailable(ctx, userRepo, user.TaxID, 0); err != nil {
			return err
		}
		if err := checkEmailAvailable(ctx, userRepo, user.Email, 0); err != nil {
			return err
		}

		address := newAddress(input.Address)
		if err := createAddress(ctx, repoFactory, address); err != nil {
			return err
		}
		user.AddressID = address.ID

		return translateUserError(userRepo.Create(ctx, user))
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User created", slog.Uint64("user_id", uint64(user.ID)), slog.Uint64("profile_id", uint64(user.ProfileID)))
	srv.events.publish(ctx, srv.log(ctx), constants.EventUserCreated, user.ID)

	return user, nil
}

// UpdateUser applies a partial update. Address fields update the owned address in place,
// or create one when the user has none.
func (srv *userService) UpdateUser(ctx context.Context, id uint, input usecase.UpdateUserInput) (*entity.User, error) {
	var passwordHash string
	if input.Password != nil {
		hash, err := srv.hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = hash
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		current, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return translateUserError(err)
		}

		merged := mergeUser(current, &input)
		if err := requireNotBlank("name", merged.Name, "tax_id", merged.TaxID); err != nil {
			return err
		}

		addressChanged, err := srv.applyAddressPatch(ctx, repoFactory, current, &merged, input.Address)
		if err != nil {
			return err
		}

		profileChanged := merged.ProfileID != current.ProfileID
		taxIDChanged := util.DigitsOnly(merged.TaxID) != util.DigitsOnly(current.TaxID)
		emailChanged := !strings.EqualFold(merged.EmailValue(), current.EmailValue())

		if !addressChanged && passwordHash == "" && !userFieldsChanged(current, &merged) {
			user = current

			return nil
		}

		if profileChanged {
			if _, err := repoFactory.ProfileRepo().FindByID(ctx, merged.ProfileID); err != nil {
				return parentLookupError(err, domainerrors.ErrProfileNotFound)
			}
		}
		if taxIDChanged {
			if err := checkTaxIDAvailable(ctx, userRepo, merged.TaxID, id); err != nil {
				return err
			}
		}
		if emailChanged {
			if err := checkEmailAvailable(ctx, userRepo, merged.Email, id); err != nil {
				return err
			}
		}

		if err := userRepo.Update(ctx, &merged); err != nil {
			return translateUserError(err)
		}
		if passwordHash != "" {
			if err := userRepo.UpdatePassword(ctx, id, passwordHash); err != nil {
				return translateUserError(err)
			}
		}

		user = &merged

		return nil
	})
	if err != nil {
		return nil, err
	}

	if passwordHash != "" {
		srv.events.publish(ctx, srv.log(ctx), constants.EventPasswordChanged, id)
	}

	return user, nil
}

// applyAddressPatch updates the owned address and reports whether merged.AddressID or the address row changed.
func (srv *userService) applyAddressPatch(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	current *entity.User,
	merged *entity.User,
	patch *usecase.AddressPatch,
) (bool, error) {
	if patch.IsEmpty() {
		return false, nil
	}

	if current.Address != nil {
		updated, err := patchAddress(ctx, repoFactory, current.Address, patch)
		if err != nil {
			return false, err
		}

		return updated != current.Address, nil
	}

	if patch.CityID == nil {
		return false, domainerrors.ErrValidationFailed.WithDetails("address.city_id is required when the user has no address")
	}

	address := newAddress(usecase.AddressInput{
		CityID:     *patch.CityID,
		PostalCode: patch.PostalCode,
		Complement: patch.Complement,
	})
	if err := createAddress(ctx, repoFactory, address); err != nil {
		return false, err
	}
	merged.AddressID = address.ID
	srv.log(ctx).Info("Address created for user", slog.Uint64("user_id", uint64(current.ID)), slog.Uint64("address_id", uint64(address.ID)))

	return true, nil
}

func (srv *userService) DeleteUser(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return translateUserError(repoFactory.UserRepo().Delete(ctx, id))
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("User deleted", slog.Uint64("user_id", uint64(id)))
	srv.events.publish(ctx, srv.log(ctx), constants.EventUserDeleted, id)

	return nil
}

// Authenticate verifies a tax id and password pair.
func (srv *userService) Authenticate(ctx context.Context, taxID, password string) (*entity.User, error) {
	digits := util.DigitsOnly(taxID)
	if digits == "" {
		return nil, domainerrors.ErrInvalidCredentials
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		user, err = repoFactory.UserRepo().FindByTaxIDDigits(ctx, digits)

		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		srv.log(ctx).Info("Authentication failed: unknown tax id")

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, translateUserError(err)
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		srv.log(ctx).Info("Authentication failed: wrong password", slog.Uint64("user_id", uint64(user.ID)))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if srv.hasher.NeedsRehash(user.PasswordHash) {
		srv.rehash(ctx, user, password)
	}

	return user, nil
}

// rehash upgrades a stored hash to the configured cost. Failure keeps the old hash.
func (srv *userService) rehash(ctx context.Context, user *entity.User, password string) {
	hash, err := srv.hasher.Hash(password)
	if err == nil {
		err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.UserRepo().UpdatePassword(ctx, user.ID, hash)
		})
	}
	if err != nil {
		srv.log(ctx).Warn("Failed to upgrade password hash",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.Any("error", err),
		)

		return
	}

	user.PasswordHash = hash
	srv.log(ctx).Info("Password hash upgraded", slog.Uint64("user_id", uint64(user.ID)))
}

func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.Authenticate(ctx, input.TaxID, input.Password)
	if err != nil {
		return nil, err
	}

	accessToken, expiresAt, err := srv.tokenService.GenerateAccessToken(user.ID, user.ProfileID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Info("User logged in", slog.Uint64("user_id", uint64(user.ID)))

	return &usecase.LoginOutput{
		User:        user,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

func (srv *userService) ChangePassword(ctx context.Context, id uint, current, newPassword string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return translateUserError(err)
		}
		if !srv.hasher.Check(current, user.PasswordHash) {
			return domainerrors.ErrCurrentPasswordMismatch
		}

		passwordHash, err := srv.hashPassword(newPassword)
		if err != nil {
			return err
		}

		return translateUserError(userRepo.UpdatePassword(ctx, id, passwordHash))
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Password changed", slog.Uint64("user_id", uint64(id)))
	srv.events.publish(ctx, srv.log(ctx), constants.EventPasswordChanged, id)

	return nil
}

func (srv *userService) ResetPassword(ctx context.Context, id uint, newPassword string, authorize func(context.Context) error) error {
	passwordHash, err := srv.hashPassword(newPassword)
	if err != nil {
		return err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		if _, err := userRepo.FindByID(ctx, id); err != nil {
			return translateUserError(err)
		}
		if authorize != nil {
			if err := authorize(ctx); err != nil {
				return err
			}
		}

		return translateUserError(userRepo.UpdatePassword(ctx, id, passwordHash))
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Password reset", slog.Uint64("user_id", uint64(id)))
	srv.events.publish(ctx, srv.log(ctx), constants.EventPasswordReset, id)

	return nil
}

// FindByCredential tries the tax id digits first and then the email.
func (srv *userService) FindByCredential(ctx context.Context, credential string) (*entity.User, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, domainerrors.ErrUserNotFound
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if digits := util.DigitsOnly(credential); digits != "" {
			found, err := userRepo.FindByTaxIDDigits(ctx, digits)
			if err == nil {
				user = found

				return nil
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return translateUserError(err)
			}
		}

		if !strings.Contains(credential, "@") {
			return domainerrors.ErrUserNotFound
		}

		var err error
		user, err = userRepo.FindByEmail(ctx, credential)

		return translateUserError(err)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UploadAvatar stores the image under avatars/<user id>/ and points the user at it.
// The object is removed again when the database update fails.
func (srv *userService) UploadAvatar(ctx context.Context, input usecase.UploadAvatarInput) (*entity.User, error) {
	if srv.avatars == nil {
		return nil, domainerrors.ErrStorageDisabled
	}

	contentType, err := srv.checkAvatar(&input)
	if err != nil {
		return nil, err
	}

	if _, err := srv.GetUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%d/%s%s", input.UserID, uuid.NewString(), avatarExtension(input.Filename, contentType))
	url, err := srv.avatars.Save(ctx, key, contentType, input.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store avatar")
	}

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		if err := userRepo.UpdateAvatar(ctx, input.UserID, url); err != nil {
			return translateUserError(err)
		}

		var err error
		user, err = userRepo.FindByID(ctx, input.UserID)

		return translateUserError(err)
	})
	if err != nil {
		if delErr := srv.avatars.Delete(ctx, key); delErr != nil {
			srv.log(ctx).Warn("Failed to remove orphaned avatar", slog.String("key", key), slog.Any("error", delErr))
		}

		return nil, err
	}

	srv.log(ctx).Info("Avatar updated", slog.Uint64("user_id", uint64(input.UserID)), slog.String("key", key))

	return user, nil
}

func (srv *userService) checkAvatar(input *usecase.UploadAvatarInput) (string, error) {
	size := int64(len(input.Data))
	if size == 0 {
		return "", domainerrors.ErrInvalidAvatar.WithDetails("empty file")
	}
	if size > srv.maxAvatarBytes {
		return "", domainerrors.ErrInvalidAvatar.WithDetails(fmt.Sprintf("file exceeds %d bytes", srv.maxAvatarBytes))
	}

	// The declared type is not trusted; the payload is sniffed.
	contentType := http.DetectContentType(input.Data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", domainerrors.ErrInvalidAvatar.WithDetails("file is not an image")
	}

	return contentType, nil
}

func (srv *userService) hashPassword(password string) (string, error) {
	if len(password) > constants.MaxPasswordBytes {
		return "", domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("field 'password' must be at most %d bytes long", constants.MaxPasswordBytes))
	}

	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return hash, nil
}

// --- Helpers ---

func translateUserError(err error) error {
	return translateRepoError(err, domainerrors.ErrUserNotFound, domainerrors.ErrUserConflict)
}

func checkTaxIDAvailable(ctx context.Context, userRepo repository.UserRepository, taxID string, excludeID uint) error {
	existing, err := userRepo.FindByTaxIDDigits(ctx, util.DigitsOnly(taxID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return translateUserError(err)
	}
	if existing.ID != excludeID {
		return domainerrors.ErrTaxIDAlreadyExists
	}

	return nil
}

func checkEmailAvailable(ctx context.Context, userRepo repository.UserRepository, email *string, excludeID uint) error {
	if email == nil {
		return nil
	}

	existing, err := userRepo.FindByEmail(ctx, *email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return translateUserError(err)
	}
	if existing.ID != excludeID {
		return domainerrors.ErrEmailAlreadyExists
	}

	return nil
}

func mergeUser(current *entity.User, input *usecase.UpdateUserInput) entity.User {
	merged := *current
	if input.ProfileID != nil {
		merged.ProfileID = *input.ProfileID
	}
	if input.TaxID != nil {
		merged.TaxID = util.FormatTaxID(*input.TaxID)
	}
	if input.Name != nil {
		merged.Name = util.CapitalizeWords(*input.Name)
	}
	if input.Email != nil {
		merged.Email = normalizeEmail(input.Email)
	}
	if input.Phone != nil {
		merged.Phone = normalizePhone(input.Phone)
	}
	if input.WhatsApp != nil {
		merged.WhatsApp = normalizePhone(input.WhatsApp)
	}
	if input.BirthDate != nil {
		merged.BirthDate = normalizeBirthDate(input.BirthDate)
	}
	if input.AcceptedTerms != nil {
		merged.AcceptedTerms = input.AcceptedTerms
	}
	if input.IsAdult != nil {
		merged.IsAdult = input.IsAdult
	}

	return merged
}

func userFieldsChanged(current, merged *entity.User) bool {
	return merged.ProfileID != current.ProfileID ||
		merged.AddressID != current.AddressID ||
		merged.TaxID != current.TaxID ||
		merged.Name != current.Name ||
		!equalOptional(merged.Email, current.Email) ||
		!equalOptional(merged.Phone, current.Phone) ||
		!equalOptional(merged.WhatsApp, current.WhatsApp) ||
		!sameDate(merged.BirthDate, current.BirthDate) ||
		!equalOptional(merged.AcceptedTerms, current.AcceptedTerms) ||
		!equalOptional(merged.IsAdult, current.IsAdult)
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

func normalizePhone(phone *string) *string {
	if phone == nil {
		return nil
	}

	formatted := util.FormatPhone(*phone)
	if formatted == "" {
		return nil
	}

	return &formatted
}

// normalizeBirthDate drops the time of day.
func normalizeBirthDate(date *time.Time) *time.Time {
	if date == nil {
		return nil
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	return &day
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// avatarExtension prefers the uploaded file's extension and falls back to the sniffed type.
func avatarExtension(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}

	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}

	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ""
}
