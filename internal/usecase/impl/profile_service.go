package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "funntour/internal/delivery/context"
	"funntour/internal/domain/entity"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"
	"funntour/internal/usecase"
	"funntour/internal/util"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params RegistryServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) ListProfiles(ctx context.Context, page repository.Page) ([]*entity.Profile, error) {
	var profiles []*entity.Profile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		profiles, err = repoFactory.ProfileRepo().List(ctx, page)

		return translateRepoError(err, domainerrors.ErrProfileNotFound, domainerrors.ErrProfileConflict)
	})
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

func (srv *profileService) GetProfile(ctx context.Context, id uint) (*entity.Profile, error) {
	var profile *entity.Profile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		profile, err = repoFactory.ProfileRepo().FindByID(ctx, id)

		return translateRepoError(err, domainerrors.ErrProfileNotFound, domainerrors.ErrProfileConflict)
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (srv *profileService) CreateProfile(ctx context.Context, input usecase.ProfileInput) (*entity.Profile, error) {
	profile := &entity.Profile{Description: util.TitleCase(input.Description)}
	if err := requireNotBlank("description", profile.Description); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()
		if err := checkProfileConflict(ctx, profileRepo, profile.Description, 0); err != nil {
			return err
		}

		return translateRepoError(profileRepo.Create(ctx, profile), domainerrors.ErrProfileNotFound, domainerrors.ErrProfileConflict)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile created", slog.Uint64("profile_id", uint64(profile.ID)))

	return profile, nil
}

func (srv *profileService) UpdateProfile(ctx context.Context, id uint, patch usecase.ProfilePatch) (*entity.Profile, error) {
	var profile *entity.Profile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		current, err := profileRepo.FindByID(ctx, id)
		if err != nil {
			return translateRepoError(err, domainerrors.ErrProfileNotFound, domainerrors.ErrProfileConflict)
		}

		if patch.Description == nil || util.TitleCase(*patch.Description) == current.Description {
			profile = current

			return nil
		}

		merged := *current
		merged.Description = util.TitleCase(*patch.Description)
		if err := requireNotBlank("description", merged.Description); err != nil {
			return err
		}
		if err := checkProfileConflict(ctx, profileRepo, merged.Description, id); err != nil {
			return err
		}
		if err := profileRepo.Update(ctx, &merged); err != nil {
			return translateRepoError(err, domainerrors.ErrProfileNotFound, domainerrors.ErrProfileConflict)
		}
		profile = &merged

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (srv *profileService) DeleteProfile(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return translateRepoError(repoFactory.ProfileRepo().Delete(ctx, id), domainerrors.ErrProfileNotFound, domainerrors.ErrProfileConflict)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Profile deleted", slog.Uint64("profile_id", uint64(id)))

	return nil
}

func checkProfileConflict(ctx context.Context, profileRepo repository.ProfileRepository, description string, excludeID uint) error {
	existing, err := profileRepo.FindByDescription(ctx, description, excludeID)
	if err != nil {
		return translateRepoError(err, domainerrors.ErrProfileNotFound, domainerrors.ErrProfileConflict)
	}
	if existing != nil {
		return domainerrors.ErrProfileConflict.WithMessage(
			fmt.Sprintf("Já existe um perfil com a descrição '%s'", description))
	}

	return nil
}
