package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "funntour/internal/delivery/context"
	"funntour/internal/domain/entity"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"
	"funntour/internal/usecase"
	"funntour/internal/util"

	"go.uber.org/fx"
)

// RegistryServiceParams holds the dependencies shared by the reference-data services, injected by Fx.
type RegistryServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

type countryService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCountryService is the constructor for countryService.
func NewCountryService(params RegistryServiceParams) usecase.CountryUsecase {
	return &countryService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *countryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *countryService) ListCountries(ctx context.Context, page repository.Page) ([]*entity.Country, error) {
	var countries []*entity.Country
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		countries, err = repoFactory.CountryRepo().List(ctx, page)

		return translateRepoError(err, domainerrors.ErrCountryNotFound, domainerrors.ErrCountryConflict)
	})
	if err != nil {
		return nil, err
	}

	return countries, nil
}

func (srv *countryService) GetCountry(ctx context.Context, id uint) (*entity.Country, error) {
	var country *entity.Country
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		country, err = repoFactory.CountryRepo().FindByID(ctx, id)

		return translateRepoError(err, domainerrors.ErrCountryNotFound, domainerrors.ErrCountryConflict)
	})
	if err != nil {
		return nil, err
	}

	return country, nil
}

func (srv *countryService) CreateCountry(ctx context.Context, input usecase.CountryInput) (*entity.Country, error) {
	country := &entity.Country{
		Name: util.TitleCase(input.Name),
		Code: util.UpperCode(input.Code),
	}
	if err := requireNotBlank("name", country.Name, "code", country.Code); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		countryRepo := repoFactory.CountryRepo()
		if err := checkCountryConflict(ctx, countryRepo, country, 0); err != nil {
			return err
		}

		return translateRepoError(countryRepo.Create(ctx, country), domainerrors.ErrCountryNotFound, domainerrors.ErrCountryConflict)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Country created", slog.Uint64("country_id", uint64(country.ID)), slog.String("code", country.Code))

	return country, nil
}

func (srv *countryService) UpdateCountry(ctx context.Context, id uint, patch usecase.CountryPatch) (*entity.Country, error) {
	var country *entity.Country
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		countryRepo := repoFactory.CountryRepo()

		current, err := countryRepo.FindByID(ctx, id)
		if err != nil {
			return translateRepoError(err, domainerrors.ErrCountryNotFound, domainerrors.ErrCountryConflict)
		}

		merged := *current
		if patch.Name != nil {
			merged.Name = util.TitleCase(*patch.Name)
		}
		if patch.Code != nil {
			merged.Code = util.UpperCode(*patch.Code)
		}
		if err := requireNotBlank("name", merged.Name, "code", merged.Code); err != nil {
			return err
		}

		if merged.Name == current.Name && merged.Code == current.Code {
			country = current

			return nil
		}

		if err := checkCountryConflict(ctx, countryRepo, &merged, id); err != nil {
			return err
		}
		if err := countryRepo.Update(ctx, &merged); err != nil {
			return translateRepoError(err, domainerrors.ErrCountryNotFound, domainerrors.ErrCountryConflict)
		}
		country = &merged

		return nil
	})
	if err != nil {
		return nil, err
	}

	return country, nil
}

func (srv *countryService) DeleteCountry(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return translateRepoError(repoFactory.CountryRepo().Delete(ctx, id), domainerrors.ErrCountryNotFound, domainerrors.ErrCountryConflict)
	})
	if err != nil {
		return err
	}

	// States of the country stay visible until they are deleted themselves.
	srv.log(ctx).Info("Country deleted", slog.Uint64("country_id", uint64(id)))

	return nil
}

func checkCountryConflict(ctx context.Context, countryRepo repository.CountryRepository, country *entity.Country, excludeID uint) error {
	existing, err := countryRepo.FindConflicting(ctx, country.Name, country.Code, excludeID)
	if err != nil {
		return translateRepoError(err, domainerrors.ErrCountryNotFound, domainerrors.ErrCountryConflict)
	}
	if existing == nil {
		return nil
	}

	if strings.EqualFold(existing.Name, country.Name) {
		return domainerrors.ErrCountryConflict.WithMessage(
			fmt.Sprintf("Já existe um país cadastrado com o nome '%s'", country.Name))
	}

	return domainerrors.ErrCountryConflict.WithMessage(
		fmt.Sprintf("Já existe um país cadastrado com a sigla '%s'", country.Code))
}
