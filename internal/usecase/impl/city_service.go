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

type cityService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCityService is the constructor for cityService.
func NewCityService(params RegistryServiceParams) usecase.CityUsecase {
	return &cityService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *cityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *cityService) ListCities(ctx context.Context, page repository.Page) ([]*entity.City, error) {
	var cities []*entity.City
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		cities, err = repoFactory.CityRepo().List(ctx, page)

		return translateRepoError(err, domainerrors.ErrCityNotFound, domainerrors.ErrCityConflict)
	})
	if err != nil {
		return nil, err
	}

	return cities, nil
}

func (srv *cityService) ListCitiesByState(ctx context.Context, stateID uint) ([]*entity.City, error) {
	var cities []*entity.City
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		cities, err = repoFactory.CityRepo().ListByState(ctx, stateID)

		return translateRepoError(err, domainerrors.ErrCityNotFound, domainerrors.ErrCityConflict)
	})
	if err != nil {
		return nil, err
	}

	return cities, nil
}

func (srv *cityService) GetCity(ctx context.Context, id uint) (*entity.City, error) {
	var city *entity.City
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		city, err = repoFactory.CityRepo().FindByID(ctx, id)

		return translateRepoError(err, domainerrors.ErrCityNotFound, domainerrors.ErrCityConflict)
	})
	if err != nil {
		return nil, err
	}

	return city, nil
}

func (srv *cityService) CreateCity(ctx context.Context, input usecase.CityInput) (*entity.City, error) {
	city := &entity.City{
		StateID: input.StateID,
		Name:    util.TitleCase(input.Name),
		Code:    normalizeCityCode(input.Code),
	}
	if err := requireNotBlank("name", city.Name); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.StateRepo().FindByID(ctx, city.StateID); err != nil {
			return parentLookupError(err, domainerrors.ErrStateNotFound)
		}

		cityRepo := repoFactory.CityRepo()
		if err := checkCityConflict(ctx, cityRepo, city, 0); err != nil {
			return err
		}

		return translateRepoError(cityRepo.Create(ctx, city), domainerrors.ErrCityNotFound, domainerrors.ErrCityConflict)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("City created",
		slog.Uint64("city_id", uint64(city.ID)),
		slog.Uint64("state_id", uint64(city.StateID)),
	)

	return city, nil
}

func (srv *cityService) UpdateCity(ctx context.Context, id uint, patch usecase.CityPatch) (*entity.City, error) {
	var city *entity.City
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cityRepo := repoFactory.CityRepo()

		current, err := cityRepo.FindByID(ctx, id)
		if err != nil {
			return translateRepoError(err, domainerrors.ErrCityNotFound, domainerrors.ErrCityConflict)
		}

		merged := *current
		if patch.StateID != nil {
			merged.StateID = *patch.StateID
		}
		if patch.Name != nil {
			merged.Name = util.TitleCase(*patch.Name)
		}
		if patch.Code != nil {
			merged.Code = normalizeCityCode(patch.Code)
		}
		if err := requireNotBlank("name", merged.Name); err != nil {
			return err
		}

		if merged.StateID == current.StateID && merged.Name == current.Name && equalOptional(current.Code, merged.Code) {
			city = current

			return nil
		}

		if merged.StateID != current.StateID {
			if _, err := repoFactory.StateRepo().FindByID(ctx, merged.StateID); err != nil {
				return parentLookupError(err, domainerrors.ErrStateNotFound)
			}
		}
		if err := checkCityConflict(ctx, cityRepo, &merged, id); err != nil {
			return err
		}
		if err := cityRepo.Update(ctx, &merged); err != nil {
			return translateRepoError(err, domainerrors.ErrCityNotFound, domainerrors.ErrCityConflict)
		}
		city = &merged

		return nil
	})
	if err != nil {
		return nil, err
	}

	return city, nil
}

func (srv *cityService) DeleteCity(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return translateRepoError(repoFactory.CityRepo().Delete(ctx, id), domainerrors.ErrCityNotFound, domainerrors.ErrCityConflict)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("City deleted", slog.Uint64("city_id", uint64(id)))

	return nil
}

// normalizeCityCode uppercases the code. A missing or blank code becomes nil.
func normalizeCityCode(code *string) *string {
	if code == nil || util.IsBlank(*code) {
		return nil
	}

	normalized := util.UpperCode(*code)

	return &normalized
}

func checkCityConflict(ctx context.Context, cityRepo repository.CityRepository, city *entity.City, excludeID uint) error {
	existing, err := cityRepo.FindByName(ctx, city.StateID, city.Name, excludeID)
	if err != nil {
		return translateRepoError(err, domainerrors.ErrCityNotFound, domainerrors.ErrCityConflict)
	}
	if existing != nil {
		return domainerrors.ErrCityConflict.WithMessage(
			fmt.Sprintf("Já existe uma cidade cadastrada com o nome '%s' para o estado selecionado", city.Name))
	}

	if city.Code == nil {
		return nil
	}

	existing, err = cityRepo.FindByCode(ctx, city.StateID, *city.Code, excludeID)
	if err != nil {
		return translateRepoError(err, domainerrors.ErrCityNotFound, domainerrors.ErrCityConflict)
	}
	if existing != nil {
		return domainerrors.ErrCityConflict.WithMessage(
			fmt.Sprintf("Já existe uma cidade cadastrada com a sigla '%s' para o estado selecionado", *city.Code))
	}

	return nil
}
