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
)

type stateService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewStateService is the constructor for stateService.
func NewStateService(params RegistryServiceParams) usecase.StateUsecase {
	return &stateService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *stateService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *stateService) ListStates(ctx context.Context, page repository.Page) ([]*entity.State, error) {
	var states []*entity.State
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		states, err = repoFactory.StateRepo().List(ctx, page)

		return translateRepoError(err, domainerrors.ErrStateNotFound, domainerrors.ErrStateConflict)
	})
	if err != nil {
		return nil, err
	}

	return states, nil
}

func (srv *stateService) ListStatesByCountry(ctx context.Context, countryID uint) ([]*entity.State, error) {
	var states []*entity.State
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		states, err = repoFactory.StateRepo().ListByCountry(ctx, countryID)

		return translateRepoError(err, domainerrors.ErrStateNotFound, domainerrors.ErrStateConflict)
	})
	if err != nil {
		return nil, err
	}

	return states, nil
}

func (srv *stateService) GetState(ctx context.Context, id uint) (*entity.State, error) {
	var state *entity.State
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		state, err = repoFactory.StateRepo().FindByID(ctx, id)

		return translateRepoError(err, domainerrors.ErrStateNotFound, domainerrors.ErrStateConflict)
	})
	if err != nil {
		return nil, err
	}

	return state, nil
}

func (srv *stateService) CreateState(ctx context.Context, input usecase.StateInput) (*entity.State, error) {
	state := &entity.State{
		CountryID: input.CountryID,
		Name:      util.TitleCase(input.Name),
		Code:      util.UpperCode(input.Code),
	}
	if err := requireNotBlank("name", state.Name, "code", state.Code); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.CountryRepo().FindByID(ctx, state.CountryID); err != nil {
			return parentLookupError(err, domainerrors.ErrCountryNotFound)
		}

		stateRepo := repoFactory.StateRepo()
		if err := checkStateConflict(ctx, stateRepo, state, 0); err != nil {
			return err
		}

		return translateRepoError(stateRepo.Create(ctx, state), domainerrors.ErrStateNotFound, domainerrors.ErrStateConflict)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("State created",
		slog.Uint64("state_id", uint64(state.ID)),
		slog.Uint64("country_id", uint64(state.CountryID)),
	)

	return state, nil
}

func (srv *stateService) UpdateState(ctx context.Context, id uint, patch usecase.StatePatch) (*entity.State, error) {
	var state *entity.State
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		stateRepo := repoFactory.StateRepo()

		current, err := stateRepo.FindByID(ctx, id)
		if err != nil {
			return translateRepoError(err, domainerrors.ErrStateNotFound, domainerrors.ErrStateConflict)
		}

		merged := *current
		if patch.CountryID != nil {
			merged.CountryID = *patch.CountryID
		}
		if patch.Name != nil {
			merged.Name = util.TitleCase(*patch.Name)
		}
		if patch.Code != nil {
			merged.Code = util.UpperCode(*patch.Code)
		}
		if err := requireNotBlank("name", merged.Name, "code", merged.Code); err != nil {
			return err
		}

		if merged.CountryID == current.CountryID && merged.Name == current.Name && merged.Code == current.Code {
			state = current

			return nil
		}

		if merged.CountryID != current.CountryID {
			if _, err := repoFactory.CountryRepo().FindByID(ctx, merged.CountryID); err != nil {
				return parentLookupError(err, domainerrors.ErrCountryNotFound)
			}
		}
		if err := checkStateConflict(ctx, stateRepo, &merged, id); err != nil {
			return err
		}
		if err := stateRepo.Update(ctx, &merged); err != nil {
			return translateRepoError(err, domainerrors.ErrStateNotFound, domainerrors.ErrStateConflict)
		}
		state = &merged

		return nil
	})
	if err != nil {
		return nil, err
	}

	return state, nil
}

func (srv *stateService) DeleteState(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return translateRepoError(repoFactory.StateRepo().Delete(ctx, id), domainerrors.ErrStateNotFound, domainerrors.ErrStateConflict)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("State deleted", slog.Uint64("state_id", uint64(id)))

	return nil
}

func checkStateConflict(ctx context.Context, stateRepo repository.StateRepository, state *entity.State, excludeID uint) error {
	existing, err := stateRepo.FindConflicting(ctx, state.CountryID, state.Name, state.Code, excludeID)
	if err != nil {
		return translateRepoError(err, domainerrors.ErrStateNotFound, domainerrors.ErrStateConflict)
	}
	if existing == nil {
		return nil
	}

	if strings.EqualFold(existing.Name, state.Name) {
		return domainerrors.ErrStateConflict.WithMessage(
			fmt.Sprintf("Já existe um estado cadastrado com o nome '%s' para o país selecionado", state.Name))
	}

	return domainerrors.ErrStateConflict.WithMessage(
		fmt.Sprintf("Já existe um estado cadastrado com a sigla '%s' para o país selecionado", state.Code))
}
