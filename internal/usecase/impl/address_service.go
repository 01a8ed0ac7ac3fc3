package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "funntour/internal/delivery/context"
	"funntour/internal/domain/entity"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"
	"funntour/internal/usecase"
	"funntour/internal/util"
)

type addressService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(params RegistryServiceParams) usecase.AddressUsecase {
	return &addressService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *addressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *addressService) ListAddresses(ctx context.Context, page repository.Page) ([]*entity.Address, error) {
	var addresses []*entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		addresses, err = repoFactory.AddressRepo().List(ctx, page)

		return translateRepoError(err, domainerrors.ErrAddressNotFound, domainerrors.ErrConflict)
	})
	if err != nil {
		return nil, err
	}

	return addresses, nil
}

func (srv *addressService) GetAddress(ctx context.Context, id uint) (*entity.Address, error) {
	var address *entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		address, err = repoFactory.AddressRepo().FindByID(ctx, id)

		return translateRepoError(err, domainerrors.ErrAddressNotFound, domainerrors.ErrConflict)
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (srv *addressService) CreateAddress(ctx context.Context, input usecase.AddressInput) (*entity.Address, error) {
	address := newAddress(input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return createAddress(ctx, repoFactory, address)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Address created", slog.Uint64("address_id", uint64(address.ID)))

	return address, nil
}

func (srv *addressService) UpdateAddress(ctx context.Context, id uint, patch usecase.AddressPatch) (*entity.Address, error) {
	var address *entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		current, err := repoFactory.AddressRepo().FindByID(ctx, id)
		if err != nil {
			return translateRepoError(err, domainerrors.ErrAddressNotFound, domainerrors.ErrConflict)
		}

		address, err = patchAddress(ctx, repoFactory, current, &patch)

		return err
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (srv *addressService) DeleteAddress(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return translateRepoError(repoFactory.AddressRepo().Delete(ctx, id), domainerrors.ErrAddressNotFound, domainerrors.ErrConflict)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Address deleted", slog.Uint64("address_id", uint64(id)))

	return nil
}

// --- Shared with the user aggregate ---

func newAddress(input usecase.AddressInput) *entity.Address {
	return &entity.Address{
		CityID:     input.CityID,
		PostalCode: normalizePostalCode(input.PostalCode),
		Complement: normalizeComplement(input.Complement),
	}
}

// createAddress checks the city and inserts the address inside the caller's transaction.
func createAddress(ctx context.Context, repoFactory repository.RepositoryFactory, address *entity.Address) error {
	if _, err := repoFactory.CityRepo().FindByID(ctx, address.CityID); err != nil {
		return parentLookupError(err, domainerrors.ErrCityNotFound)
	}

	return translateRepoError(repoFactory.AddressRepo().Create(ctx, address), domainerrors.ErrAddressNotFound, domainerrors.ErrConflict)
}

// patchAddress applies patch to current. It returns current untouched when nothing changes.
func patchAddress(ctx context.Context, repoFactory repository.RepositoryFactory, current *entity.Address, patch *usecase.AddressPatch) (*entity.Address, error) {
	merged := *current
	if patch.CityID != nil {
		merged.CityID = *patch.CityID
	}
	if patch.PostalCode != nil {
		merged.PostalCode = normalizePostalCode(patch.PostalCode)
	}
	if patch.Complement != nil {
		merged.Complement = normalizeComplement(patch.Complement)
	}

	if merged.CityID == current.CityID &&
		equalOptional(merged.PostalCode, current.PostalCode) &&
		equalOptional(merged.Complement, current.Complement) {
		return current, nil
	}

	if merged.CityID != current.CityID {
		if _, err := repoFactory.CityRepo().FindByID(ctx, merged.CityID); err != nil {
			return nil, parentLookupError(err, domainerrors.ErrCityNotFound)
		}
	}
	if err := repoFactory.AddressRepo().Update(ctx, &merged); err != nil {
		return nil, translateRepoError(err, domainerrors.ErrAddressNotFound, domainerrors.ErrConflict)
	}

	return &merged, nil
}

// normalizePostalCode keeps the digits and formats a complete CEP as NNNNN-NNN.
func normalizePostalCode(postalCode *string) *string {
	if postalCode == nil {
		return nil
	}

	formatted := util.FormatPostalCode(*postalCode)
	if formatted == "" {
		return nil
	}

	return &formatted
}

func normalizeComplement(complement *string) *string {
	if complement == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*complement)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
