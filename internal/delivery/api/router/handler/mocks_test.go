package handler

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
	"funntour/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type mockCountryUsecase struct {
	mock.Mock
}

func (m *mockCountryUsecase) ListCountries(ctx context.Context, page repository.Page) ([]*entity.Country, error) {
	args := m.Called(ctx, page)
	countries, _ := args.Get(0).([]*entity.Country)

	return countries, args.Error(1)
}

func (m *mockCountryUsecase) GetCountry(ctx context.Context, id uint) (*entity.Country, error) {
	args := m.Called(ctx, id)
	country, _ := args.Get(0).(*entity.Country)

	return country, args.Error(1)
}

func (m *mockCountryUsecase) CreateCountry(ctx context.Context, input usecase.CountryInput) (*entity.Country, error) {
	args := m.Called(ctx, input)
	country, _ := args.Get(0).(*entity.Country)

	return country, args.Error(1)
}

func (m *mockCountryUsecase) UpdateCountry(ctx context.Context, id uint, patch usecase.CountryPatch) (*entity.Country, error) {
	args := m.Called(ctx, id, patch)
	country, _ := args.Get(0).(*entity.Country)

	return country, args.Error(1)
}

func (m *mockCountryUsecase) DeleteCountry(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockCityUsecase struct {
	mock.Mock
}

func (m *mockCityUsecase) ListCities(ctx context.Context, page repository.Page) ([]*entity.City, error) {
	args := m.Called(ctx, page)
	cities, _ := args.Get(0).([]*entity.City)

	return cities, args.Error(1)
}

func (m *mockCityUsecase) ListCitiesByState(ctx context.Context, stateID uint) ([]*entity.City, error) {
	args := m.Called(ctx, stateID)
	cities, _ := args.Get(0).([]*entity.City)

	return cities, args.Error(1)
}

func (m *mockCityUsecase) GetCity(ctx context.Context, id uint) (*entity.City, error) {
	args := m.Called(ctx, id)
	city, _ := args.Get(0).(*entity.City)

	return city, args.Error(1)
}

func (m *mockCityUsecase) CreateCity(ctx context.Context, input usecase.CityInput) (*entity.City, error) {
	args := m.Called(ctx, input)
	city, _ := args.Get(0).(*entity.City)

	return city, args.Error(1)
}

func (m *mockCityUsecase) UpdateCity(ctx context.Context, id uint, patch usecase.CityPatch) (*entity.City, error) {
	args := m.Called(ctx, id, patch)
	city, _ := args.Get(0).(*entity.City)

	return city, args.Error(1)
}

func (m *mockCityUsecase) DeleteCity(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockStateUsecase struct {
	mock.Mock
}

func (m *mockStateUsecase) ListStates(ctx context.Context, page repository.Page) ([]*entity.State, error) {
	args := m.Called(ctx, page)
	states, _ := args.Get(0).([]*entity.State)

	return states, args.Error(1)
}

func (m *mockStateUsecase) ListStatesByCountry(ctx context.Context, countryID uint) ([]*entity.State, error) {
	args := m.Called(ctx, countryID)
	states, _ := args.Get(0).([]*entity.State)

	return states, args.Error(1)
}

func (m *mockStateUsecase) GetState(ctx context.Context, id uint) (*entity.State, error) {
	args := m.Called(ctx, id)
	state, _ := args.Get(0).(*entity.State)

	return state, args.Error(1)
}

func (m *mockStateUsecase) CreateState(ctx context.Context, input usecase.StateInput) (*entity.State, error) {
	args := m.Called(ctx, input)
	state, _ := args.Get(0).(*entity.State)

	return state, args.Error(1)
}

func (m *mockStateUsecase) UpdateState(ctx context.Context, id uint, patch usecase.StatePatch) (*entity.State, error) {
	args := m.Called(ctx, id, patch)
	state, _ := args.Get(0).(*entity.State)

	return state, args.Error(1)
}

func (m *mockStateUsecase) DeleteState(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockAddressUsecase struct {
	mock.Mock
}

func (m *mockAddressUsecase) ListAddresses(ctx context.Context, page repository.Page) ([]*entity.Address, error) {
	args := m.Called(ctx, page)
	addresses, _ := args.Get(0).([]*entity.Address)

	return addresses, args.Error(1)
}

func (m *mockAddressUsecase) GetAddress(ctx context.Context, id uint) (*entity.Address, error) {
	args := m.Called(ctx, id)
	address, _ := args.Get(0).(*entity.Address)

	return address, args.Error(1)
}

func (m *mockAddressUsecase) CreateAddress(ctx context.Context, input usecase.AddressInput) (*entity.Address, error) {
	args := m.Called(ctx, input)
	address, _ := args.Get(0).(*entity.Address)

	return address, args.Error(1)
}

func (m *mockAddressUsecase) UpdateAddress(ctx context.Context, id uint, patch usecase.AddressPatch) (*entity.Address, error) {
	args := m.Called(ctx, id, patch)
	address, _ := args.Get(0).(*entity.Address)

	return address, args.Error(1)
}

func (m *mockAddressUsecase) DeleteAddress(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockProfileUsecase struct {
	mock.Mock
}

func (m *mockProfileUsecase) ListProfiles(ctx context.Context, page repository.Page) ([]*entity.Profile, error) {
	args := m.Called(ctx, page)
	profiles, _ := args.Get(0).([]*entity.Profile)

	return profiles, args.Error(1)
}

func (m *mockProfileUsecase) GetProfile(ctx context.Context, id uint) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

func (m *mockProfileUsecase) CreateProfile(ctx context.Context, input usecase.ProfileInput) (*entity.Profile, error) {
	args := m.Called(ctx, input)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

func (m *mockProfileUsecase) UpdateProfile(ctx context.Context, id uint, patch usecase.ProfilePatch) (*entity.Profile, error) {
	args := m.Called(ctx, id, patch)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

func (m *mockProfileUsecase) DeleteProfile(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserUsecase struct {
	mock.Mock
}

func (m *mockUserUsecase) ListUsers(ctx context.Context, page repository.Page) ([]*entity.User, error) {
	args := m.Called(ctx, page)
	users, _ := args.Get(0).([]*entity.User)

	return users, args.Error(1)
}

func (m *mockUserUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserUsecase) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	args := m.Called(ctx, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserUsecase) UpdateUser(ctx context.Context, id uint, input usecase.UpdateUserInput) (*entity.User, error) {
	args := m.Called(ctx, id, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserUsecase) DeleteUser(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserUsecase) Authenticate(ctx context.Context, taxID, password string) (*entity.User, error) {
	args := m.Called(ctx, taxID, password)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.LoginOutput)

	return output, args.Error(1)
}

func (m *mockUserUsecase) ChangePassword(ctx context.Context, id uint, current, newPassword string) error {
	return m.Called(ctx, id, current, newPassword).Error(0)
}

func (m *mockUserUsecase) ResetPassword(ctx context.Context, id uint, newPassword string, authorize func(context.Context) error) error {
	return m.Called(ctx, id, newPassword, authorize).Error(0)
}

func (m *mockUserUsecase) FindByCredential(ctx context.Context, credential string) (*entity.User, error) {
	args := m.Called(ctx, credential)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserUsecase) UploadAvatar(ctx context.Context, input usecase.UploadAvatarInput) (*entity.User, error) {
	args := m.Called(ctx, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

type mockPasswordResetUsecase struct {
	mock.Mock
}

func (m *mockPasswordResetUsecase) GenerateResetToken(ctx context.Context, credential string) (*entity.PasswordResetTicket, error) {
	args := m.Called(ctx, credential)
	ticket, _ := args.Get(0).(*entity.PasswordResetTicket)

	return ticket, args.Error(1)
}

func (m *mockPasswordResetUsecase) VerifyResetToken(ctx context.Context, token string) (uint, error) {
	args := m.Called(ctx, token)

	return args.Get(0).(uint), args.Error(1)
}

func (m *mockPasswordResetUsecase) ResetPasswordWithToken(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *mockPasswordResetUsecase) RequestPasswordReset(ctx context.Context, credential string) (*usecase.PasswordResetRequestOutput, error) {
	args := m.Called(ctx, credential)
	output, _ := args.Get(0).(*usecase.PasswordResetRequestOutput)

	return output, args.Error(1)
}

func (m *mockPasswordResetUsecase) ValidateResetToken(ctx context.Context, token string) (*usecase.TokenValidationOutput, error) {
	args := m.Called(ctx, token)
	output, _ := args.Get(0).(*usecase.TokenValidationOutput)

	return output, args.Error(1)
}

type mockAuditUsecase struct {
	mock.Mock
}

func (m *mockAuditUsecase) RecordEvent(ctx context.Context, event *entity.AccountEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockAuditUsecase) ListUserEvents(ctx context.Context, userID uint, page repository.Page) ([]*entity.AccountEvent, error) {
	args := m.Called(ctx, userID, page)
	events, _ := args.Get(0).([]*entity.AccountEvent)

	return events, args.Error(1)
}
