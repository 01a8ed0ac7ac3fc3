package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"funntour/config"
	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
	"funntour/internal/domain/service"
	"funntour/internal/infra/auth"
	"funntour/internal/infra/persistence/postgres"
	"funntour/internal/infra/persistence/sqlitetest"
	"funntour/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{
			Access: "test-access-secret",
			Reset:  "test-reset-secret",
		},
		Auth: &config.AuthConfig{
			BcryptCost:     bcrypt.MinCost,
			AccessTokenTTL: 15 * time.Minute,
		},
		Storage: &config.StorageConfig{MaxAvatarBytes: 1024},
	}
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.AccountEvent
}

func (p *recordingPublisher) PublishAccountEvent(_ context.Context, event *service.AccountEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}

	return types
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyPasswordReset(ctx context.Context, recipient *entity.ResetRecipient, token string, expiresAt time.Time) entity.NotificationReport {
	args := m.Called(ctx, recipient, token, expiresAt)

	return args.Get(0).(entity.NotificationReport)
}

type mockAvatarStorage struct {
	mock.Mock
}

func (m *mockAvatarStorage) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)

	return args.String(0), args.Error(1)
}

func (m *mockAvatarStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// serviceFixtures wires every usecase against one in-memory database.
type serviceFixtures struct {
	db        *gorm.DB
	txManager repository.TransactionManager
	clock     *testClock
	publisher *recordingPublisher
	notifier  *mockNotifier
	avatars   *mockAvatarStorage

	countries usecase.CountryUsecase
	states    usecase.StateUsecase
	cities    usecase.CityUsecase
	addresses usecase.AddressUsecase
	profiles  usecase.ProfileUsecase
	users     usecase.UserUsecase
	resets    usecase.PasswordResetUsecase
	audit     usecase.AccountAuditUsecase
}

func newServiceFixtures(t *testing.T) *serviceFixtures {
	t.Helper()

	cfg := newTestConfig()
	logger := newDiscardLogger()
	db := sqlitetest.Open(t)
	clock := &testClock{now: time.Now()}

	tokenService, err := auth.NewJWTService(cfg, auth.WithClock(clock.Now))
	require.NoError(t, err)
	resetTokens, err := auth.NewResetTokenService(cfg, auth.WithClock(clock.Now))
	require.NoError(t, err)

	fx := &serviceFixtures{
		db:        db,
		txManager: postgres.NewTransactionManager(db),
		clock:     clock,
		publisher: &recordingPublisher{},
		notifier:  &mockNotifier{},
		avatars:   &mockAvatarStorage{},
	}

	registry := RegistryServiceParams{TxManager: fx.txManager, Logger: logger}
	fx.countries = NewCountryService(registry)
	fx.states = NewStateService(registry)
	fx.cities = NewCityService(registry)
	fx.addresses = NewAddressService(registry)
	fx.profiles = NewProfileService(registry)
	fx.audit = NewAccountAuditService(registry)
	fx.users = NewUserService(UserServiceParams{
		TxManager:      fx.txManager,
		Hasher:         auth.NewBcryptHasher(cfg),
		TokenService:   tokenService,
		AvatarStorage:  fx.avatars,
		EventPublisher: fx.publisher,
		Config:         cfg,
		Logger:         logger,
	})
	fx.resets = NewPasswordResetService(PasswordResetServiceParams{
		Users:          fx.users,
		ResetTokens:    resetTokens,
		TokenStore:     postgres.NewResetTokenStore(db),
		Notifier:       fx.notifier,
		EventPublisher: fx.publisher,
		Logger:         logger,
	})

	return fx
}

// seededGeo is a country, state and city ready to hang addresses on.
type seededGeo struct {
	country *entity.Country
	state   *entity.State
	city    *entity.City
	profile *entity.Profile
}

func (fx *serviceFixtures) seedGeo(t *testing.T) seededGeo {
	t.Helper()
	ctx := context.Background()

	country, err := fx.countries.CreateCountry(ctx, usecase.CountryInput{Name: "brazil", Code: "br"})
	require.NoError(t, err)
	state, err := fx.states.CreateState(ctx, usecase.StateInput{CountryID: country.ID, Name: "sao paulo", Code: "sp"})
	require.NoError(t, err)
	city, err := fx.cities.CreateCity(ctx, usecase.CityInput{StateID: state.ID, Name: "campinas"})
	require.NoError(t, err)
	profile, err := fx.profiles.CreateProfile(ctx, usecase.ProfileInput{Description: "turista"})
	require.NoError(t, err)

	return seededGeo{country: country, state: state, city: city, profile: profile}
}

func (fx *serviceFixtures) createUser(t *testing.T, geo seededGeo, taxID, email, password string) *entity.User {
	t.Helper()

	input := usecase.CreateUserInput{
		ProfileID: geo.profile.ID,
		TaxID:     taxID,
		Name:      "maria da silva",
		Password:  password,
		Address:   usecase.AddressInput{CityID: geo.city.ID, PostalCode: ptr("13010000")},
	}
	if email != "" {
		input.Email = ptr(email)
	}

	user, err := fx.users.CreateUser(context.Background(), input)
	require.NoError(t, err)

	return user
}

func ptr[T any](v T) *T {
	return &v
}
