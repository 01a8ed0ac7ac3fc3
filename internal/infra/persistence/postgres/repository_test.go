package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
	"funntour/internal/infra/persistence/postgres"
	"funntour/internal/infra/persistence/sqlitetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T {
	return &v
}

type geoFixture struct {
	country *entity.Country
	state   *entity.State
	city    *entity.City
}

func seedGeo(t *testing.T, db *gorm.DB) geoFixture {
	t.Helper()
	ctx := context.Background()

	country := &entity.Country{Name: "Brasil", Code: "BR"}
	require.NoError(t, postgres.NewCountryRepository(db).Create(ctx, country))

	state := &entity.State{CountryID: country.ID, Name: "Sao Paulo", Code: "SP"}
	require.NoError(t, postgres.NewStateRepository(db).Create(ctx, state))

	city := &entity.City{StateID: state.ID, Name: "Campinas", Code: ptr("CPS")}
	require.NoError(t, postgres.NewCityRepository(db).Create(ctx, city))

	return geoFixture{country: country, state: state, city: city}
}

func TestCountryRepository_CRUD(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := postgres.NewCountryRepository(db)
	ctx := context.Background()

	country := &entity.Country{Name: "Brasil", Code: "BR"}
	require.NoError(t, repo.Create(ctx, country))
	assert.NotZero(t, country.ID)
	assert.False(t, country.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, country.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brasil", found.Name)

	found.Name = "Brazil"
	require.NoError(t, repo.Update(ctx, found))
	assert.Equal(t, "Brazil", found.Name)

	list, err := repo.List(ctx, repository.NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, country.ID))

	_, err = repo.FindByID(ctx, country.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, country.ID), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, found), repository.ErrNotFound)
}

func TestCountryRepository_FindConflicting(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := postgres.NewCountryRepository(db)
	ctx := context.Background()

	country := &entity.Country{Name: "Brasil", Code: "BR"}
	require.NoError(t, repo.Create(ctx, country))

	tests := []struct {
		name      string
		lookup    string
		code      string
		excludeID uint
		wantHit   bool
	}{
		{name: "same name different case", lookup: "BRASIL", code: "XX", wantHit: true},
		{name: "same code different case", lookup: "Other", code: "br", wantHit: true},
		{name: "no overlap", lookup: "Chile", code: "CL", wantHit: false},
		{name: "excluded self", lookup: "Brasil", code: "BR", excludeID: country.ID, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, err := repo.FindConflicting(ctx, tt.lookup, tt.code, tt.excludeID)
			require.NoError(t, err)
			if tt.wantHit {
				require.NotNil(t, hit)
				assert.Equal(t, country.ID, hit.ID)
			} else {
				assert.Nil(t, hit)
			}
		})
	}
}

func TestCountryRepository_UniqueIndexIgnoresDeletedRows(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := postgres.NewCountryRepository(db)
	ctx := context.Background()

	first := &entity.Country{Name: "Brasil", Code: "BR"}
	require.NoError(t, repo.Create(ctx, first))

	dup := &entity.Country{Name: "brasil", Code: "XX"}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)

	require.NoError(t, repo.Delete(ctx, first.ID))

	again := &entity.Country{Name: "Brasil", Code: "BR"}
	require.NoError(t, repo.Create(ctx, again))
	assert.NotEqual(t, first.ID, again.ID)
}

func TestStateRepository_PreloadsCountry(t *testing.T) {
	db := sqlitetest.Open(t)
	geo := seedGeo(t, db)
	ctx := context.Background()
	repo := postgres.NewStateRepository(db)

	state, err := repo.FindByID(ctx, geo.state.ID)
	require.NoError(t, err)
	require.NotNil(t, state.Country)
	assert.Equal(t, "BR", state.Country.Code)

	byCountry, err := repo.ListByCountry(ctx, geo.country.ID)
	require.NoError(t, err)
	require.Len(t, byCountry, 1)

	none, err := repo.ListByCountry(ctx, geo.country.ID+100)
	require.NoError(t, err)
	assert.Empty(t, none)

	hit, err := repo.FindConflicting(ctx, geo.country.ID, "sao paulo", "ZZ", 0)
	require.NoError(t, err)
	require.NotNil(t, hit)

	other, err := repo.FindConflicting(ctx, geo.country.ID+100, "Sao Paulo", "SP", 0)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestStateRepository_CreateWithMissingCountry(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := postgres.NewStateRepository(db)

	err := repo.Create(context.Background(), &entity.State{CountryID: 999, Name: "Nowhere", Code: "NW"})
	assert.ErrorIs(t, err, repository.ErrInvalidReference)
}

func TestCityRepository_LookupsAndNullableCode(t *testing.T) {
	db := sqlitetest.Open(t)
	geo := seedGeo(t, db)
	ctx := context.Background()
	repo := postgres.NewCityRepository(db)

	city, err := repo.FindByID(ctx, geo.city.ID)
	require.NoError(t, err)
	require.NotNil(t, city.State)
	require.NotNil(t, city.State.Country)
	assert.Equal(t, "Brasil", city.State.Country.Name)

	byName, err := repo.FindByName(ctx, geo.state.ID, "CAMPINAS", 0)
	require.NoError(t, err)
	require.NotNil(t, byName)

	byCode, err := repo.FindByCode(ctx, geo.state.ID, "cps", 0)
	require.NoError(t, err)
	require.NotNil(t, byCode)

	// Two cities without a code never collide.
	require.NoError(t, repo.Create(ctx, &entity.City{StateID: geo.state.ID, Name: "Santos"}))
	require.NoError(t, repo.Create(ctx, &entity.City{StateID: geo.state.ID, Name: "Sorocaba"}))

	city.Code = nil
	require.NoError(t, repo.Update(ctx, city))
	assert.Nil(t, city.Code)

	list, err := repo.ListByState(ctx, geo.state.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestAddressRepository_DeletedAncestorRendersAbsent(t *testing.T) {
	db := sqlitetest.Open(t)
	geo := seedGeo(t, db)
	ctx := context.Background()
	repo := postgres.NewAddressRepository(db)

	address := &entity.Address{CityID: geo.city.ID, PostalCode: ptr("13010-000"), Complement: ptr("Rua A, 10")}
	require.NoError(t, repo.Create(ctx, address))
	require.NotNil(t, address.City)
	require.NotNil(t, address.City.State)
	require.NotNil(t, address.City.State.Country)

	require.NoError(t, postgres.NewStateRepository(db).Delete(ctx, geo.state.ID))

	reloaded, err := repo.FindByID(ctx, address.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.City)
	assert.Nil(t, reloaded.City.State)
}

func TestProfileRepository_FindByDescription(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := postgres.NewProfileRepository(db)
	ctx := context.Background()

	profile := &entity.Profile{Description: "Administrador"}
	require.NoError(t, repo.Create(ctx, profile))

	hit, err := repo.FindByDescription(ctx, "administrador", 0)
	require.NoError(t, err)
	require.NotNil(t, hit)

	self, err := repo.FindByDescription(ctx, "Administrador", profile.ID)
	require.NoError(t, err)
	assert.Nil(t, self)
}

func TestUserRepository_Lifecycle(t *testing.T) {
	db := sqlitetest.Open(t)
	geo := seedGeo(t, db)
	ctx := context.Background()

	profile := &entity.Profile{Description: "Turista"}
	require.NoError(t, postgres.NewProfileRepository(db).Create(ctx, profile))

	address := &entity.Address{CityID: geo.city.ID}
	require.NoError(t, postgres.NewAddressRepository(db).Create(ctx, address))

	repo := postgres.NewUserRepository(db)
	user := &entity.User{
		AddressID:    address.ID,
		ProfileID:    profile.ID,
		TaxID:        "123.456.789-09",
		Name:         "Maria Silva",
		Email:        ptr("Maria@Example.com"),
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotNil(t, user.Profile)
	require.NotNil(t, user.Address)
	assert.Equal(t, "Campinas", user.Address.City.Name)

	byDigits, err := repo.FindByTaxIDDigits(ctx, "12345678909")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byDigits.ID)

	byEmail, err := repo.FindByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))
	require.NoError(t, repo.UpdateAvatar(ctx, user.ID, "https://cdn.example.com/a.png"))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", reloaded.PasswordHash)
	require.NotNil(t, reloaded.Avatar)

	duplicate := &entity.User{
		AddressID:    address.ID,
		ProfileID:    profile.ID,
		TaxID:        "12345678909",
		Name:         "Other",
		PasswordHash: "hash",
	}
	assert.ErrorIs(t, repo.Create(ctx, duplicate), repository.ErrDuplicate)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.FindByTaxIDDigits(ctx, "12345678909")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, user.ID, "x"), repository.ErrNotFound)
}

func TestResetTokenStore_ConsumeOnce(t *testing.T) {
	db := sqlitetest.Open(t)
	store := postgres.NewResetTokenStore(db)
	ctx := context.Background()
	expires := time.Now().Add(10 * time.Minute)

	consumed, err := store.IsConsumed(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, consumed)

	ok, err := store.Consume(ctx, "jti-1", 1, expires)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Consume(ctx, "jti-1", 1, expires)
	require.NoError(t, err)
	assert.False(t, ok)

	consumed, err = store.IsConsumed(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, consumed)
}

func TestAccountEventRepository_RecordOnce(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := postgres.NewAccountEventRepository(db)
	ctx := context.Background()
	at := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	first := &entity.AccountEvent{EventID: "evt-1", Type: "user.created", UserID: 5, OccurredAt: at, ReceivedAt: at}
	recorded, err := repo.Record(ctx, first)
	require.NoError(t, err)
	assert.True(t, recorded)
	assert.NotZero(t, first.ID)

	recorded, err = repo.Record(ctx, &entity.AccountEvent{EventID: "evt-1", Type: "user.created", UserID: 5, OccurredAt: at, ReceivedAt: at})
	require.NoError(t, err)
	assert.False(t, recorded)

	_, err = repo.Record(ctx, &entity.AccountEvent{EventID: "evt-2", Type: "user.deleted", UserID: 5, OccurredAt: at.Add(time.Hour), ReceivedAt: at})
	require.NoError(t, err)
	_, err = repo.Record(ctx, &entity.AccountEvent{EventID: "evt-3", Type: "user.created", UserID: 6, OccurredAt: at, ReceivedAt: at})
	require.NoError(t, err)

	events, err := repo.ListByUser(ctx, 5, repository.NewPage(0, 10))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "evt-2", events[0].EventID)
	assert.Equal(t, "evt-1", events[1].EventID)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := sqlitetest.Open(t)
	tm := postgres.NewTransactionManager(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.CountryRepo().Create(ctx, &entity.Country{Name: "Chile", Code: "CL"}); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := postgres.NewCountryRepository(db).List(ctx, repository.NewPage(0, 10))
	require.NoError(t, err)
	assert.Empty(t, list)

	err = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.CountryRepo().Create(ctx, &entity.Country{Name: "Chile", Code: "CL"})
	})
	require.NoError(t, err)

	list, err = postgres.NewCountryRepository(db).List(ctx, repository.NewPage(0, 10))
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
