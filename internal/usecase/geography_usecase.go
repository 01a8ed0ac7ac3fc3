// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
)

// --- Input DTOs ---

// CountryInput defines the data required to create a country.
type CountryInput struct {
	Name string
	Code string
}

// CountryPatch is a partial country update. Nil fields keep their current value.
type CountryPatch struct {
	Name *string
	Code *string
}

// StateInput defines the data required to create a state.
type StateInput struct {
	CountryID uint
	Name      string
	Code      string
}

// StatePatch is a partial state update. Nil fields keep their current value.
type StatePatch struct {
	CountryID *uint
	Name      *string
	Code      *string
}

// CityInput defines the data required to create a city. Code is optional.
type CityInput struct {
	StateID uint
	Name    string
	Code    *string
}

// CityPatch is a partial city update. A blank Code clears the city code.
type CityPatch struct {
	StateID *uint
	Name    *string
	Code    *string
}

// CountryUsecase defines the country registry operations.
type CountryUsecase interface {
	ListCountries(ctx context.Context, page repository.Page) ([]*entity.Country, error)
	GetCountry(ctx context.Context, id uint) (*entity.Country, error)
	CreateCountry(ctx context.Context, input CountryInput) (*entity.Country, error)
	UpdateCountry(ctx context.Context, id uint, patch CountryPatch) (*entity.Country, error)
	DeleteCountry(ctx context.Context, id uint) error
}

// StateUsecase defines the state registry operations. Results carry their country.
type StateUsecase interface {
	ListStates(ctx context.Context, page repository.Page) ([]*entity.State, error)
	ListStatesByCountry(ctx context.Context, countryID uint) ([]*entity.State, error)
	GetState(ctx context.Context, id uint) (*entity.State, error)
	CreateState(ctx context.Context, input StateInput) (*entity.State, error)
	UpdateState(ctx context.Context, id uint, patch StatePatch) (*entity.State, error)
	DeleteState(ctx context.Context, id uint) error
}

// CityUsecase defines the city registry operations. Results carry State.Country.
type CityUsecase interface {
	ListCities(ctx context.Context, page repository.Page) ([]*entity.City, error)
	ListCitiesByState(ctx context.Context, stateID uint) ([]*entity.City, error)
	GetCity(ctx context.Context, id uint) (*entity.City, error)
	CreateCity(ctx context.Context, input CityInput) (*entity.City, error)
	UpdateCity(ctx context.Context, id uint, patch CityPatch) (*entity.City, error)
	DeleteCity(ctx context.Context, id uint) error
}
