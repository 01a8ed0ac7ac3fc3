package handler

import (
	"time"

	"funntour/internal/domain/entity"
)

const dateLayout = time.DateOnly

// CountryResponse is the JSON view of a country.
type CountryResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StateResponse is the JSON view of a state. Country is absent when it was deleted.
type StateResponse struct {
	ID        uint             `json:"id"`
	CountryID uint             `json:"country_id"`
	Name      string           `json:"name"`
	Code      string           `json:"code"`
	Country   *CountryResponse `json:"country,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// CityResponse is the JSON view of a city with its state and country.
type CityResponse struct {
	ID        uint           `json:"id"`
	StateID   uint           `json:"state_id"`
	Name      string         `json:"name"`
	Code      *string        `json:"code"`
	State     *StateResponse `json:"state,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// AddressResponse is the JSON view of an address with its full city chain.
type AddressResponse struct {
	ID         uint          `json:"id"`
	CityID     uint          `json:"city_id"`
	PostalCode *string       `json:"postal_code"`
	Complement *string       `json:"complement"`
	City       *CityResponse `json:"city,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// ProfileResponse is the JSON view of a profile.
type ProfileResponse struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserResponse is the JSON view of a user. The password hash is never exposed.
type UserResponse struct {
	ID            uint             `json:"id"`
	AddressID     uint             `json:"address_id"`
	ProfileID     uint             `json:"profile_id"`
	TaxID         string           `json:"tax_id"`
	Name          string           `json:"name"`
	Email         *string          `json:"email"`
	Phone         *string          `json:"phone"`
	WhatsApp      *string          `json:"whatsapp"`
	BirthDate     *string          `json:"birth_date"`
	Avatar        *string          `json:"avatar"`
	AcceptedTerms *bool            `json:"accepted_terms"`
	IsAdult       *bool            `json:"is_adult"`
	Address       *AddressResponse `json:"address,omitempty"`
	Profile       *ProfileResponse `json:"profile,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func toCountryResponse(country *entity.Country) *CountryResponse {
	if country == nil {
		return nil
	}

	return &CountryResponse{
		ID:        country.ID,
		Name:      country.Name,
		Code:      country.Code,
		CreatedAt: country.CreatedAt,
		UpdatedAt: country.UpdatedAt,
	}
}

func toStateResponse(state *entity.State) *StateResponse {
	if state == nil {
		return nil
	}

	return &StateResponse{
		ID:        state.ID,
		CountryID: state.CountryID,
		Name:      state.Name,
		Code:      state.Code,
		Country:   toCountryResponse(state.Country),
		CreatedAt: state.CreatedAt,
		UpdatedAt: state.UpdatedAt,
	}
}

func toCityResponse(city *entity.City) *CityResponse {
	if city == nil {
		return nil
	}

	return &CityResponse{
		ID:        city.ID,
		StateID:   city.StateID,
		Name:      city.Name,
		Code:      city.Code,
		State:     toStateResponse(city.State),
		CreatedAt: city.CreatedAt,
		UpdatedAt: city.UpdatedAt,
	}
}

func toAddressResponse(address *entity.Address) *AddressResponse {
	if address == nil {
		return nil
	}

	return &AddressResponse{
		ID:         address.ID,
		CityID:     address.CityID,
		PostalCode: address.PostalCode,
		Complement: address.Complement,
		City:       toCityResponse(address.City),
		CreatedAt:  address.CreatedAt,
		UpdatedAt:  address.UpdatedAt,
	}
}

func toProfileResponse(profile *entity.Profile) *ProfileResponse {
	if profile == nil {
		return nil
	}

	return &ProfileResponse{
		ID:          profile.ID,
		Description: profile.Description,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	resp := &UserResponse{
		ID:            user.ID,
		AddressID:     user.AddressID,
		ProfileID:     user.ProfileID,
		TaxID:         user.TaxID,
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		WhatsApp:      user.WhatsApp,
		Avatar:        user.Avatar,
		AcceptedTerms: user.AcceptedTerms,
		IsAdult:       user.IsAdult,
		Address:       toAddressResponse(user.Address),
		Profile:       toProfileResponse(user.Profile),
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
	if user.BirthDate != nil {
		birthDate := user.BirthDate.Format(dateLayout)
		resp.BirthDate = &birthDate
	}

	return resp
}

// AccountEventResponse is one entry of a user's audit trail.
type AccountEventResponse struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UserID     uint      `json:"user_id"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	ReceivedAt time.Time `json:"received_at"`
}

func toAccountEventResponse(event *entity.AccountEvent) *AccountEventResponse {
	return &AccountEventResponse{
		EventID:    event.EventID,
		Type:       event.Type,
		UserID:     event.UserID,
		RequestID:  event.RequestID,
		OccurredAt: event.OccurredAt,
		ReceivedAt: event.ReceivedAt,
	}
}

// mapSlice converts a listing with the given mapper.
func mapSlice[E any, R any](items []*E, mapper func(*E) *R) []*R {
	out := make([]*R, 0, len(items))
	for _, item := range items {
		out = append(out, mapper(item))
	}

	return out
}
