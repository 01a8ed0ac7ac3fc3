package handler

import (
	"net/http"
	"testing"

	"funntour/internal/domain/entity"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"
	"funntour/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAddressTestServer(uc *mockAddressUsecase) *echo.Echo {
	h := NewAddressHandler(uc)

	e := newTestEcho()
	e.GET("/addresses", h.ListAddresses)
	e.POST("/addresses", h.CreateAddress)
	e.GET("/addresses/:id", h.GetAddress)
	e.PUT("/addresses/:id", h.UpdateAddress)
	e.DELETE("/addresses/:id", h.DeleteAddress)

	return e
}

func TestAddressHandler_UpdateAddress(t *testing.T) {
	campinas := &entity.City{ID: 3, StateID: 2, Name: "Campinas"}

	tests := []struct {
		name           string
		body           string
		wantPatch      *usecase.AddressPatch
		result         *entity.Address
		err            error
		wantStatus     int
		wantCode       string
		wantPostalCode *string
	}{
		{
			name:           "postal code only",
			body:           `{"postal_code":"13010000"}`,
			wantPatch:      &usecase.AddressPatch{PostalCode: ptr("13010000")},
			result:         &entity.Address{ID: 8, CityID: 3, PostalCode: ptr("13010-000"), City: campinas},
			wantStatus:     http.StatusOK,
			wantPostalCode: ptr("13010-000"),
		},
		{
			name:       "empty postal code clears it",
			body:       `{"postal_code":""}`,
			wantPatch:  &usecase.AddressPatch{PostalCode: ptr("")},
			result:     &entity.Address{ID: 8, CityID: 3, City: campinas},
			wantStatus: http.StatusOK,
		},
		{
			name:           "move to another city keeps the postal code",
			body:           `{"city_id":4}`,
			wantPatch:      &usecase.AddressPatch{CityID: ptr(uint(4))},
			result:         &entity.Address{ID: 8, CityID: 4, PostalCode: ptr("13010-000")},
			wantStatus:     http.StatusOK,
			wantPostalCode: ptr("13010-000"),
		},
		{
			name:       "unknown city",
			body:       `{"city_id":99}`,
			wantPatch:  &usecase.AddressPatch{CityID: ptr(uint(99))},
			err:        domainerrors.ErrCityNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "CITY_NOT_FOUND",
		},
		{
			name:       "missing address",
			body:       `{"postal_code":"13010000"}`,
			wantPatch:  &usecase.AddressPatch{PostalCode: ptr("13010000")},
			err:        domainerrors.ErrAddressNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "ADDRESS_NOT_FOUND",
		},
		{
			name:       "postal code too long",
			body:       `{"postal_code":"123456789012345678901"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "zero city id",
			body:       `{"city_id":0}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAddressUsecase{}
			if tt.wantPatch != nil {
				uc.On("UpdateAddress", mock.Anything, uint(8), *tt.wantPatch).Return(tt.result, tt.err).Once()
			}

			rec := serveJSON(newAddressTestServer(uc), http.MethodPut, "/addresses/8", tt.body)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode == "" {
				var got AddressResponse
				decodeData(t, rec, &got)
				assert.Equal(t, tt.result.CityID, got.CityID)
				assert.Equal(t, tt.wantPostalCode, got.PostalCode)
			} else {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			}
			uc.AssertExpectations(t)
		})
	}
}

func TestAddressHandler_Routes(t *testing.T) {
	address := &entity.Address{
		ID: 8, CityID: 3, PostalCode: ptr("13010-000"), Complement: ptr("Rua A, 10"),
		City: &entity.City{
			ID: 3, StateID: 2, Name: "Campinas",
			State: &entity.State{
				ID: 2, CountryID: 1, Name: "São Paulo", Code: "SP",
				Country: &entity.Country{ID: 1, Name: "Brazil", Code: "BR"},
			},
		},
	}

	uc := &mockAddressUsecase{}
	uc.On("ListAddresses", mock.Anything, repository.NewPage(0, 0)).Return([]*entity.Address{address}, nil)
	uc.On("CreateAddress", mock.Anything, usecase.AddressInput{CityID: 3, PostalCode: ptr("13010000")}).Return(address, nil)
	uc.On("GetAddress", mock.Anything, uint(8)).Return(address, nil)
	uc.On("DeleteAddress", mock.Anything, uint(8)).Return(nil)
	uc.On("DeleteAddress", mock.Anything, uint(9)).Return(domainerrors.ErrAddressNotFound)
	e := newAddressTestServer(uc)

	t.Run("list carries the city chain", func(t *testing.T) {
		rec := serveJSON(e, http.MethodGet, "/addresses", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got []AddressResponse
		meta := decodeData(t, rec, &got)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].City)
		require.NotNil(t, got[0].City.State)
		require.NotNil(t, got[0].City.State.Country)
		assert.Equal(t, "BR", got[0].City.State.Country.Code)
		require.NotNil(t, meta.Page)
		assert.Equal(t, 1, meta.Page.Count)
	})

	t.Run("create", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPost, "/addresses", `{"city_id":3,"postal_code":"13010000"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("create without city", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPost, "/addresses", `{"postal_code":"13010000"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Code)
	})

	t.Run("get", func(t *testing.T) {
		rec := serveJSON(e, http.MethodGet, "/addresses/8", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got AddressResponse
		decodeData(t, rec, &got)
		assert.Equal(t, ptr("Rua A, 10"), got.Complement)
	})

	t.Run("delete", func(t *testing.T) {
		rec := serveJSON(e, http.MethodDelete, "/addresses/8", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		rec := serveJSON(e, http.MethodDelete, "/addresses/9", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Endereço não encontrado", decodeError(t, rec).Message)
	})

	uc.AssertExpectations(t)
}
