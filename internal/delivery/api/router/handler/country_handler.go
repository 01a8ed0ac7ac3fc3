// Package handler contains the HTTP handlers for the JSON API.
package handler

import (
	"log/slog"

	"funntour/internal/delivery/api/response"
	"funntour/internal/errors"
	"funntour/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CountryHandlerParams holds dependencies for CountryHandler, injected by Fx.
type CountryHandlerParams struct {
	fx.In

	CountryUC usecase.CountryUsecase
	Logger    *slog.Logger
}

// CountryHandler serves the /countries routes.
type CountryHandler struct {
	countryUC usecase.CountryUsecase
	logger    *slog.Logger
}

// NewCountryHandler is the constructor for CountryHandler
func NewCountryHandler(params CountryHandlerParams) *CountryHandler {
	return &CountryHandler{
		countryUC: params.CountryUC,
		logger:    params.Logger,
	}
}

// CreateCountryRequest represents the request body for creating a country
type CreateCountryRequest struct {
	Name string `json:"name" validate:"required,notblank,min=2,max=255"`
	Code string `json:"code" validate:"required,notblank,min=2,max=10"`
}

// UpdateCountryRequest is a partial update; absent fields keep their value.
type UpdateCountryRequest struct {
	Name *string `json:"name" validate:"omitempty,notblank,min=2,max=255"`
	Code *string `json:"code" validate:"omitempty,notblank,min=2,max=10"`
}

// ListCountries handles GET /countries
func (h *CountryHandler) ListCountries(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	countries, err := h.countryUC.ListCountries(c.Request().Context(), page)
	if err != nil {
		return errors.WithStack(err)
	}

	return pageOK(c, page, countries, toCountryResponse)
}

// GetCountry handles GET /countries/:id
func (h *CountryHandler) GetCountry(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	country, err := h.countryUC.GetCountry(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toCountryResponse(country))
}

// CreateCountry handles POST /countries
func (h *CountryHandler) CreateCountry(c echo.Context) error {
	var req CreateCountryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	country, err := h.countryUC.CreateCountry(c.Request().Context(), usecase.CountryInput{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toCountryResponse(country))
}

// UpdateCountry handles PUT /countries/:id
func (h *CountryHandler) UpdateCountry(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCountryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	country, err := h.countryUC.UpdateCountry(c.Request().Context(), id, usecase.CountryPatch{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toCountryResponse(country))
}

// DeleteCountry handles DELETE /countries/:id
func (h *CountryHandler) DeleteCountry(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.countryUC.DeleteCountry(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
