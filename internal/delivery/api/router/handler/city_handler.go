package handler

import (
	"funntour/internal/delivery/api/response"
	"funntour/internal/errors"
	"funntour/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CityHandler serves the /cities routes.
type CityHandler struct {
	cityUC usecase.CityUsecase
}

// NewCityHandler is the constructor for CityHandler
func NewCityHandler(cityUC usecase.CityUsecase) *CityHandler {
	return &CityHandler{cityUC: cityUC}
}

// CreateCityRequest represents the request body for creating a city
type CreateCityRequest struct {
	StateID uint    `json:"state_id" validate:"required,gt=0"`
	Name    string  `json:"name" validate:"required,notblank,min=2,max=255"`
	Code    *string `json:"code" validate:"omitempty,max=10"`
}

// UpdateCityRequest is a partial update. An empty code clears it.
type UpdateCityRequest struct {
	StateID *uint   `json:"state_id" validate:"omitempty,gt=0"`
	Name    *string `json:"name" validate:"omitempty,notblank,min=2,max=255"`
	Code    *string `json:"code" validate:"omitempty,max=10"`
}

// ListCities handles GET /cities
func (h *CityHandler) ListCities(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	cities, err := h.cityUC.ListCities(c.Request().Context(), page)
	if err != nil {
		return errors.WithStack(err)
	}

	return pageOK(c, page, cities, toCityResponse)
}

// ListCitiesByState handles GET /cities/state/:stateId
func (h *CityHandler) ListCitiesByState(c echo.Context) error {
	stateID, err := pathID(c, "stateId")
	if err != nil {
		return err
	}

	cities, err := h.cityUC.ListCitiesByState(c.Request().Context(), stateID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, mapSlice(cities, toCityResponse))
}

// GetCity handles GET /cities/:id
func (h *CityHandler) GetCity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	city, err := h.cityUC.GetCity(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toCityResponse(city))
}

// CreateCity handles POST /cities
func (h *CityHandler) CreateCity(c echo.Context) error {
	var req CreateCityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	city, err := h.cityUC.CreateCity(c.Request().Context(), usecase.CityInput{
		StateID: req.StateID,
		Name:    req.Name,
		Code:    req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toCityResponse(city))
}

// UpdateCity handles PUT /cities/:id
func (h *CityHandler) UpdateCity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	city, err := h.cityUC.UpdateCity(c.Request().Context(), id, usecase.CityPatch{
		StateID: req.StateID,
		Name:    req.Name,
		Code:    req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toCityResponse(city))
}

// DeleteCity handles DELETE /cities/:id
func (h *CityHandler) DeleteCity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.cityUC.DeleteCity(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
