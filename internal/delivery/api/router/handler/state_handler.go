package handler

import (
	"funntour/internal/delivery/api/response"
	"funntour/internal/errors"
	"funntour/internal/usecase"

	"github.com/labstack/echo/v4"
)

// StateHandler serves the /states routes.
type StateHandler struct {
	stateUC usecase.StateUsecase
}

// NewStateHandler is the constructor for StateHandler
func NewStateHandler(stateUC usecase.StateUsecase) *StateHandler {
	return &StateHandler{stateUC: stateUC}
}

// CreateStateRequest represents the request body for creating a state
type CreateStateRequest struct {
	CountryID uint   `json:"country_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,notblank,min=2,max=255"`
	Code      string `json:"code" validate:"required,notblank,min=2,max=10"`
}

// UpdateStateRequest is a partial update; moving a state to another country is allowed.
type UpdateStateRequest struct {
	CountryID *uint   `json:"country_id" validate:"omitempty,gt=0"`
	Name      *string `json:"name" validate:"omitempty,notblank,min=2,max=255"`
	Code      *string `json:"code" validate:"omitempty,notblank,min=2,max=10"`
}

// ListStates handles GET /states
func (h *StateHandler) ListStates(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	states, err := h.stateUC.ListStates(c.Request().Context(), page)
	if err != nil {
		return errors.WithStack(err)
	}

	return pageOK(c, page, states, toStateResponse)
}

// ListStatesByCountry handles GET /states/country/:countryId
func (h *StateHandler) ListStatesByCountry(c echo.Context) error {
	countryID, err := pathID(c, "countryId")
	if err != nil {
		return err
	}

	states, err := h.stateUC.ListStatesByCountry(c.Request().Context(), countryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, mapSlice(states, toStateResponse))
}

// GetState handles GET /states/:id
func (h *StateHandler) GetState(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	state, err := h.stateUC.GetState(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toStateResponse(state))
}

// CreateState handles POST /states
func (h *StateHandler) CreateState(c echo.Context) error {
	var req CreateStateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	state, err := h.stateUC.CreateState(c.Request().Context(), usecase.StateInput{
		CountryID: req.CountryID,
		Name:      req.Name,
		Code:      req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toStateResponse(state))
}

// UpdateState handles PUT /states/:id
func (h *StateHandler) UpdateState(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateStateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	state, err := h.stateUC.UpdateState(c.Request().Context(), id, usecase.StatePatch{
		CountryID: req.CountryID,
		Name:      req.Name,
		Code:      req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toStateResponse(state))
}

// DeleteState handles DELETE /states/:id
func (h *StateHandler) DeleteState(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.stateUC.DeleteState(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
