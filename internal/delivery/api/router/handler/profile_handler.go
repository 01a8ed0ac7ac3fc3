package handler

import (
	"funntour/internal/delivery/api/response"
	"funntour/internal/errors"
	"funntour/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the /profiles routes.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler
func NewProfileHandler(profileUC usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUC: profileUC}
}

// ProfileRequest is the body of profile creation.
type ProfileRequest struct {
	Description string `json:"description" validate:"required,notblank,min=2,max=255"`
}

// ProfilePatchRequest is the body of a profile update.
type ProfilePatchRequest struct {
	Description *string `json:"description" validate:"omitempty,notblank,min=2,max=255"`
}

// ListProfiles handles GET /profiles
func (h *ProfileHandler) ListProfiles(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	profiles, err := h.profileUC.ListProfiles(c.Request().Context(), page)
	if err != nil {
		return errors.WithStack(err)
	}

	return pageOK(c, page, profiles, toProfileResponse)
}

// GetProfile handles GET /profiles/:id
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.profileUC.GetProfile(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toProfileResponse(profile))
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	var req ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profileUC.CreateProfile(c.Request().Context(), usecase.ProfileInput{Description: req.Description})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toProfileResponse(profile))
}

// UpdateProfile handles PUT /profiles/:id
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ProfilePatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profileUC.UpdateProfile(c.Request().Context(), id, usecase.ProfilePatch{Description: req.Description})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toProfileResponse(profile))
}

// DeleteProfile handles DELETE /profiles/:id
func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.profileUC.DeleteProfile(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
