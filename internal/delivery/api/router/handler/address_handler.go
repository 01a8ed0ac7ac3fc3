package handler

import (
	"funntour/internal/delivery/api/response"
	"funntour/internal/errors"
	"funntour/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AddressHandler serves the standalone /addresses routes.
type AddressHandler struct {
	addressUC usecase.AddressUsecase
}

// NewAddressHandler is the constructor for AddressHandler
func NewAddressHandler(addressUC usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{addressUC: addressUC}
}

// AddressRequest is a full address, also nested in user registration.
type AddressRequest struct {
	CityID     uint    `json:"city_id" validate:"required,gt=0"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
	Complement *string `json:"complement" validate:"omitempty,max=255"`
}

func (r AddressRequest) input() usecase.AddressInput {
	return usecase.AddressInput{
		CityID:     r.CityID,
		PostalCode: r.PostalCode,
		Complement: r.Complement,
	}
}

// AddressPatchRequest is a partial address, also nested in user updates.
type AddressPatchRequest struct {
	CityID     *uint   `json:"city_id" validate:"omitempty,gt=0"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
	Complement *string `json:"complement" validate:"omitempty,max=255"`
}

func (r *AddressPatchRequest) patch() *usecase.AddressPatch {
	if r == nil {
		return nil
	}

	return &usecase.AddressPatch{
		CityID:     r.CityID,
		PostalCode: r.PostalCode,
		Complement: r.Complement,
	}
}

// ListAddresses handles GET /addresses
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	addresses, err := h.addressUC.ListAddresses(c.Request().Context(), page)
	if err != nil {
		return errors.WithStack(err)
	}

	return pageOK(c, page, addresses, toAddressResponse)
}

// GetAddress handles GET /addresses/:id
func (h *AddressHandler) GetAddress(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	address, err := h.addressUC.GetAddress(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toAddressResponse(address))
}

// CreateAddress handles POST /addresses
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	var req AddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.addressUC.CreateAddress(c.Request().Context(), req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toAddressResponse(address))
}

// UpdateAddress handles PUT /addresses/:id
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AddressPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.addressUC.UpdateAddress(c.Request().Context(), id, *req.patch())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toAddressResponse(address))
}

// DeleteAddress handles DELETE /addresses/:id
func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.addressUC.DeleteAddress(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
