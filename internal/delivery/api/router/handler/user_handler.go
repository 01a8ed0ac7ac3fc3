package handler

import (
	"io"
	"log/slog"

	"funntour/internal/delivery/api/response"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/errors"
	"funntour/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const avatarFormField = "avatar"

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves the /users routes.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// CreateUserRequest registers a user together with its address.
type CreateUserRequest struct {
	ProfileID     uint           `json:"profile_id" validate:"required,gt=0"`
	TaxID         string         `json:"tax_id" validate:"required,notblank,min=11,max=20"`
	Name          string         `json:"name" validate:"required,notblank,min=2,max=255"`
	Email         *string        `json:"email" validate:"omitempty,email"`
	Phone         *string        `json:"phone" validate:"omitempty,max=20"`
	WhatsApp      *string        `json:"whatsapp" validate:"omitempty,max=20"`
	BirthDate     *string        `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	AcceptedTerms *bool          `json:"accepted_terms"`
	IsAdult       *bool          `json:"is_adult"`
	Password      string         `json:"password" validate:"required,min=6,max_bytes=72"`
	Address       AddressRequest `json:"address" validate:"required"`
}

// UpdateUserRequest is a partial user update. Empty email, phone or whatsapp clear the field.
type UpdateUserRequest struct {
	ProfileID     *uint                `json:"profile_id" validate:"omitempty,gt=0"`
	TaxID         *string              `json:"tax_id" validate:"omitempty,notblank,min=11,max=20"`
	Name          *string              `json:"name" validate:"omitempty,notblank,min=2,max=255"`
	Email         *string              `json:"email" validate:"omitempty,clearable_email"`
	Phone         *string              `json:"phone" validate:"omitempty,max=20"`
	WhatsApp      *string              `json:"whatsapp" validate:"omitempty,max=20"`
	BirthDate     *string              `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	AcceptedTerms *bool                `json:"accepted_terms"`
	IsAdult       *bool                `json:"is_adult"`
	Password      *string              `json:"password" validate:"omitempty,min=6,max_bytes=72"`
	Address       *AddressPatchRequest `json:"address"`
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	users, err := h.userUC.ListUsers(c.Request().Context(), page)
	if err != nil {
		return errors.WithStack(err)
	}

	return pageOK(c, page, users, toUserResponse)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toUserResponse(user))
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	birthDate, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		return err
	}

	user, err := h.userUC.CreateUser(c.Request().Context(), usecase.CreateUserInput{
		ProfileID:     req.ProfileID,
		TaxID:         req.TaxID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		WhatsApp:      req.WhatsApp,
		BirthDate:     birthDate,
		AcceptedTerms: req.AcceptedTerms,
		IsAdult:       req.IsAdult,
		Password:      req.Password,
		Address:       req.Address.input(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toUserResponse(user))
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	birthDate, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		return err
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), id, usecase.UpdateUserInput{
		ProfileID:     req.ProfileID,
		TaxID:         req.TaxID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		WhatsApp:      req.WhatsApp,
		BirthDate:     birthDate,
		AcceptedTerms: req.AcceptedTerms,
		IsAdult:       req.IsAdult,
		Password:      req.Password,
		Address:       req.Address.patch(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toUserResponse(user))
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// UploadAvatar handles PUT /users/:id/avatar with a multipart "avatar" file.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile(avatarFormField)
	if err != nil {
		return domainerrors.ErrInvalidAvatar.WithDetails("multipart field '" + avatarFormField + "' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded avatar")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.Wrap(err, "failed to read uploaded avatar")
	}

	user, err := h.userUC.UploadAvatar(c.Request().Context(), usecase.UploadAvatarInput{
		UserID:      id,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.logger.Debug("Avatar uploaded", slog.Uint64("user_id", uint64(id)), slog.Int("bytes", len(data)))

	return response.OK(c, toUserResponse(user))
}
