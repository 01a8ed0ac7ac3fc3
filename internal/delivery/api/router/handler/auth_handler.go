package handler

import (
	"log/slog"
	"time"

	"funntour/config"
	apimiddleware "funntour/internal/delivery/api/middleware"
	"funntour/internal/delivery/api/response"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/errors"
	"funntour/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	recoverPasswordMessage = "Se o usuário existir, um token de recuperação foi enviado para o e-mail e WhatsApp cadastrados"
	resetPasswordMessage   = "Senha redefinida com sucesso"
	tokenTypeBearer        = "Bearer"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	UserUC          usecase.UserUsecase
	PasswordResetUC usecase.PasswordResetUsecase
	Config          *config.Config
	Logger          *slog.Logger
}

// AuthHandler serves login and the password lifecycle under /auth.
type AuthHandler struct {
	userUC          usecase.UserUsecase
	passwordResetUC usecase.PasswordResetUsecase
	exposeDebugInfo bool
	logger          *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	expose := params.Config.Auth != nil && params.Config.Auth.ExposeResetDebugInfo
	if expose {
		params.Logger.Warn("Password recovery responses expose reset tokens; never enable this in production")
	}

	return &AuthHandler{
		userUC:          params.UserUC,
		passwordResetUC: params.PasswordResetUC,
		exposeDebugInfo: expose,
		logger:          params.Logger,
	}
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	TaxID    string `json:"tax_id" validate:"required,notblank,min=11,max=20"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the user and a bearer access token.
type LoginResponse struct {
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// ChangePasswordRequest is the body of POST /auth/change-password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max_bytes=72"`
}

// RecoverPasswordRequest is the body of POST /auth/recover-password
type RecoverPasswordRequest struct {
	Credential string `json:"credential" validate:"required,max=255"`
}

// RecoverPasswordResponse never reveals whether the credential matched an account.
// DevInfo is only filled when the server runs with auth.exposeResetDebugInfo.
type RecoverPasswordResponse struct {
	Message string        `json:"message"`
	DevInfo *ResetDevInfo `json:"dev_info,omitempty"`
}

// ResetDevInfo exposes the issued token for manual testing.
type ResetDevInfo struct {
	Token         string             `json:"token"`
	User          ResetRecipientInfo `json:"user"`
	ExpiresAt     time.Time          `json:"expires_at"`
	Notifications NotificationInfo   `json:"notifications"`
}

// ResetRecipientInfo is the minimal user view attached to a reset token.
type ResetRecipientInfo struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	TaxID    string `json:"tax_id"`
	Email    string `json:"email,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// NotificationInfo reports which channels delivered the recovery message.
type NotificationInfo struct {
	Email    bool `json:"email"`
	WhatsApp bool `json:"whatsapp"`
}

// TokenRequest is the body of POST /auth/validate-token
type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// TokenValidationResponse is the answer of POST /auth/validate-token
type TokenValidationResponse struct {
	Valid   bool   `json:"valid"`
	UserID  uint   `json:"user_id,omitempty"`
	Message string `json:"message"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max_bytes=72"`
}

// ResetPasswordResponse confirms a password reset.
type ResetPasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.userUC.Login(c.Request().Context(), usecase.LoginInput{
		TaxID:    req.TaxID,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, LoginResponse{
		User:        toUserResponse(output.User),
		AccessToken: output.AccessToken,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   output.ExpiresAt,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := apimiddleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrAccessTokenInvalid
	}

	user, err := h.userUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toUserResponse(user))
}

// ChangePassword handles POST /auth/change-password for the authenticated user.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, ok := apimiddleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrAccessTokenInvalid
	}

	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userUC.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// RecoverPassword handles POST /auth/recover-password
func (h *AuthHandler) RecoverPassword(c echo.Context) error {
	var req RecoverPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.passwordResetUC.RequestPasswordReset(c.Request().Context(), req.Credential)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := RecoverPasswordResponse{Message: recoverPasswordMessage}
	if h.exposeDebugInfo && output.Ticket != nil {
		resp.DevInfo = &ResetDevInfo{
			Token: output.Ticket.Token.Token,
			User: ResetRecipientInfo{
				ID:       output.Ticket.Recipient.UserID,
				Name:     output.Ticket.Recipient.Name,
				TaxID:    output.Ticket.Recipient.TaxID,
				Email:    output.Ticket.Recipient.Email,
				WhatsApp: output.Ticket.Recipient.WhatsApp,
			},
			ExpiresAt: output.Ticket.Token.ExpiresAt,
			Notifications: NotificationInfo{
				Email:    output.Report.Email,
				WhatsApp: output.Report.WhatsApp,
			},
		}
	}

	return response.OK(c, resp)
}

// ValidateToken handles POST /auth/validate-token
func (h *AuthHandler) ValidateToken(c echo.Context) error {
	var req TokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.passwordResetUC.ValidateResetToken(c.Request().Context(), req.Token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, TokenValidationResponse{
		Valid:   output.Valid,
		UserID:  output.UserID,
		Message: output.Message,
	})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.passwordResetUC.ResetPasswordWithToken(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, ResetPasswordResponse{Success: true, Message: resetPasswordMessage})
}
