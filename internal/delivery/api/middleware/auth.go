// Package middleware contains the echo middleware specific to the JSON API.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "funntour/internal/delivery/context"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware validates the bearer access token issued by login.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects the request with ErrAccessTokenInvalid unless it carries a valid Bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrAccessTokenInvalid.WithDetails("authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			return domainerrors.ErrAccessTokenInvalid.WithDetails("authorization header must be a Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(strings.TrimSpace(tokenString))
		if err != nil {
			return domainerrors.ErrAccessTokenInvalid
		}

		ctx := deliverycontext.WithCaller(c.Request().Context(), deliverycontext.Caller{
			UserID:    claims.UserID,
			ProfileID: claims.ProfileID,
		})
		// Tag the request-scoped logger so usecase logs carry the caller.
		if logger := deliverycontext.GetLogger(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.Uint64("auth_user_id", uint64(claims.UserID))))
		}
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// GetUserID returns the id of the authenticated user. It must be used AFTER Authenticate.
func GetUserID(c echo.Context) (uint, bool) {
	caller, ok := deliverycontext.GetCaller(c.Request().Context())

	return caller.UserID, ok
}

// GetProfileID returns the profile of the authenticated user.
func GetProfileID(c echo.Context) (uint, bool) {
	caller, ok := deliverycontext.GetCaller(c.Request().Context())

	return caller.ProfileID, ok
}
