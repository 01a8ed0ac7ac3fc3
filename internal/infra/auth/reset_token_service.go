package auth

import (
	"strconv"
	"time"

	"funntour/config"
	"funntour/internal/domain/constants"
	"funntour/internal/domain/entity"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/service"
	"funntour/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type resetTokenClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// resetTokenService signs single-purpose password-reset tokens with their own secret.
type resetTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewResetTokenService is the constructor for resetTokenService.
func NewResetTokenService(cfg *config.Config, opts ...Option) (service.ResetTokenService, error) {
	if cfg.SecretKey.Reset == "" {
		return nil, errors.New("password reset secret must be provided")
	}

	o := buildOptions(opts)

	return &resetTokenService{
		secret: []byte(cfg.SecretKey.Reset),
		ttl:    constants.PasswordResetTokenTTL,
		now:    o.now,
	}, nil
}

// Issue creates a token valid for ten minutes with a fresh jti.
func (s *resetTokenService) Issue(userID uint) (*entity.ResetToken, error) {
	now := s.now()
	expiresAt := jwt.NewNumericDate(now.Add(s.ttl))
	tokenID := uuid.NewString()

	claims := resetTokenClaims{
		Type: tokenTypeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
			ID:        tokenID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign reset token")
	}

	return &entity.ResetToken{
		Token:     token,
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt.Time,
	}, nil
}

// Verify returns ErrResetTokenInvalid for every kind of failure.
func (s *resetTokenService) Verify(tokenString string) (*service.ResetTokenClaims, error) {
	claims := &resetTokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(s.secret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Type != tokenTypeReset || claims.ID == "" {
		return nil, domainerrors.ErrResetTokenInvalid
	}

	userID, err := parseSubject(claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrResetTokenInvalid
	}

	return &service.ResetTokenClaims{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
