package auth

import (
	"strconv"
	"time"

	"funntour/config"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/service"
	"funntour/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess = "access"
	tokenTypeReset  = "reset"

	defaultAccessTokenTTL = 15 * time.Minute
)

// accessTokenClaims is the JWT payload of an access token.
type accessTokenClaims struct {
	ProfileID uint   `json:"profile_id"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret []byte        // Secret key for signing access tokens.
	accessTTL    time.Duration // Time-to-live for access tokens.
	now          func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config, opts ...Option) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	ttl := defaultAccessTokenTTL
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	o := buildOptions(opts)

	return &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
		accessTTL:    ttl,
		now:          o.now,
	}, nil
}

// GenerateAccessToken creates a signed access token for the user.
func (s *jwtService) GenerateAccessToken(userID, profileID uint) (string, time.Time, error) {
	now := s.now()
	expiresAt := jwt.NewNumericDate(now.Add(s.accessTTL))

	claims := accessTokenClaims{
		ProfileID: profileID,
		Type:      tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign access token")
	}

	return token, expiresAt.Time, nil
}

// ValidateAccessToken checks signature, algorithm, expiry and token type.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.AccessClaims, error) {
	claims := &accessTokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(s.accessSecret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Type != tokenTypeAccess {
		return nil, domainerrors.ErrAccessTokenInvalid
	}

	userID, err := parseSubject(claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrAccessTokenInvalid
	}

	return &service.AccessClaims{
		UserID:    userID,
		ProfileID: claims.ProfileID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func hmacKey(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return secret, nil
	}
}

func parseSubject(sub string) (uint, error) {
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid subject")
	}
	if id == 0 {
		return 0, errors.New("empty subject")
	}

	return uint(id), nil
}
