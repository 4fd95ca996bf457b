package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iamRazzakk/storefront-api/internal/auth/domain"
	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	userDomain "github.com/iamRazzakk/storefront-api/internal/user/domain"
)

// sessionClaims is the JWT payload of a session token.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// jwtTokenService implements TokenService with HS256 signed JWTs.
type jwtTokenService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret, issuer string, expiration time.Duration) TokenService {
	return &jwtTokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: expiration,
	}
}

func (s *jwtTokenService) Issue(user *userDomain.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.expiration).Truncate(time.Second)
	claims := sessionClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}
	return signed, expiresAt, nil
}

func (s *jwtTokenService) Parse(token string) (*domain.Claims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, &apperrors.CredentialError{Expired: errors.Is(err, jwt.ErrTokenExpired), Err: err}
	}
	if claims.Subject == "" {
		return nil, &apperrors.CredentialError{Err: errors.New("token has no subject")}
	}

	return &domain.Claims{
		UserID:    claims.Subject,
		Role:      userDomain.Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
