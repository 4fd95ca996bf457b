package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/auth/domain"
	"github.com/iamRazzakk/storefront-api/internal/auth/service"
	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	userDomain "github.com/iamRazzakk/storefront-api/internal/user/domain"
)

type authUseCase struct {
	users     UserRepository
	passwords service.PasswordService
	tokens    service.TokenService
	now       func() time.Time
}

// NewAuthUseCase creates an AuthUseCase.
func NewAuthUseCase(
	users UserRepository,
	passwords service.PasswordService,
	tokens service.TokenService,
) AuthUseCase {
	return &authUseCase{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		now:       time.Now,
	}
}

func (uc *authUseCase) Login(ctx context.Context, credentials domain.Credentials) (*domain.Session, error) {
	email := strings.ToLower(strings.TrimSpace(credentials.Email))

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "failed to find user")
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if !uc.passwords.Verify(credentials.Password, user.Password) {
		if err := uc.users.RecordLoginFailure(ctx, user.ID); err != nil {
			return nil, apperrors.Wrap(err, "failed to record login failure")
		}
		return nil, domain.ErrInvalidCredentials
	}

	now := uc.now()
	user, err = uc.users.RecordLoginSuccess(ctx, user.ID, now)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to record login")
	}

	token, expiresAt, err := uc.tokens.Issue(user, now)
	if err != nil {
		return nil, err
	}

	return &domain.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate rejects tokens whose user has since been removed with the same
// failure as a forged token.
func (uc *authUseCase) Authenticate(ctx context.Context, token string) (*userDomain.User, error) {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	id, err := bson.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, &apperrors.CredentialError{Err: err}
	}

	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, &apperrors.CredentialError{Err: err}
		}
		return nil, apperrors.Wrap(err, "failed to find user")
	}

	if user.IsDeleted {
		return nil, &apperrors.CredentialError{Err: userDomain.ErrUserNotFound}
	}
	if user.IsBanned {
		return nil, userDomain.ErrUserBanned
	}
	return user, nil
}
