package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	"github.com/iamRazzakk/storefront-api/internal/user/domain"
)

type userUseCase struct {
	repo   UserRepository
	hasher PasswordHasher
}

// NewUserUseCase creates a UserUseCase backed by repo.
func NewUserUseCase(repo UserRepository, hasher PasswordHasher) UserUseCase {
	return &userUseCase{repo: repo, hasher: hasher}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *userUseCase) ensureEmailAvailable(ctx context.Context, email string) error {
	exists, err := uc.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return apperrors.Wrap(err, "failed to check email")
	}
	if exists {
		return &apperrors.DuplicateKeyError{Field: "email", Value: email}
	}
	return nil
}

func (uc *userUseCase) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.ApplyDefaults()
	user.Email = normalizeEmail(user.Email)

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := uc.ensureEmailAvailable(ctx, user.Email); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(user.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}
	user.Password = hash

	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) Get(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *userUseCase) List(ctx context.Context) ([]domain.User, error) {
	return uc.repo.List(ctx)
}

// Update re-checks email ownership when the address changes and validates
// the patched user before writing only the changed fields.
func (uc *userUseCase) Update(ctx context.Context, id bson.ObjectID, patch domain.UserPatch) (*domain.User, error) {
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
	}

	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	if patch.Email != nil && *patch.Email != current.Email {
		if err := uc.ensureEmailAvailable(ctx, *patch.Email); err != nil {
			return nil, err
		}
	}

	patch.Apply(current)
	if err := current.Validate(); err != nil {
		return nil, err
	}

	return uc.repo.Update(ctx, id, patch)
}

func (uc *userUseCase) Delete(ctx context.Context, id bson.ObjectID) error {
	return uc.repo.Delete(ctx, id)
}
