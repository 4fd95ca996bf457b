package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/metrics"
	"github.com/iamRazzakk/storefront-api/internal/user/domain"
)

const metricsDomain = "users"

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	start := time.Now()
	created, err := u.next.Create(ctx, user)
	metrics.Observe(ctx, u.metrics, metricsDomain, "user_create", start, err)
	return created, err
}

func (u *userUseCaseWithMetrics) Get(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, id)
	metrics.Observe(ctx, u.metrics, metricsDomain, "user_get", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) List(ctx context.Context) ([]domain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx)
	metrics.Observe(ctx, u.metrics, metricsDomain, "user_list", start, err)
	return users, err
}

func (u *userUseCaseWithMetrics) Update(
	ctx context.Context,
	id bson.ObjectID,
	patch domain.UserPatch,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Update(ctx, id, patch)
	metrics.Observe(ctx, u.metrics, metricsDomain, "user_update", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Delete(ctx context.Context, id bson.ObjectID) error {
	start := time.Now()
	err := u.next.Delete(ctx, id)
	metrics.Observe(ctx, u.metrics, metricsDomain, "user_delete", start, err)
	return err
}
