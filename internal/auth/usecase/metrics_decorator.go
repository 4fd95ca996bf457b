package usecase

import (
	"context"
	"time"

	"github.com/iamRazzakk/storefront-api/internal/auth/domain"
	"github.com/iamRazzakk/storefront-api/internal/metrics"
	userDomain "github.com/iamRazzakk/storefront-api/internal/user/domain"
)

const metricsDomain = "auth"

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) Login(ctx context.Context, credentials domain.Credentials) (*domain.Session, error) {
	start := time.Now()
	session, err := a.next.Login(ctx, credentials)
	metrics.Observe(ctx, a.metrics, metricsDomain, "auth_login", start, err)
	return session, err
}

func (a *authUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*userDomain.User, error) {
	start := time.Now()
	user, err := a.next.Authenticate(ctx, token)
	metrics.Observe(ctx, a.metrics, metricsDomain, "auth_authenticate", start, err)
	return user, err
}
