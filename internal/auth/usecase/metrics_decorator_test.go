package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iamRazzakk/storefront-api/internal/auth/domain"
	"github.com/iamRazzakk/storefront-api/internal/auth/usecase/mocks"
	"github.com/iamRazzakk/storefront-api/internal/metrics"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", mock.Anything, "auth", operation, status).Once()
	m.On("RecordDuration", mock.Anything, "auth", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestAuthMetricsDecorator(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Login", func(t *testing.T) {
		next := mocks.NewMockAuthUseCase(t)
		m := &mockBusinessMetrics{}
		credentials := domain.Credentials{Email: "jane@example.com", Password: "Secret#123"}
		session := &domain.Session{Token: "t"}

		next.On("Login", ctx, credentials).Return(session, nil).Once()
		expectMetrics(m, "auth_login", metrics.StatusSuccess)

		result, err := NewAuthUseCaseWithMetrics(next, m).Login(ctx, credentials)

		require.NoError(t, err)
		assert.Same(t, session, result)
		m.AssertExpectations(t)
	})

	t.Run("Error_Login", func(t *testing.T) {
		next := mocks.NewMockAuthUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("Login", ctx, domain.Credentials{}).Return(nil, domain.ErrInvalidCredentials).Once()
		expectMetrics(m, "auth_login", metrics.StatusError)

		_, err := NewAuthUseCaseWithMetrics(next, m).Login(ctx, domain.Credentials{})

		assert.Same(t, domain.ErrInvalidCredentials, err)
		m.AssertExpectations(t)
	})

	t.Run("Error_Authenticate", func(t *testing.T) {
		next := mocks.NewMockAuthUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("Authenticate", ctx, "bad").Return(nil, domain.ErrInvalidCredentials).Once()
		expectMetrics(m, "auth_authenticate", metrics.StatusError)

		_, err := NewAuthUseCaseWithMetrics(next, m).Authenticate(ctx, "bad")

		assert.Error(t, err)
		m.AssertExpectations(t)
	})
}
