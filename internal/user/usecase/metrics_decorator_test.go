package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/metrics"
	"github.com/iamRazzakk/storefront-api/internal/user/domain"
	"github.com/iamRazzakk/storefront-api/internal/user/usecase/mocks"
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
	m.On("RecordOperation", mock.Anything, "users", operation, status).Once()
	m.On("RecordDuration", mock.Anything, "users", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestUserMetricsDecorator(t *testing.T) {
	ctx := context.Background()
	id := bson.NewObjectID()

	t.Run("Success_Create", func(t *testing.T) {
		next := mocks.NewMockUserUseCase(t)
		m := &mockBusinessMetrics{}
		user := &domain.User{Name: "Jane"}

		next.On("Create", ctx, user).Return(user, nil).Once()
		expectMetrics(m, "user_create", metrics.StatusSuccess)

		created, err := NewUserUseCaseWithMetrics(next, m).Create(ctx, user)

		require.NoError(t, err)
		assert.Same(t, user, created)
		m.AssertExpectations(t)
	})

	t.Run("Error_Get", func(t *testing.T) {
		next := mocks.NewMockUserUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("Get", ctx, id).Return(nil, domain.ErrUserNotFound).Once()
		expectMetrics(m, "user_get", metrics.StatusError)

		_, err := NewUserUseCaseWithMetrics(next, m).Get(ctx, id)

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		m.AssertExpectations(t)
	})

	t.Run("Success_List", func(t *testing.T) {
		next := mocks.NewMockUserUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("List", ctx).Return([]domain.User{}, nil).Once()
		expectMetrics(m, "user_list", metrics.StatusSuccess)

		_, err := NewUserUseCaseWithMetrics(next, m).List(ctx)

		require.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("Success_Update", func(t *testing.T) {
		next := mocks.NewMockUserUseCase(t)
		m := &mockBusinessMetrics{}
		patch := domain.UserPatch{}

		next.On("Update", ctx, id, patch).Return(&domain.User{ID: id}, nil).Once()
		expectMetrics(m, "user_update", metrics.StatusSuccess)

		_, err := NewUserUseCaseWithMetrics(next, m).Update(ctx, id, patch)

		require.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("Error_Delete", func(t *testing.T) {
		next := mocks.NewMockUserUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("Delete", ctx, id).Return(domain.ErrUserNotFound).Once()
		expectMetrics(m, "user_delete", metrics.StatusError)

		err := NewUserUseCaseWithMetrics(next, m).Delete(ctx, id)

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		m.AssertExpectations(t)
	})
}
