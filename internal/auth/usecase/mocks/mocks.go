// Package mocks provides mock implementations of the auth use case, its user
// repository and its services for testing.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/auth/domain"
	userDomain "github.com/iamRazzakk/storefront-api/internal/user/domain"
)

// MockAuthUseCase is a mock implementation of AuthUseCase.
type MockAuthUseCase struct {
	mock.Mock
}

// NewMockAuthUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockAuthUseCase(t *testing.T) *MockAuthUseCase {
	m := &MockAuthUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Login mocks the Login method.
func (m *MockAuthUseCase) Login(ctx context.Context, credentials domain.Credentials) (*domain.Session, error) {
	args := m.Called(ctx, credentials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// Authenticate mocks the Authenticate method.
func (m *MockAuthUseCase) Authenticate(ctx context.Context, token string) (*userDomain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// MockUserRepository is a mock implementation of the auth UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock whose expectations are asserted on cleanup.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// GetByID mocks the GetByID method.
func (m *MockUserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// GetByEmail mocks the GetByEmail method.
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// RecordLoginFailure mocks the RecordLoginFailure method.
func (m *MockUserRepository) RecordLoginFailure(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// RecordLoginSuccess mocks the RecordLoginSuccess method.
func (m *MockUserRepository) RecordLoginSuccess(
	ctx context.Context,
	id bson.ObjectID,
	at time.Time,
) (*userDomain.User, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// MockPasswordService is a mock implementation of PasswordService.
type MockPasswordService struct {
	mock.Mock
}

// NewMockPasswordService creates a mock whose expectations are asserted on cleanup.
func NewMockPasswordService(t *testing.T) *MockPasswordService {
	m := &MockPasswordService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Hash mocks the Hash method.
func (m *MockPasswordService) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method.
func (m *MockPasswordService) Verify(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

// MockTokenService is a mock implementation of TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock whose expectations are asserted on cleanup.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Issue mocks the Issue method.
func (m *MockTokenService) Issue(user *userDomain.User, now time.Time) (string, time.Time, error) {
	args := m.Called(user, now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// Parse mocks the Parse method.
func (m *MockTokenService) Parse(token string) (*domain.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claims), args.Error(1)
}
