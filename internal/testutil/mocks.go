package testutil

import (
	"context"
	"testing"

	"github.com/copypoint/cp-backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of the auth service interface
type MockAuthService struct {
	mock.Mock
}

// NewMockAuthService creates a new mock auth service
func NewMockAuthService(t *testing.T) *MockAuthService {
	m := &MockAuthService{}
	m.Test(t)
	return m
}

func (m *MockAuthService) SignUp(ctx context.Context, email, password string) (repository.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(repository.User), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

// MockUserReader is a mock implementation of the user repository interface
type MockUserReader struct {
	mock.Mock
}

// NewMockUserReader creates a new mock user reader
func NewMockUserReader(t *testing.T) *MockUserReader {
	m := &MockUserReader{}
	m.Test(t)
	return m
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (repository.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.User), args.Error(1)
}

func (m *MockUserReader) Create(ctx context.Context, email, passwordHash string) (repository.User, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Get(0).(repository.User), args.Error(1)
}

// MockStoreRepo is a mock implementation of the store repository interface
type MockStoreRepo struct {
	mock.Mock
}

// NewMockStoreRepo creates a new mock store repository
func NewMockStoreRepo(t *testing.T) *MockStoreRepo {
	m := &MockStoreRepo{}
	m.Test(t)
	return m
}

func (m *MockStoreRepo) GetByID(ctx context.Context, id int64) (repository.Store, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.Store), args.Error(1)
}

func (m *MockStoreRepo) List(ctx context.Context) ([]repository.Store, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.Store), args.Error(1)
}

func (m *MockStoreRepo) Create(ctx context.Context, name string, ownerID int64) (repository.Store, error) {
	args := m.Called(ctx, name, ownerID)
	return args.Get(0).(repository.Store), args.Error(1)
}

// MockCopypointRepo is a mock implementation of the copypoint repository interface
type MockCopypointRepo struct {
	mock.Mock
}

// NewMockCopypointRepo creates a new mock copypoint repository
func NewMockCopypointRepo(t *testing.T) *MockCopypointRepo {
	m := &MockCopypointRepo{}
	m.Test(t)
	return m
}

func (m *MockCopypointRepo) GetByID(ctx context.Context, id int64) (repository.Copypoint, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.Copypoint), args.Error(1)
}

func (m *MockCopypointRepo) ListByStore(ctx context.Context, storeID int64) ([]repository.Copypoint, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]repository.Copypoint), args.Error(1)
}

func (m *MockCopypointRepo) Create(ctx context.Context, storeID int64, name string) (repository.Copypoint, error) {
	args := m.Called(ctx, storeID, name)
	return args.Get(0).(repository.Copypoint), args.Error(1)
}

// MockSaleRepo is a mock implementation of the sale repository interface
type MockSaleRepo struct {
	mock.Mock
}

// NewMockSaleRepo creates a new mock sale repository
func NewMockSaleRepo(t *testing.T) *MockSaleRepo {
	m := &MockSaleRepo{}
	m.Test(t)
	return m
}

func (m *MockSaleRepo) ListByCopypoint(ctx context.Context, copypointID int64) ([]repository.Sale, error) {
	args := m.Called(ctx, copypointID)
	return args.Get(0).([]repository.Sale), args.Error(1)
}

func (m *MockSaleRepo) Create(ctx context.Context, copypointID, sellerID, totalCents int64) (repository.Sale, error) {
	args := m.Called(ctx, copypointID, sellerID, totalCents)
	return args.Get(0).(repository.Sale), args.Error(1)
}

// MockPaymentMethodRepo is a mock implementation of the payment method repository interface
type MockPaymentMethodRepo struct {
	mock.Mock
}

// NewMockPaymentMethodRepo creates a new mock payment method repository
func NewMockPaymentMethodRepo(t *testing.T) *MockPaymentMethodRepo {
	m := &MockPaymentMethodRepo{}
	m.Test(t)
	return m
}

func (m *MockPaymentMethodRepo) ListActive(ctx context.Context) ([]repository.PaymentMethod, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.PaymentMethod), args.Error(1)
}

// MockEmployeeRepo is a mock implementation of the employee repository interface
type MockEmployeeRepo struct {
	mock.Mock
}

// NewMockEmployeeRepo creates a new mock employee repository
func NewMockEmployeeRepo(t *testing.T) *MockEmployeeRepo {
	m := &MockEmployeeRepo{}
	m.Test(t)
	return m
}

func (m *MockEmployeeRepo) ListByCopypoint(ctx context.Context, copypointID int64) ([]repository.Employee, error) {
	args := m.Called(ctx, copypointID)
	return args.Get(0).([]repository.Employee), args.Error(1)
}
