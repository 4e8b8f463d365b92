package api

import (
	"context"

	"github.com/copypoint/cp-backend/internal/repository"
)

// AuthService covers the credential flows the auth handlers need.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (repository.User, error)
	SignIn(ctx context.Context, email, password string) (access, refresh string, err error)
	Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (repository.User, error)
	Create(ctx context.Context, email, passwordHash string) (repository.User, error)
}

type StoreRepo interface {
	GetByID(ctx context.Context, id int64) (repository.Store, error)
	List(ctx context.Context) ([]repository.Store, error)
	Create(ctx context.Context, name string, ownerID int64) (repository.Store, error)
}

type CopypointRepo interface {
	GetByID(ctx context.Context, id int64) (repository.Copypoint, error)
	ListByStore(ctx context.Context, storeID int64) ([]repository.Copypoint, error)
	Create(ctx context.Context, storeID int64, name string) (repository.Copypoint, error)
}

type SaleRepo interface {
	ListByCopypoint(ctx context.Context, copypointID int64) ([]repository.Sale, error)
	Create(ctx context.Context, copypointID, sellerID, totalCents int64) (repository.Sale, error)
}

type PaymentMethodRepo interface {
	ListActive(ctx context.Context) ([]repository.PaymentMethod, error)
}

type EmployeeRepo interface {
	ListByCopypoint(ctx context.Context, copypointID int64) ([]repository.Employee, error)
}

// Pinger reports backing-service liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}
