package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/copypoint/cp-backend/internal/logging"
	"github.com/copypoint/cp-backend/internal/rbac"
	"github.com/copypoint/cp-backend/internal/repository"
)

// Authenticator turns a Bearer token into an identity attached to the
// request context. It does not reject requests itself: authorization,
// including the decision that an identity is required at all, belongs to
// the gate downstream.
type Authenticator struct {
	jwtService *JWTService
	users      UserStore
}

func NewAuthenticator(jwtService *JWTService, users UserStore) *Authenticator {
	return &Authenticator{
		jwtService: jwtService,
		users:      users,
	}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.identify(r)
		if err != nil {
			logging.Debug("Request not authenticated", "path", r.URL.Path, "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if identity != nil {
			ctx := authz.ContextWithIdentity(r.Context(), *identity)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) identify(r *http.Request) (*authz.Identity, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, errors.New("invalid authorization header format")
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	claims, err := a.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.Status != rbac.StatusActive {
		return nil, ErrAccountInactive
	}

	return &authz.Identity{
		ID:     user.ID,
		Email:  user.Email,
		Status: user.Status,
	}, nil
}

// CurrentUser loads the full user record for the authenticated identity.
func (a *Authenticator) CurrentUser(ctx context.Context) (repository.User, bool) {
	identity, ok := authz.IdentityFromContext(ctx)
	if !ok {
		return repository.User{}, false
	}
	user, err := a.users.GetByID(ctx, identity.ID)
	if err != nil {
		return repository.User{}, false
	}
	return user, true
}
