package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/copypoint/cp-backend/internal/config"
	"github.com/copypoint/cp-backend/internal/rbac"
	"github.com/copypoint/cp-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is not active")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrRefreshInvalid     = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore is the slice of the persistence layer the auth service needs.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (repository.User, error)
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	Create(ctx context.Context, email, passwordHash string) (repository.User, error)
}

// AuthService handles password sign-in and rotating refresh tokens.
type AuthService struct {
	store         *redisStore
	jwt           *JWTService
	users         UserStore
	refreshExpiry time.Duration
}

func NewAuthService(redisClient *redis.Client, jwtSvc *JWTService, users UserStore, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		store:         newRedisStore(redisClient),
		jwt:           jwtSvc,
		users:         users,
		refreshExpiry: cfg.RefreshExpiry,
	}
}

// SignUp registers a new account with an active status.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (repository.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return repository.User{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return repository.User{}, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, fmt.Errorf("hashing password: %w", err)
	}

	return s.users.Create(ctx, email, string(hash))
}

// SignIn checks the password and returns a new access + refresh token pair.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("loading user: %w", err)
	}

	if user.Status != rbac.StatusActive {
		return "", "", ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, user.ID)
}

// Refresh rotates a refresh token: the presented token is invalidated and a
// fresh pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (newAccess, newRefresh string, err error) {
	hash := hashString(refreshToken)

	userIDStr, err := s.store.getRefreshToken(ctx, hash)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", ErrRefreshInvalid
		}
		return "", "", fmt.Errorf("retrieving refresh token: %w", err)
	}

	if err := s.store.deleteRefreshToken(ctx, hash); err != nil {
		return "", "", fmt.Errorf("rotating refresh token: %w", err)
	}

	var userID int64
	if _, err := fmt.Sscanf(userIDStr, "%d", &userID); err != nil {
		return "", "", ErrRefreshInvalid
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", "", ErrUserNotFound
	}
	if user.Status != rbac.StatusActive {
		return "", "", ErrAccountInactive
	}

	return s.issueTokenPair(ctx, user.ID)
}

// Logout invalidates the presented refresh token. Access tokens simply age
// out at their expiry.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.store.deleteRefreshToken(ctx, hashString(refreshToken))
}

func (s *AuthService) issueTokenPair(ctx context.Context, userID int64) (string, string, error) {
	access, err := s.jwt.GenerateToken(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("generating access token: %w", err)
	}

	refresh, err := generateRefreshToken()
	if err != nil {
		return "", "", fmt.Errorf("generating refresh token: %w", err)
	}

	if err := s.store.storeRefreshToken(ctx, hashString(refresh), fmt.Sprintf("%d", userID), s.refreshExpiry); err != nil {
		return "", "", fmt.Errorf("storing refresh token: %w", err)
	}

	return access, refresh, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
