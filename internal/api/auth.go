package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/copypoint/cp-backend/internal/auth"
	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/copypoint/cp-backend/internal/middleware"
	"github.com/copypoint/cp-backend/internal/repository"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u repository.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Status: u.Status, CreatedAt: u.CreatedAt}
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLoggerFromContext(r.Context())

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationErr(w, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		validationErr(w, "email and password are required")
		return
	}

	access, refresh, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			unauthorized(w, "invalid credentials")
		case errors.Is(err, auth.ErrAccountInactive):
			writeError(w, http.StatusForbidden, CodePermissionDenied, "account is not active")
		default:
			logger.Error("sign-in failed", "error", err)
			internalError(w, "sign-in failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	})
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLoggerFromContext(r.Context())

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationErr(w, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		validationErr(w, "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		validationErr(w, "password must be at least 8 characters")
		return
	}

	user, err := s.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			conflictErr(w, "email already registered")
			return
		}
		logger.Error("sign-up failed", "error", err)
		internalError(w, "sign-up failed")
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		validationErr(w, "refresh_token is required")
		return
	}

	access, refresh, err := s.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshInvalid) || errors.Is(err, auth.ErrAccountInactive) {
			unauthorized(w, "invalid refresh token")
			return
		}
		middleware.GetLoggerFromContext(r.Context()).Error("token refresh failed", "error", err)
		internalError(w, "token refresh failed")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		validationErr(w, "refresh_token is required")
		return
	}

	if err := s.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		middleware.GetLoggerFromContext(r.Context()).Error("logout failed", "error", err)
		internalError(w, "logout failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromContext(r.Context())
	if !ok {
		unauthorized(w, "authentication required")
		return
	}

	user, err := s.users.GetByID(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(w, "user")
			return
		}
		middleware.GetLoggerFromContext(r.Context()).Error("profile lookup failed", "error", err)
		internalError(w, "profile lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
