package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/copypoint/cp-backend/internal/auth"
	"github.com/copypoint/cp-backend/internal/middleware"
)

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleCreateUser is the administrative registration path. It shares
// validation with sign-up but goes through the auth service so the
// password is hashed the same way.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLoggerFromContext(r.Context())

	var req createUserRequest
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
		logger.Error("user creation failed", "error", err)
		internalError(w, "user creation failed")
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}
