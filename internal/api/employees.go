package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/copypoint/cp-backend/internal/middleware"
	"github.com/copypoint/cp-backend/internal/repository"
)

type employeeResponse struct {
	UserID      int64     `json:"user_id"`
	Email       string    `json:"email"`
	CopypointID int64     `json:"copypoint_id"`
	Role        string    `json:"role"`
	GrantedAt   time.Time `json:"granted_at"`
	Active      bool      `json:"active"`
}

func toEmployeeResponse(e repository.Employee) employeeResponse {
	return employeeResponse{
		UserID:      e.UserID,
		Email:       e.Email,
		CopypointID: e.CopypointID,
		Role:        e.RoleName,
		GrantedAt:   e.GrantedAt,
		Active:      e.Active,
	}
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	cp, ok, err := s.copypointInStore(r)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(w, "copypoint")
			return
		}
		middleware.GetLoggerFromContext(r.Context()).Error("copypoint lookup failed", "error", err)
		internalError(w, "could not list employees")
		return
	}
	if !ok {
		validationErr(w, "invalid store or copypoint id")
		return
	}

	employees, err := s.employees.ListByCopypoint(r.Context(), cp.ID)
	if err != nil {
		middleware.GetLoggerFromContext(r.Context()).Error("employee list failed", "copypoint_id", cp.ID, "error", err)
		internalError(w, "could not list employees")
		return
	}

	out := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}
