package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/copypoint/cp-backend/internal/middleware"
	"github.com/copypoint/cp-backend/internal/repository"
)

type copypointResponse struct {
	ID        int64     `json:"id"`
	StoreID   int64     `json:"store_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toCopypointResponse(cp repository.Copypoint) copypointResponse {
	return copypointResponse{
		ID:        cp.ID,
		StoreID:   cp.StoreID,
		Name:      cp.Name,
		Active:    cp.Active,
		CreatedAt: cp.CreatedAt,
	}
}

type createCopypointRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListCopypoints(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathID(r, "storeID")
	if !ok {
		validationErr(w, "invalid store id")
		return
	}

	points, err := s.copypoints.ListByStore(r.Context(), storeID)
	if err != nil {
		middleware.GetLoggerFromContext(r.Context()).Error("copypoint list failed", "store_id", storeID, "error", err)
		internalError(w, "could not list copypoints")
		return
	}

	out := make([]copypointResponse, 0, len(points))
	for _, cp := range points {
		out = append(out, toCopypointResponse(cp))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCopypoint(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathID(r, "storeID")
	if !ok {
		validationErr(w, "invalid store id")
		return
	}

	// The store must exist before a copypoint can hang off it.
	if _, err := s.stores.GetByID(r.Context(), storeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(w, "store")
			return
		}
		middleware.GetLoggerFromContext(r.Context()).Error("store lookup failed", "store_id", storeID, "error", err)
		internalError(w, "could not create copypoint")
		return
	}

	var req createCopypointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationErr(w, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		validationErr(w, "name is required")
		return
	}

	cp, err := s.copypoints.Create(r.Context(), storeID, req.Name)
	if err != nil {
		middleware.GetLoggerFromContext(r.Context()).Error("copypoint creation failed", "store_id", storeID, "error", err)
		internalError(w, "could not create copypoint")
		return
	}

	writeJSON(w, http.StatusCreated, toCopypointResponse(cp))
}
