package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/copypoint/cp-backend/internal/middleware"
	"github.com/copypoint/cp-backend/internal/repository"
)

type storeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toStoreResponse(st repository.Store) storeResponse {
	return storeResponse{ID: st.ID, Name: st.Name, OwnerID: st.OwnerID, CreatedAt: st.CreatedAt}
}

type createStoreRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := s.stores.List(r.Context())
	if err != nil {
		middleware.GetLoggerFromContext(r.Context()).Error("store list failed", "error", err)
		internalError(w, "could not list stores")
		return
	}

	out := make([]storeResponse, 0, len(stores))
	for _, st := range stores {
		out = append(out, toStoreResponse(st))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "storeID")
	if !ok {
		validationErr(w, "invalid store id")
		return
	}

	store, err := s.stores.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(w, "store")
			return
		}
		middleware.GetLoggerFromContext(r.Context()).Error("store lookup failed", "store_id", id, "error", err)
		internalError(w, "could not load store")
		return
	}

	writeJSON(w, http.StatusOK, toStoreResponse(store))
}

// handleCreateStore registers a new store owned by the authenticated
// user. The route is open to any signed-in account; ownership is what
// later grants store administration.
func (s *Server) handleCreateStore(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromContext(r.Context())
	if !ok {
		unauthorized(w, "authentication required")
		return
	}

	var req createStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationErr(w, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		validationErr(w, "name is required")
		return
	}

	store, err := s.stores.Create(r.Context(), req.Name, identity.ID)
	if err != nil {
		middleware.GetLoggerFromContext(r.Context()).Error("store creation failed", "error", err)
		internalError(w, "could not create store")
		return
	}

	writeJSON(w, http.StatusCreated, toStoreResponse(store))
}
