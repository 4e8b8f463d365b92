package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/copypoint/cp-backend/internal/middleware"
	"github.com/copypoint/cp-backend/internal/repository"
)

type saleResponse struct {
	ID          int64     `json:"id"`
	CopypointID int64     `json:"copypoint_id"`
	SellerID    int64     `json:"seller_id"`
	TotalCents  int64     `json:"total_cents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toSaleResponse(sale repository.Sale) saleResponse {
	return saleResponse{
		ID:          sale.ID,
		CopypointID: sale.CopypointID,
		SellerID:    sale.SellerID,
		TotalCents:  sale.TotalCents,
		Status:      sale.Status,
		CreatedAt:   sale.CreatedAt,
	}
}

type createSaleRequest struct {
	TotalCents int64 `json:"total_cents"`
}

// copypointInStore loads the copypoint and checks it belongs to the
// store named in the path, so a grant on one store cannot be used to
// read another store's copypoint by mixing ids.
func (s *Server) copypointInStore(r *http.Request) (repository.Copypoint, bool, error) {
	storeID, ok := pathID(r, "storeID")
	if !ok {
		return repository.Copypoint{}, false, nil
	}
	copypointID, ok := pathID(r, "copypointID")
	if !ok {
		return repository.Copypoint{}, false, nil
	}

	cp, err := s.copypoints.GetByID(r.Context(), copypointID)
	if err != nil {
		return repository.Copypoint{}, false, err
	}
	if cp.StoreID != storeID {
		return repository.Copypoint{}, false, repository.ErrNotFound
	}
	return cp, true, nil
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	cp, ok, err := s.copypointInStore(r)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(w, "copypoint")
			return
		}
		middleware.GetLoggerFromContext(r.Context()).Error("copypoint lookup failed", "error", err)
		internalError(w, "could not list sales")
		return
	}
	if !ok {
		validationErr(w, "invalid store or copypoint id")
		return
	}

	sales, err := s.sales.ListByCopypoint(r.Context(), cp.ID)
	if err != nil {
		middleware.GetLoggerFromContext(r.Context()).Error("sale list failed", "copypoint_id", cp.ID, "error", err)
		internalError(w, "could not list sales")
		return
	}

	out := make([]saleResponse, 0, len(sales))
	for _, sale := range sales {
		out = append(out, toSaleResponse(sale))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	identity, okID := authz.IdentityFromContext(r.Context())
	if !okID {
		unauthorized(w, "authentication required")
		return
	}

	cp, ok, err := s.copypointInStore(r)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(w, "copypoint")
			return
		}
		middleware.GetLoggerFromContext(r.Context()).Error("copypoint lookup failed", "error", err)
		internalError(w, "could not record sale")
		return
	}
	if !ok {
		validationErr(w, "invalid store or copypoint id")
		return
	}

	var req createSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationErr(w, "invalid request body")
		return
	}
	if req.TotalCents <= 0 {
		validationErr(w, "total_cents must be positive")
		return
	}

	sale, err := s.sales.Create(r.Context(), cp.ID, identity.ID, req.TotalCents)
	if err != nil {
		middleware.GetLoggerFromContext(r.Context()).Error("sale creation failed", "copypoint_id", cp.ID, "error", err)
		internalError(w, "could not record sale")
		return
	}

	writeJSON(w, http.StatusCreated, toSaleResponse(sale))
}
