package api

import (
	"net/http"

	"github.com/copypoint/cp-backend/internal/middleware"
	"github.com/copypoint/cp-backend/internal/repository"
)

type paymentMethodResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

func toPaymentMethodResponse(pm repository.PaymentMethod) paymentMethodResponse {
	return paymentMethodResponse{ID: pm.ID, Code: pm.Code, Name: pm.Name}
}

func (s *Server) handleListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.paymentMethods.ListActive(r.Context())
	if err != nil {
		middleware.GetLoggerFromContext(r.Context()).Error("payment method list failed", "error", err)
		internalError(w, "could not list payment methods")
		return
	}

	out := make([]paymentMethodResponse, 0, len(methods))
	for _, pm := range methods {
		out = append(out, toPaymentMethodResponse(pm))
	}
	writeJSON(w, http.StatusOK, out)
}
