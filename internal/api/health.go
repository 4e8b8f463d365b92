package api

import (
	"net/http"
	"time"

	"github.com/copypoint/cp-backend/internal/middleware"
)

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLoggerFromContext(ctx)

	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Services:  map[string]string{"database": "ok", "cache": "ok"},
	}
	status := http.StatusOK

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			logger.Error("health: database ping failed", "error", err)
			resp.Services["database"] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			logger.Warn("health: cache ping failed", "error", err)
			resp.Services["cache"] = "unavailable"
			if resp.Status == "ok" {
				resp.Status = "degraded"
			}
		}
	}

	writeJSON(w, status, resp)
}
