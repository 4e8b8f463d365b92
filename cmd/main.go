package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/copypoint/cp-backend/internal/config"
	"github.com/copypoint/cp-backend/internal/container"
	"github.com/copypoint/cp-backend/internal/logging"
	appmw "github.com/copypoint/cp-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func main() {
	cfg := config.Load()
	if err := logging.Init(&cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	c, err := container.New(context.Background(), *cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Cleanup()

	r := chi.NewMux()

	r.Use(appmw.RequestContext)
	r.Use(appmw.LoggingMiddleware)
	r.Use(appmw.NewCORSHandler(&cfg.CORS))
	r.Use(func(next http.Handler) http.Handler {
		return appmw.RateLimit(next, 20, 10)
	})
	r.Use(c.Authenticator.Middleware)
	r.Use(c.Gate.Middleware)

	c.Server.RegisterRoutes(r)

	// Refuse to start if any registered route has no entry in the
	// rule table: a gap would otherwise surface as a runtime 403.
	var routes []authz.Route
	err = chi.Walk(r, func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, authz.Route{Method: method, Pattern: pattern})
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to walk routes: %v", err)
	}
	if err := c.Rules.CheckCoverage(routes); err != nil {
		log.Fatalf("Endpoint rule coverage check failed: %v", err)
	}

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Server.Port)
	s := &http.Server{
		Handler: r,
		Addr:    addr,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logging.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server shutdown failed", "error", err)
		}
		c.Cleanup()
		os.Exit(0)
	}()

	logging.Info("Server starting", "addr", addr)
	log.Fatal(s.ListenAndServe())
}
