package main

import (
	"context"
	"log"

	"github.com/copypoint/cp-backend/internal/audit"
	"github.com/copypoint/cp-backend/internal/config"
	"github.com/copypoint/cp-backend/internal/database"
	"github.com/copypoint/cp-backend/internal/logging"
	"github.com/copypoint/cp-backend/internal/repository"
)

func main() {
	cfg := config.Load()

	if err := logging.Init(&cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.New(context.Background(), &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	worker := audit.NewWorker(&cfg.Redis, repository.NewAuditEvents(db.Pool()))

	log.Println("Starting audit worker...")
	if err := worker.Start(); err != nil {
		log.Fatalf("Worker failed to start: %v", err)
	}
}
