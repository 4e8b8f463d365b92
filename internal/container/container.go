package container

import (
	"context"
	"fmt"

	"github.com/copypoint/cp-backend/internal/api"
	"github.com/copypoint/cp-backend/internal/audit"
	"github.com/copypoint/cp-backend/internal/auth"
	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/copypoint/cp-backend/internal/config"
	"github.com/copypoint/cp-backend/internal/database"
	"github.com/copypoint/cp-backend/internal/grants"
	"github.com/copypoint/cp-backend/internal/logging"
	"github.com/copypoint/cp-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	Config        *config.Config
	Database      *database.Database
	RedisClient   *redis.Client
	Queue         *audit.TaskQueue
	AuthService   *auth.AuthService
	Authenticator *auth.Authenticator
	Rules         *authz.RuleTable
	Gate          *authz.Gate
	Server        *api.Server
	Worker        *audit.Worker
}

func New(ctx context.Context, cfg config.Config) (*Container, error) {
	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	taskQueue, err := audit.NewQueue(&cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Two separate Redis connection pools are used: the asynq audit
	// queue manages its own connection, and this client serves auth
	// state (refresh tokens) and the grant cache.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	jwtService, err := auth.NewJWTService([]byte(cfg.JWT.SigningKey), cfg.JWT.Issuer, cfg.JWT.Expiry)
	if err != nil {
		db.Close()
		return nil, err
	}

	users := repository.NewUsers(db.Pool())
	stores := repository.NewStores(db.Pool())
	copypoints := repository.NewCopypoints(db.Pool())
	sales := repository.NewSales(db.Pool())
	paymentMethods := repository.NewPaymentMethods(db.Pool())
	employees := repository.NewEmployees(db.Pool())
	auditEvents := repository.NewAuditEvents(db.Pool())

	authService := auth.NewAuthService(redisClient, jwtService, users, cfg.Auth)
	authenticator := auth.NewAuthenticator(jwtService, users)

	rules, err := loadRules(cfg.Authz)
	if err != nil {
		db.Close()
		return nil, err
	}

	provider := grants.NewProvider(grants.NewPostgresGrantStore(db.Pool()))
	catalog := grants.NewCachedCatalog(provider, redisClient, cfg.Authz.GrantCacheTTL)

	gate := authz.NewGate(
		rules,
		authz.NewContextBuilder(catalog),
		authz.NewEngine(),
		audit.NewRecorder(taskQueue),
	)

	server := api.NewServer(api.ServerDeps{
		Auth:           authService,
		Users:          users,
		Stores:         stores,
		Copypoints:     copypoints,
		Sales:          sales,
		PaymentMethods: paymentMethods,
		Employees:      employees,
		DB:             db,
		Cache:          redisPinger{redisClient},
	})

	worker := audit.NewWorker(&cfg.Redis, auditEvents)

	logging.Info("Connected to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port)

	return &Container{
		Config:        &cfg,
		Database:      db,
		RedisClient:   redisClient,
		Queue:         taskQueue,
		AuthService:   authService,
		Authenticator: authenticator,
		Rules:         rules,
		Gate:          gate,
		Server:        server,
		Worker:        worker,
	}, nil
}

func loadRules(cfg config.AuthzConfig) (*authz.RuleTable, error) {
	if cfg.RulesFile != "" {
		rules, err := authz.RulesFromFile(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("loading rules from %s: %w", cfg.RulesFile, err)
		}
		return rules, nil
	}
	return authz.DefaultRules()
}

// redisPinger adapts the go-redis client to the health-check interface.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (c *Container) Cleanup() {
	if c.Queue != nil {
		c.Queue.Close()
		logging.Info("Queue client closed")
	}
	if c.Worker != nil {
		c.Worker.Close()
		logging.Info("Worker closed")
	}
	if c.RedisClient != nil {
		c.RedisClient.Close()
		logging.Info("Redis client closed")
	}
	if c.Database != nil {
		c.Database.Close()
		logging.Info("Database connection closed")
	}
}
