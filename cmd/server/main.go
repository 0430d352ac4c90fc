package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/securelogin/auth-service/internal/api"
	"github.com/securelogin/auth-service/internal/core/ports"
	"github.com/securelogin/auth-service/internal/core/ratelimit"
	"github.com/securelogin/auth-service/internal/core/service"
	mongodb "github.com/securelogin/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/securelogin/auth-service/internal/infrastructure/db/redis"
	"github.com/securelogin/auth-service/internal/infrastructure/queue"
	"github.com/securelogin/auth-service/internal/infrastructure/store"
	"github.com/securelogin/auth-service/internal/pkg/config"
	"github.com/securelogin/auth-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Secure Login API
// @version      1.0
// @description  Demonstration login flow: credential check, rate limiting, cookie-based sessions.
// @BasePath     /
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

	secret := cfg.JWTSecret
	if secret == "" {
		if !cfg.IsDevelopment() {
			log.Fatal().Str("env", cfg.Env).Msg("JWT_SECRET must be set outside development; refusing to start with the fallback key")
		}
		secret = config.FallbackSecret
		log.Warn().Msg("JWT_SECRET not set; signing sessions with the well-known development fallback key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Credential store: Mongo when configured, otherwise the seeded
	// in-memory list.
	var (
		users   ports.UserRepository
		mongoDB *driver.Database
	)
	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		mongoDB = db
		users = mongodb.NewUserRepository(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo credential store")
	} else {
		users = store.NewMemory(nil)
		log.Info().Msg("using in-memory credential store with the demo account")
	}

	// Rate limiter: Redis when configured (shared across replicas),
	// otherwise the in-process map with a background sweeper.
	var (
		limiter ports.RateLimiter
		rdb     *redis.Client
	)
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = client.Close()
		}()
		rdb = client
		limiter = redisdb.NewLimiter(client, cfg.RateLimit.Max, cfg.RateLimit.Window, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis rate limiter")
	} else {
		mem := ratelimit.NewMemory(cfg.RateLimit.Max, cfg.RateLimit.Window)
		mem.StartSweeper(ctx, cfg.RateLimit.Window)
		limiter = mem
	}

	// Audit trail, persisted off the login path.
	var audit ports.AuditRepository
	if mongoDB != nil {
		audit = mongodb.NewAuditRepository(mongoDB)
	} else {
		audit = store.NewAuditLog(0)
	}
	dispatcher := queue.NewDispatcher(0, audit, log)
	dispatcher.Start(ctx)

	tokens := service.NewTokenService(secret)
	auth := service.NewAuthService(users, tokens, limiter, dispatcher, log)

	e := api.NewRouter(api.Deps{
		Auth:          auth,
		Tokens:        tokens,
		Mongo:         mongoDB,
		Redis:         rdb,
		SecureCookies: cfg.IsProduction(),
		Log:           log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
