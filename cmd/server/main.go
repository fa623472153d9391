// @title           Auth System API
// @version         1.0
// @description     Credential registration, login and bearer-token protected profile.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/99minutos/auth-system/docs"
	"github.com/99minutos/auth-system/internal/api"
	"github.com/99minutos/auth-system/internal/api/handler"
	"github.com/99minutos/auth-system/internal/core/ports"
	"github.com/99minutos/auth-system/internal/core/service"
	"github.com/99minutos/auth-system/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/auth-system/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/auth-system/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-system/internal/infrastructure/security"
	"github.com/99minutos/auth-system/internal/infrastructure/token"
	"github.com/99minutos/auth-system/internal/pkg/config"
	"github.com/99minutos/auth-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "auth-system",
	})

	repo, health, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("failed to open user store")
	}
	defer closeStore()

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	tokens := token.NewJWTManager(cfg.JWTSecret)
	store := service.NewCredentialStore(repo, hasher)
	authService := service.NewAuthService(store, hasher, tokens, logger.Component("auth"))

	e := api.NewRouter(api.Dependencies{
		AuthService:   authService,
		TokenVerifier: tokens,
		Health:        health,
		CORSOrigins:   cfg.CORSOrigins,
		Log:           logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openStore connects the configured user repository and returns it with
// its readiness checks and a close function.
func openStore(ctx context.Context, cfg *config.Config) (ports.UserRepository, []handler.Dependency, func(), error) {
	log := logger.Component("store")

	switch cfg.Store {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "auth-system",
		})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := mongostore.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

		deps := []handler.Dependency{{Name: "mongodb", Ping: func(ctx context.Context) error {
			return mongostore.Ping(ctx, db)
		}}}
		return repo, deps, func() { disconnect(log, "mongodb", client.Disconnect) }, nil

	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

		deps := []handler.Dependency{{Name: "redis", Ping: func(ctx context.Context) error {
			return redisstore.Ping(ctx, client)
		}}}
		return redisstore.NewUserRepository(client), deps, func() {
			disconnect(log, "redis", func(context.Context) error { return client.Close() })
		}, nil

	default:
		log.Warn().Msg("using in-memory user store; records are lost on restart")
		return memory.NewUserRepository(), nil, func() {}, nil
	}
}

func disconnect(log zerolog.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Warn().Err(err).Str("dependency", name).Msg("disconnect failed")
	}
}
