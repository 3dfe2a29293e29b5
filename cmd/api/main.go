// Memoboard API entrypoint: wires configuration, logging, storage, the audit
// pipeline, and the HTTP router, then serves until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/memoboard/memo-api/docs"
	"github.com/memoboard/memo-api/internal/api"
	"github.com/memoboard/memo-api/internal/core/password"
	"github.com/memoboard/memo-api/internal/core/service"
	"github.com/memoboard/memo-api/internal/core/token"
	mongodb "github.com/memoboard/memo-api/internal/infrastructure/db/mongo"
	redisdb "github.com/memoboard/memo-api/internal/infrastructure/db/redis"
	"github.com/memoboard/memo-api/internal/infrastructure/queue"
	"github.com/memoboard/memo-api/internal/pkg/config"
	"github.com/memoboard/memo-api/pkg/logger"
)

// @title        Memoboard API
// @version      1.0
// @description  Memo and comment service with stateless token authentication.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Open(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Audit pipeline ---
	auditRepo := mongodb.NewAuditRepository(db)
	auditService := service.NewAuditService(auditRepo, logger.With("audit"))
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, logger.With("dispatcher"))
	dispatcher.Start(ctx)

	// --- Core services ---
	users := mongodb.NewUserRepository(db)
	memos := mongodb.NewMemoRepository(db)
	comments := mongodb.NewCommentRepository(db)

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	hasher := password.NewHasher(cfg.BcryptCost)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.LoginMaxFailures, cfg.LoginWindow)

	authService := service.NewAuthService(users, hasher, codec, cfg.AdminToken, throttle, dispatcher, logger.With("auth"))
	memoService := service.NewMemoService(memos, comments, dispatcher, logger.With("memo"))
	commentService := service.NewCommentService(comments, memos, dispatcher, logger.With("comment"))

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Codec:          codec,
		Users:          users,
		AuthService:    authService,
		MemoService:    memoService,
		CommentService: commentService,
		Audit:          dispatcher,
		TokenTTL:       cfg.TokenTTL,
		Mongo:          db,
		Redis:          rdb,
		Log:            logger.With("http"),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("memoboard api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
