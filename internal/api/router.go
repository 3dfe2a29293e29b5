package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/memoboard/memo-api/internal/api/handler"
	"github.com/memoboard/memo-api/internal/api/middleware"
	"github.com/memoboard/memo-api/internal/core/ports"
	"github.com/memoboard/memo-api/internal/core/token"
)

// Deps carries the wired collaborators the router needs.
type Deps struct {
	Codec          *token.Codec
	Users          ports.UserRepository
	AuthService    ports.AuthService
	MemoService    ports.MemoService
	CommentService ports.CommentService
	Audit          ports.AuditSink
	TokenTTL       time.Duration
	Mongo          *mongo.Database
	Redis          *redis.Client
	Log            zerolog.Logger
}

// Exemptions is the static route exemption table: requests matching a rule
// bypass authentication. Ordered, first match wins; no match means a
// credential is required. Signup and login live under /api/user (login is
// where a credential is minted, so it cannot require one), all GETs are safe
// reads, and the operational endpoints carry no user data.
var Exemptions = middleware.ExemptionTable{
	{PathPrefix: "/api/user/"},
	{PathPrefix: "/", Method: http.MethodGet},
}

// NewRouter builds the Echo instance with the middleware chain composed in
// its definitive order: recover, request id, metrics, request logging, auth.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware, in chain order ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("memoboard"))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Auth(d.Codec, d.Users, Exemptions, d.Audit, d.Log))

	// --- Auth routes (exempt) ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.TokenTTL)
	e.POST("/api/user/signup", authHandler.Signup)
	e.POST("/api/user/login", authHandler.Login)

	// --- Memo routes ---
	memoHandler := handler.NewMemoHandler(d.MemoService)
	e.POST("/api/memos", memoHandler.Create)
	e.GET("/api/memos", memoHandler.GetAll)
	e.GET("/api/memos/:id", memoHandler.GetOne)
	e.PUT("/api/memos/:id", memoHandler.Update)
	e.DELETE("/api/memos/:id", memoHandler.Delete)

	// --- Comment routes ---
	commentHandler := handler.NewCommentHandler(d.CommentService)
	e.POST("/api/comment", commentHandler.Create)
	e.PUT("/api/comment/:id", commentHandler.Update)
	e.DELETE("/api/comment/:id", commentHandler.Delete)

	// --- Operational endpoints (GET, exempt) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if d.Mongo != nil && d.Redis != nil {
		readiness := handler.NewReadinessHandler(d.Mongo, d.Redis)
		e.GET("/health/ready", readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
