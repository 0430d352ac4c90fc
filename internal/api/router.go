package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/securelogin/auth-service/docs"
	"github.com/securelogin/auth-service/internal/api/handler"
	"github.com/securelogin/auth-service/internal/api/session"
	"github.com/securelogin/auth-service/internal/core/ports"
)

// Deps carries the wired dependencies the router needs. Mongo and Redis are
// nil when the in-memory fallbacks are in use; the readiness probe reports
// them as disabled.
type Deps struct {
	Auth          ports.AuthService
	Tokens        ports.TokenService
	Mongo         *mongo.Database
	Redis         *redis.Client
	SecureCookies bool
	Log           zerolog.Logger
	// Metrics defaults to the process-wide registerer; tests inject their
	// own registry so routers can be built repeatedly.
	Metrics prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	registerer := d.Metrics
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "auth_http",
		Registerer: registerer,
	}))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.SecureCookies, d.Log)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Pages ---
	pages := handler.NewPagesHandler()
	e.GET("/", pages.Home)
	e.GET("/dashboard", pages.Dashboard, session.Require(d.Tokens, d.Log))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
