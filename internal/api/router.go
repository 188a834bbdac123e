package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/wanderly/auth-service/internal/api/handler"
	"github.com/wanderly/auth-service/internal/api/middleware"
	"github.com/wanderly/auth-service/internal/core/ports"
	"github.com/wanderly/auth-service/internal/core/service"
	"github.com/wanderly/auth-service/internal/infrastructure/config"
	"github.com/wanderly/auth-service/internal/infrastructure/crypto"
	"github.com/wanderly/auth-service/internal/infrastructure/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, repo ports.UserRepository, throttle ports.LoginThrottle, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// Credentialed CORS for the configured frontend origin; preflight
	// requests short-circuit inside the middleware.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	// --- Dependencies ---
	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	tokens := token.NewJWTProvider(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(repo, hasher, tokens, throttle, log)
	session := handler.NewSessionBinder(cfg.TokenTTL, cfg.Env == "production")
	authHandler := handler.NewAuthHandler(authService, session)
	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/check-session", authHandler.CheckSession)
	e.GET("/auth/profile", authHandler.GetProfile, authMiddleware)
	e.PUT("/auth/profile", authHandler.UpdateProfile, authMiddleware)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler(repo)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
