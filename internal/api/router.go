package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/timekeep/timer-system/internal/api/handler"
	"github.com/timekeep/timer-system/internal/api/middleware"
	"github.com/timekeep/timer-system/internal/core/service"
	mongodb "github.com/timekeep/timer-system/internal/infrastructure/db/mongo"
	redisdb "github.com/timekeep/timer-system/internal/infrastructure/db/redis"
	"github.com/timekeep/timer-system/internal/pkg/config"
	"github.com/timekeep/timer-system/internal/ws"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	renderer, err := NewRenderer(cfg.TemplatesGlob)
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("timers"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	tokens := mongodb.NewTokenRepository(db)
	timers := mongodb.NewTimerRepository(db)
	sessions := redisdb.NewSessionStore(rdb, cfg.SessionTTL)

	sessionService := service.NewSessionService(sessions, users)
	tokenService := service.NewTokenService(tokens)
	authService := service.NewAuthService(users, sessionService, tokenService)
	timerService := service.NewTimerService(timers)

	registry := ws.NewRegistry(log)

	authHandler := handler.NewAuthHandler(authService, tokenService, cfg.CookieSecure)
	timerHandler := handler.NewTimerHandler(timerService)
	wsHandler := handler.NewWSHandler(tokenService, registry, timerService, log)

	sessionMW := middleware.Session(sessionService)

	// --- Browser flows ---
	e.Static("/static", "web/static")
	e.GET("/", authHandler.Index, sessionMW)
	e.POST("/login", authHandler.Login)
	e.POST("/signup", authHandler.Signup)
	e.GET("/logout", authHandler.Logout, sessionMW)

	// --- Timer REST API ---
	apiGroup := e.Group("/api", sessionMW)
	apiGroup.POST("/timers", timerHandler.Create)
	apiGroup.POST("/timers/:id/stop", timerHandler.Stop)
	apiGroup.GET("/timers", timerHandler.List)

	// --- Live updates ---
	e.GET("/ws", wsHandler.Handle)

	// --- Ops surface ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
