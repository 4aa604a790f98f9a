package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sinarjaya/maintenance-panel/internal/api/handler"
	"github.com/sinarjaya/maintenance-panel/internal/api/middleware"
	"github.com/sinarjaya/maintenance-panel/internal/api/view"
	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
	"github.com/sinarjaya/maintenance-panel/internal/core/service"
	"github.com/sinarjaya/maintenance-panel/internal/infrastructure/config"
	"github.com/sinarjaya/maintenance-panel/internal/infrastructure/db/postgres"
	redisdb "github.com/sinarjaya/maintenance-panel/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = view.MustNewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// Browser forms can only POST; edit and delete forms tunnel the real
	// verb through a hidden _method field.
	e.Pre(echomiddleware.MethodOverrideWithConfig(echomiddleware.MethodOverrideConfig{
		Getter: echomiddleware.MethodFromForm("_method"),
	}))

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("panel"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	stateStore := redisdb.NewStateStore(rdb)

	userService := service.NewUserService(userRepo, log)
	vendorService := service.NewVendorService(vendorRepo, log)
	authService := service.NewAuthService(userRepo, cfg.SessionSecret, cfg.SessionTTL)

	secureCookie := cfg.Env == "production"
	authHandler := handler.NewAuthHandler(authService, stateStore, cfg.SessionTTL, secureCookie)
	userHandler := handler.NewUserHandler(userService, stateStore)
	vendorHandler := handler.NewVendorHandler(vendorService, stateStore)

	// --- Auth routes ---
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/maintenance/user")
	})

	// --- Maintenance panel (admin only) ---
	panel := e.Group("/maintenance",
		middleware.SessionAuth(cfg.SessionSecret),
		middleware.RBAC(domain.RoleAdmin),
	)
	panel.GET("/user", userHandler.List)
	panel.POST("/user", userHandler.Create)
	panel.PUT("/user/:id", userHandler.Update)
	panel.DELETE("/user/:id", userHandler.Delete)

	panel.GET("/vendor", vendorHandler.List)
	panel.POST("/vendor", vendorHandler.Create)
	panel.PUT("/vendor/:id", vendorHandler.Update)
	panel.DELETE("/vendor/:id", vendorHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
