package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/jpsm83/notes2025back/docs"
	"github.com/jpsm83/notes2025back/internal/api/handler"
	"github.com/jpsm83/notes2025back/internal/api/middleware"
	"github.com/jpsm83/notes2025back/internal/core/service"
	"github.com/jpsm83/notes2025back/internal/core/token"
	"github.com/jpsm83/notes2025back/internal/infrastructure/config"
	mongodb "github.com/jpsm83/notes2025back/internal/infrastructure/db/mongo"
	redisdb "github.com/jpsm83/notes2025back/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// All collaborators (database, cache, audit log) are injected; the router owns
// none of their lifecycles.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, auditLog service.AuditLog, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("notes"))
	// Credentials stay enabled: the refresh cookie flows cross-site.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
	}))

	// --- Dependencies ---
	issuer := token.NewIssuer(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.RefreshTokenSecret,
		token.DefaultAccessTTL,
		token.DefaultRefreshTTL,
	)

	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	notesCache := redisdb.NewNotesCache(rdb, cfg.Redis.NotesCacheTTL())

	authService := service.NewAuthService(userRepo, issuer, auditLog, log)
	userService := service.NewUserService(userRepo, log)
	noteService := service.NewNoteService(noteRepo, userRepo, notesCache, log)

	authHandler := handler.NewAuthHandler(authService, issuer.RefreshTTL())
	userHandler := handler.NewUserHandler(userService)
	noteHandler := handler.NewNoteHandler(noteService)

	authGate := middleware.Auth(issuer)
	loginLimiter := middleware.NewLoginRateLimiter(cfg.LoginRPM)

	// --- Auth routes ---
	e.POST("/auth", authHandler.Login, loginLimiter.Middleware())
	e.GET("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)

	// --- User routes (registration is the only public one) ---
	e.POST("/users", userHandler.Create)
	users := e.Group("/users", authGate)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Note routes ---
	notes := e.Group("/notes", authGate)
	notes.GET("", noteHandler.List)
	notes.GET("/:id", noteHandler.Get)
	notes.POST("", noteHandler.Create)
	notes.PATCH("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)

	// --- Operational surface ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
