// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and mounts them
// with their middleware.
package routes

import (
	"context"
	"time"

	"simplepay/internal/config"
	"simplepay/internal/events"
	"simplepay/internal/handlers"
	"simplepay/internal/metrics"
	"simplepay/internal/middleware"
	"simplepay/internal/repositories"
	"simplepay/internal/repositories/cache"
	"simplepay/internal/services/auth"
	"simplepay/internal/services/authorizer"
	"simplepay/internal/services/lookup"
	"simplepay/internal/services/notification"
	"simplepay/internal/services/transfer"
	"simplepay/internal/services/user"
	"simplepay/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the long-lived resources the routes are built on.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Cache     *cache.CacheService // nil when redis is disabled
	Metrics   *metrics.Prometheus
	Publisher events.Publisher
	Log       *zap.Logger

	// Authorizer overrides the HTTP authorizer client, mainly for tests.
	Authorizer authorizer.Authorizer
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	cfg := deps.Config
	log := deps.Log

	var collector metrics.Collector = metrics.Noop{}
	if deps.Metrics != nil {
		collector = deps.Metrics
	}

	var userCache cache.UserCache = cache.Noop{}
	if deps.Cache != nil {
		userCache = deps.Cache
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(deps.DB, userCache, log)
	userTypeRepo := repositories.NewUserTypeRepository(deps.DB)
	documentTypeRepo := repositories.NewDocumentTypeRepository(deps.DB)
	walletRepo := repositories.NewWalletRepository(deps.DB)
	transferRepo := repositories.NewTransferRepository(deps.DB)

	// Initialize services
	authService := auth.NewService(userRepo, cfg.JWT, log)
	userService := user.NewService(userRepo, userTypeRepo, documentTypeRepo, log)
	userTypeService := lookup.NewUserTypeService(userTypeRepo, userRepo)
	documentTypeService := lookup.NewDocumentTypeService(documentTypeRepo, userRepo)
	walletService := wallet.NewService(walletRepo, collector, log)

	authz := deps.Authorizer
	if authz == nil {
		authz = authorizer.NewClient(cfg.External.AuthorizerURL, cfg.External.AuthorizerTimeout)
	}
	transferService := transfer.NewService(transfer.Deps{
		Users:      userRepo,
		Transfers:  transferRepo,
		Wallets:    walletService,
		Authorizer: authz,
		Notifier:   notification.NewService(cfg.External.NotifierURL, cfg.External.NotifierTimeout, log),
		Publisher:  deps.Publisher,
		Metrics:    collector,
		Log:        log,
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	userTypeHandler := handlers.NewLookupHandler(userTypeService, "User type")
	documentTypeHandler := handlers.NewLookupHandler(documentTypeService, "Document type")
	transferHandler := handlers.NewTransferHandler(transferService)
	mockHandler := handlers.NewMockHandler(cfg.External.MockAuthorizerMode, log)

	var redisCheck handlers.Checker
	if deps.Cache != nil {
		redisCheck = deps.Cache.HealthCheck
	}
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		return repositories.Ping(deps.DB.WithContext(ctx))
	}, redisCheck)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Public routes
	app.Get("/health", healthHandler.Check)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        cfg.LoginRateLimit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests. Please try again later.",
			})
		},
	}), authHandler.Login)

	mock := api.Group("/mock")
	mock.Post("/authorize", mockHandler.Authorize)
	mock.Post("/notify", mockHandler.Notify)

	// Authenticated routes
	protected := api.Group("", authMiddleware.Handler)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)

	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Show)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	userTypes := protected.Group("/user-types")
	userTypes.Get("/", userTypeHandler.List)
	userTypes.Post("/", userTypeHandler.Create)
	userTypes.Get("/:id", userTypeHandler.Show)
	userTypes.Put("/:id", userTypeHandler.Update)
	userTypes.Delete("/:id", userTypeHandler.Delete)

	documentTypes := protected.Group("/document-types")
	documentTypes.Get("/", documentTypeHandler.List)
	documentTypes.Post("/", documentTypeHandler.Create)
	documentTypes.Get("/:id", documentTypeHandler.Show)
	documentTypes.Put("/:id", documentTypeHandler.Update)
	documentTypes.Delete("/:id", documentTypeHandler.Delete)

	transfers := protected.Group("/transfers")
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/:id", transferHandler.Show)
}
