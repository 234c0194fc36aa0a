// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simplepay/internal/config"
	"simplepay/internal/events"
	applog "simplepay/internal/logger"
	"simplepay/internal/metrics"
	"simplepay/internal/middleware"
	"simplepay/internal/repositories"
	"simplepay/internal/repositories/cache"
	"simplepay/internal/routes"
	"simplepay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := applog.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("Failed to close database connection", zap.Error(err))
		}
	}()
	log.Info("Connected to database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	var cacheService *cache.CacheService
	if cfg.Redis.Enabled {
		cacheService = cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.CacheTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := cacheService.HealthCheck(ctx)
		cancel()
		if err != nil {
			log.Warn("Redis unavailable, user cache disabled", zap.Error(err))
			_ = cacheService.Close()
			cacheService = nil
		} else {
			log.Info("Connected to redis", zap.String("host", cfg.Redis.Host))
			defer func() {
				if err := cacheService.Close(); err != nil {
					log.Warn("Failed to close redis connection", zap.Error(err))
				}
			}()
		}
	}

	var publisher events.Publisher = events.NewLogPublisher(log)
	if cfg.External.AMQPURL != "" {
		p, err := events.NewRabbitMQPublisher(cfg.External.AMQPURL, cfg.External.AMQPExchange, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, transfer events will only be logged", zap.Error(err))
		} else {
			publisher = p
		}
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("Failed to close event publisher", zap.Error(err))
		}
	}()

	prom := metrics.NewPrometheus()

	app := fiber.New(fiber.Config{
		AppName:      "SimplePay API",
		ErrorHandler: response.ErrorHandler(log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.Metrics(prom))

	routes.SetupRoutes(app, routes.Dependencies{
		Config:    cfg,
		DB:        db,
		Cache:     cacheService,
		Metrics:   prom,
		Publisher: publisher,
		Log:       log,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()
	log.Info("Server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
