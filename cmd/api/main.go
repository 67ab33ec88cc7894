// @title Quiz Extensions API
// @version 1.0
// @description Backend for the quiz extensions tool: pick students, choose a time modifier and apply it to every quiz of a course.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_LAUNCH_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-extensions/cmd/api/docs"
	"quiz-extensions/internal/adapter/jobservice"
	"quiz-extensions/internal/adapter/rediscache"
	"quiz-extensions/internal/cache"
	"quiz-extensions/internal/config"
	"quiz-extensions/internal/domain"
	"quiz-extensions/internal/handler"
	"quiz-extensions/internal/logger"
	"quiz-extensions/internal/middleware"
	"quiz-extensions/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Redis is optional; without it nothing is cached and reports live only
	// as long as their session.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = rediscache.New(redisClient)
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Warn("Redis address not configured, caching disabled")
	}

	jobs, err := jobservice.NewClient(ctx, cfg.JobService, appLogger.Named("jobservice"))
	if err != nil {
		appLogger.Fatal("Failed to create job service client", zap.Error(err))
	}
	appLogger.Info("Job service client initialized", zap.String("base_url", cfg.JobService.BaseURL))

	verifier, err := service.NewTokenVerifier(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create token verifier", zap.Error(err))
	}

	// Initialize services
	roster := service.NewRosterService(jobs, cacheAdapter, cfg.Cache.StudentPageTTL, appLogger.Named("roster"))
	advisory := service.NewAdvisoryService(jobs, cacheAdapter, cfg.Cache.AdvisoryTTL, appLogger.Named("advisory"))
	reports := service.NewReportCache(cacheAdapter, cfg.Cache.ReportTTL)
	registry := service.NewSessionRegistry(jobs, reports, advisory, service.SessionConfig{
		Presets:              cfg.Percent.Presets,
		DefaultPreset:        cfg.Percent.DefaultPreset,
		PollInterval:         cfg.Poller.Interval,
		MaxPollDuration:      cfg.Poller.MaxDuration,
		RefreshTolerateEmpty: cfg.Poller.RefreshTolerateEmpty,
	}, appLogger.Named("sessions"))

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(registry, roster, advisory)
	healthHandler := handler.NewHealthHandler(cacheAdapter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app.Group("/api"), verifier, sessionHandler, healthHandler)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := registry.Close(shutdownCtx); err != nil {
		appLogger.Error("Sessions did not stop in time", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
