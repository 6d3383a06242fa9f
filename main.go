package main

import (
	"context"
	"log"

	"inventory/cmd"
	"inventory/internal/config"
	"inventory/internal/core/container"
	"inventory/internal/core/routes"
	"inventory/internal/database"
	"inventory/internal/logger"
	"inventory/internal/middleware"
	"inventory/internal/rate_limiter"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	// Execute migration CMD
	cmd.Execute(ctx)
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	db, err := database.NewPostgresConnection(cfg.Database.URL)
	if err != nil {
		appLogger.Fatal("database connection failed: " + err.Error())
	}
	defer db.Close()

	appLogger.Info("Connected to the database successfully!")

	if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsDir, logger.Named(appLogger, "migrations")); err != nil {
		appLogger.Fatal("migrations failed: " + err.Error())
	}

	appContainer := container.NewAppContainer(db, cfg, appLogger)

	limiter := rate_limiter.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware(logger.Named(appLogger, "http")))
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(middleware.TimeoutMiddleware(cfg.Server.RequestTimeout))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(limiter.Middleware())

	routes.RegisterUtilityRoutes(router)
	routes.RegisterAPIRoutes(router, appContainer)

	middleware.UpdateHealthStatus("ok")

	if err := router.Run(cfg.Server.ListenAddr); err != nil {
		appLogger.Fatal("Failed to start server: " + err.Error())
	}
}
