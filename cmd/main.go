package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"farmfresh/internal/caching"
	"farmfresh/internal/config"
	"farmfresh/internal/handlers"
	"farmfresh/internal/jobs/background"
	"farmfresh/internal/repositories"
	"farmfresh/internal/services"
	"farmfresh/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Storefront tunables: optional TOML file, env defaults otherwise
	cfg := config.DefaultStorefrontConfig()
	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		cfg, err = config.LoadStorefrontConfig(configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(context.Background(), cfg.Images.Bucket); err != nil {
		log.Printf("WARN: image bucket %s not reachable: %v", cfg.Images.Bucket, err)
	}

	// Cart snapshot store
	snapshotStore := caching.NewRedisSnapshotStore(redisAddr, redisPassword, redisDB)

	// Repositories
	submissionRepo := repositories.NewSubmissionRepo(pool)
	productRepo := repositories.NewProductRepo(pool)

	// Services
	cartSvc := services.NewCartService(snapshotStore, cfg.SnapshotTTL())
	submissionSvc := services.NewSubmissionService(submissionRepo)
	productSvc := services.NewProductService(productRepo, minioSvc, cfg.Images.Bucket, cfg.PresignExpiry())

	// Handlers
	submissionHandlers := handlers.NewSubmissionHandlers(submissionSvc, cartSvc)
	cartHandlers := handlers.NewCartHandlers(cartSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, snapshotStore)

	// Background maintenance
	scheduler, err := background.NewJobScheduler(snapshotStore, cfg.PurgeInterval(), cfg.IdleWindow())
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Submission endpoint. Registered for every method so non-POST
	// requests get the legacy error text.
	e.Any("/submit", submissionHandlers.HandleSubmission)

	// Cart routes
	e.GET("/cart", cartHandlers.GetCart)
	e.DELETE("/cart", cartHandlers.ClearCart)
	e.POST("/cart/items", cartHandlers.AddItem)
	e.POST("/cart/items/:id/increase", cartHandlers.IncreaseItem)
	e.POST("/cart/items/:id/decrease", cartHandlers.DecreaseItem)
	e.DELETE("/cart/items/:id", cartHandlers.RemoveItem)
	e.POST("/cart/checkout", cartHandlers.Checkout)

	// Catalog routes
	e.GET("/products", productHandlers.ListProducts)
	e.GET("/products/:id", productHandlers.GetProduct)
	e.PUT("/products/:id/image", productHandlers.UploadProductImage)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Farmfresh storefront v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
