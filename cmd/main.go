package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"catalog-service/internal/config"
	"catalog-service/internal/handlers"
	"catalog-service/internal/middleware"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
)

// @title Catalog Service API
// @version 1.0.0
// @description Product catalog service with bulk spreadsheet import

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8087
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Redis is optional; cache reads fall through to Postgres when it is down
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	redisClient := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	productsRepo := repository.NewProductsRepository(db, redisClient)
	catalogRepo := repository.NewCatalogRepository(db, redisClient)

	importService := services.NewImportService(catalogRepo, productsRepo, logger)

	productsHandler := handlers.NewProductsHandler(productsRepo)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	importHandler := handlers.NewImportHandler(importService, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.MaxMultipartMemory = cfg.MaxImportFileSize

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	// Protected API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	v1 := api.Group("")
	{
		products := v1.Group("/products")
		{
			products.GET("", productsHandler.GetProducts)
			products.GET("/:id", productsHandler.GetProduct)
			products.GET("/slug/:slug", productsHandler.GetProductBySlug)
			products.POST("", productsHandler.CreateProduct)
			products.PUT("/:id", productsHandler.UpdateProduct)
			products.POST("/:id/approve", middleware.RequireRole("admin"), productsHandler.ApproveProduct)
			products.DELETE("/:id", productsHandler.DeleteProduct)

			products.GET("/import/template", importHandler.GetImportTemplate)
			products.POST("/import", importHandler.ImportProducts)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.GetCategories)
			categories.POST("", catalogHandler.CreateCategory)
			categories.DELETE("/:id", catalogHandler.DeleteCategory)
			categories.GET("/:id/sub-categories", catalogHandler.GetSubCategories)
			categories.POST("/sub-categories", catalogHandler.CreateSubCategory)
		}

		subCategories := v1.Group("/sub-categories")
		{
			subCategories.GET("/:id/child-categories", catalogHandler.GetChildCategories)
			subCategories.POST("/child-categories", catalogHandler.CreateChildCategory)
		}

		brands := v1.Group("/brands")
		{
			brands.GET("", catalogHandler.GetBrands)
			brands.POST("", catalogHandler.CreateBrand)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Catalog service starting on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Catalog service stopped")
}
