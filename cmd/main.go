package main

import (
	"context"
	"net/http"
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

	"goparts-service/internal/clients"
	"goparts-service/internal/config"
	"goparts-service/internal/events"
	"goparts-service/internal/handlers"
	"goparts-service/internal/middleware"
	"goparts-service/internal/repository"
	"goparts-service/internal/services"
)

// @title GoParts Procurement Service API
// @version 1.0
// @description Automotive parts procurement: categories, parts, customers, suppliers, quotes, orders, pricing references and exchange rates.
// @BasePath /api/v1
func main() {
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg := config.Load()
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	// Redis is an optional cache layer; the service runs without it
	var redisClient *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			logger.WithError(err).Warn("Invalid REDIS_URL, continuing without cache")
		} else {
			redisClient = redis.NewClient(opt)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.WithError(err).Warn("Redis unreachable, continuing without cache")
				redisClient = nil
			}
			cancel()
		}
	}

	// NATS events are best-effort; the service runs without a broker
	publisher, err := events.NewPublisher(logger)
	if err != nil {
		logger.WithError(err).Warn("NATS unavailable, domain events disabled")
		publisher = nil
	}

	// Repositories
	categoryRepo := repository.NewCategoryRepository(db, redisClient)
	partRepo := repository.NewPartRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	rateRepo := repository.NewExchangeRateRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)

	// Services
	categoryService := services.NewCategoryService(categoryRepo, publisher, logger)
	quoteService := services.NewQuoteService(quoteRepo, publisher, logger)
	pricingService := services.NewPricingService(partRepo)
	ratesService := services.NewRatesService(
		rateRepo,
		clients.NewFrankfurterClient(cfg.PrimaryRatesURL),
		clients.NewOpenERAPIClient(cfg.FallbackRatesURL),
		publisher,
		logger,
	)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger)
	partHandler := handlers.NewPartHandler(partRepo, pricingService, logger)
	customerHandler := handlers.NewCustomerHandler(customerRepo, logger)
	supplierHandler := handlers.NewSupplierHandler(supplierRepo, logger)
	quoteHandler := handlers.NewQuoteHandler(quoteService, preferenceRepo, logger)
	exportHandler := handlers.NewExportHandler(quoteService, logger)
	orderHandler := handlers.NewOrderHandler(orderRepo, logger)
	pricingHandler := handlers.NewPricingHandler(pricingRepo, logger)
	ratesHandler := handlers.NewRatesHandler(ratesService, logger)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceRepo, logger)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	if cfg.JWTSecret != "" {
		api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	} else {
		logger.Warn("JWT_SECRET not set, falling back to header identity")
		api.Use(middleware.IdentityMiddleware())
	}

	categories := api.Group("/categories")
	{
		categories.POST("", categoryHandler.CreateCategory)
		categories.GET("", categoryHandler.ListCategories)
		categories.GET("/rollup", categoryHandler.ListCategoryRollups)
		categories.POST("/reorder", categoryHandler.ReorderCategories)
		categories.POST("/reassign-parts", categoryHandler.ReassignParts)
		categories.GET("/:id", categoryHandler.GetCategory)
		categories.PUT("/:id", categoryHandler.UpdateCategory)
		categories.DELETE("/:id", categoryHandler.DeleteCategory)
		categories.POST("/:id/merge", categoryHandler.MergeCategories)
	}

	parts := api.Group("/parts")
	{
		parts.GET("", partHandler.ListParts)
		parts.GET("/:id", partHandler.GetPart)
		parts.GET("/:id/tier-prices", partHandler.GetTierPrices)
	}

	customers := api.Group("/customers")
	{
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("", customerHandler.ListCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.POST("", supplierHandler.CreateSupplier)
		suppliers.GET("", supplierHandler.ListSuppliers)
		suppliers.GET("/:id", supplierHandler.GetSupplier)
		suppliers.PUT("/:id", supplierHandler.UpdateSupplier)
	}

	quotes := api.Group("/quotes")
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/export", exportHandler.ExportQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PUT("/:id", quoteHandler.UpdateQuote)
		quotes.PUT("/:id/status", quoteHandler.UpdateQuoteStatus)
		quotes.POST("/:id/convert", quoteHandler.ConvertQuote)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
	}

	pricing := api.Group("/pricing")
	{
		pricing.POST("/freight", pricingHandler.CreateFreight)
		pricing.GET("/freight", pricingHandler.ListFreight)
		pricing.PUT("/freight/:id", pricingHandler.UpdateFreight)
		pricing.DELETE("/freight/:id", pricingHandler.DeleteFreight)
		pricing.POST("/agent-fees", pricingHandler.CreateAgentFee)
		pricing.GET("/agent-fees", pricingHandler.ListAgentFees)
		pricing.PUT("/agent-fees/:id", pricingHandler.UpdateAgentFee)
		pricing.DELETE("/agent-fees/:id", pricingHandler.DeleteAgentFee)
	}

	rates := api.Group("/exchange-rates")
	{
		rates.GET("", ratesHandler.ListRates)
		rates.POST("/refresh", ratesHandler.RefreshRates)
	}

	preferences := api.Group("/preferences")
	{
		preferences.GET("/:key", preferenceHandler.GetPreference)
		preferences.PUT("/:key", preferenceHandler.SavePreference)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Starting goparts-service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	if publisher != nil {
		publisher.Close()
	}
	logger.Info("Server exited")
}
