package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	inventoryapp "github.com/muhammadheryan/commerce-engine/application/inventory"
	orderapp "github.com/muhammadheryan/commerce-engine/application/order"
	promotionapp "github.com/muhammadheryan/commerce-engine/application/promotion"
	warehouseapp "github.com/muhammadheryan/commerce-engine/application/warehouse"
	"github.com/muhammadheryan/commerce-engine/cmd/config"
	redisclient "github.com/muhammadheryan/commerce-engine/cmd/redis"
	_ "github.com/muhammadheryan/commerce-engine/docs"
	orderRepo "github.com/muhammadheryan/commerce-engine/repository/order"
	productRepo "github.com/muhammadheryan/commerce-engine/repository/product"
	promotionRepo "github.com/muhammadheryan/commerce-engine/repository/promotion"
	redisRepo "github.com/muhammadheryan/commerce-engine/repository/redis"
	txRepo "github.com/muhammadheryan/commerce-engine/repository/tx"
	warehouseRepo "github.com/muhammadheryan/commerce-engine/repository/warehouse"
	"github.com/muhammadheryan/commerce-engine/thirdparty/rabbitmq"
	"github.com/muhammadheryan/commerce-engine/transport"
	"github.com/muhammadheryan/commerce-engine/utils/logger"
	validatorx "github.com/muhammadheryan/commerce-engine/utils/validator"
	"go.uber.org/zap"
)

// @title COMMERCE ENGINE API
// @version 1.0
// @description Promotion selection and multi-warehouse allocation API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Environment, logger.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))
	if cfg.Internal.APIKey == "" {
		logger.Warn("INTERNAL_API_KEY is empty, admin and internal routes will reject every request")
	}

	validatorx.Init()

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Initialize RabbitMQ publisher
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL())
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer func() {
		_ = publisher.Close()
	}()

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	PromotionRepo := promotionRepo.NewPromotionRepository(db)
	WarehouseRepo := warehouseRepo.NewWarehouseRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	PromotionApp := promotionapp.NewPromotionApp(cfg, TxRepo, PromotionRepo, OrderRepo, RedisRepo, publisher)
	InventoryApp := inventoryapp.NewInventoryApp(cfg, TxRepo, WarehouseRepo, publisher)
	WarehouseApp := warehouseapp.NewWarehouseApp(TxRepo, WarehouseRepo, publisher)
	OrderApp := orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, ProductRepo, PromotionApp, InventoryApp, publisher)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		PromotionApp: PromotionApp,
		InventoryApp: InventoryApp,
		WarehouseApp: WarehouseApp,
		OrderApp:     OrderApp,
	}, cfg.Internal.APIKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed shutdown", zap.Error(err))
	}
}
