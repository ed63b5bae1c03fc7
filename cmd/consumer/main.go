package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/muhammadheryan/commerce-engine/cmd/config"
	"github.com/muhammadheryan/commerce-engine/thirdparty/rabbitmq"
	"github.com/muhammadheryan/commerce-engine/utils/logger"
	"go.uber.org/zap"
)

// The consumer cancels orders whose stock reservation expired. It reads the
// delayed expiration queue and calls the internal cancel API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Environment, logger.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		panic(err)
	}
	defer logger.Close()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL(), rabbitmq.NewOrderCanceler(cfg.Internal.APIURL, cfg.Internal.APIKey))
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}
	logger.Info("Reservation expiration consumer running", zap.String("api_url", cfg.Internal.APIURL))

	<-ctx.Done()
	logger.Info("Shutting down consumer")
}
