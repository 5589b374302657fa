package main

import (
	"net/http"

	"legalpay-be/internal/config"
	"legalpay-be/internal/db"
	"legalpay-be/internal/logger"
	"legalpay-be/internal/middleware"
	"legalpay-be/internal/order"
	"legalpay-be/internal/payment"
	"legalpay-be/internal/payment/webhook"
	"legalpay-be/internal/transport"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	orderRepo := order.NewRepository(database)
	gateway := payment.NewGateway(cfg)
	paymentSvc := payment.NewService(orderRepo, gateway)

	processor := webhook.NewProcessor(orderRepo, cfg.TerminalPassword)
	webhookHandler := webhook.NewHandler(processor)

	mux := http.NewServeMux()
	transport.NewHandler(paymentSvc).Register(mux, webhookHandler)

	handler := logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			middleware.AuthMiddleware(
				middleware.RateLimitMiddleware(mux),
			),
		),
	)

	log.Info("payment server listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
