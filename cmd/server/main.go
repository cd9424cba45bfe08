// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autoparts-api/config"
	"autoparts-api/internal/cache"
	"autoparts-api/internal/handler"
	"autoparts-api/internal/middleware"
	"autoparts-api/internal/provider/mpesa"
	"autoparts-api/internal/repository"
	"autoparts-api/internal/router"
	"autoparts-api/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.ConnString())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("database ping failed", zap.Error(err))
	}

	redisCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisCache.Close()

	orderRepo := repository.NewOrderRepository(pool)
	stkRepo := repository.NewSTKRequestRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	mpesaClient := mpesa.NewClient(cfg.Mpesa)

	orderUC := usecase.NewOrderUsecase(orderRepo, logger)
	paymentUC := usecase.NewPaymentUsecase(orderRepo, stkRepo, mpesaClient, logger)
	callbackUC := usecase.NewCallbackUsecase(stkRepo, logger)
	catalogUC := usecase.NewCatalogUsecase(productRepo, redisCache, logger)

	auth := middleware.NewAuthMiddleware(cfg.Auth, logger)

	handlers := router.Handlers{
		Order:    handler.NewOrderHandler(orderUC, logger),
		Payment:  handler.NewPaymentHandler(paymentUC, logger),
		Callback: handler.NewCallbackHandler(callbackUC, logger),
		Product:  handler.NewProductHandler(catalogUC, logger),
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.New(handlers, auth, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("mpesa_env", cfg.Mpesa.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
