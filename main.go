package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"coffee-order-go/config"
	"coffee-order-go/database"
	"coffee-order-go/handlers"
	"coffee-order-go/models"
	"coffee-order-go/payments"
	"coffee-order-go/seed"
	"coffee-order-go/services"
	"coffee-order-go/utils"
)

func main() {
	seedOnly := flag.Bool("seed", false, "replace the menu with the starter catalog and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	/* DATABASE SETUP STARTS */
	db, err := database.Open(cfg.Database, cfg.LogLevel, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := models.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	/* DATABASE SETUP ENDS */

	if *seedOnly {
		if err := seed.Run(context.Background(), db, logger); err != nil {
			logger.Fatal("Seeding failed", zap.Error(err))
		}
		return
	}

	admin, err := models.NewAdminUser(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	if err != nil {
		logger.Fatal("Failed to hash admin password", zap.Error(err))
	}
	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	if cfg.Payment.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set; payment intents are disabled")
	}

	h := &handlers.Handler{
		DB:       db,
		Orders:   services.NewOrderService(db, cfg.StrictPricing, logger),
		Menu:     services.NewMenuService(db, logger),
		Auth:     services.NewAuthService(admin, tokens, logger),
		Payments: payments.NewStripeCreator(cfg.Payment.StripeSecretKey, cfg.Payment.Currency, logger),
		Logger:   logger,
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(h, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
