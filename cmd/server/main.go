package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AndreyZherdetskiy/balance-hub/configs"
	"github.com/AndreyZherdetskiy/balance-hub/internal/handlers"
	"github.com/AndreyZherdetskiy/balance-hub/internal/logger"
	"github.com/AndreyZherdetskiy/balance-hub/internal/routes"
	"github.com/AndreyZherdetskiy/balance-hub/internal/seed"
	"github.com/AndreyZherdetskiy/balance-hub/internal/service"
	"github.com/AndreyZherdetskiy/balance-hub/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	zl := logger.New()
	defer zl.Sync()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := store.Open(cfg.DB.DSN)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	if cfg.Seed.Enabled {
		if err := seed.Run(context.Background(), db, cfg, zl); err != nil {
			zl.Fatal("seed failed", zap.Error(err))
		}
	}

	userStore := store.NewUserStore(db)
	accountStore := store.NewAccountStore(db)
	paymentStore := store.NewPaymentStore(db)

	authService := service.NewAuthService(userStore, cfg.JWT.Secret, cfg.JWT.ExpiresMinutes)
	userService := service.NewUserService(userStore)
	webhookService := service.NewWebhookService(db, accountStore, paymentStore, userStore)

	h := handlers.New(authService, userService, webhookService, accountStore, paymentStore, cfg, db, zl)
	router := routes.New(h, cfg.JWT.Secret)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zl.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zl.Error("db close skipped, reason:", zap.Error(err))
	} else {
		sqlDB.Close()
		zl.Info("db closed")
	}

	zl.Info("server stopped")
}
