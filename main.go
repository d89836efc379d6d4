package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/omarbeegsi189-star/online-food-order-system/configs"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/logger"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/payments"
	"github.com/omarbeegsi189-star/online-food-order-system/routes"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	// DB
	db, err := configs.ConnectDB(cfg.DB, lg)
	if err != nil {
		lg.Fatal("connect db failed", zap.Error(err))
	}

	// migrate + seed
	if err := configs.SetupDatabase(db); err != nil {
		lg.Fatal("migrate failed", zap.Error(err))
	}
	if err := configs.SeedAdmin(db, cfg.Seed, lg); err != nil {
		lg.Fatal("seed admin failed", zap.Error(err))
	}
	if err := configs.SeedFromFile(db, cfg.Seed.File, lg); err != nil {
		lg.Fatal("seed file failed", zap.Error(err))
	}

	// Payments
	var gw payments.Gateway = payments.Disabled{}
	if cfg.Stripe.Enabled() {
		sg, err := payments.NewStripeGateway(payments.StripeConfig{
			SecretKey:      cfg.Stripe.SecretKey,
			PublishableKey: cfg.Stripe.PublishableKey,
			Currency:       cfg.Stripe.Currency,
			ProductName:    cfg.Stripe.ProductName,
			SuccessURL:     cfg.Stripe.SuccessURL,
			CancelURL:      cfg.Stripe.CancelURL,
			Logger:         lg,
		})
		if err != nil {
			lg.Fatal("stripe gateway failed", zap.Error(err))
		}
		gw = sg
	} else {
		lg.Warn("stripe keys not set, card checkout disabled")
	}

	// HTTP
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, gw, lg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown failed", zap.Error(err))
	}
}
