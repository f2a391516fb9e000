package main

import (
	"context"
	"errors"
	"fmt"
	"moviemart-checkout/internal/client"
	"moviemart-checkout/internal/config"
	"moviemart-checkout/internal/logger"
	"moviemart-checkout/internal/repository"
	"moviemart-checkout/internal/server"
	"moviemart-checkout/internal/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/facebookgo/clock"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&cfg.Log)

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}

	store, err := newSessionStore(cfg, db)
	if err != nil {
		log.WithError(err).Fatal("init session store")
	}

	if err := os.MkdirAll(cfg.Assets.Dir, 0o755); err != nil {
		log.WithError(err).Fatal("create assets dir")
	}

	backend := client.NewMoviemartClient(&cfg.Backend)
	gateways := client.NewGateways(cfg.BaseURL, &cfg.Cashfree, &cfg.Razorpay, &cfg.CCAvenue)

	purchaseRepo := repository.NewPurchaseRepository(db)

	sessionService := service.NewSessionService(store, cfg.Session.TTL)
	checkoutService := service.NewCheckoutService(
		backend,
		gateways,
		purchaseRepo,
		sessionService,
		service.NewContactValidator(),
		service.NewVerifier(backend, clock.New(), &cfg.Verification, log),
		service.NewPresenter(backend, cfg.Assets.Dir, log),
		log,
	)

	janitor, err := service.NewJanitor(&cfg.Janitor, purchaseRepo, store, log)
	if err != nil {
		log.WithError(err).Fatal("init janitor")
	}
	janitor.Start()

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(cfg, checkoutService, sessionService, log)

	log.WithField("addr", serverAddr).Info("Starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}
	if err := janitor.Shutdown(); err != nil {
		log.WithError(err).Error("janitor shutdown error")
	}
}

func newSessionStore(cfg *config.Config, db *gorm.DB) (repository.SessionStore, error) {
	switch cfg.Session.Backend {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rdb, err := client.InitRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisSessionStore(rdb), nil
	case "", "gorm":
		return repository.NewGormSessionStore(db), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
