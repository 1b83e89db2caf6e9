package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ryanbarcelos/fidelize-sub001/config"
	"github.com/Ryanbarcelos/fidelize-sub001/db"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/events"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/logger"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/handler"
	repo "github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/repository/postgres"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/service"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/scheduler"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	appLogger := logger.New(cfg.LogLevel, cfg.Env)

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		return err
	}

	var publisher events.Publisher = events.NewNoopPublisher(appLogger)
	if cfg.RabbitMQURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQURL, appLogger)
		if err != nil {
			appLogger.Warn("rabbitmq unavailable; card events disabled", "err", err)
		} else {
			publisher = amqpPublisher
		}
	}
	defer publisher.Close()

	loyaltyRepo := repo.NewPostgresRepository(dbPool)
	pinService := service.NewPinService(loyaltyRepo, appLogger)
	tokenService := service.NewTokenService(loyaltyRepo, cfg.TokenHMACSecret, appLogger)
	services := handler.Services{
		Pins:       pinService,
		Tokens:     tokenService,
		Redemption: service.NewRedemptionService(loyaltyRepo, tokenService, publisher, appLogger),
		Cards:      service.NewCardService(loyaltyRepo, pinService, publisher, appLogger),
		Companies:  service.NewCompanyService(loyaltyRepo, cfg.BcryptCost),
	}
	verifier := service.NewJWTVerifier(cfg.JWTSecret)
	loyaltyHandler := handler.NewLoyaltyHandler(services, verifier, cfg.AdminAPIKey, appLogger)

	app := handler.NewApp(loyaltyHandler, handler.AppConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		RequestLog:   true,
	})

	purgeJob := scheduler.NewScheduler(loyaltyRepo, cfg.TokenPurgeSchedule, appLogger)
	if err := purgeJob.Start(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("http server listening", "port", cfg.Port, "env", cfg.Env)
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("shutting down")

		<-purgeJob.Stop().Done()
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
