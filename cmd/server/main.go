package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/staynstray/internal/catalog"
	"github.com/iliyamo/staynstray/internal/config"
	"github.com/iliyamo/staynstray/internal/database"
	"github.com/iliyamo/staynstray/internal/handler"
	"github.com/iliyamo/staynstray/internal/logger"
	"github.com/iliyamo/staynstray/internal/middleware"
	"github.com/iliyamo/staynstray/internal/queue"
	"github.com/iliyamo/staynstray/internal/repository"
	"github.com/iliyamo/staynstray/internal/router"
	"github.com/iliyamo/staynstray/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("load .env", logger.Err(err))
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", logger.Err(err))
		os.Exit(1)
	}
	log := logger.New(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("database unreachable", logger.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		log.Error("schema migration failed", logger.Err(err))
		os.Exit(1)
	}

	inv, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Error("catalog", logger.Err(err))
		os.Exit(1)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; response cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	sessions := service.NewSessionIssuer(cfg.JWTSecret, cfg.AccessTTL)
	auth := service.NewAuthService(repository.NewUserRepo(db), sessions, cfg.BcryptCost)

	opts := []service.BookingOption{service.WithBookingLogger(log)}
	if cfg.EventsOn {
		opts = append(opts, service.WithEvents(queue.NewPublisher(cfg.AMQPURL, log)))
		log.Info("booking events enabled", slog.String("queue", queue.BookingQueueName))
	}
	if cfg.CatalogPricing {
		opts = append(opts, service.WithCatalogPricing())
		log.Info("bookings priced from catalog")
	}
	bookings := service.NewBookingService(repository.NewBookingRepo(db), inv, opts...)

	e := router.New(log, cfg.CORSOrigin)
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(auth, log),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log))
	router.RegisterCatalog(e, handler.NewCatalogHandler(inv, log),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb, log))
	router.RegisterBookings(e, handler.NewBookingHandler(bookings, log), sessions)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", slog.String("addr", addr), slog.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", logger.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", logger.Err(err))
	}
}
