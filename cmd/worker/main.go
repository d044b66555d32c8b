// Command worker consumes booking.confirmed events and appends them to
// booking.log.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/staynstray/internal/config"
	"github.com/iliyamo/staynstray/internal/logger"
	"github.com/iliyamo/staynstray/internal/queue"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("load .env", logger.Err(err))
		os.Exit(1)
	}
	log := logger.New(os.Getenv("APP_ENV"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{
		URL:    config.AMQPURL(),
		LogDir: config.BookingLogDir(),
		Log:    log,
	}
	log.Info("booking worker started", slog.String("queue", queue.BookingQueueName), slog.String("dir", c.LogDir))
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("booking worker stopped", logger.Err(err))
		os.Exit(1)
	}
	log.Info("booking worker stopped")
}
