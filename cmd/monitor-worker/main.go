// monitor-worker consumes mutation events and writes the audit feed.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JFRG28/money-monitor-vWeb/internal/amqp"
	"github.com/JFRG28/money-monitor-vWeb/internal/config"
	"github.com/JFRG28/money-monitor-vWeb/internal/log"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent("monitor-worker")
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is required for the worker")
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("connect AMQP: %w", err)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.InfoContext(ctx, "Worker started", "queue", cfg.AMQPQueue)

	err = client.ConsumeMutations(ctx, func(ctx context.Context, msg *amqp.MutationMessage) error {
		logger.InfoContext(ctx, "Mutation recorded",
			"entity", msg.Entity,
			"action", msg.Action,
			"id", msg.ID,
			"timestamp", msg.Timestamp)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("consume: %w", err)
	}

	logger.Info("Worker stopped")
	return nil
}
