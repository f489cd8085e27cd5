// money-monitor serves the expense tracking REST API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/JFRG28/money-monitor-vWeb/internal/amqp"
	"github.com/JFRG28/money-monitor-vWeb/internal/config"
	httpapi "github.com/JFRG28/money-monitor-vWeb/internal/http"
	"github.com/JFRG28/money-monitor-vWeb/internal/log"
	"github.com/JFRG28/money-monitor-vWeb/internal/memory"
	"github.com/JFRG28/money-monitor-vWeb/internal/services"
	"github.com/JFRG28/money-monitor-vWeb/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is a local development convenience; absence is fine.
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent("money-monitor")
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var (
		recordStore  services.RecordStore
		aggStore     services.AggregateStore
		debtStore    services.DebtStore
		balanceStore services.BalanceStore
		pinger       httpapi.Pinger
	)

	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return fmt.Errorf("open sqlite repository: %w", err)
		}
		defer repo.Close()
		recordStore, aggStore, debtStore, balanceStore, pinger = repo, repo, repo, repo, repo
		logger.Info("Using SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		mem := memory.New()
		recordStore, aggStore, debtStore, balanceStore = mem, mem, mem, mem
		logger.Info("Using in-memory backend")
	}

	var events services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return fmt.Errorf("connect AMQP: %w", err)
		}
		defer client.Close()
		events = client
		logger.Info("Mutation events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Mutation events disabled (no AMQP URL)")
	}

	server := httpapi.NewServer(httpapi.Options{
		Records:   services.NewRecordService(recordStore, events),
		Debts:     services.NewDebtService(debtStore, events),
		Balance:   services.NewBalanceService(balanceStore, events),
		Dashboard: services.NewDashboardService(aggStore, debtStore),

		Pinger:             pinger,
		CacheSize:          cfg.DashboardCacheSize,
		CacheTTL:           cfg.DashboardCacheTTL,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Diagnostics:        cfg.Diagnostics,
		Logger:             logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Shutdown complete")
	return nil
}
