// Package http exposes the REST surface: records, debts, balance items,
// catalogs and the dashboard, all wrapped in a uniform response envelope.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JFRG28/money-monitor-vWeb/internal/cache"
	"github.com/JFRG28/money-monitor-vWeb/internal/core"
	"github.com/JFRG28/money-monitor-vWeb/internal/log"
	"github.com/JFRG28/money-monitor-vWeb/internal/services"
)

// Pinger reports backend liveness for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	records   *services.RecordService
	debts     *services.DebtService
	balance   *services.BalanceService
	dashboard *services.DashboardService

	dashCache *cache.LRUCache[core.Dashboard]
	pinger    Pinger
	limiter   *rateLimiter
	logger    *log.Logger

	diagnostics bool
	httpServer  *http.Server
}

type Options struct {
	Records   *services.RecordService
	Debts     *services.DebtService
	Balance   *services.BalanceService
	Dashboard *services.DashboardService

	// Pinger may be nil; readiness then only reports process liveness.
	Pinger Pinger

	CacheSize          int
	CacheTTL           time.Duration
	RateLimitPerMinute int
	Diagnostics        bool
	Logger             *log.Logger
}

func NewServer(opts Options) *Server {
	return &Server{
		records:     opts.Records,
		debts:       opts.Debts,
		balance:     opts.Balance,
		dashboard:   opts.Dashboard,
		dashCache:   cache.NewLRUCache[core.Dashboard](opts.CacheSize, opts.CacheTTL),
		pinger:      opts.Pinger,
		limiter:     newRateLimiter(opts.RateLimitPerMinute, time.Minute),
		logger:      opts.Logger.WithComponent("http"),
		diagnostics: opts.Diagnostics,
	}
}

// Handler builds the router. Mutation routes sit behind the per-client
// rate limiter; reads are unthrottled.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)

		r.Route("/catalogs", func(r chi.Router) {
			r.Get("/expense-types", s.handleExpenseTypes)
			r.Get("/categories", s.handleCategories)
			r.Get("/payment-methods", s.handlePaymentMethods)
			r.Get("/months", s.handleMonths)
		})

		r.Route("/records", func(r chi.Router) {
			r.Get("/", s.handleListRecords)
			r.Get("/installments", s.handleListInstallments)
			r.Get("/{id}", s.handleGetRecord)
			r.With(s.limiter.middleware).Post("/", s.handleCreateRecord)
			r.With(s.limiter.middleware).Put("/{id}", s.handleUpdateRecord)
			r.With(s.limiter.middleware).Delete("/{id}", s.handleDeleteRecord)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", s.handleListDebts)
			r.Get("/{id}", s.handleGetDebt)
			r.With(s.limiter.middleware).Post("/", s.handleCreateDebt)
			r.With(s.limiter.middleware).Put("/{id}", s.handleUpdateDebt)
			r.With(s.limiter.middleware).Delete("/{id}", s.handleDeleteDebt)
		})

		r.Route("/balance", func(r chi.Router) {
			r.Get("/", s.handleListBalance)
			r.Get("/{id}", s.handleGetBalanceItem)
			r.With(s.limiter.middleware).Post("/", s.handleCreateBalanceItem)
			r.With(s.limiter.middleware).Put("/{id}", s.handleUpdateBalanceItem)
			r.With(s.limiter.middleware).Delete("/{id}", s.handleDeleteBalanceItem)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondNotFound(w, "Recurso no encontrado")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Success: false, Message: "Método no permitido"})
	})

	return r
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("HTTP server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests until the context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// invalidateDashboard clears cached payloads after a committed mutation.
// A single write can shift aggregates in any scope, so the whole cache
// goes.
func (s *Server) invalidateDashboard() {
	s.dashCache.Purge()
}
