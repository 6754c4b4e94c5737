// Package server exposes the parent dashboard over HTTP: statistics,
// history and bank management behind a PIN-issued bearer token.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/abhisek/wordwise/internal/parent"
	"github.com/abhisek/wordwise/internal/store"
)

// Options configures a Server.
type Options struct {
	Bank    store.BankRepo
	History store.HistoryRepo
	Guard   *parent.Guard
	Auth    *parent.Authority
	Logger  *zap.Logger
	Metrics *Metrics

	AllowedOrigins []string

	// LoginRate and LoginBurst bound PIN guesses across all clients.
	LoginRate  rate.Limit
	LoginBurst int

	RequestTimeout time.Duration
	Now            func() time.Time
}

// Server is the parent HTTP API.
type Server struct {
	bank    store.BankRepo
	history store.HistoryRepo
	guard   *parent.Guard
	auth    *parent.Authority
	log     *zap.Logger
	metrics *Metrics
	login   *rate.Limiter
	now     func() time.Time
	handler http.Handler
}

// New builds the server and its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.LoginRate == 0 {
		opts.LoginRate = rate.Every(2 * time.Second)
	}
	if opts.LoginBurst == 0 {
		opts.LoginBurst = 5
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		bank:    opts.Bank,
		history: opts.History,
		guard:   opts.Guard,
		auth:    opts.Auth,
		log:     opts.Logger,
		metrics: opts.Metrics,
		login:   rate.NewLimiter(opts.LoginRate, opts.LoginBurst),
		now:     opts.Now,
	}
	s.handler = s.routes(opts)
	return s
}

func (s *Server) routes(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, accessLog(s.log), middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(s.metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Post("/api/login", s.handleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(requireParent(s.auth))

		pr.Get("/api/stats", s.handleStats)
		pr.Get("/api/history", s.handleHistory)
		pr.Delete("/api/history", s.handleResetHistory)
		pr.Post("/api/quiz/records", s.handleQuizRecords)

		pr.Get("/api/categories", s.handleCategories)
		pr.Route("/api/questions", func(qr chi.Router) {
			qr.Get("/", s.handleListQuestions)
			qr.Post("/", s.handleCreateQuestion)
			qr.Delete("/", s.handleClearQuestions)
			qr.Get("/export.tsv", s.handleExportTSV)
			qr.Put("/{id}", s.handleUpdateQuestion)
			qr.Delete("/{id}", s.handleDeleteQuestion)
		})
	})
	return r
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if n, err := s.bank.Count(ctx); err == nil {
		s.metrics.setBankSize(n)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("parent API listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("parent API shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
