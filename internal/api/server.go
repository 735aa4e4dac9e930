// Package api exposes the beam checker over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/version
//	GET  /api/v1/catalog/
//	POST /api/v1/beams/calc         JSON result with a "latex" report
//	POST /api/v1/beams/report.pdf   PDF calculation sheet
//	POST /api/v1/beams/diagram.png  section diagram
//
// Failures use the envelope {"valid": false, "errors": {field: message}}.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/alexiusacademia/beamcheck/internal/config"
	"github.com/alexiusacademia/beamcheck/internal/report"
)

// Server serves the beam checker API.
type Server struct {
	cfg    config.ServerConfig
	meta   report.Meta
	logger *zap.Logger
	router *mux.Router
}

// New creates a server and registers its routes.
func New(cfg config.ServerConfig, meta report.Meta, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		meta:   meta,
		logger: logger,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	if s.cfg.RateLimit.RPS > 0 {
		limiter := NewIPRateLimiter(rate.Limit(s.cfg.RateLimit.RPS), max(s.cfg.RateLimit.Burst, 1))
		api.Use(limiter.LimitMiddleware)
	}
	api.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)

	v1 := api.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/catalog/", s.handleCatalog).Methods(http.MethodGet)

	beams := v1.PathPrefix("/beams").Subrouter()
	if s.cfg.Auth.JWTKey != "" {
		auth := &Authenticator{Key: []byte(s.cfg.Auth.JWTKey)}
		beams.Use(auth.Middleware)
	}
	beams.HandleFunc("/calc", s.handleCalc).Methods(http.MethodPost)
	beams.HandleFunc("/report.pdf", s.handleReport).Methods(http.MethodPost)
	beams.HandleFunc("/diagram.png", s.handleDiagram).Methods(http.MethodPost)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrors(w, http.StatusNotFound, map[string]string{"server": "not found: " + r.URL.Path})
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrors(w, http.StatusMethodNotAllowed, map[string]string{"server": "method not allowed: " + r.Method})
	})
}

// Handler returns the root handler with CORS, request IDs and logging.
func (s *Server) Handler() http.Handler {
	return withCORS(withRequestID(withLogging(s.logger, s.router)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			zap.String("op", "api.Run"),
			zap.String("addr", s.cfg.Addr),
			zap.Bool("auth", s.cfg.Auth.JWTKey != ""),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received", zap.String("op", "api.Run"))
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.logger.Info("server stopped", zap.String("op", "api.Run"))
	return nil
}
