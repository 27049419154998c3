// internal/api/server.go
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"chatbus/internal/assistant"
	"chatbus/internal/common/config"
	"chatbus/internal/common/logger"
)

const maxBodyBytes = 1 << 20

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	cfg        config.ServerConfig
	router     *mux.Router
	assistant  *assistant.Service
	logger     logger.Logger
	version    string
	checks     map[string]ReadinessCheck
	httpServer *http.Server
}

type Option func(*Server)

// WithReadinessCheck adds a named check to GET /ready.
func WithReadinessCheck(name string, check ReadinessCheck) Option {
	return func(s *Server) { s.checks[name] = check }
}

func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

func NewServer(cfg config.ServerConfig, svc *assistant.Service, log logger.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg,
		router:    mux.NewRouter(),
		assistant: svc,
		logger:    log.WithFields(map[string]interface{}{"component": "api"}),
		checks:    make(map[string]ReadinessCheck),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestID, s.recoverPanic, s.observe)

	s.router.HandleFunc("/predict-from-prompt", s.predictFromPrompt).Methods(http.MethodPost)
	s.router.HandleFunc("/predict-structured", s.predictStructured).Methods(http.MethodPost)
	s.router.HandleFunc("/extract-data", s.extractData).Methods(http.MethodPost)

	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	s.router.HandleFunc("/ready", s.ready).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// Handler returns the router wrapped with CORS.
func (s *Server) Handler() http.Handler {
	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(s.router)
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Millisecond,
	}

	s.logger.Info("HTTP server listening", map[string]interface{}{"addr": s.cfg.Addr()})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
