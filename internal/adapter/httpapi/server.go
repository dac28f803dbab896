package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/simaogato/finance-dashboard/internal/logging"
	"github.com/simaogato/finance-dashboard/internal/usecase/finance"
)

// StateSource provides snapshots of the application state and the outcome
// of its last load
type StateSource interface {
	Snapshot() finance.State
	LastLoadError() string
}

// ServerConfig holds configuration for the ops server.
type ServerConfig struct {
	// Address to listen on (e.g., ":9090")
	Address string

	// ReadTimeout for HTTP requests
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses
	WriteTimeout time.Duration
}

// DefaultServerConfig returns a default configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":9090",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Server exposes health, state status and Prometheus metrics over HTTP.
type Server struct {
	state  StateSource
	logger *logging.Logger
	server *http.Server
	router *mux.Router
}

// NewServer creates the ops server. gatherer is scraped on /metrics.
func NewServer(state StateSource, gatherer prometheus.Gatherer, logger *logging.Logger, config ServerConfig) *Server {
	s := &Server{
		state:  state,
		logger: logger.Named("http"),
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router = r

	s.server = &http.Server{
		Addr:         config.Address,
		Handler:      r,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info("ops server listening", zap.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("ops server error", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleStatus reports the application state without its records.
// It answers 503 while the last load failed. The state error alone does not
// degrade the status: it is kept after later successes.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	state := s.state.Snapshot()
	loadErr := s.state.LastLoadError()

	code := http.StatusOK
	status := "ok"
	if loadErr != "" {
		code = http.StatusServiceUnavailable
		status = "degraded"
	}

	writeJSON(w, code, map[string]interface{}{
		"status":       status,
		"loading":      state.Loading,
		"error":        state.Error,
		"load_error":   loadErr,
		"transactions": len(state.Transactions),
		"categories":   len(state.Categories),
		"balance":      state.Summary.Balance.String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
