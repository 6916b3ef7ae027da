package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/msto63/boundary/pkg/core/health"
	"github.com/msto63/boundary/pkg/core/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter routes /metrics to the registry of m and /healthz to checks
func NewRouter(m *GuardMetrics, checks *health.Registry) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})).Methods("GET")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report := checks.Check(ctx)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(report.HTTPStatus())
		json.NewEncoder(w).Encode(report)
	}).Methods("GET")

	return router
}

// Server serves the metrics router
type Server struct {
	server *http.Server
	logger *logging.Logger
}

// NewServer creates a server for addr
func NewServer(addr string, router http.Handler, logger *logging.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start listens and serves in the background. Listen errors are returned.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("metrics endpoint listening", "addr", lis.Addr().String())

	go func() {
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server error", "error", err)
		}
	}()
	return nil
}

// Shutdown stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
