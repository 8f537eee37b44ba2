package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/logger"
)

const shutdownTimeout = 10 * time.Second

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "ledger",
		Subsystem: "api",
		Name:      "requests_total",
	},
	[]string{"route", "code"},
)

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(countRequests)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	users := r.PathPrefix("/api/v1/users/{userID}").Subrouter()
	users.HandleFunc("/transactions", h.AddTransaction).Methods(http.MethodPost)
	users.HandleFunc("/balance", h.Balance).Methods(http.MethodGet)
	users.HandleFunc("/summary", h.MonthlySummary).Methods(http.MethodGet)
	users.HandleFunc("/goals", h.SavingsGoals).Methods(http.MethodGet)
	users.HandleFunc("/goals", h.AddSavingsGoal).Methods(http.MethodPost)
	users.HandleFunc("/advice", h.Advice).Methods(http.MethodGet)
	users.HandleFunc("/report", h.Report).Methods(http.MethodGet)
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unknown"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		requestsTotal.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
	})
}

type Server struct {
	server *http.Server
}

func NewServer(addr string, h *Handler) *Server {
	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      NewRouter(h),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Serve blocks until ctx is done, then shuts the server down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", s.server.Addr))
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen http")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown http")
	}
	logger.Info("http server stopped")
	return nil
}
