// Package server exposes the pipeline over HTTP for `refugeeflow serve`.
//
// The dataset is loaded once at startup; every request recomputes its layout
// from that table and serves rendered artifacts through the runner's cache.
//
//	GET /api/map       symbol map frames (json, svg, png, pdf)
//	GET /api/flow      flow diagram (json, svg, png, pdf, dot)
//	GET /api/overview  regional totals per year (json, svg, png, pdf)
//	GET /api/regions   the region domain and its colors
//	GET /healthz       liveness with dataset and build information
//	GET /metrics       Prometheus metrics
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/refugeeflow/pkg/cache"
	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/pipeline"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 60 * time.Second
	shutdownTimeout     = 10 * time.Second
	requestTimeout      = 45 * time.Second
)

// Server serves one dataset.
type Server struct {
	runner      *pipeline.Runner
	dataset     *dataset.Dataset
	datasetHash string
	logger      *log.Logger
	metrics     *Metrics
	started     time.Time

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics mounts /metrics and records request metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithTimeouts overrides the HTTP read and write timeouts. Zero keeps the
// default.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
	}
}

// New creates a server for ds. The runner's keyer is scoped by the dataset
// hash so a restarted server with a different table never reuses artifacts
// of the old one.
func New(runner *pipeline.Runner, ds *dataset.Dataset, opts ...Option) *Server {
	s := &Server{
		runner:       runner,
		dataset:      ds,
		datasetHash:  ds.Hash(),
		logger:       runner.Logger,
		started:      time.Now(),
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "ds:"+shortHash(s.datasetHash)+":")
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/regions", s.handleRegions)
		r.Get("/map", s.handleRender(pipeline.KindMap))
		r.Get("/flow", s.handleRender(pipeline.KindFlow))
		r.Get("/overview", s.handleRender(pipeline.KindOverview))
	})
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readTimeout,
		ReadTimeout:       s.readTimeout,
		WriteTimeout:      s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "records", s.dataset.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs one line per request at Info, or Warn for 5xx.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		keyvals := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Warn("request failed", keyvals...)
			return
		}
		s.logger.Info("request", keyvals...)
	})
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
