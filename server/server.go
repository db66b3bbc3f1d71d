// Package server exposes the solver over HTTP with gin.
//
// Each client works on its own city list, identified by the X-Session-ID
// header (issued on first contact). Solves build the distance matrix
// through the configured distance.Builder and return the full step trace
// for visualization.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/tspsearch/logging"
)

// Server owns the gin engine and the HTTP listener.
type Server struct {
	engine   *gin.Engine
	handlers *Handlers
	log      *slog.Logger
}

// New builds the engine with recovery, request logging, the API routes,
// /healthz and /metrics.
func New(d Deps) (*Server, error) {
	h, err := NewHandlers(d)
	if err != nil {
		return nil, err
	}
	log := logging.OrNop(d.Logger)

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))
	RegisterRoutes(&engine.RouterGroup, h)
	engine.GET("/healthz", h.HandleHealth)
	engine.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	return &Server{engine: engine, handlers: h, log: log}, nil
}

// Handler returns the root handler, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return nil
}

// requestLogger logs one line per request.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(began),
			"session", c.Writer.Header().Get(SessionHeader))
	}
}
