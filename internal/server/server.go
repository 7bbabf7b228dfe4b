// Package server exposes scatterplot matrix rendering over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/internal/config"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/source/influx"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
)

// Server is the HTTP service.
type Server struct {
	cfg     config.ServerConfig
	matrix  splom.Config
	points  int
	source  *influx.Source
	logger  *slog.Logger
	metrics *Metrics
	router  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMatrixConfig sets the defaults request options are merged over.
func WithMatrixConfig(cfg splom.Config) Option {
	return func(s *Server) { s.matrix = cfg }
}

// WithSource enables GET /v1/matrix/influx. points is the default sample
// count per field.
func WithSource(src *influx.Source, points int) Option {
	return func(s *Server) {
		s.source = src
		if points > 0 {
			s.points = points
		}
	}
}

// WithMetrics replaces the collectors.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New returns a server with its routes registered.
func New(cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		matrix:  splom.DefaultConfig(),
		points:  influx.DefaultPoints,
		logger:  slog.Default(),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	v1 := s.router.Group("/v1")
	v1.POST("/matrix", s.handleMatrix)
	v1.POST("/matrix/stats", s.handleStats)
	v1.GET("/matrix/influx", s.handleInflux)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

const requestIDHeader = "X-Request-ID"

// requestID returns the caller's X-Request-ID or a new one, and echoes it
// on the response.
func requestID(c *gin.Context) string {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(requestIDHeader, id)
	return id
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := requestID(c)
		c.Set(requestIDHeader, id)
		c.Next()
		s.logger.Info("Request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
