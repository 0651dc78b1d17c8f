// Package server exposes the analysis over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/octoland/internal/analysis"
	"github.com/Faultbox/octoland/internal/config"
	"github.com/Faultbox/octoland/internal/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Server is the HTTP front end of the analysis.
type Server struct {
	cfg      config.ServerConfig
	defaults config.AnalysisConfig
	analyzer *analysis.Analyzer
	log      *zap.Logger
	engine   *gin.Engine
}

// New creates a server. Requests inherit their resolutions, plane and
// tolerance defaults from cfg.Analysis.
func New(cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	gin.SetMode(cfg.Server.Mode)

	maxSamples := cfg.Server.MaxSamples
	if maxSamples == 0 {
		maxSamples = cfg.Analysis.MaxSamples
	}

	s := &Server{
		cfg:      cfg.Server,
		defaults: cfg.Analysis,
		analyzer: analysis.New(
			analysis.WithTolerance(cfg.Analysis.ContourTolerance),
			analysis.WithMaxSamples(maxSamples),
			analysis.WithLogger(log.Named("analysis")),
		),
		log: log,
	}

	e := gin.New()
	e.Use(gin.Recovery(), s.requestID(), s.accessLog())
	e.GET("/healthz", s.handleHealth)
	v1 := e.Group("/v1")
	v1.POST("/analyze", s.handleAnalyze)
	s.engine = e
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
