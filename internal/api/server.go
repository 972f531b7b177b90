// Package api exposes the storyboard services over a JSON HTTP API built on
// gin.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/GIVandez/plot-twister/internal/config"
	"github.com/GIVandez/plot-twister/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Server routes HTTP requests to the project, page and frame services.
type Server struct {
	router   *gin.Engine
	projects service.ProjectService
	pages    service.PageService
	frames   service.FrameService
	config   config.Config
	logger   *slog.Logger
}

// NewServer wires the router. A nil logger discards request logs.
func NewServer(cfg config.Config, projects service.ProjectService, pages service.PageService, frames service.FrameService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		router:   gin.New(),
		projects: projects,
		pages:    pages,
		frames:   frames,
		config:   cfg,
		logger:   logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(gin.Recovery(), s.requestLogger())
	if c, ok := corsConfig(s.config.AllowedOrigins); ok {
		s.router.Use(cors.New(c))
	}
	s.router.MaxMultipartMemory = s.config.MaxUploadBytes

	// Health check needs no key.
	s.router.GET("/healthz", s.handleHealthCheck)

	api := s.router.Group("/api", s.apiKeyAuth())

	api.POST("/projects", s.handleCreateProject)
	api.GET("/projects", s.handleListProjects)
	api.GET("/projects/:project_id", s.handleGetProject)
	api.PUT("/projects/:project_id", s.handleRenameProject)
	api.DELETE("/projects/:project_id", s.handleDeleteProject)
	api.DELETE("/projects/:project_id/pages", s.handleDeleteScript)
	api.DELETE("/projects/:project_id/frames", s.handleDeleteStoryboard)
	api.GET("/projects/:project_id/pages", s.handleListPages)
	api.GET("/projects/:project_id/frames", s.handleListFrames)
	api.GET("/projects/:project_id/storyboard", s.handleExportStoryboard)
	api.PUT("/projects/:project_id/frames/:frame_id/number", s.handleReorderFrame)

	api.POST("/pages", s.handleCreatePage)
	api.GET("/pages/:page_id", s.handleGetPage)
	api.PUT("/pages/:page_id", s.handleUpdatePage)
	api.DELETE("/pages/:page_id", s.handleDeletePage)

	api.POST("/frames", s.handleCreateFrame)
	api.GET("/frames/:frame_id", s.handleGetFrame)
	api.DELETE("/frames/:frame_id", s.handleDeleteFrame)
	api.PUT("/frames/:frame_id/number", s.handleReorderFrameByID)
	api.PUT("/frames/:frame_id/start_time", s.handleSetStartTime)
	api.PUT("/frames/:frame_id/end_time", s.handleSetEndTime)
	api.PUT("/frames/:frame_id/description", s.handleSetDescription)
	api.PUT("/frames/:frame_id/page", s.handleConnectPage)
	api.DELETE("/frames/:frame_id/page", s.handleDisconnectPage)
	api.POST("/frames/:frame_id/image", s.handleUploadImage)
	api.GET("/frames/:frame_id/image", s.handleGetImage)
	api.DELETE("/frames/:frame_id/image", s.handleDeleteImage)
}

// corsConfig builds the CORS policy for the configured origins. "*" allows
// any origin; no origins means no CORS middleware at all.
func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-API-Key"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c, true
		}
	}
	c.AllowOrigins = origins
	return c, true
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on the configured listen address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http_shutdown")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
