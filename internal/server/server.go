package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vishnu-gaddam/Nutrify/config"
	"github.com/vishnu-gaddam/Nutrify/internal/api"
	"github.com/vishnu-gaddam/Nutrify/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New creates a new server instance wiring middleware and routes.
func New(cfg *config.Config, svcs api.Services) *Server {
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	api.SetupAPI(router, svcs)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
