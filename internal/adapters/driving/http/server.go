package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThePadawan/beevenue-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService   driving.AuthService
	searchService driving.SearchService
	mediumService driving.MediumService
	indexService  driving.IndexService
	tagService    driving.TagService

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	searchService driving.SearchService,
	mediumService driving.MediumService,
	indexService driving.IndexService,
	tagService driving.TagService,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:        http.NewServeMux(),
		version:       cfg.Version,
		authService:   authService,
		searchService: searchService,
		mediumService: mediumService,
		indexService:  indexService,
		tagService:    tagService,
		db:            db,
		redisClient:   redisClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Search endpoints (authenticated)
	s.router.Handle("GET /api/v1/search",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSearch)))

	// Medium endpoints (authenticated)
	s.router.Handle("GET /api/v1/media/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMedium)))
	s.router.Handle("GET /api/v1/media/{id}/similar",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetSimilar)))

	// Tag endpoints (admin-only for mutations)
	s.router.Handle("GET /api/v1/tags/implications",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListImplications)))
	s.router.Handle("PUT /api/v1/tags/{implying}/implications/{implied}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleAddImplication))))
	s.router.Handle("DELETE /api/v1/tags/{implying}/implications/{implied}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleRemoveImplication))))
	s.router.Handle("PUT /api/v1/tags/{name}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleRenameTag))))
	s.router.Handle("POST /api/v1/tags/{name}/aliases/{alias}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleAddAlias))))
	s.router.Handle("DELETE /api/v1/tags/aliases/{alias}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleRemoveAlias))))

	// Index maintenance endpoints (admin-only)
	s.router.Handle("POST /api/v1/index/reindex",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleReindex))))
	s.router.Handle("GET /api/v1/index/status",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleStatus))))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
