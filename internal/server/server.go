// Package server exposes a pre-built static bundle over HTTP.
// "/" always returns the configured root document; every other path is
// resolved under the served root directory.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Config describes one server instance. Nothing is shared between instances.
type Config struct {
	Host string
	Port int
	// Root is the served root directory.
	Root string
	// Index is the root document path; defaults to Root/index.html.
	Index string
	// ContentTypes defaults to DefaultContentTypes().
	ContentTypes    ContentTypes
	ShutdownTimeout time.Duration
}

// Server serves a single bundle directory.
type Server struct {
	cfg    Config
	engine *gin.Engine
}

// New validates cfg and builds the gin engine. The root directory is not
// touched until the first request.
func New(cfg Config) (*Server, error) {
	if cfg.Root == "" {
		return nil, errors.New("server: root directory is required")
	}
	if cfg.Index == "" {
		cfg.Index = filepath.Join(cfg.Root, "index.html")
	}
	if cfg.ContentTypes == nil {
		cfg.ContentTypes = DefaultContentTypes()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{cfg: cfg}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.registerRoutes(s.engine)
	return s, nil
}

// registerRoutes wires the two routes. Static files hang off NoRoute so that
// the exact "/" route always wins.
//
//	GET|HEAD /        root document
//	*        /<path>  file under Root
func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/", s.serveIndex)
	r.HEAD("/", s.serveIndex)
	r.NoRoute(s.serveStatic)
}

// Handler returns the HTTP handler for this instance.
func (s *Server) Handler() http.Handler { return s.engine }

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// IndexPath returns the root document location.
func (s *Server) IndexPath() string { return s.cfg.Index }

// Run listens on Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout. Each connection gets its own
// goroutine.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving on %s: %w", ln.Addr(), err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
