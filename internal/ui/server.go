// Package ui provides the dbglance web interface.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/dbglance/dbglance/internal/database"
	"github.com/dbglance/dbglance/internal/session"
	"github.com/dbglance/dbglance/internal/ui/features/common"
	"github.com/dbglance/dbglance/internal/ui/router"
)

// janitorInterval is how often idle sessions are swept.
const janitorInterval = time.Minute

// Server is the main UI server.
type Server struct {
	manager      *session.Manager
	sessionStore *sessions.CookieStore
	host         string
	port         int
	logger       *slog.Logger
	load         database.LoadOptions
	run          database.RunOptions
	sampleLimit  int
}

// Config holds configuration for the UI server.
type Config struct {
	Manager       *session.Manager
	Host          string
	Port          int
	SessionSecret string
	Logger        *slog.Logger
	Load          database.LoadOptions
	Run           database.RunOptions
	SampleLimit   int
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400) // 1 day, the server-side state expires sooner
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		manager:      cfg.Manager,
		sessionStore: sessionStore,
		host:         cfg.Host,
		port:         cfg.Port,
		logger:       cfg.Logger,
		load:         cfg.Load,
		run:          cfg.Run,
		sampleLimit:  cfg.SampleLimit,
	}
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))
	s.logger.Info("starting dbglance UI", "addr", fmt.Sprintf("http://%s", addr))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	deps := common.Deps{
		Manager:     s.manager,
		Sessions:    s.sessionStore,
		Logger:      s.logger,
		Load:        s.load,
		Run:         s.run,
		SampleLimit: s.sampleLimit,
	}
	router.SetupRoutes(r, deps)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Sweep idle sessions so their temp files and connections go away.
	eg.Go(func() error {
		s.manager.Janitor(egctx, janitorInterval)
		return nil
	})

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
