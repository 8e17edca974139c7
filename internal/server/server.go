// Package server exposes the assessment engine over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/guidance"
	"github.com/abhisek/disha/internal/store"
)

// Options configures a Server.
type Options struct {
	Bank     *aptitude.Bank
	Events   store.EventRepo   // nil disables persistence and history
	Profiles store.ProfileRepo // nil disables profiles

	JWTSecret   string
	JWTIssuer   string
	DefaultUser string

	CORSOrigins    []string
	RequestTimeout time.Duration
	SessionTTL     time.Duration

	Logger *zap.Logger
}

// Server is the HTTP API. Close must be called to stop background work.
type Server struct {
	bank     *aptitude.Bank
	events   store.EventRepo
	profiles store.ProfileRepo
	recorder guidance.Recorder
	auth     *Authenticator
	sessions *registry
	logger   *zap.Logger
	handler  http.Handler
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	if opts.Bank == nil {
		opts.Bank = aptitude.DefaultBank()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.DefaultUser == "" {
		opts.DefaultUser = "local"
	}

	s := &Server{
		bank:     opts.Bank,
		events:   opts.Events,
		profiles: opts.Profiles,
		auth:     NewAuthenticator(opts.JWTSecret, opts.JWTIssuer, opts.DefaultUser),
		sessions: newRegistry(opts.SessionTTL),
		logger:   opts.Logger,
	}
	if opts.Events != nil {
		s.recorder = guidance.NewStoreRecorder(opts.Events, opts.Profiles)
	}
	s.handler = s.routes(opts)
	return s
}

func (s *Server) routes(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(s.logger), middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/streams", s.handleStreams)
		api.Get("/questions", s.handleQuestions)
		api.Get("/scale", s.handleScale)
		api.Post("/score", s.handleScore)

		api.Group(func(pr chi.Router) {
			pr.Use(s.auth.Middleware)

			pr.Post("/sessions", s.handleCreateSession)
			pr.Route("/sessions/{sessionID}", func(sr chi.Router) {
				sr.Get("/", s.handleGetSession)
				sr.Delete("/", s.handleDeleteSession)
				sr.Post("/answers", s.handleAnswer)
				sr.Post("/reset", s.handleReset)
			})

			pr.Get("/results", s.handleResults)
			pr.Get("/results/latest", s.handleLatestResult)
			pr.Get("/results/counts", s.handleStreamCounts)

			pr.Get("/profile", s.handleGetProfile)
			pr.Put("/profile", s.handlePutProfile)
		})
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Close stops the session janitor.
func (s *Server) Close() {
	s.sessions.close()
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr), zap.Bool("auth", s.auth.Enabled()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
