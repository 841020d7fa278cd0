// Package server exposes the note service, the summarizer and an HTML view over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/render"
	"github.com/aretw0/jotter/pkg/summarize"
)

// Server wires the chi router to the service.
type Server struct {
	addr       string
	logger     *slog.Logger
	service    *core.Service
	summarizer *summarize.Gateway
	renderOpts []render.Option
	router     *chi.Mux
	accessLog  bool
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address. Default ":8080".
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSummarizer enables POST /api/summarize. Without it the endpoint reports
// a configuration error.
func WithSummarizer(g *summarize.Gateway) Option {
	return func(s *Server) { s.summarizer = g }
}

// WithRenderOptions sets locale and time zone for the HTML view.
func WithRenderOptions(opts ...render.Option) Option {
	return func(s *Server) { s.renderOpts = append(s.renderOpts, opts...) }
}

// WithAccessLog toggles chi's request logger. Enabled by default.
func WithAccessLog(enabled bool) Option {
	return func(s *Server) { s.accessLog = enabled }
}

// New builds a Server and its routes.
func New(service *core.Service, opts ...Option) *Server {
	s := &Server{
		addr:       ":8080",
		logger:     slog.Default(),
		service:    service,
		summarizer: summarize.NewGateway(nil),
		accessLog:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.summarizer == nil {
		s.summarizer = summarize.NewGateway(nil)
	}

	r := chi.NewRouter()
	if s.accessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Post(render.RouteSubmit, s.handleSubmitForm)
	r.Post("/notes/{id}/delete", s.handleDeleteForm)
	r.Post("/notes/{id}/summarize", s.handleSummarizeForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/notes", s.handleListNotes)
		r.Post("/notes", s.handleCreateNote)
		r.Get("/notes/{id}", s.handleGetNote)
		r.Put("/notes/{id}", s.handleUpdateNote)
		r.Delete("/notes/{id}", s.handleDeleteNote)
		r.Get("/categories", s.handleCategories)
		r.Get("/state", s.handleState)
		r.Post("/summarize", s.handleSummarize)
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
