package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	gomponents "maragu.dev/gomponents"

	"github.com/five82/thwip/internal/binding"
	"github.com/five82/thwip/internal/router"
)

// Server renders the catalogue as server-side HTML pages.
type Server struct {
	router *router.Router
	logger *slog.Logger
	mux    *chi.Mux
}

// New wires the HTML routes for every entry of the route table.
func New(r *router.Router, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{router: r, logger: logger, mux: chi.NewRouter()}

	s.mux.Use(chimw.RequestID)
	s.mux.Use(chimw.Recoverer)
	s.mux.Use(chimw.StripSlashes)
	s.mux.Use(s.logRequests)

	s.mux.Get("/", s.handlePage)
	for _, route := range r.Routes() {
		s.mux.Get(route.Pattern, s.handlePage)
	}
	s.mux.NotFound(s.handleNotFound)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down html server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("html server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// handlePage mounts a fresh view for the request path and runs its fetch
// before rendering, so each response is a settled screen.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	match, err := s.router.Resolve(r.URL.EscapedPath())
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	page, cmd := match.Mount(binding.WithContext(r.Context()), binding.WithLogger(s.logger))
	if cmd != nil {
		page.Update(cmd())
	}
	screen := page.Screen()

	status := http.StatusOK
	if screen.Kind == binding.ScreenError {
		status = http.StatusBadGateway
		s.logger.Warn("page fetch failed",
			"path", match.Path,
			"endpoint", page.Endpoint(),
			"request_id", chimw.GetReqID(r.Context()),
			"error", screen.Err)
	}
	renderHTML(w, status, catalogPage(match, screen))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusNotFound, notFoundPage(r.URL.Path))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(started),
			"request_id", chimw.GetReqID(r.Context()))
	})
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
