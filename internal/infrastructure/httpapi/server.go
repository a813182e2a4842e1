// Package httpapi exposes the directory handlers as a JSON API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/yasar2385/family-address-book/internal/application/handlers"
	"github.com/yasar2385/family-address-book/internal/infrastructure/config"
	"github.com/yasar2385/family-address-book/internal/infrastructure/logging"
)

const shutdownTimeout = 10 * time.Second

// Handlers groups the application handlers served by the API.
type Handlers struct {
	Directory *handlers.DirectoryHandler
	Members   *handlers.MemberHandler
	Relations *handlers.RelationHandler
}

// Server serves the JSON API.
type Server struct {
	h       Handlers
	cfg     config.ServerConfig
	log     *slog.Logger
	limiter *rate.Limiter
}

// NewServer creates a new Server. A non-positive write rate disables limiting.
func NewServer(h Handlers, cfg config.ServerConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{h: h, cfg: cfg, log: log}
	if cfg.WriteRate > 0 {
		burst := cfg.WriteBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.WriteRate), burst)
	}
	return s
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(logging.AccessMiddleware(s.log))
	r.Use(s.limitWrites)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/members", func(r chi.Router) {
		r.Get("/", s.listMembers)
		r.Post("/", s.createMember)
		r.Get("/filters", s.filterOptions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getMember)
			r.Patch("/", s.updateMember)
			r.Delete("/", s.deleteMember)
			r.Patch("/location", s.editLocation)
		})
	})

	r.Route("/relations", func(r chi.Router) {
		r.Get("/", s.listRelations)
		r.Post("/", s.createRelation)
		r.Delete("/{id}", s.deleteRelation)
	})

	r.Get("/tree", s.tree)
	r.Get("/forest", s.forest)
	r.Get("/areas", s.areas)
	r.Get("/map", s.mapMarkers)
	r.Get("/coordinates", s.coordinates)

	return r
}

// Run serves on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// limitWrites rejects mutating requests over the configured rate with 429.
func (s *Server) limitWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && isWrite(r.Method) && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, errors.New("too many write requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
