package httpapi

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/db"
)

// Options configure the HTTP surface
type Options struct {
	// AuthorToken guards the authoring API. When empty the authoring routes are not mounted.
	AuthorToken    string
	AllowedOrigins []string
	ServiceWeeks   string
	UpcomingWeeks  int
	// Now is used to list upcoming weeks; defaults to time.Now
	Now func() time.Time
}

// Server serves the public roster and the authoring API
type Server struct {
	database db.Database
	public   db.RosterReader
	logger   *zap.Logger
	opts     Options
}

// NewServer builds a Server. public serves the unauthenticated routes and may
// be backed by a read-only credential; it defaults to database.
func NewServer(database db.Database, public db.RosterReader, logger *zap.Logger, opts Options) *Server {
	if public == nil {
		public = database
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.UpcomingWeeks <= 0 {
		opts.UpcomingWeeks = 8
	}
	return &Server{database: database, public: public, logger: logger, opts: opts}
}

// Handler returns the routed and instrumented HTTP handler
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(instrument)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)

	publicCORS := cors.New(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})
	public := r.PathPrefix("/public").Subrouter()
	public.Use(publicCORS.Handler)
	public.HandleFunc("/weeks", s.listPublicWeeks).Methods(http.MethodGet, http.MethodOptions)
	public.HandleFunc("/weeks/{week}", s.getPublicWeek).Methods(http.MethodGet, http.MethodOptions)

	if s.opts.AuthorToken == "" {
		s.logger.Warn("No author token configured, authoring API disabled")
		return r
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requireAuthor)
	api.HandleFunc("/weeks/{week}", s.getWeek).Methods(http.MethodGet)
	api.HandleFunc("/weeks/{week}/available", s.getAvailable).Methods(http.MethodGet)
	api.HandleFunc("/assignments", s.createAssignment).Methods(http.MethodPost)
	api.HandleFunc("/assignments/{id}/move", s.moveAssignment).Methods(http.MethodPost)
	api.HandleFunc("/assignments/{id}/lock", s.lockAssignment).Methods(http.MethodPost)
	api.HandleFunc("/assignments/{id}/unlock", s.unlockAssignment).Methods(http.MethodPost)
	api.HandleFunc("/assignments/{id}", s.deleteAssignment).Methods(http.MethodDelete)
	api.HandleFunc("/servants", s.listServants).Methods(http.MethodGet)
	api.HandleFunc("/servants", s.createServant).Methods(http.MethodPost)
	api.HandleFunc("/servants/{id}", s.updateServant).Methods(http.MethodPut)
	api.HandleFunc("/servants/{id}", s.removeServant).Methods(http.MethodDelete)
	api.HandleFunc("/servants/{id}/references", s.getServantReferences).Methods(http.MethodGet)

	return r
}

func (s *Server) requireAuthor(next http.Handler) http.Handler {
	expected := []byte(s.opts.AuthorToken)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), expected) != 1 {
			writeJSON(w, http.StatusUnauthorized, errorResponse{
				Error:     reasonUnauthorized,
				Message:   "missing or invalid bearer token",
				RequestID: ensureRequestID(w, r),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// pinger is implemented by stores that can check their connection
type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.database.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully, giving in-flight requests up to shutdownTimeout to finish.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
