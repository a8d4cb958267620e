package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/alexanderramin/tdee/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the tracker over JSON HTTP.
type Server struct {
	tracker service.TrackerService
	logger  *slog.Logger
	now     func() time.Time
}

func NewServer(tracker service.TrackerService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		tracker: tracker,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Router registers every API route.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/summary", s.getSummary).Methods(http.MethodGet)
	api.HandleFunc("/logs", s.listLogs).Methods(http.MethodGet)
	api.HandleFunc("/logs", s.createLog).Methods(http.MethodPost)
	api.HandleFunc("/logs/{date}", s.deleteLog).Methods(http.MethodDelete)
	api.HandleFunc("/profile", s.getProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.patchProfile).Methods(http.MethodPatch)
	api.HandleFunc("/target", s.getTarget).Methods(http.MethodGet)
	api.HandleFunc("/recalculate", s.recalculate).Methods(http.MethodPost)

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "route not found"})
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})
	// The subrouter needs its own handlers, otherwise a method mismatch
	// under /api falls through to the root 404.
	for _, router := range []*mux.Router{r, api} {
		router.NotFoundHandler = notFound
		router.MethodNotAllowedHandler = notAllowed
	}
	return r
}

// Handler wraps the router with CORS and request logging.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(loggingMiddleware(s.logger)(s.Router()))
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api_listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("api_stopped")
		return nil
	}
}
