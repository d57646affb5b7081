// Package health exposes the liveness HTTP endpoint.
package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/NogiBatia/BOT2/core/logger"
)

// Server serves a static OK payload for process liveness probes.
type Server struct {
	srv *http.Server
}

// New builds the liveness server on the given listen address.
func New(listen string) *Server {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Bot is running"))
	})

	return &Server{
		srv: &http.Server{
			Addr:              listen,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving in the background. Listen errors other than a
// clean shutdown are logged, never fatal.
func (s *Server) Start() {
	go func() {
		err := s.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) && logger.L != nil {
			logger.L.With("component", "health").Error("health listener failed",
				slog.String("listen", s.srv.Addr),
				slog.String("err", err.Error()),
			)
		}
	}()
}

// Stop shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
