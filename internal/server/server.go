// Package server exposes the engine registry over HTTP.
//
//	GET  /healthz
//	GET  /api/v1/engines
//	POST /api/v1/engines/{engine}/errors
//	POST /api/v1/engines/{engine}/types
//	POST /api/v1/engines/{engine}/probe
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/koustreak/dbspec/internal/config"
	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/logger"
	"github.com/koustreak/dbspec/internal/probe"
)

// maxBodyBytes caps request bodies; driver messages are short.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	registry *engine.Registry
	prober   *probe.Prober
	log      *logger.Logger
	cfg      config.ServerConfig
}

// New builds a Server over registry.
func New(cfg config.ServerConfig, registry *engine.Registry, prober *probe.Prober, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if prober == nil {
		prober = probe.New(nil, log)
	}
	return &Server{registry: registry, prober: prober, log: log, cfg: cfg}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1/engines", func(r chi.Router) {
		r.Get("/", s.handleListEngines)
		r.Route("/{engine}", func(r chi.Router) {
			r.Use(s.withSpec)
			r.Post("/errors", s.handleExtract)
			r.Post("/types", s.handleRender)
			r.Post("/probe", s.handleProbe)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		reqLog := s.log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		next.ServeHTTP(ww, r.WithContext(reqLog.WithContext(r.Context())))

		reqLog.HTTPEvent().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
