// Package httpserver exposes game sessions over a JSON API.
//
// Routes:
//
//	GET    /health
//	POST   /sessions                 start a session
//	GET    /sessions/{id}            current state
//	POST   /sessions/{id}/words      submit {"word": "..."}
//	POST   /sessions/{id}/restart    pick a new root word
//	DELETE /sessions/{id}            forget the session
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/scramble/internal/engine"
	"github.com/verte-zerg/scramble/internal/session"
)

const shutdownGrace = 5 * time.Second

// Server bundles the router and the session registry.
type Server struct {
	r        *chi.Mux
	sessions *session.Registry
	idleTTL  time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithIdleTTL drops sessions idle for longer than ttl while serving. Zero
// keeps sessions until they are deleted.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.idleTTL = ttl
	}
}

// New constructs a Server, installs middleware, and registers routes.
func New(sessions *session.Registry, opts ...Option) *Server {
	s := &Server{r: chi.NewRouter(), sessions: sessions}
	for _, opt := range opts {
		opt(s)
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(requestLogger)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.Len()})
	})

	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/words", s.handleSubmit)
			r.Post("/restart", s.handleRestart)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.r
}

// Start listens on addr and serves until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if s.idleTTL > 0 {
		go s.sweepIdle(sweepCtx)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) sweepIdle(ctx context.Context) {
	interval := s.idleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(s.idleTTL); n > 0 {
				log.Info().Int("removed", n).Int("live", s.sessions.Len()).Msg("idle sessions dropped")
			}
		}
	}
}

type sessionRes struct {
	ID    string   `json:"id"`
	State string   `json:"state"`
	Root  string   `json:"root"`
	Used  []string `json:"used"`
	Score scoreRes `json:"score"`
}

type scoreRes struct {
	Words   int `json:"words"`
	Letters int `json:"letters"`
}

type submitReq struct {
	Word string `json:"word"`
}

type submitRes struct {
	Accepted bool       `json:"accepted"`
	Reason   string     `json:"reason"`
	Word     string     `json:"word"`
	Title    string     `json:"title,omitempty"`
	Message  string     `json:"message,omitempty"`
	Session  sessionRes `json:"session"`
}

func toSessionRes(id string, snap session.Snapshot) sessionRes {
	used := snap.Used
	if used == nil {
		used = []string{}
	}
	return sessionRes{
		ID:    id,
		State: snap.State.String(),
		Root:  snap.Root,
		Used:  used,
		Score: scoreRes{Words: snap.Score.Words, Letters: snap.Score.Letters},
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, snap, err := s.sessions.Create()
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	log.Info().Str("session", id).Str("root", snap.Root).Msg("session started")
	writeJSON(w, http.StatusCreated, toSessionRes(id, snap))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.sessions.Get(id)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionRes(id, snap))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(id); err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	res, snap, err := s.sessions.Submit(id, req.Word)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	out := submitRes{
		Accepted: res.OK(),
		Reason:   res.Reason.String(),
		Word:     res.Word,
		Session:  toSessionRes(id, snap),
	}
	if res.Reason != engine.Accepted {
		msg := res.Message(snap.Root)
		out.Title = msg.Title
		out.Message = msg.Text
	}
	log.Debug().Str("session", id).Str("word", res.Word).Str("reason", out.Reason).Msg("word submitted")
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.sessions.Restart(id)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	log.Info().Str("session", id).Str("root", snap.Root).Msg("session restarted")
	writeJSON(w, http.StatusOK, toSessionRes(id, snap))
}

func (s *Server) writeSessionError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session_not_found")
		return
	}
	log.Error().Err(err).Str("session", id).Msg("session operation failed")
	writeError(w, http.StatusInternalServerError, "internal_error")
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
