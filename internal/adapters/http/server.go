// Package http exposes the dev server: catalog inspection, experience
// resolution, preview-session management and hot-reload events over SSE.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	vitrine "github.com/vitrinehq/vitrine"
	"github.com/vitrinehq/vitrine/internal/logging"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/experience"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/session"
)

// Server serves the dev API over an Engine and a session manager.
type Server struct {
	engine   *vitrine.Engine
	sessions *session.Manager
	watcher  ports.ConfigWatcher
	metrics  http.Handler
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithWatcher enables the /api/events SSE stream.
func WithWatcher(w ports.ConfigWatcher) Option {
	return func(s *Server) {
		s.watcher = w
	}
}

// WithMetricsHandler mounts a metrics handler at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates the dev server.
func NewServer(engine *vitrine.Engine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		engine:   engine,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.getCatalog)
		r.Post("/resolve", s.postResolve)
		r.Post("/validate", s.postValidate)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.listSessions)
			r.Post("/", s.startSession)
			r.Get("/{sessionID}", s.getSession)
			r.Post("/{sessionID}/override", s.postOverride)
			r.Delete("/{sessionID}", s.deleteSession)
		})

		if s.watcher != nil {
			r.Get("/events", s.subscribeEvents)
		}
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	return r
}

// catalogEntry is one registered definition in the catalog listing.
type catalogEntry struct {
	ID   string      `json:"id"`
	Meta domain.Meta `json:"meta"`
}

type catalogResponse struct {
	Experiences []catalogEntry `json:"experiences"`
	Transitions []catalogEntry `json:"transitions"`
	Behaviours  []catalogEntry `json:"behaviours"`
	Decorators  []catalogEntry `json:"decorators"`
	Modes       []catalogEntry `json:"modes"`
}

func (s *Server) getCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Experiences: entries(s.engine.Experiences().IDs(), s.engine.Experiences().Meta),
		Transitions: entries(s.engine.Transitions().IDs(), s.engine.Transitions().Meta),
		Behaviours:  entries(s.engine.Behaviours().IDs(), s.engine.Behaviours().Meta),
		Decorators:  entries(s.engine.Decorators().IDs(), s.engine.Decorators().Meta),
		Modes:       entries(s.engine.Modes().IDs(), s.engine.Modes().Meta),
	})
}

func entries(ids []string, meta func(string) (domain.Meta, bool)) []catalogEntry {
	out := make([]catalogEntry, 0, len(ids))
	for _, id := range ids {
		m, _ := meta(id)
		out = append(out, catalogEntry{ID: id, Meta: m})
	}
	return out
}

type resolveRequest struct {
	Site domain.ExperienceConfig `json:"site"`
	Page domain.ExperienceConfig `json:"page"`
	Dev  *domain.DevOverride     `json:"dev,omitempty"`
}

func (s *Server) postResolve(w http.ResponseWriter, r *http.Request) {
	var body resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resolved := s.engine.Composer().Resolve(r.Context(), experience.Inputs{
		Site: body.Site,
		Page: body.Page,
		Dev:  body.Dev,
	})
	writeJSON(w, http.StatusOK, resolved)
}

type validateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func (s *Server) postValidate(w http.ResponseWriter, r *http.Request) {
	var body domain.ExperienceConfig
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	errs := s.engine.ValidateConfig(body)
	resp := validateResponse{Valid: len(errs) == 0}
	for _, err := range errs {
		resp.Errors = append(resp.Errors, err.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("list error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Start(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("start error: %v", err), http.StatusInternalServerError)
		return
	}
	s.logger.Info("preview session started", "session_id", sess.ID)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("load error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) postOverride(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var override domain.DevOverride
	if err := json.NewDecoder(r.Body).Decode(&override); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := s.sessions.Override(r.Context(), id, override)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("override error: %v", err), http.StatusInternalServerError)
		return
	}

	s.logger.Info("dev override applied",
		"session_id", id,
		"experience", sess.Overrides.Experience,
		"transition", sess.Overrides.Transition,
	)
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("delete error: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// subscribeEvents streams config reload notifications as SSE.
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	events, err := s.watcher.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("watch error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: reload\ndata: config changed\n\n")
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
