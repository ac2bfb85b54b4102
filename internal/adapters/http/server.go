// Package http exposes the engine over a REST API: session creation,
// playback control, and introspection endpoints.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edulab/stepwise/internal/logging"
	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/patterns"
	"github.com/edulab/stepwise/pkg/session"
	"github.com/edulab/stepwise/pkg/timeline"
)

// Server routes playback requests to the session manager.
type Server struct {
	sessions *session.Manager
	registry *patterns.Registry
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry sets the provider registry used by GET /languages.
func WithRegistry(r *patterns.Registry) Option {
	return func(s *Server) { s.registry = r }
}

// WithMetricsGatherer exposes a Prometheus registry on GET /metrics.
func WithMetricsGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		sessions: sessions,
		registry: patterns.NewRegistry(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Get("/languages", s.languages)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/step", s.step)
			r.Post("/jump", s.jump)
			r.Post("/play", s.play)
			r.Post("/pause", s.pause)
			r.Post("/speed", s.speed)
			r.Post("/reset", s.reset)
		})
	})

	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type createRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type createResponse struct {
	SessionID string                   `json:"session_id"`
	Snapshot  *domain.TimelineSnapshot `json:"snapshot"`
}

type stepRequest struct {
	Direction string `json:"direction,omitempty"` // "forward" (default) or "backward"
}

type jumpRequest struct {
	Index int `json:"index"`
}

type speedRequest struct {
	IntervalMs int `json:"interval_ms"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"languages": s.registry.Tags()})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("create session: invalid request body", "err", err)
		return
	}
	if body.Code == "" {
		http.Error(w, "code is required", http.StatusBadRequest)
		return
	}

	id, c, err := s.sessions.Create(r.Context(), body.Code, body.Language)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		s.logger.Error("create session failed", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{
		SessionID: id,
		Snapshot:  c.Snapshot(),
	})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
		s.logger.Error("list sessions failed", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Snapshot())
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.sessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) step(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}

	var body stepRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	switch body.Direction {
	case "", "forward":
		c.StepForward()
	case "backward":
		c.StepBackward()
	default:
		http.Error(w, "direction must be forward or backward", http.StatusBadRequest)
		return
	}

	s.persist(r, chi.URLParam(r, "sessionID"))
	writeJSON(w, http.StatusOK, c.Snapshot())
}

func (s *Server) jump(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}

	var body jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c.JumpTo(body.Index)
	s.persist(r, chi.URLParam(r, "sessionID"))
	writeJSON(w, http.StatusOK, c.Snapshot())
}

func (s *Server) play(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}
	c.Play()
	writeJSON(w, http.StatusOK, c.Snapshot())
}

func (s *Server) pause(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}
	c.Pause()
	s.persist(r, chi.URLParam(r, "sessionID"))
	writeJSON(w, http.StatusOK, c.Snapshot())
}

func (s *Server) speed(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}

	var body speedRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c.SetSpeed(time.Duration(body.IntervalMs) * time.Millisecond)
	writeJSON(w, http.StatusOK, c.Snapshot())
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}
	c.Reset()
	s.persist(r, chi.URLParam(r, "sessionID"))
	writeJSON(w, http.StatusOK, c.Snapshot())
}

// controller resolves the session ID in the URL, writing the error
// response itself when the session cannot be found.
func (s *Server) controller(w http.ResponseWriter, r *http.Request) (*timeline.Controller, bool) {
	id := chi.URLParam(r, "sessionID")
	c, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.sessionError(w, err)
		return nil, false
	}
	return c, true
}

func (s *Server) sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	http.Error(w, "Session lookup failed", http.StatusInternalServerError)
	s.logger.Error("session lookup failed", "err", err)
}

// persist is best-effort; playback keeps working if the store is down.
func (s *Server) persist(r *http.Request, sessionID string) {
	if err := s.sessions.Persist(r.Context(), sessionID); err != nil {
		s.logger.Warn("failed to persist session", "session_id", sessionID, "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
