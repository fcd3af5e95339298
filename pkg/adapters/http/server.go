package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/gambit"
	"github.com/aretw0/gambit/internal/logging"
	"github.com/aretw0/gambit/internal/presentation/graph"
	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/game"
	"github.com/aretw0/gambit/pkg/runner"
	"github.com/aretw0/gambit/pkg/session"
	"github.com/aretw0/gambit/pkg/sink"
	"github.com/go-chi/chi/v5"
)

// MaxBodyBytes caps request bodies. Larger bodies are rejected with 413.
const MaxBodyBytes = 16 << 10

// Server exposes chess sessions over HTTP. Every request resumes the game from
// its stored snapshot while holding the session lock.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	chart  *chart.Compiled[game.Deps]
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers hooks on every resumed game, e.g. metrics.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithChart serves a chart other than game.Definition.
func WithChart(c *chart.Compiled[game.Deps]) Option {
	return func(s *Server) {
		s.chart = c
	}
}

// NewServer creates a server on top of a session manager.
func NewServer(sessions *session.Manager, opts ...Option) (*Server, error) {
	s := &Server{
		Sessions: sessions,
		Streams:  NewStreamManager(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chart == nil {
		def, err := game.Definition()
		if err != nil {
			return nil, err
		}
		if s.chart, err = chart.Compile(def); err != nil {
			return nil, err
		}
	}
	s.Streams.logger = s.logger
	return s, nil
}

// Router returns the routes. Callers may mount more, such as /metrics.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/chart", s.GetChart)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/events", s.SendEvent)
			r.Get("/stream", s.SubscribeEvents)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionResponse is the body returned for a session.
type SessionResponse struct {
	ID       string               `json:"id"`
	State    string               `json:"state"`
	Extended domain.ExtendedState `json:"extended"`
	Terminal bool                 `json:"terminal"`
	Matched  *bool                `json:"matched,omitempty"`
	Commands []domain.Command     `json:"commands,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
}

// EventRequest is the body of POST /sessions/{id}/events.
type EventRequest struct {
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
}

type createRequest struct {
	ID string `json:"id"`
}

// CreateSession handles POST /sessions: it creates a game and starts it.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if r.ContentLength != 0 {
		if err := decodeBody(w, r, &body); err != nil {
			s.fail(w, bodyStatus(err), "invalid request body", err)
			return
		}
	}
	id := strings.TrimSpace(body.ID)
	if id == "" {
		id = newSessionID()
	}

	rec := &sink.Recorder{}
	snap, created, err := s.Sessions.LoadOrCreate(r.Context(), id, func(ctx context.Context) (*domain.Snapshot, error) {
		g, err := runner.New(s.gameOptions(rec)...)
		if err != nil {
			return nil, err
		}
		if _, err := g.Start(ctx); err != nil {
			return nil, err
		}
		return g.Snapshot(), nil
	})
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "failed to create session", err)
		return
	}
	if !created {
		s.fail(w, http.StatusConflict, fmt.Sprintf("session %q already exists", id), nil)
		return
	}

	s.logger.Info("session created", "session_id", id)
	s.broadcast(id, nil, snap)
	resp := s.response(id, snap)
	resp.Commands = rec.Commands()
	writeJSON(w, http.StatusCreated, resp)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "failed to list sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.failSession(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, s.response(id, snap))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, http.StatusInternalServerError, "failed to delete session", err)
		return
	}
	s.logger.Info("session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// SendEvent handles POST /sessions/{id}/events.
func (s *Server) SendEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body EventRequest
	if err := decodeBody(w, r, &body); err != nil {
		s.fail(w, bodyStatus(err), "invalid request body", err)
		return
	}
	if str, ok := body.Payload.(string); ok {
		clean, err := runner.SanitizeInput(str)
		if err != nil {
			s.fail(w, http.StatusBadRequest, "invalid payload", err)
			return
		}
		body.Payload = clean
	}

	var (
		prev     *domain.Snapshot
		step     *domain.Step
		warnings []string
		rec      = &sink.Recorder{}
	)
	next, err := s.Sessions.Update(r.Context(), id, func(ctx context.Context, snap *domain.Snapshot) (*domain.Snapshot, error) {
		prev = snap
		g, err := runner.Resume(snap, s.gameOptions(rec)...)
		if err != nil {
			return nil, err
		}
		var dispatchErr error
		step, dispatchErr = g.Dispatch(ctx, domain.NewEvent(body.Name, body.Payload))
		if step == nil {
			return nil, dispatchErr
		}
		if dispatchErr != nil {
			// The transition is committed; the host side failed.
			s.logger.WarnContext(ctx, "event handled with errors", "session_id", id, "err", dispatchErr)
			warnings = append(warnings, dispatchErr.Error())
		}
		return g.Snapshot(), nil
	})
	if err != nil {
		s.failSession(w, id, err)
		return
	}

	s.broadcast(id, prev, next)
	resp := s.response(id, next)
	resp.Matched = &step.Matched
	resp.Commands = rec.Commands()
	resp.Warnings = warnings
	writeJSON(w, http.StatusOK, resp)
}

// GetChart handles GET /chart: the chart as a Mermaid state diagram.
// With ?session=ID the current and visited states of that session are highlighted.
func (s *Server) GetChart(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.GraphOverlay
	if id := r.URL.Query().Get("session"); id != "" {
		snap, err := s.Sessions.Load(r.Context(), id)
		if err != nil {
			s.failSession(w, id, err)
			return
		}
		overlay = &graph.GraphOverlay{
			VisitedStates: s.chart.Path(snap.ControlState),
			CurrentState:  snap.ControlState,
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(s.chart, overlay))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "gambit-http",
		"version": strings.TrimSpace(gambit.Version),
	})
}

func (s *Server) gameOptions(rec *sink.Recorder) []runner.Option {
	return []runner.Option{
		runner.WithDefinition(s.chart.Definition()),
		runner.WithLogger(s.logger),
		runner.WithLifecycleHooks(s.hooks),
		runner.WithCommandSink(rec),
	}
}

func (s *Server) response(id string, snap *domain.Snapshot) SessionResponse {
	return SessionResponse{
		ID:       id,
		State:    snap.ControlState,
		Extended: snap.Extended,
		Terminal: s.chart.Has(snap.ControlState) && s.chart.Terminal(snap.ControlState),
	}
}

func (s *Server) broadcast(id string, prev, next *domain.Snapshot) {
	diff := domain.Diff(prev, next)
	if diff == nil {
		s.logger.Debug("no diff calculated", "session_id", id)
		return
	}
	data, err := json.Marshal(diff)
	if err != nil {
		s.logger.Warn("failed to encode diff", "session_id", id, "err", err)
		return
	}
	s.Streams.Broadcast(id, string(data))
}

func (s *Server) failSession(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.fail(w, http.StatusNotFound, fmt.Sprintf("session %q not found", id), nil)
	case errors.Is(err, domain.ErrUnknownEvent), errors.Is(err, domain.ErrReservedEvent):
		s.fail(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrBusy):
		s.fail(w, http.StatusConflict, err.Error(), nil)
	default:
		s.fail(w, http.StatusInternalServerError, "request failed", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(v)
}

func bodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
		if status >= http.StatusInternalServerError {
			s.logger.Error(msg)
		} else {
			s.logger.Warn(msg)
		}
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newSessionID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
