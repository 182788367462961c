// Package http exposes an editor over a small JSON API.
//
//	GET    /health
//	GET    /document
//	GET    /overlaps?distance=
//	GET    /nodes/{id}/overlaps
//	POST   /commands
//	POST   /undo
//	POST   /redo
//	GET    /history
//	DELETE /history
//	POST   /save     (when the editor can persist)
//	GET    /events   (SSE stream of undo/redo availability)
//	GET    /metrics  (Prometheus)
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/valence/pkg/command"
	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/geometry"
	"github.com/aretw0/valence/pkg/history"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Editor defines what the API needs from the editor core.
type Editor interface {
	Document() domain.Document
	Apply(spec command.Spec) error
	Undo() bool
	Redo() bool
	History() *history.History
	AwarenessDistance() float64
	OverlappingNodes(nodeID string) []domain.Node
}

// Saver is implemented by editors that can persist their document.
type Saver interface {
	Save(ctx context.Context) error
}

// HistoryState is the body returned by undo, redo and command requests and
// pushed on the event stream.
type HistoryState struct {
	Applied bool   `json:"applied"`
	CanUndo bool   `json:"can_undo"`
	CanRedo bool   `json:"can_redo"`
	Undo    string `json:"undo,omitempty"`
	Redo    string `json:"redo,omitempty"`
}

// OverlapsResponse lists awareness pairs.
type OverlapsResponse struct {
	Distance float64  `json:"distance"`
	Pairs    []string `json:"pairs"`
}

// Server holds the handlers.
type Server struct {
	Editor  Editor
	Streams *StreamManager
	logger  *slog.Logger
	gather  prometheus.Gatherer
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGatherer serves /metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gather = g
	}
}

// NewHandler creates the HTTP handler and subscribes the event stream to the
// editor history. Call the returned stop function to unsubscribe.
func NewHandler(editor Editor, opts ...Option) (http.Handler, func()) {
	s := &Server{
		Editor:  editor,
		Streams: NewStreamManager(),
		logger:  slog.Default(),
		gather:  prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}

	stop := editor.History().Subscribe(func(canUndo, canRedo bool) {
		st := HistoryState{CanUndo: canUndo, CanRedo: canRedo}
		st.Undo, _ = editor.History().UndoDescription()
		st.Redo, _ = editor.History().RedoDescription()
		data, err := json.Marshal(st)
		if err != nil {
			return
		}
		s.Streams.Broadcast(string(data))
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/document", s.GetDocument)
	r.Get("/overlaps", s.GetOverlaps)
	r.Get("/nodes/{id}/overlaps", s.GetNodeOverlaps)
	r.Post("/commands", s.PostCommand)
	r.Post("/undo", s.PostUndo)
	r.Post("/redo", s.PostRedo)
	r.Get("/history", s.GetHistory)
	r.Delete("/history", s.DeleteHistory)
	r.Post("/save", s.PostSave)
	r.Get("/events", s.SubscribeEvents)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{}))

	return enableCORS(r), stop
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

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetDocument handles GET /document.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Editor.Document())
}

// GetOverlaps handles GET /overlaps. The distance query parameter overrides
// the editor default for this request only.
func (s *Server) GetOverlaps(w http.ResponseWriter, r *http.Request) {
	distance := s.Editor.AwarenessDistance()
	if raw := r.URL.Query().Get("distance"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil || d < 0 {
			http.Error(w, "distance must be a non-negative number", http.StatusBadRequest)
			return
		}
		distance = d
	}

	pairs := geometry.FindOverlappingPairs(s.Editor.Document().Nodes, distance)
	s.writeJSON(w, http.StatusOK, OverlapsResponse{Distance: distance, Pairs: pairs.Keys()})
}

// GetNodeOverlaps handles GET /nodes/{id}/overlaps.
func (s *Server) GetNodeOverlaps(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.Editor.Document().Node(id); !ok {
		http.Error(w, domain.ErrNodeNotFound.Error(), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Editor.OverlappingNodes(id))
}

// PostCommand handles POST /commands. The body is a command spec.
func (s *Server) PostCommand(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PostCommand: invalid request body", "err", err)
		return
	}

	spec, err := command.DecodeSpec(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.Editor.Apply(spec); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrNodeNotFound), errors.Is(err, domain.ErrEdgeNotFound):
			status = http.StatusNotFound
		case errors.Is(err, command.ErrInvalidSpec):
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	s.logger.Debug("command applied", "kind", spec.Kind)
	s.writeJSON(w, http.StatusOK, s.state(true))
}

// PostUndo handles POST /undo.
func (s *Server) PostUndo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state(s.Editor.Undo()))
}

// PostRedo handles POST /redo.
func (s *Server) PostRedo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state(s.Editor.Redo()))
}

// GetHistory handles GET /history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Editor.History().Stats())
}

// DeleteHistory handles DELETE /history.
func (s *Server) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	s.Editor.History().Clear()
	w.WriteHeader(http.StatusNoContent)
}

// PostSave handles POST /save.
func (s *Server) PostSave(w http.ResponseWriter, r *http.Request) {
	saver, ok := s.Editor.(Saver)
	if !ok {
		http.Error(w, "saving is not supported", http.StatusNotImplemented)
		return
	}
	if err := saver.Save(r.Context()); err != nil {
		s.logger.Error("save failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles GET /events (SSE). The current state is sent right
// after the connection is established, then every change.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	if data, err := json.Marshal(s.state(false)); err == nil {
		fmt.Fprintf(w, "data: %s\n\n", data)
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) state(applied bool) HistoryState {
	h := s.Editor.History()
	st := HistoryState{Applied: applied, CanUndo: h.CanUndo(), CanRedo: h.CanRedo()}
	st.Undo, _ = h.UndoDescription()
	st.Redo, _ = h.RedoDescription()
	return st
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
