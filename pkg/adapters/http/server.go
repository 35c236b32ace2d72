package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/aretw0/careergraph"
	"github.com/aretw0/careergraph/internal/logging"
	"github.com/aretw0/careergraph/pkg/dataset"
	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/render"
	"github.com/aretw0/careergraph/pkg/session"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var rawSpec []byte

// ReloadTopic is the StreamManager topic carrying dataset reload notifications.
const ReloadTopic = "reload"

// Engine defines what the server needs from the graph core.
type Engine interface {
	Graph() domain.Graph
	Report() *dataset.Report
	Layout(ctx context.Context, vp domain.Viewport) ([]domain.PositionedNode, error)
}

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	return doc, nil
}

// Server serves the graph and its sessions.
type Server struct {
	Engine   Engine
	Sessions *session.Manager
	Streams  *StreamManager

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStreams shares a StreamManager with the caller, typically to broadcast reloads.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// NewServer creates a server for engine and sessions.
func NewServer(engine Engine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(engine, sessions, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/graph", s.GetGraph)
	r.Get("/report", s.GetReport)
	r.Get("/layout", s.GetLayout)
	r.Get("/events", s.SubscribeEvents)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Get("/canvas", s.GetCanvas)
			r.Post("/intents", s.PostIntent)
			r.Put("/viewport", s.PutViewport)
			r.Get("/stream", s.StreamSession)
		})
	})

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

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Career Graph API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":         "careergraph-http",
		"version":     careergraph.Version,
		"api_version": apiVersion,
		"sessions":    s.Sessions.Len(),
	})
}

// GetGraph handles the GET /graph request. ?format=mermaid returns a flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	g := s.Engine.Graph()
	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, render.GenerateMermaid(g, nil))
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

// GetReport handles the GET /report request.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Report())
}

// GetLayout handles the GET /layout request.
func (s *Server) GetLayout(w http.ResponseWriter, r *http.Request) {
	vp, err := viewportFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	nodes, err := s.Engine.Layout(r.Context(), vp)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nodes)
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Sessions.List())
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var vp domain.Viewport
	if err := json.NewDecoder(r.Body).Decode(&vp); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateSession: Invalid request body", "error", err)
		return
	}
	view, err := s.Sessions.Create(r.Context(), vp)
	if err != nil {
		s.writeError(w, err)
		return
	}
	info, err := s.Sessions.Info(r.Context(), view.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+view.ID)
	s.writeJSON(w, http.StatusCreated, info)
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.Sessions.Info(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCanvas handles the GET /sessions/{id}/canvas request.
func (s *Server) GetCanvas(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// PostIntent handles the POST /sessions/{id}/intents request.
func (s *Server) PostIntent(w http.ResponseWriter, r *http.Request) {
	var intent session.Intent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PostIntent: Invalid request body", "error", err)
		return
	}
	s.dispatch(w, r, intent)
}

// PutViewport handles the PUT /sessions/{id}/viewport request.
func (s *Server) PutViewport(w http.ResponseWriter, r *http.Request) {
	var vp domain.Viewport
	if err := json.NewDecoder(r.Body).Decode(&vp); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutViewport: Invalid request body", "error", err)
		return
	}
	s.dispatch(w, r, session.Intent{Type: session.IntentResize, Viewport: &vp})
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, intent session.Intent) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Dispatch(r.Context(), id, intent); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("Intent applied", "session_id", id, "type", intent.Type, "node_id", intent.NodeID)
	w.WriteHeader(http.StatusAccepted)
}

// StreamSession handles the GET /sessions/{id}/stream request (SSE).
// The first event carries the full canvas; later events carry diffs and fit commands.
func (s *Server) StreamSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("StreamSession: Streaming not supported")
		return
	}
	setStreamHeaders(w)

	updates, cancel := view.Feed().Subscribe(32)
	defer cancel()

	s.logger.Info("SSE: Subscribing to session updates", "session_id", view.ID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", view.ID)
			return
		case u, ok := <-updates:
			if !ok {
				fmt.Fprintf(w, "event: closed\ndata: %s\n\n", view.ID)
				flusher.Flush()
				return
			}
			payload, err := json.Marshal(u)
			if err != nil {
				s.logger.Error("SSE: Update encode failed", "error", err)
				continue
			}
			event := "diff"
			if u.Diff == nil {
				event = "fit"
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
			flusher.Flush()
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE of dataset reloads).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}
	setStreamHeaders(w)

	ch, cancel := s.Streams.Subscribe(ReloadTopic)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: reload\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// StreamManager fans messages out to SSE connections by topic.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan string]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe(topic string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[topic]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, topic)
				}
			}
		})
	}
}

// Broadcast returns the number of subscribers that received msg.
func (sm *StreamManager) Broadcast(topic string, msg string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sent := 0
	for ch := range sm.subscribers[topic] {
		select {
		case ch <- msg:
			sent++
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "topic", topic)
		}
	}
	return sent
}

// Subscribers returns the number of connections on topic.
func (sm *StreamManager) Subscribers(topic string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[topic])
}

// -- Helpers --

func viewportFromQuery(r *http.Request) (domain.Viewport, error) {
	q := r.URL.Query()
	w, errW := strconv.ParseFloat(q.Get("width"), 64)
	h, errH := strconv.ParseFloat(q.Get("height"), 64)
	if errW != nil || errH != nil {
		return domain.Viewport{}, fmt.Errorf("%w: width and height query parameters are required", domain.ErrInvalidViewport)
	}
	return domain.Viewport{Width: w, Height: h}, nil
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrUnknownNode):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrViewClosed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidViewport), errors.Is(err, session.ErrInvalidIntent):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
	}
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}
