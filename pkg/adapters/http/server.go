package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/puppet"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Engine defines what the HTTP surface needs from the avatar core.
type Engine interface {
	Dispatch(ctx context.Context, t domain.Trigger) (bool, error)
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	Clips(ctx context.Context) ([]domain.ClipName, error)
}

// Server implements the generated ServerInterface.
// /events answers 404 unless WithEvents is given.
type Server struct {
	Engine   Engine
	Events   *observability.Broadcaster
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the handler.
type Option func(*Server)

// WithEvents enables GET /events, streaming what b publishes.
func WithEvents(b *observability.Broadcaster) Option {
	return func(s *Server) {
		s.Events = b
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine: engine,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.Logger.Error("Failed to load OpenAPI spec", "err", err)
			return
		}
		w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	handler := HandlerWithOptions(s, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			s.Logger.Warn("Invalid request", "path", r.URL.Path, "err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
		},
	})
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
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
    <title>Puppet API Documentation</title>
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

// PostTrigger handles POST /triggers/{trigger}.
func (s *Server) PostTrigger(w http.ResponseWriter, r *http.Request, trigger Trigger) {
	t, err := domain.ParseTrigger(string(trigger))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.dispatch(w, r, t)
}

// ToggleMode handles POST /mode/toggle.
func (s *Server) ToggleMode(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, domain.TriggerToggle)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, t domain.Trigger) {
	accepted, err := s.Engine.Dispatch(r.Context(), t)
	if err != nil {
		http.Error(w, fmt.Sprintf("Dispatch error: %v", err), http.StatusServiceUnavailable)
		s.Logger.Error("Dispatch failed", "trigger", t, "err", err)
		return
	}
	s.Logger.Debug("Trigger dispatched", "trigger", t, "accepted", accepted)
	s.respondTrigger(w, r, t, accepted)
}

func (s *Server) respondTrigger(w http.ResponseWriter, r *http.Request, t domain.Trigger, accepted bool) {
	snap, err := s.Engine.Snapshot(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Snapshot error: %v", err), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, s.Logger, TriggerResponse{
		Trigger:  Trigger(t),
		Accepted: accepted,
		Mode:     Mode(snap.Mode.String()),
	})
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Engine.Snapshot(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Snapshot error: %v", err), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, s.Logger, mapSnapshot(snap))
}

// ListClips handles GET /clips.
func (s *Server) ListClips(w http.ResponseWriter, r *http.Request) {
	clips, err := s.Engine.Clips(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("List clips failed", "err", err)
		return
	}
	if clips == nil {
		clips = []domain.ClipName{}
	}
	writeJSON(w, s.Logger, clips)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, Health{Status: "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, Info{
		App:     "puppet-http",
		Version: strings.TrimSpace(puppet.Version),
	})
}

// SubscribeEvents handles GET /events (SSE).
// The optional "types" query parameter is a comma separated list of event types to keep.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams) {
	if s.Events == nil {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	keep := map[domain.EventType]bool{}
	if params.Types != nil && *params.Types != "" {
		for _, t := range strings.Split(*params.Types, ",") {
			keep[domain.EventType(strings.TrimSpace(t))] = true
		}
	}

	events, cancel := s.Events.Subscribe(32)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.Logger.Info("SSE client connected", "filter", len(keep))

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE client disconnected")
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if len(keep) > 0 && !keep[e.Kind()] {
				continue
			}
			data, err := json.Marshal(e)
			if err != nil {
				s.Logger.Error("SSE encode failed", "type", e.Kind(), "err", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Kind(), data)
			flusher.Flush()
		}
	}
}

func mapSnapshot(snap domain.Snapshot) Snapshot {
	out := Snapshot{
		Mode:            Mode(snap.Mode.String()),
		HitCount:        snap.HitCount,
		Busy:            snap.Busy,
		IdleTimerArmed:  snap.IdleArmed,
		FightTimerArmed: snap.FightArmed,
		Pose:            Pose{Layers: make([]Layer, len(snap.Pose.Layers))},
	}
	if snap.CurrentClip != "" {
		clip := string(snap.CurrentClip)
		out.CurrentClip = &clip
	}
	for i, l := range snap.Pose.Layers {
		out.Pose.Layers[i] = Layer{
			Action:   int64(l.Action),
			Clip:     string(l.Clip),
			Time:     int64(l.Time),
			Weight:   l.Weight,
			Finished: l.Finished,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
