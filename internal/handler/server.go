// Package handler implements the HTTP handlers for the wedding timeline API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (health.go, timeline.go, preset.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/wedding-timeline/internal/domain"
	"github.com/pkordes/wedding-timeline/internal/service"
)

// TimelineGenerator defines the timeline operations the handler depends on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TimelineGenerator interface {
	Generate(ctx context.Context, req domain.TimelineRequest, topN int) (service.TimelineResult, error)
	Defaults() domain.Defaults
}

// PresetServicer defines the preset operations the handler depends on.
type PresetServicer interface {
	Create(ctx context.Context, p domain.Preset) (domain.Preset, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Preset, error)
	List(ctx context.Context, page domain.PaginationParams) ([]domain.Preset, int64, error)
	Update(ctx context.Context, p domain.Preset) (domain.Preset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Server holds the dependencies shared by every endpoint.
type Server struct {
	timelines TimelineGenerator
	presets   PresetServicer
	log       *slog.Logger

	// now stamps calendar exports.
	now func() time.Time
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(timelines TimelineGenerator, presets PresetServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		timelines: timelines,
		presets:   presets,
		log:       log,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for calendar timestamps. Tests use it to
// get byte-stable iCalendar output.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Routes returns a chi router with every endpoint mounted. Cross-cutting
// middleware (request IDs, logging, CORS, body limits) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/defaults", s.GetDefaults)
	r.Post("/timelines", s.CreateTimeline)

	r.Route("/presets", func(r chi.Router) {
		r.Get("/", s.ListPresets)
		r.Post("/", s.CreatePreset)
		r.Get("/{id}", s.GetPreset)
		r.Put("/{id}", s.UpdatePreset)
		r.Delete("/{id}", s.DeletePreset)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, r.Method+" is not allowed on "+r.URL.Path)
	})
	return r
}
