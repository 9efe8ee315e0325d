package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wedding-timeline/internal/domain"
	"github.com/pkordes/wedding-timeline/internal/handler"
	"github.com/pkordes/wedding-timeline/internal/service"
)

// mockTimelineGenerator is a test double for handler.TimelineGenerator.
// Set only the method fields your test needs.
type mockTimelineGenerator struct {
	generate func(ctx context.Context, req domain.TimelineRequest, topN int) (service.TimelineResult, error)
	defaults func() domain.Defaults
}

func (m *mockTimelineGenerator) Generate(ctx context.Context, req domain.TimelineRequest, topN int) (service.TimelineResult, error) {
	return m.generate(ctx, req, topN)
}

func (m *mockTimelineGenerator) Defaults() domain.Defaults {
	if m.defaults == nil {
		return domain.BuiltinDefaults()
	}
	return m.defaults()
}

// compile-time check: mockTimelineGenerator must satisfy handler.TimelineGenerator.
var _ handler.TimelineGenerator = (*mockTimelineGenerator)(nil)

// mockPresetServicer is a test double for handler.PresetServicer.
type mockPresetServicer struct {
	create  func(ctx context.Context, p domain.Preset) (domain.Preset, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Preset, error)
	list    func(ctx context.Context, page domain.PaginationParams) ([]domain.Preset, int64, error)
	update  func(ctx context.Context, p domain.Preset) (domain.Preset, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPresetServicer) Create(ctx context.Context, p domain.Preset) (domain.Preset, error) {
	return m.create(ctx, p)
}
func (m *mockPresetServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Preset, error) {
	return m.getByID(ctx, id)
}
func (m *mockPresetServicer) List(ctx context.Context, page domain.PaginationParams) ([]domain.Preset, int64, error) {
	return m.list(ctx, page)
}
func (m *mockPresetServicer) Update(ctx context.Context, p domain.Preset) (domain.Preset, error) {
	return m.update(ctx, p)
}
func (m *mockPresetServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockPresetServicer must satisfy handler.PresetServicer.
var _ handler.PresetServicer = (*mockPresetServicer)(nil)

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

// newHTTPHandler wires a Server with the given mocks into its chi router.
// This mirrors how main.go wires it in production, minus the middleware.
func newHTTPHandler(timelines handler.TimelineGenerator, presets handler.PresetServicer) http.Handler {
	srv := handler.NewServer(timelines, presets, nil).WithClock(func() time.Time { return fixedNow })
	return srv.Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func ptr[T any](v T) *T { return &v }
