package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wedding-timeline/internal/domain"
	"github.com/pkordes/wedding-timeline/internal/repo"
	"github.com/pkordes/wedding-timeline/internal/service"
)

// mockPresetRepo is a hand-written test double for repo.PresetRepo.
// Each method is a function field; set only the ones your test needs.
type mockPresetRepo struct {
	create  func(ctx context.Context, p domain.Preset) (domain.Preset, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Preset, error)
	list    func(ctx context.Context, page domain.PaginationParams) ([]domain.Preset, int64, error)
	update  func(ctx context.Context, p domain.Preset) (domain.Preset, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPresetRepo) Create(ctx context.Context, p domain.Preset) (domain.Preset, error) {
	return m.create(ctx, p)
}
func (m *mockPresetRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Preset, error) {
	return m.getByID(ctx, id)
}
func (m *mockPresetRepo) List(ctx context.Context, page domain.PaginationParams) ([]domain.Preset, int64, error) {
	return m.list(ctx, page)
}
func (m *mockPresetRepo) Update(ctx context.Context, p domain.Preset) (domain.Preset, error) {
	return m.update(ctx, p)
}
func (m *mockPresetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockPresetRepo must satisfy repo.PresetRepo.
var _ repo.PresetRepo = (*mockPresetRepo)(nil)

// echoPresetRepo returns whatever it receives, for tests that only care
// about validation.
func echoPresetRepo() *mockPresetRepo {
	return &mockPresetRepo{
		create: func(_ context.Context, p domain.Preset) (domain.Preset, error) { return p, nil },
		update: func(_ context.Context, p domain.Preset) (domain.Preset, error) { return p, nil },
	}
}

func validPreset() domain.Preset {
	return domain.Preset{Name: "Full day", Defaults: domain.BuiltinDefaults()}
}

func TestPresetService_Create_TrimsName(t *testing.T) {
	svc := service.NewPresetService(echoPresetRepo())
	p := validPreset()
	p.Name = "  Full day  "

	got, err := svc.Create(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, "Full day", got.Name)
}

func TestPresetService_Create_Invalid(t *testing.T) {
	cases := map[string]func(p *domain.Preset){
		"blank name":         func(p *domain.Preset) { p.Name = "   " },
		"long name":          func(p *domain.Preset) { p.Name = strings.Repeat("x", 101) },
		"long accented name": func(p *domain.Preset) { p.Name = strings.Repeat("é", 101) },
		"negative duration":  func(p *domain.Preset) { p.Defaults.BufferMinutes = -1 },
		"zero coverage":      func(p *domain.Preset) { p.Defaults.CoverageHours = 0 },
		"day-long overrun":   func(p *domain.Preset) { p.Defaults.Reception.DancefloorMinutes = domain.MaxMinutes + 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			called := false
			r := &mockPresetRepo{create: func(_ context.Context, p domain.Preset) (domain.Preset, error) {
				called = true
				return p, nil
			}}
			p := validPreset()
			mutate(&p)

			_, err := service.NewPresetService(r).Create(context.Background(), p)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.False(t, called, "repo must not be called for invalid input")
		})
	}
}

func TestPresetService_Create_NameLengthCountsCharacters(t *testing.T) {
	p := validPreset()
	p.Name = strings.Repeat("é", 100)

	got, err := service.NewPresetService(echoPresetRepo()).Create(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
}

func TestPresetService_Create_PropagatesConflict(t *testing.T) {
	r := &mockPresetRepo{create: func(context.Context, domain.Preset) (domain.Preset, error) {
		return domain.Preset{}, domain.ErrConflict
	}}

	_, err := service.NewPresetService(r).Create(context.Background(), validPreset())

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPresetService_Update_Validates(t *testing.T) {
	svc := service.NewPresetService(echoPresetRepo())
	p := validPreset()
	p.Defaults.Reception.DinnerMinutes = -30

	_, err := svc.Update(context.Background(), p)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPresetService_GetByID_NotFound(t *testing.T) {
	r := &mockPresetRepo{getByID: func(context.Context, uuid.UUID) (domain.Preset, error) {
		return domain.Preset{}, domain.ErrNotFound
	}}

	_, err := service.NewPresetService(r).GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPresetService_List_PassesPage(t *testing.T) {
	var gotPage domain.PaginationParams
	r := &mockPresetRepo{list: func(_ context.Context, page domain.PaginationParams) ([]domain.Preset, int64, error) {
		gotPage = page
		return []domain.Preset{validPreset()}, 41, nil
	}}

	presets, total, err := service.NewPresetService(r).List(context.Background(), domain.PaginationParams{Page: 3, Limit: 20})

	require.NoError(t, err)
	assert.Len(t, presets, 1)
	assert.Equal(t, int64(41), total)
	assert.Equal(t, 3, gotPage.Page)
}

func TestPresetService_Delete_WrapsError(t *testing.T) {
	boom := errors.New("connection reset")
	r := &mockPresetRepo{delete: func(context.Context, uuid.UUID) error { return boom }}

	err := service.NewPresetService(r).Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "service.PresetService.Delete")
}
