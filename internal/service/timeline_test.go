package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wedding-timeline/internal/clock"
	"github.com/pkordes/wedding-timeline/internal/domain"
	"github.com/pkordes/wedding-timeline/internal/service"
)

// mockPresetGetter is a hand-written test double for service.PresetGetter.
type mockPresetGetter struct {
	getByID func(ctx context.Context, id uuid.UUID) (domain.Preset, error)
}

func (m *mockPresetGetter) GetByID(ctx context.Context, id uuid.UUID) (domain.Preset, error) {
	return m.getByID(ctx, id)
}

var _ service.PresetGetter = (*mockPresetGetter)(nil)

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTimelineService(presets service.PresetGetter) *service.TimelineService {
	return service.NewTimelineService(presets, domain.BuiltinDefaults(), time.UTC, discardLogger())
}

// firstLookRequest is the reference noon-to-eight first-look wedding.
func firstLookRequest() domain.TimelineRequest {
	return domain.TimelineRequest{
		WeddingDate:   "2026-06-20",
		CoverageStart: "12:00 PM",
		CeremonyStart: "4:00 PM",
		Locations: domain.Locations{
			GettingReady: "Hotel Suite",
			Ceremony:     "Chapel",
			Reception:    "Barn",
		},
		FirstLook: true,
		Durations: domain.DurationOverrides{
			BufferMinutes:   intPtr(0),
			TuckawayMinutes: intPtr(0),
		},
	}
}

func TestTimelineService_Generate(t *testing.T) {
	svc := newTimelineService(nil)

	got, err := svc.Generate(context.Background(), firstLookRequest(), 5)

	require.NoError(t, err)
	require.NotEmpty(t, got.Blocks)
	assert.Equal(t, domain.KindCoverage, got.Blocks[len(got.Blocks)-1].Kind)
	assert.Equal(t, time.Date(2026, 6, 20, 20, 0, 0, 0, time.UTC), got.Inputs.Coverage.End)
	for _, w := range got.Warnings {
		assert.NotContains(t, w, "past ceremony start")
	}
	assert.LessOrEqual(t, len(got.Coverage.Top), 5)
	assert.Positive(t, got.Coverage.Totals.InCoverage)

	var flexible bool
	for _, b := range got.Blocks {
		flexible = flexible || b.Step == domain.StepFlexibleCoverage
	}
	assert.True(t, flexible)
}

func TestTimelineService_Generate_ReceptionToggles(t *testing.T) {
	req := firstLookRequest()
	req.Reception.Toasts.Enabled = boolPtr(false)
	req.Reception.BouquetToss.Enabled = boolPtr(true)
	req.Reception.Dinner.At = "6:30 PM"

	got, err := newTimelineService(nil).Generate(context.Background(), req, 0)

	require.NoError(t, err)
	r := got.Inputs.Reception
	assert.True(t, r.GrandEntrance.Enabled)
	assert.True(t, r.Dancefloor.Enabled)
	assert.True(t, r.CakeCutting.Enabled)
	assert.False(t, r.Toasts.Enabled)
	assert.True(t, r.BouquetToss.Enabled)
	assert.False(t, r.GarterToss.Enabled)
	assert.False(t, r.ParentDances.Enabled())
	require.NotNil(t, r.Dinner.At)
	assert.Equal(t, "6:30 PM", clock.Format(*r.Dinner.At))
	assert.Equal(t, 60, r.Dinner.Minutes)
}

func TestTimelineService_Generate_PresetThenRequest(t *testing.T) {
	presetID := uuid.New()
	preset := domain.BuiltinDefaults()
	preset.CoverageHours = 4
	preset.CouplePortraitsMinutes = 20
	preset.CeremonyMinutes = 45

	getter := &mockPresetGetter{getByID: func(_ context.Context, id uuid.UUID) (domain.Preset, error) {
		require.Equal(t, presetID, id)
		return domain.Preset{ID: id, Name: "Short day", Defaults: preset}, nil
	}}
	req := firstLookRequest()
	req.PresetID = &presetID
	req.Durations.CeremonyMinutes = intPtr(20)

	got, err := newTimelineService(getter).Generate(context.Background(), req, 0)

	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Inputs.Coverage.Hours, "preset beats configured defaults")
	assert.Equal(t, 20, got.Inputs.CouplePortraitsMinutes)
	assert.Equal(t, 20, got.Inputs.CeremonyMinutes, "request beats preset")
}

func TestTimelineService_Generate_UnknownPreset(t *testing.T) {
	getter := &mockPresetGetter{getByID: func(context.Context, uuid.UUID) (domain.Preset, error) {
		return domain.Preset{}, domain.ErrNotFound
	}}
	req := firstLookRequest()
	id := uuid.New()
	req.PresetID = &id

	_, err := newTimelineService(getter).Generate(context.Background(), req, 0)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTimelineService_Generate_ParseErrorNamesField(t *testing.T) {
	req := firstLookRequest()
	req.Reception.Toasts.At = "after dinner"

	_, err := newTimelineService(nil).Generate(context.Background(), req, 0)

	var pe *clock.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "toasts_time", pe.Field)
	assert.Equal(t, "after dinner", pe.Clock)
}

func TestTimelineService_Generate_BadWeddingDate(t *testing.T) {
	req := firstLookRequest()
	req.WeddingDate = "June 20th"

	_, err := newTimelineService(nil).Generate(context.Background(), req, 0)

	var pe *clock.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "wedding_date", pe.Field)
}

func TestTimelineService_Generate_NegativeOverride(t *testing.T) {
	req := firstLookRequest()
	req.Durations.FlatLayMinutes = intPtr(-10)

	_, err := newTimelineService(nil).Generate(context.Background(), req, 0)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTimelineService_Generate_OversizedOverrides(t *testing.T) {
	hugeHours := 1e12
	cases := map[string]func(req *domain.TimelineRequest){
		"flat lay":         func(req *domain.TimelineRequest) { req.Durations.FlatLayMinutes = intPtr(200_000_000_000) },
		"coverage hours":   func(req *domain.TimelineRequest) { req.Durations.CoverageHours = &hugeHours },
		"family groupings": func(req *domain.TimelineRequest) { req.FamilyGroupings = intPtr(1_000_000) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := firstLookRequest()
			mutate(&req)

			_, err := newTimelineService(nil).Generate(context.Background(), req, 0)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTimelineService_Generate_GroupedFamily(t *testing.T) {
	req := firstLookRequest()
	req.FamilyGroupings = intPtr(5)

	got, err := newTimelineService(nil).Generate(context.Background(), req, 0)

	require.NoError(t, err)
	assert.Equal(t, 15, got.Inputs.FamilyPortraits.Minutes())
}

func TestTimelineService_Generate_UsesLocation(t *testing.T) {
	loc := time.FixedZone("MDT", -6*60*60)
	svc := service.NewTimelineService(nil, domain.BuiltinDefaults(), loc, discardLogger())

	got, err := svc.Generate(context.Background(), firstLookRequest(), 0)

	require.NoError(t, err)
	assert.Equal(t, loc, got.Inputs.CeremonyStart.Location())
	assert.Equal(t, 16, got.Inputs.CeremonyStart.Hour())
}

func TestTimelineService_Generate_Overrun(t *testing.T) {
	req := firstLookRequest()
	hours := 2.0
	req.Durations.CoverageHours = &hours

	got, err := newTimelineService(nil).Generate(context.Background(), req, 0)

	require.NoError(t, err)
	assert.Positive(t, got.Coverage.Totals.Overage)

	var overrun bool
	for _, w := range got.Warnings {
		overrun = overrun || strings.Contains(w, "past coverage end")
	}
	assert.True(t, overrun)
}
