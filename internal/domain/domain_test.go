package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wedding-timeline/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 6, 20, hour, minute, 0, 0, time.UTC)
}

func validInputs() domain.EventInputs {
	return domain.EventInputs{
		WeddingDate:         at(0, 0),
		Coverage:            domain.NewCoverage(at(12, 0), 8),
		CeremonyStart:       at(16, 0),
		CeremonyMinutes:     30,
		CocktailHourMinutes: 60,
		FamilyPortraits:     domain.GroupedFamilyPortraits(6, 3),
	}
}

func TestKind_textRoundTrip(t *testing.T) {
	for _, k := range domain.Kinds() {
		b, err := k.MarshalText()
		require.NoError(t, err)

		var got domain.Kind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}
}

func TestKind_unknownNameRejected(t *testing.T) {
	var k domain.Kind

	err := json.Unmarshal([]byte(`"Photo "`), &k)

	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestKind_unsetZeroValueRejected(t *testing.T) {
	var b domain.Block
	require.Equal(t, domain.KindUnset, b.Kind)
	assert.NotContains(t, domain.Kinds(), domain.KindUnset)

	_, err := json.Marshal(b.Kind)
	assert.Error(t, err)

	_, err = domain.ParseKind("")
	assert.ErrorIs(t, err, domain.ErrValidation)

	k, err := domain.ParseKind("photo")
	require.NoError(t, err)
	assert.Equal(t, domain.KindPhoto, k)
	assert.NotEqual(t, domain.Kind(0), k)
}

func TestAudience_json(t *testing.T) {
	b, err := json.Marshal(domain.AudienceWeddingParty)
	require.NoError(t, err)
	assert.Equal(t, `"Wedding Party"`, string(b))

	_, err = domain.ParseAudience("Guests")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStep_Embeddable(t *testing.T) {
	assert.True(t, domain.StepCakeCutting.Embeddable())
	assert.True(t, domain.StepGarterToss.Embeddable())
	assert.False(t, domain.StepDancefloor.Embeddable())
	assert.False(t, domain.StepToasts.Embeddable())
}

func TestBlock_Minutes(t *testing.T) {
	b := domain.Block{Start: at(16, 0), End: at(16, 30).Add(59 * time.Second)}
	assert.Equal(t, 30, b.Minutes())

	b = domain.Block{Start: at(16, 0), End: at(15, 0)}
	assert.Zero(t, b.Minutes())
}

func TestFamilyPortraits(t *testing.T) {
	flat := domain.FlatFamilyPortraits(25)
	assert.Equal(t, 25, flat.Minutes())
	_, _, ok := flat.Grouped()
	assert.False(t, ok)

	grouped := domain.GroupedFamilyPortraits(10, 3)
	assert.Equal(t, 30, grouped.Minutes())
	g, per, ok := grouped.Grouped()
	assert.True(t, ok)
	assert.Equal(t, 10, g)
	assert.Equal(t, 3, per)
}

func TestFamilyDynamics(t *testing.T) {
	assert.False(t, domain.FamilyDynamics{RemarriedParents: true}.NeedsExtraBuffer())
	assert.True(t, domain.FamilyDynamics{FinickyFamilyMembers: true}.NeedsExtraBuffer())

	fd := domain.FamilyDynamics{DivorcedParents: true, RemarriedParents: true, Notes: "  Grandma uses a wheelchair. "}
	assert.Equal(t, "Family dynamics: divorced parents, remarried parents. Grandma uses a wheelchair.", fd.Summary())
	assert.Empty(t, domain.FamilyDynamics{}.Summary())
}

func TestLocations_PortraitsOrFallback(t *testing.T) {
	assert.Equal(t, "Garden", domain.Locations{Portraits: "Garden", Ceremony: "Chapel"}.PortraitsOrFallback())
	assert.Equal(t, "Chapel", domain.Locations{Ceremony: "Chapel", GettingReady: "Suite"}.PortraitsOrFallback())
	assert.Equal(t, "Suite", domain.Locations{Portraits: " ", GettingReady: "Suite"}.PortraitsOrFallback())
}

func TestNewCoverage(t *testing.T) {
	c := domain.NewCoverage(at(12, 0), 7.5)

	assert.Equal(t, at(19, 30), c.End)
}

func TestEventInputs_Validate(t *testing.T) {
	require.NoError(t, validInputs().Validate())

	cases := map[string]func(in *domain.EventInputs){
		"zero coverage hours": func(in *domain.EventInputs) {
			in.Coverage = domain.Coverage{Start: at(12, 0), End: at(12, 0)}
		},
		"coverage end not derived": func(in *domain.EventInputs) {
			in.Coverage.End = at(21, 0)
		},
		"negative buffer": func(in *domain.EventInputs) {
			in.BufferMinutes = -5
		},
		"negative groupings": func(in *domain.EventInputs) {
			in.FamilyPortraits = domain.GroupedFamilyPortraits(-2, 3)
		},
		"negative reception event": func(in *domain.EventInputs) {
			in.Reception.Toasts.Minutes = -1
		},
		"coverage longer than a day": func(in *domain.EventInputs) {
			in.Coverage = domain.NewCoverage(at(12, 0), 25)
		},
		"duration longer than a day": func(in *domain.EventInputs) {
			in.FlatLayMinutes = 200_000_000_000
		},
		"huge reception event": func(in *domain.EventInputs) {
			in.Reception.Dinner.Minutes = domain.MaxMinutes + 1
		},
		"family groupings exceed a day": func(in *domain.EventInputs) {
			in.FamilyPortraits = domain.GroupedFamilyPortraits(100, 30)
		},
		"anchor on another day": func(in *domain.EventInputs) {
			next := at(18, 0).AddDate(0, 0, 1)
			in.ReceptionStart = &next
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInputs()
			mutate(&in)

			assert.ErrorIs(t, in.Validate(), domain.ErrValidation)
		})
	}
}

func TestDefaults_Validate(t *testing.T) {
	require.NoError(t, domain.BuiltinDefaults().Validate())

	d := domain.BuiltinDefaults()
	d.Reception.CakeCuttingMinutes = -1
	err := d.Validate()
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "cake_cutting_minutes")

	d = domain.BuiltinDefaults()
	d.CoverageHours = 0
	assert.ErrorIs(t, d.Validate(), domain.ErrValidation)

	d = domain.BuiltinDefaults()
	d.CoverageHours = 1e12
	err = d.Validate()
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "coverage_hours must be at most 24")

	d = domain.BuiltinDefaults()
	d.FlatLayMinutes = 200_000_000_000
	err = d.Validate()
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "flat_lay_minutes must be at most 1440")

	d = domain.BuiltinDefaults()
	d.CoverageHours = domain.MaxCoverageHours
	d.BufferMinutes = domain.MaxMinutes
	assert.NoError(t, d.Validate(), "a full day is still allowed")
}

func TestDefaults_Apply(t *testing.T) {
	hours := 6.5
	buffer := 10
	dinner := 45

	got := domain.BuiltinDefaults().Apply(domain.DurationOverrides{
		CoverageHours: &hours,
		BufferMinutes: &buffer,
		Reception:     domain.ReceptionOverrides{DinnerMinutes: &dinner},
	})

	assert.Equal(t, 6.5, got.CoverageHours)
	assert.Equal(t, 10, got.BufferMinutes)
	assert.Equal(t, 45, got.Reception.DinnerMinutes)
	assert.Equal(t, 45, got.CouplePortraitsMinutes, "unset overrides keep the default")
	assert.Equal(t, 60, domain.BuiltinDefaults().Reception.DinnerMinutes, "the receiver is not modified")
}

func TestEventRequest_EnabledOr(t *testing.T) {
	off := false

	assert.True(t, domain.EventRequest{}.EnabledOr(true))
	assert.False(t, domain.EventRequest{Enabled: &off}.EnabledOr(true))
}

func TestNewPaginationParams(t *testing.T) {
	page, limit := 3, 500

	p := domain.NewPaginationParams(&page, &limit)

	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 100}, p)
	assert.Equal(t, 200, p.Offset())
	assert.True(t, p.HasMore(301))
	assert.False(t, p.HasMore(300))
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(nil, nil))
}
