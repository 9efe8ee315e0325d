package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wedding-timeline/internal/domain"
	"github.com/pkordes/wedding-timeline/internal/export"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 6, 20, hour, minute, 0, 0, time.UTC)
}

func sampleBlocks() []domain.Block {
	return []domain.Block{
		{
			Step: domain.StepFlatLay, Name: "Flat lay + details",
			Start: at(12, 0), End: at(12, 30), Location: "Hotel Suite",
			Notes: "Rings, invitation suite.", Audience: domain.AudienceVendor, Kind: domain.KindPhoto,
		},
		{
			Step: domain.StepCeremony, Name: "Ceremony",
			Start: at(16, 0), End: at(16, 30), Location: "Chapel",
			Audience: domain.AudienceCouple, Kind: domain.KindEvent,
		},
		{
			Step: domain.StepCoverageEnd, Name: "Coverage ends",
			Start: at(20, 0), End: at(20, 0), Location: "—",
			Notes: "Coverage: 8 hrs starting 12:00 PM", Audience: domain.AudienceInternal, Kind: domain.KindCoverage,
		},
	}
}

func TestText(t *testing.T) {
	got := export.Text(sampleBlocks(), nil)

	assert.Equal(t, strings.Join([]string{
		"12:00 PM–12:30 PM • Flat lay + details (Hotel Suite)",
		"  - Rings, invitation suite.",
		"4:00 PM–4:30 PM • Ceremony (Chapel)",
		"8:00 PM • Coverage ends",
		"  - Coverage: 8 hrs starting 12:00 PM",
	}, "\n"), got)
}

func TestText_audienceFilter(t *testing.T) {
	couple := domain.AudienceCouple

	got := export.Text(sampleBlocks(), &couple)

	assert.Equal(t, "4:00 PM–4:30 PM • Ceremony (Chapel)", got)
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.CSV(&buf, sampleBlocks()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Start", "End", "Block", "Minutes", "Location", "Audience", "Notes", "Kind"}, records[0])
	assert.Equal(t, []string{"4:00 PM", "4:30 PM", "Ceremony", "30", "Chapel", "Couple", "", "event"}, records[2])
	assert.Equal(t, "coverage", records[3][7])
	assert.Equal(t, "0", records[3][3])
}

func TestICS(t *testing.T) {
	meta := export.CalendarMeta{Name: "Smith / Jones", Stamp: at(9, 0)}

	out := export.ICS(sampleBlocks(), meta)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2, "the coverage-ends marker is not an event")

	ceremony := events[1]
	assert.Equal(t, "Ceremony", ceremony.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "Chapel", ceremony.GetProperty(ical.ComponentPropertyLocation).Value)

	start, err := ceremony.GetStartAt()
	require.NoError(t, err)
	assert.True(t, at(16, 0).Equal(start), "start %s", start)

	end, err := ceremony.GetEndAt()
	require.NoError(t, err)
	assert.True(t, at(16, 30).Equal(end), "end %s", end)
}

func TestICS_deterministic(t *testing.T) {
	meta := export.CalendarMeta{Stamp: at(9, 0)}

	first := export.ICS(sampleBlocks(), meta)
	second := export.ICS(sampleBlocks(), meta)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "@wedding-timeline")
}
