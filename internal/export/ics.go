package export

import (
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/pkordes/wedding-timeline/internal/domain"
)

// productID identifies this service in the PRODID property.
const productID = "-//wedding-timeline//Timeline Export//EN"

// uidNamespace seeds the name-based UUIDs used as event UIDs.
var uidNamespace = uuid.MustParse("8f5b1c52-3c1e-4f7e-9a2d-6f0a4b7f9e21")

// CalendarMeta describes the calendar an ICS export is wrapped in.
type CalendarMeta struct {
	// Name becomes X-WR-CALNAME, e.g. "Smith / Jones wedding".
	Name string
	// Stamp is written as DTSTAMP on every event. Callers pass a fixed time
	// so that identical timelines serialize identically.
	Stamp time.Time
}

// ICS renders one VEVENT per block, skipping the coverage-ends marker.
// Event UIDs are derived from the wedding date, step and position, so
// re-exporting the same timeline updates events instead of duplicating them.
func ICS(blocks []domain.Block, meta CalendarMeta) string {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)
	if meta.Name != "" {
		cal.SetXWRCalName(meta.Name)
	}

	for i, b := range blocks {
		if b.IsSentinel() {
			continue
		}
		ev := cal.AddEvent(eventUID(b, i))
		ev.SetDtStampTime(meta.Stamp)
		ev.SetStartAt(b.Start)
		ev.SetEndAt(b.End)
		ev.SetSummary(b.Name)
		if b.Location != "" {
			ev.SetLocation(b.Location)
		}
		ev.SetDescription(description(b))
		ev.AddProperty(ical.ComponentPropertyCategories, strings.ToUpper(b.Kind.String()))
	}
	return cal.Serialize()
}

func eventUID(b domain.Block, i int) string {
	name := b.Start.Format("2006-01-02") + "/" + string(b.Step) + "/" + strconv.Itoa(i)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@wedding-timeline"
}

func description(b domain.Block) string {
	parts := []string{"For: " + b.Audience.String()}
	if b.Notes != "" {
		parts = append(parts, b.Notes)
	}
	return strings.Join(parts, "\n")
}
