// Package export renders a generated timeline for people and for other
// tools: a copy/paste text schedule, a spreadsheet-friendly CSV and an
// iCalendar feed.
package export

import (
	"strings"

	"github.com/pkordes/wedding-timeline/internal/clock"
	"github.com/pkordes/wedding-timeline/internal/domain"
)

// Text renders blocks one per line as "4:00 PM–4:30 PM • Ceremony (Chapel)",
// with notes on an indented line below. The coverage-ends marker is rendered
// with its single time. A non-nil audience keeps only blocks for that audience.
func Text(blocks []domain.Block, audience *domain.Audience) string {
	var lines []string
	for _, b := range blocks {
		if audience != nil && b.Audience != *audience {
			continue
		}

		if b.IsSentinel() && b.Start.Equal(b.End) {
			lines = append(lines, clock.Format(b.Start)+" • "+b.Name)
		} else {
			lines = append(lines, clock.FormatSpan(b.Start, b.End)+" • "+b.Name+" ("+b.Location+")")
		}
		if b.Notes != "" {
			lines = append(lines, "  - "+b.Notes)
		}
	}
	return strings.Join(lines, "\n")
}
