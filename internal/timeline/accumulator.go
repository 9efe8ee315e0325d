// Package timeline builds a wedding-day shooting schedule from EventInputs.
//
// Generation is a fixed sequence of phases. Each phase receives the inputs and
// the Accumulator produced by the previous phase and returns an updated
// Accumulator, so any phase can be exercised on its own in tests. Nothing is
// shared between runs and nothing here fails: schedule conflicts become
// warning strings.
package timeline

import (
	"fmt"
	"time"

	"github.com/pkordes/wedding-timeline/internal/clock"
	"github.com/pkordes/wedding-timeline/internal/domain"
)

// Accumulator is the state threaded through the phases: the blocks emitted
// so far, the warnings collected so far, and the running cursor.
type Accumulator struct {
	Blocks   []domain.Block
	Warnings []string
	Cursor   time.Time
}

// NewAccumulator starts a run with the cursor at the coverage start.
func NewAccumulator(in domain.EventInputs) Accumulator {
	return Accumulator{Cursor: in.Coverage.Start}
}

// place appends b spanning minutes from start and returns its end.
// The cursor is not moved.
func (a *Accumulator) place(b domain.Block, start time.Time, minutes int) time.Time {
	if minutes < 0 {
		minutes = 0
	}
	b.Start = start
	b.End = clock.AddMinutes(start, minutes)
	a.Blocks = append(a.Blocks, b)
	return b.End
}

// next appends b at the cursor and advances the cursor to its end.
func (a *Accumulator) next(b domain.Block, minutes int) {
	a.Cursor = a.place(b, a.Cursor, minutes)
}

// buffer appends a transition block at the cursor. Non-positive lengths
// emit nothing.
func (a *Accumulator) buffer(minutes int, location string) {
	if minutes <= 0 {
		return
	}
	a.next(domain.Block{
		Step:     domain.StepBuffer,
		Name:     "Buffer / transition",
		Location: location,
		Notes:    "Built-in breathing room (bathroom, moving people, touch-ups, etc.)",
		Audience: domain.AudienceInternal,
		Kind:     domain.KindBuffer,
	}, minutes)
}

// travel appends a drive between venues at the cursor. Non-positive lengths
// emit nothing.
func (a *Accumulator) travel(minutes int, fromTo string) {
	if minutes <= 0 {
		return
	}
	a.next(domain.Block{
		Step:     domain.StepTravel,
		Name:     "Travel: " + fromTo,
		Location: "In transit",
		Notes:    "Includes loading up + parking + walking time as needed.",
		Audience: domain.AudienceInternal,
		Kind:     domain.KindTravel,
	}, minutes)
}

// jumpTo moves the cursor to an anchored time. Anchors always win; a
// backward jump is recorded as a warning using label to name the anchor.
func (a *Accumulator) jumpTo(at time.Time, label string) {
	if at.Before(a.Cursor) {
		a.warn("%s (%s) is earlier than current timeline position (%s). Check planner times.",
			label, clock.Format(at), clock.Format(a.Cursor))
	}
	a.Cursor = at
}

func (a *Accumulator) warn(format string, args ...any) {
	a.Warnings = append(a.Warnings, fmt.Sprintf(format, args...))
}

// latestEnd returns the latest block end, or fallback when there are no blocks.
func (a *Accumulator) latestEnd(fallback time.Time) time.Time {
	latest := fallback
	for _, b := range a.Blocks {
		if b.End.After(latest) {
			latest = b.End
		}
	}
	return latest
}
