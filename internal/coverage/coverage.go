// Package coverage measures how a generated timeline spends the contracted
// coverage window.
//
// Blocks are counted by their overlap with the window. Two corrections keep
// time from being counted twice: a cake cutting or toss embedded in the
// dancefloor block only counts the part outside the dancefloor, and a
// window-kind block (cocktail hour running alongside portraits) only counts
// the part no other block already covers. The coverage-ends sentinel is
// always skipped.
package coverage

import (
	"slices"
	"time"

	"github.com/pkordes/wedding-timeline/internal/clock"
	"github.com/pkordes/wedding-timeline/internal/domain"
)

// DefaultTopN is how many blocks Top returns when the caller does not say.
const DefaultTopN = 8

// Window is the contracted coverage interval, [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Totals are the three headline numbers for a timeline.
type Totals struct {
	// InCoverage is the corrected minutes of all blocks inside the window.
	InCoverage int `json:"in_coverage_minutes"`
	// Scheduled is the raw sum of block durations, inside the window or not.
	Scheduled int `json:"scheduled_minutes"`
	// Overage is how far the latest block runs past the window end.
	Overage int `json:"overage_minutes"`
}

// KindMinutes is one row of the by-kind breakdown.
type KindMinutes struct {
	Kind    domain.Kind `json:"kind"`
	Minutes int         `json:"minutes"`
}

// Ranked is a block together with the minutes it contributes to coverage.
type Ranked struct {
	Block   domain.Block
	Minutes int
}

// Report bundles every analytic for one timeline.
type Report struct {
	Totals Totals
	ByKind []KindMinutes
	Top    []Ranked
}

// interval is a half-open [start, end) span.
type interval struct {
	start, end time.Time
}

// Overlap returns the whole minutes shared by [start, end) and
// [windowStart, windowEnd), or 0 when they do not meet.
func Overlap(start, end, windowStart, windowEnd time.Time) int {
	lo := later(start, windowStart)
	hi := earlier(end, windowEnd)
	if !hi.After(lo) {
		return 0
	}
	return clock.MinutesBetween(lo, hi)
}

// NewReport computes totals, the by-kind breakdown and the top n blocks.
// A non-positive n uses DefaultTopN.
func NewReport(blocks []domain.Block, w Window, n int) Report {
	return Report{
		Totals: Summarize(blocks, w),
		ByKind: ByKind(blocks, w),
		Top:    Top(blocks, w, n),
	}
}

// Summarize computes the headline totals.
func Summarize(blocks []domain.Block, w Window) Totals {
	var t Totals
	counted := corrected(blocks, w)
	latest := w.Start

	for i, b := range blocks {
		if b.IsSentinel() {
			continue
		}
		t.InCoverage += counted[i]
		t.Scheduled += b.Minutes()
		if b.End.After(latest) {
			latest = b.End
		}
	}
	if latest.After(w.End) {
		t.Overage = clock.MinutesBetween(w.End, latest)
	}
	return t
}

// ByKind groups corrected in-coverage minutes by block kind, largest first.
// Kinds with no minutes are omitted.
func ByKind(blocks []domain.Block, w Window) []KindMinutes {
	counted := corrected(blocks, w)
	sums := make(map[domain.Kind]int)
	for i, b := range blocks {
		if b.IsSentinel() || counted[i] <= 0 {
			continue
		}
		sums[b.Kind] += counted[i]
	}

	out := make([]KindMinutes, 0, len(sums))
	for _, k := range domain.Kinds() {
		if m, ok := sums[k]; ok {
			out = append(out, KindMinutes{Kind: k, Minutes: m})
		}
	}
	slices.SortStableFunc(out, func(a, b KindMinutes) int {
		return b.Minutes - a.Minutes
	})
	return out
}

// Top ranks blocks by corrected in-coverage minutes, keeps the n largest and
// returns them in chronological order. Ties keep emission order.
func Top(blocks []domain.Block, w Window, n int) []Ranked {
	if n <= 0 {
		n = DefaultTopN
	}
	counted := corrected(blocks, w)

	var ranked []Ranked
	for i, b := range blocks {
		if b.IsSentinel() || counted[i] <= 0 {
			continue
		}
		ranked = append(ranked, Ranked{Block: b, Minutes: counted[i]})
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return b.Minutes - a.Minutes
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return a.Block.Start.Compare(b.Block.Start)
	})
	return ranked
}

// corrected returns the minutes each block contributes to coverage, indexed
// like blocks. Sentinels contribute 0.
func corrected(blocks []domain.Block, w Window) []int {
	var floors []interval
	for _, b := range blocks {
		if b.Step == domain.StepDancefloor && !b.IsSentinel() {
			floors = append(floors, interval{b.Start, b.End})
		}
	}

	out := make([]int, len(blocks))
	for i, b := range blocks {
		if b.IsSentinel() {
			continue
		}
		m := Overlap(b.Start, b.End, w.Start, w.End)

		switch {
		case b.Step.Embeddable():
			m -= coveredMinutes(b, w, floors)
		case b.Kind == domain.KindWindow:
			m -= coveredMinutes(b, w, others(blocks, i))
		}
		out[i] = max(0, m)
	}
	return out
}

// others returns the spans of every block except blocks[skip], sentinels and
// other window-kind blocks.
func others(blocks []domain.Block, skip int) []interval {
	var out []interval
	for i, b := range blocks {
		if i == skip || b.IsSentinel() || b.Kind == domain.KindWindow {
			continue
		}
		out = append(out, interval{b.Start, b.End})
	}
	return out
}

// coveredMinutes is how much of b, clipped to the window, is already covered
// by the union of spans.
func coveredMinutes(b domain.Block, w Window, spans []interval) int {
	lo, hi := later(b.Start, w.Start), earlier(b.End, w.End)
	if !hi.After(lo) {
		return 0
	}

	var clipped []interval
	for _, s := range spans {
		s.start, s.end = later(s.start, lo), earlier(s.end, hi)
		if s.end.After(s.start) {
			clipped = append(clipped, s)
		}
	}
	total := 0
	for _, s := range merge(clipped) {
		total += clock.MinutesBetween(s.start, s.end)
	}
	return total
}

// merge unions overlapping spans.
func merge(spans []interval) []interval {
	if len(spans) == 0 {
		return nil
	}
	slices.SortFunc(spans, func(a, b interval) int { return a.start.Compare(b.start) })

	out := []interval{spans[0]}
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.start.After(last.end) {
			out = append(out, s)
			continue
		}
		if s.end.After(last.end) {
			last.end = s.end
		}
	}
	return out
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
