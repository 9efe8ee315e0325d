package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/wedding-timeline/internal/clock"
)

// FamilyDynamics flags situations that make family formals slower.
// The flags only lengthen buffers and annotate blocks.
type FamilyDynamics struct {
	DivorcedParents       bool   `json:"divorced_parents"`
	RemarriedParents      bool   `json:"remarried_parents"`
	StrainedRelationships bool   `json:"strained_relationships"`
	FinickyFamilyMembers  bool   `json:"finicky_family_members"`
	Notes                 string `json:"notes,omitempty"`
}

// NeedsExtraBuffer reports whether family formals get a longer buffer.
// Remarried parents alone only produce a note.
func (f FamilyDynamics) NeedsExtraBuffer() bool {
	return f.DivorcedParents || f.StrainedRelationships || f.FinickyFamilyMembers
}

// Summary renders the flags and notes as one sentence for block notes,
// e.g. "Family dynamics: divorced parents, strained relationships. Keep Dad and Sue apart."
func (f FamilyDynamics) Summary() string {
	var flags []string
	if f.DivorcedParents {
		flags = append(flags, "divorced parents")
	}
	if f.RemarriedParents {
		flags = append(flags, "remarried parents")
	}
	if f.StrainedRelationships {
		flags = append(flags, "strained relationships")
	}
	if f.FinickyFamilyMembers {
		flags = append(flags, "finicky family members")
	}

	var parts []string
	if len(flags) > 0 {
		parts = append(parts, "Family dynamics: "+strings.Join(flags, ", ")+".")
	}
	if n := strings.TrimSpace(f.Notes); n != "" {
		parts = append(parts, n)
	}
	return strings.Join(parts, " ")
}

// FamilyPortraits sizes the family formals block either as a flat number of
// minutes or as a count of groupings times minutes per grouping.
// Build one with FlatFamilyPortraits or GroupedFamilyPortraits.
type FamilyPortraits struct {
	minutes     int
	groupings   int
	perGrouping int
}

// FlatFamilyPortraits sizes family formals as a fixed duration.
func FlatFamilyPortraits(minutes int) FamilyPortraits {
	return FamilyPortraits{minutes: minutes}
}

// GroupedFamilyPortraits sizes family formals from the shot list.
func GroupedFamilyPortraits(groupings, minutesPerGrouping int) FamilyPortraits {
	return FamilyPortraits{groupings: groupings, perGrouping: minutesPerGrouping}
}

// Grouped returns the grouping count and per-grouping minutes when the
// sizing is grouped.
func (f FamilyPortraits) Grouped() (groupings, minutesPerGrouping int, ok bool) {
	if f.groupings > 0 {
		return f.groupings, f.perGrouping, true
	}
	return 0, 0, false
}

// Minutes is the resulting block length.
func (f FamilyPortraits) Minutes() int {
	if f.groupings > 0 {
		return f.groupings * f.perGrouping
	}
	return f.minutes
}

// ReceptionEvent is one toggleable reception moment with an optional
// planner-supplied hard time.
type ReceptionEvent struct {
	Enabled bool
	At      *time.Time
	Minutes int
}

// ParentDances covers the father/daughter and mother/son dances, which
// share a single block.
type ParentDances struct {
	FatherDaughter bool
	MotherSon      bool
	At             *time.Time
	Minutes        int
}

// Enabled reports whether either parent dance is planned.
func (p ParentDances) Enabled() bool {
	return p.FatherDaughter || p.MotherSon
}

// Dancefloor is general dance-floor coverage. When enabled, cake cutting and
// the tosses are embedded inside its window instead of following it.
type Dancefloor struct {
	Enabled bool
	Minutes int
}

// ReceptionEvents describes everything that happens after guests enter.
type ReceptionEvents struct {
	GrandEntrance ReceptionEvent
	FirstDance    ReceptionEvent
	ParentDances  ParentDances
	Toasts        ReceptionEvent
	Dinner        ReceptionEvent
	Dancefloor    Dancefloor
	CakeCutting   ReceptionEvent
	BouquetToss   ReceptionEvent
	GarterToss    ReceptionEvent
}

// Locations names the four venues of the day.
type Locations struct {
	GettingReady string `json:"getting_ready"`
	Ceremony     string `json:"ceremony"`
	Portraits    string `json:"portraits"`
	Reception    string `json:"reception"`
}

// PortraitsOrFallback returns the portraits location, falling back to the
// ceremony location and then the getting-ready location when unset.
func (l Locations) PortraitsOrFallback() string {
	for _, loc := range []string{l.Portraits, l.Ceremony, l.GettingReady} {
		if strings.TrimSpace(loc) != "" {
			return loc
		}
	}
	return ""
}

// Coverage is the contracted window. End is derived from Start and Hours
// once, by NewCoverage, and never recomputed.
type Coverage struct {
	Start time.Time
	Hours float64
	End   time.Time
}

// NewCoverage derives the coverage end from its start and length.
func NewCoverage(start time.Time, hours float64) Coverage {
	return Coverage{
		Start: start,
		Hours: hours,
		End:   clock.AddHours(start, hours),
	}
}

// EventInputs is the full parameter set for one timeline generation.
// Optional times are nil when not supplied.
type EventInputs struct {
	WeddingDate time.Time
	Coverage    Coverage

	PhotographerArrival *time.Time
	ArrivalSetupMinutes int

	CeremonyStart   time.Time
	CeremonyMinutes int

	Locations Locations

	TravelToCeremonyMinutes  int
	TravelToReceptionMinutes int

	FirstLook            bool
	ReceivingLine        bool
	ReceivingLineMinutes int

	CocktailHourMinutes int
	ProtectCocktailHour bool

	Family FamilyDynamics

	BufferMinutes                int
	FlatLayMinutes               int
	GettingDressedMinutes        int
	IndividualPortraitsMinutes   int
	FirstLookMinutes             int
	CouplePortraitsMinutes       int
	WeddingPartyPortraitsMinutes int
	TuckawayMinutes              int
	FamilyPortraits              FamilyPortraits

	SunsetTime              *time.Time
	GoldenHourWindowMinutes int

	ReceptionStart *time.Time
	Reception      ReceptionEvents
}

// Validate enforces the invariants the engine relies on. Durations lie
// between zero and one day, coverage is at most a day long with its end
// derived from the start, and every anchored time falls on the wedding date.
func (in EventInputs) Validate() error {
	if err := validateCoverageHours(in.Coverage.Hours); err != nil {
		return err
	}
	if !in.Coverage.End.Equal(NewCoverage(in.Coverage.Start, in.Coverage.Hours).End) {
		return fmt.Errorf("%w: coverage end must equal coverage start plus coverage hours", ErrValidation)
	}

	durations := []struct {
		name  string
		value int
	}{
		{"arrival_setup_minutes", in.ArrivalSetupMinutes},
		{"ceremony_minutes", in.CeremonyMinutes},
		{"travel_to_ceremony_minutes", in.TravelToCeremonyMinutes},
		{"travel_to_reception_minutes", in.TravelToReceptionMinutes},
		{"receiving_line_minutes", in.ReceivingLineMinutes},
		{"cocktail_hour_minutes", in.CocktailHourMinutes},
		{"buffer_minutes", in.BufferMinutes},
		{"flat_lay_minutes", in.FlatLayMinutes},
		{"getting_dressed_minutes", in.GettingDressedMinutes},
		{"individual_portraits_minutes", in.IndividualPortraitsMinutes},
		{"first_look_minutes", in.FirstLookMinutes},
		{"couple_portraits_minutes", in.CouplePortraitsMinutes},
		{"wedding_party_portraits_minutes", in.WeddingPartyPortraitsMinutes},
		{"tuckaway_minutes", in.TuckawayMinutes},
		{"family_portraits_minutes", in.FamilyPortraits.minutes},
		{"family_groupings", in.FamilyPortraits.groupings},
		{"minutes_per_family_grouping", in.FamilyPortraits.perGrouping},
		{"golden_hour_window_minutes", in.GoldenHourWindowMinutes},
		{"grand_entrance_minutes", in.Reception.GrandEntrance.Minutes},
		{"first_dance_minutes", in.Reception.FirstDance.Minutes},
		{"parent_dances_minutes", in.Reception.ParentDances.Minutes},
		{"toasts_minutes", in.Reception.Toasts.Minutes},
		{"dinner_minutes", in.Reception.Dinner.Minutes},
		{"dancefloor_minutes", in.Reception.Dancefloor.Minutes},
		{"cake_cutting_minutes", in.Reception.CakeCutting.Minutes},
		{"bouquet_toss_minutes", in.Reception.BouquetToss.Minutes},
		{"garter_toss_minutes", in.Reception.GarterToss.Minutes},
	}
	for _, d := range durations {
		if err := validateMinutes(d.name, d.value); err != nil {
			return err
		}
	}
	if in.FamilyPortraits.Minutes() > MaxMinutes {
		return fmt.Errorf("%w: family portraits must take at most %d minutes", ErrValidation, MaxMinutes)
	}

	anchors := []struct {
		name string
		at   *time.Time
	}{
		{"coverage_start", &in.Coverage.Start},
		{"ceremony_start", &in.CeremonyStart},
		{"photographer_arrival", in.PhotographerArrival},
		{"sunset_time", in.SunsetTime},
		{"reception_start", in.ReceptionStart},
		{"grand_entrance_time", in.Reception.GrandEntrance.At},
		{"first_dance_time", in.Reception.FirstDance.At},
		{"parent_dances_time", in.Reception.ParentDances.At},
		{"toasts_time", in.Reception.Toasts.At},
		{"dinner_start_time", in.Reception.Dinner.At},
		{"cake_cutting_time", in.Reception.CakeCutting.At},
		{"bouquet_toss_time", in.Reception.BouquetToss.At},
		{"garter_toss_time", in.Reception.GarterToss.At},
	}
	for _, a := range anchors {
		if a.at == nil || in.WeddingDate.IsZero() {
			continue
		}
		if !sameDay(*a.at, in.WeddingDate) {
			return fmt.Errorf("%w: %s must be on the wedding date %s",
				ErrValidation, a.name, in.WeddingDate.Format("2006-01-02"))
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
