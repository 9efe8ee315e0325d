package timeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/wedding-timeline/internal/clock"
	"github.com/pkordes/wedding-timeline/internal/domain"
)

// Phase is one step of timeline construction.
type Phase func(in domain.EventInputs, acc Accumulator) Accumulator

// Phases is the fixed construction order. It is not configurable.
var Phases = []Phase{
	Arrival,
	PreCeremony,
	FirstLookPortraits,
	Tuckaway,
	Ceremony,
	PostCeremony,
	CocktailHour,
	ReceptionAnchor,
	ReceptionEvents,
	GoldenHour,
	CoverageCheck,
	CoverageEnd,
}

const (
	// minFlexibleSlack is the smallest pre-ceremony gap worth a filler block.
	minFlexibleSlack = 8
	// minDetailsGap is the smallest gap before guests enter worth a
	// reception details block.
	minDetailsGap = 10
	// goldenHourLead is how long before sunset golden hour portraits begin.
	goldenHourLead = 30
)

// Default placement of embedded moments, in minutes from dancefloor start.
const (
	cakeCuttingOffset = 15
	bouquetTossOffset = 45
	garterTossOffset  = 55
)

// Arrival records the photographer arrival and setup. The cursor only moves
// when arrival plus setup runs past the coverage start.
func Arrival(in domain.EventInputs, acc Accumulator) Accumulator {
	if in.PhotographerArrival == nil {
		return acc
	}
	arrival := *in.PhotographerArrival
	loc := in.Locations.GettingReady

	acc.place(domain.Block{
		Step:     domain.StepArrival,
		Name:     "Photographer arrival",
		Location: loc,
		Notes:    "Check in with the planner, scout rooms and light.",
		Audience: domain.AudienceInternal,
		Kind:     domain.KindEvent,
	}, arrival, 0)

	ready := arrival
	if in.ArrivalSetupMinutes > 0 {
		ready = acc.place(domain.Block{
			Step:     domain.StepArrivalSetup,
			Name:     "Arrival setup",
			Location: loc,
			Notes:    "Unpack gear, set up lighting, test settings.",
			Audience: domain.AudienceInternal,
			Kind:     domain.KindBuffer,
		}, arrival, in.ArrivalSetupMinutes)
	}

	if arrival.After(in.Coverage.Start) {
		acc.warn("Photographer arrives %d min after coverage start (%s).",
			clock.MinutesBetween(in.Coverage.Start, arrival), clock.Format(in.Coverage.Start))
	}
	if ready.After(acc.Cursor) {
		acc.Cursor = ready
	}
	return acc
}

// PreCeremony schedules details, getting dressed, individual portraits and
// the drive to the ceremony, each followed by a buffer.
func PreCeremony(in domain.EventInputs, acc Accumulator) Accumulator {
	gr := in.Locations.GettingReady

	acc.next(domain.Block{
		Step:     domain.StepFlatLay,
		Name:     "Flat lay + details",
		Location: gr,
		Notes:    "Invitation suite, rings, vow books, perfume, jewelry, etc.",
		Audience: domain.AudienceVendor,
		Kind:     domain.KindPhoto,
	}, in.FlatLayMinutes)
	acc.buffer(in.BufferMinutes, gr)

	acc.next(domain.Block{
		Step:     domain.StepGettingDressed,
		Name:     "Getting dressed + final touches",
		Location: gr,
		Notes:    "Dress/veil, boutonniere, letter reading, parent reveals.",
		Audience: domain.AudienceCouple,
		Kind:     domain.KindPhoto,
	}, in.GettingDressedMinutes)
	acc.buffer(in.BufferMinutes, gr)

	acc.next(domain.Block{
		Step:     domain.StepIndividualPortraits,
		Name:     "Individual portraits",
		Location: gr,
		Notes:    "Each partner individually while everyone is fresh.",
		Audience: domain.AudienceCouple,
		Kind:     domain.KindPhoto,
	}, in.IndividualPortraitsMinutes)
	acc.buffer(in.BufferMinutes, gr)

	acc.travel(in.TravelToCeremonyMinutes, "Getting ready → Ceremony")
	acc.buffer(in.BufferMinutes, in.Locations.Ceremony)
	return acc
}

// FirstLookPortraits runs only with a first look: the first look itself,
// then couple, wedding party and family portraits, all before the ceremony.
func FirstLookPortraits(in domain.EventInputs, acc Accumulator) Accumulator {
	if !in.FirstLook {
		return acc
	}
	loc := in.Locations.PortraitsOrFallback()

	acc.next(domain.Block{
		Step:     domain.StepFirstLook,
		Name:     "First look",
		Location: loc,
		Notes:    "Private moment + first reactions.",
		Audience: domain.AudienceCouple,
		Kind:     domain.KindPhoto,
	}, in.FirstLookMinutes)
	acc.buffer(in.BufferMinutes, loc)

	acc.next(domain.Block{
		Step:     domain.StepCouplePortraits,
		Name:     "Couple portraits (pre-ceremony)",
		Location: loc,
		Notes:    "All couple portraits completed pre-ceremony when first look is scheduled.",
		Audience: domain.AudienceCouple,
		Kind:     domain.KindPhoto,
	}, in.CouplePortraitsMinutes)
	acc.buffer(in.BufferMinutes, loc)

	acc.next(domain.Block{
		Step:     domain.StepWeddingPartyPortraits,
		Name:     "Wedding party portraits (pre-ceremony)",
		Location: loc,
		Notes:    "All wedding party portraits completed pre-ceremony when first look is scheduled.",
		Audience: domain.AudienceWeddingParty,
		Kind:     domain.KindPhoto,
	}, in.WeddingPartyPortraitsMinutes)
	acc.buffer(in.BufferMinutes, loc)

	acc.next(domain.Block{
		Step:     domain.StepFamilyPortraits,
		Name:     "Family portraits (pre-ceremony)",
		Location: loc,
		Notes:    joinNotes("All family formals completed pre-ceremony when first look is scheduled.", in.Family.Summary()),
		Audience: domain.AudienceCouple,
		Kind:     domain.KindPhoto,
	}, in.FamilyPortraits.Minutes())
	acc.buffer(in.BufferMinutes+familyExtraBuffer(in), loc)
	return acc
}

// Tuckaway fills slack before the ceremony with guest-arrival coverage and,
// past that, a flexible cushion. It also reports a pre-ceremony overrun.
func Tuckaway(in domain.EventInputs, acc Accumulator) Accumulator {
	start := in.CeremonyStart
	loc := in.Locations.Ceremony

	if acc.Cursor.Before(start) {
		slack := clock.MinutesBetween(acc.Cursor, start)

		if tuck := min(in.TuckawayMinutes, slack); tuck > 0 {
			acc.next(domain.Block{
				Step:     domain.StepTuckaway,
				Name:     "Tuckaway (pre-ceremony): guest arrivals + ceremony details",
				Location: loc,
				Notes:    "Guest arrival candids + ceremony space details (programs, florals, wide shots, signage).",
				Audience: domain.AudienceVendor,
				Kind:     domain.KindPhoto,
			}, tuck)
			slack = clock.MinutesBetween(acc.Cursor, start)
		}

		if slack >= minFlexibleSlack {
			acc.next(domain.Block{
				Step:     domain.StepFlexibleCoverage,
				Name:     "Flexible pre-ceremony coverage",
				Location: loc,
				Notes:    "Extra cushion for delays or additional venue/guest coverage.",
				Audience: domain.AudienceInternal,
				Kind:     domain.KindBuffer,
			}, slack)
		}
	} else if in.TuckawayMinutes > 0 {
		acc.warn("No time available before the ceremony for tuckaway (guest arrivals + ceremony details). " +
			"Start coverage earlier or reduce pre-ceremony blocks.")
	}

	if acc.Cursor.After(start) {
		acc.warn("Pre-ceremony schedule runs %d min past ceremony start. Reduce blocks or start coverage earlier.",
			clock.MinutesBetween(start, acc.Cursor))
	}
	return acc
}

// Ceremony resets the cursor to the ceremony start, which never moves, and
// schedules the ceremony, the optional receiving line and a short reset.
func Ceremony(in domain.EventInputs, acc Accumulator) Accumulator {
	loc := in.Locations.Ceremony
	acc.Cursor = in.CeremonyStart

	acc.next(domain.Block{
		Step:     domain.StepCeremony,
		Name:     "Ceremony",
		Location: loc,
		Audience: domain.AudienceCouple,
		Kind:     domain.KindEvent,
	}, in.CeremonyMinutes)

	if in.ReceivingLine {
		acc.next(domain.Block{
			Step:     domain.StepReceivingLine,
			Name:     "Receiving line",
			Location: loc,
			Notes:    "The couple greets guests immediately after the ceremony.",
			Audience: domain.AudienceCouple,
			Kind:     domain.KindEvent,
		}, in.ReceivingLineMinutes)
		acc.buffer(in.BufferMinutes, loc)
	}

	acc.next(domain.Block{
		Step:     domain.StepReset,
		Name:     "Quick reset (post-ceremony)",
		Location: loc,
		Notes:    "Water, touch-ups, bustle, regroup before portraits.",
		Audience: domain.AudienceInternal,
		Kind:     domain.KindBuffer,
	}, in.BufferMinutes)
	return acc
}

// PostCeremony runs the portrait sequence after the ceremony when there was
// no first look: family, wedding party, then couple. With a first look the
// portraits are already done and the phase emits nothing.
func PostCeremony(in domain.EventInputs, acc Accumulator) Accumulator {
	if in.FirstLook {
		return acc
	}
	loc := in.Locations.PortraitsOrFallback()
	family := in.FamilyPortraits.Minutes()

	acc.next(domain.Block{
		Step:     domain.StepFamilyPortraits,
		Name:     "Family portraits",
		Location: loc,
		Notes:    joinNotes("Keep list tight + assign a wrangler.", in.Family.Summary()),
		Audience: domain.AudienceCouple,
		Kind:     domain.KindPhoto,
	}, family)
	acc.buffer(in.BufferMinutes+familyExtraBuffer(in), loc)

	acc.next(domain.Block{
		Step:     domain.StepWeddingPartyPortraits,
		Name:     "Wedding party portraits",
		Location: loc,
		Notes:    "Full group + smaller combos.",
		Audience: domain.AudienceWeddingParty,
		Kind:     domain.KindPhoto,
	}, in.WeddingPartyPortraitsMinutes)
	acc.buffer(in.BufferMinutes, loc)

	acc.next(domain.Block{
		Step:     domain.StepCouplePortraits,
		Name:     "Couple portraits",
		Location: loc,
		Notes:    "Aim for flattering light + a little breathing room.",
		Audience: domain.AudienceCouple,
		Kind:     domain.KindPhoto,
	}, in.CouplePortraitsMinutes)
	acc.buffer(in.BufferMinutes, loc)

	estimate := family + in.WeddingPartyPortraitsMinutes + in.CouplePortraitsMinutes
	if in.ReceivingLine {
		estimate += in.ReceivingLineMinutes
	}
	if estimate > in.CocktailHourMinutes {
		acc.warn("No first look: estimated post-ceremony portraits ~%d min vs cocktail hour %d min. "+
			"Expect tight timing unless portrait time is reduced or cocktail hour extended.",
			estimate, in.CocktailHourMinutes)
	}
	if in.ProtectCocktailHour {
		acc.warn("Protect cocktail hour is enabled but there is no first look. " +
			"This usually conflicts unless portrait time is reduced or cocktail hour is extended.")
	}
	return acc
}

// CocktailHour drives to the reception and schedules cocktail hour exactly
// once. With a reception start it is anchored to end at that time.
func CocktailHour(in domain.EventInputs, acc Accumulator) Accumulator {
	acc.travel(in.TravelToReceptionMinutes, "Ceremony → Reception")

	cocktail := domain.Block{
		Step:     domain.StepCocktailHour,
		Name:     "Cocktail hour",
		Location: in.Locations.Reception,
		Audience: domain.AudienceVendor,
	}
	if in.FirstLook {
		cocktail.Kind = domain.KindPhoto
		cocktail.Notes = "Candids + room atmosphere. Portraits are already completed pre-ceremony."
	} else {
		cocktail.Kind = domain.KindWindow
		cocktail.Notes = "Guests mingle while portraits wrap up; candids as time allows."
	}

	if in.ReceptionStart == nil {
		acc.next(cocktail, in.CocktailHourMinutes)
		return acc
	}

	start := clock.AddMinutes(*in.ReceptionStart, -in.CocktailHourMinutes)
	if start.Before(acc.Cursor) {
		acc.warn("Cocktail hour must start at %s to end at reception start (%s), but the timeline only reaches the reception at %s.",
			clock.Format(start), clock.Format(*in.ReceptionStart), clock.Format(acc.Cursor))
	} else {
		acc = fillReceptionDetails(in, acc, start)
	}
	end := acc.place(cocktail, start, in.CocktailHourMinutes)
	if end.After(acc.Cursor) {
		acc.Cursor = end
	}
	return acc
}

// ReceptionAnchor marks the planner's reception start, reports a late
// arrival, and otherwise fills any gap and snaps the cursor to the anchor.
func ReceptionAnchor(in domain.EventInputs, acc Accumulator) Accumulator {
	if in.ReceptionStart == nil {
		return acc
	}
	anchor := *in.ReceptionStart

	if acc.Cursor.After(anchor) {
		acc.warn("Arrives %d min after reception start time you entered (portraits/travel may be too long).",
			clock.MinutesBetween(anchor, acc.Cursor))
	} else {
		acc = fillReceptionDetails(in, acc, anchor)
	}

	acc.place(domain.Block{
		Step:     domain.StepReceptionStart,
		Name:     "Reception start",
		Location: in.Locations.Reception,
		Notes:    "Planner-provided reception start.",
		Audience: domain.AudienceCouple,
		Kind:     domain.KindEvent,
	}, anchor, 0)
	return acc
}

// ReceptionEvents schedules the reception moments in their fixed order.
// Hard times move the cursor even when they are earlier than it.
func ReceptionEvents(in domain.EventInputs, acc Accumulator) Accumulator {
	re := in.Reception

	acc = receptionEvent(in, acc, domain.StepGrandEntrance, "Grand entrance", re.GrandEntrance,
		"If the couple is announced into the reception.")
	acc = receptionEvent(in, acc, domain.StepFirstDance, "First dance", re.FirstDance,
		"If scheduled at the reception.")
	acc = receptionEvent(in, acc, domain.StepParentDances, "Parent dances", domain.ReceptionEvent{
		Enabled: re.ParentDances.Enabled(),
		At:      re.ParentDances.At,
		Minutes: re.ParentDances.Minutes,
	}, parentDancesNotes(re.ParentDances))
	acc = receptionEvent(in, acc, domain.StepToasts, "Toasts", re.Toasts, "Speeches/toasts block.")
	acc = dinner(in, acc)

	if !re.Dancefloor.Enabled {
		acc = receptionEvent(in, acc, domain.StepCakeCutting, "Cake cutting", re.CakeCutting, "Cake cutting.")
		acc = receptionEvent(in, acc, domain.StepBouquetToss, "Bouquet toss", re.BouquetToss, "Bouquet toss.")
		acc = receptionEvent(in, acc, domain.StepGarterToss, "Garter toss", re.GarterToss, "Garter toss.")
		return acc
	}

	floorStart := acc.Cursor
	floorEnd := acc.place(domain.Block{
		Step:     domain.StepDancefloor,
		Name:     "Dancefloor coverage",
		Location: in.Locations.Reception,
		Notes:    "Open dancing; cake cutting and tosses happen inside this window.",
		Audience: domain.AudienceVendor,
		Kind:     domain.KindPhoto,
	}, floorStart, re.Dancefloor.Minutes)

	acc = embedded(in, acc, floorStart, floorEnd, domain.StepCakeCutting, "Cake cutting", re.CakeCutting, cakeCuttingOffset)
	acc = embedded(in, acc, floorStart, floorEnd, domain.StepBouquetToss, "Bouquet toss", re.BouquetToss, bouquetTossOffset)
	acc = embedded(in, acc, floorStart, floorEnd, domain.StepGarterToss, "Garter toss", re.GarterToss, garterTossOffset)

	acc.Cursor = floorEnd
	return acc
}

// GoldenHour adds an informational golden hour portrait block ending the
// configured window after it starts, 30 minutes before sunset, and a
// reminder. The cursor does not move.
func GoldenHour(in domain.EventInputs, acc Accumulator) Accumulator {
	if in.SunsetTime == nil {
		return acc
	}
	start := clock.AddMinutes(*in.SunsetTime, -goldenHourLead)
	end := acc.place(domain.Block{
		Step:     domain.StepGoldenHour,
		Name:     "Golden hour portraits",
		Location: in.Locations.PortraitsOrFallback(),
		Notes:    "Step out with the couple for a few minutes of warm light.",
		Audience: domain.AudienceCouple,
		Kind:     domain.KindPhoto,
	}, start, in.GoldenHourWindowMinutes)

	acc.warn("Sunset is around %s. Consider reserving %d min for golden hour portraits around %s.",
		clock.Format(*in.SunsetTime), in.GoldenHourWindowMinutes, clock.FormatSpan(start, end))
	return acc
}

// CoverageCheck warns when any block ends after the contracted coverage.
func CoverageCheck(in domain.EventInputs, acc Accumulator) Accumulator {
	latest := acc.latestEnd(in.Coverage.Start)
	if latest.After(in.Coverage.End) {
		acc.warn("Timeline runs %d min past coverage end (%s). "+
			"Reduce portrait/event coverage, shorten blocks, or increase coverage hours.",
			clock.MinutesBetween(in.Coverage.End, latest), clock.Format(in.Coverage.End))
	}
	return acc
}

// CoverageEnd appends the zero-length "coverage ends" sentinel. It is always
// the last block of a run.
func CoverageEnd(in domain.EventInputs, acc Accumulator) Accumulator {
	hours := strconv.FormatFloat(in.Coverage.Hours, 'f', -1, 64)
	acc.place(domain.Block{
		Step:     domain.StepCoverageEnd,
		Name:     "Coverage ends",
		Location: "—",
		Notes:    "Coverage: " + hours + " hrs starting " + clock.Format(in.Coverage.Start),
		Audience: domain.AudienceInternal,
		Kind:     domain.KindCoverage,
	}, in.Coverage.End, 0)
	return acc
}

// receptionEvent schedules one sequential reception moment followed by a buffer.
func receptionEvent(in domain.EventInputs, acc Accumulator, step domain.Step, name string, ev domain.ReceptionEvent, notes string) Accumulator {
	if !ev.Enabled {
		return acc
	}
	if ev.At != nil {
		acc.jumpTo(*ev.At, name+" time")
	}
	acc.next(domain.Block{
		Step:     step,
		Name:     name,
		Location: in.Locations.Reception,
		Notes:    notes,
		Audience: domain.AudienceCouple,
		Kind:     domain.KindEvent,
	}, ev.Minutes)
	acc.buffer(in.BufferMinutes, in.Locations.Reception)
	return acc
}

// dinner is scheduled like the other moments but keeps its own wording:
// an anchored dinner is "Dinner service", an unanchored one is a placeholder.
func dinner(in domain.EventInputs, acc Accumulator) Accumulator {
	ev := in.Reception.Dinner
	if !ev.Enabled {
		return acc
	}

	notes := "Replace with planner-provided dinner time when available."
	if ev.At != nil {
		acc.jumpTo(*ev.At, "Dinner start")
		notes = "Dinner service."
	}
	acc.next(domain.Block{
		Step:     domain.StepDinner,
		Name:     "Dinner",
		Location: in.Locations.Reception,
		Notes:    notes,
		Audience: domain.AudienceCouple,
		Kind:     domain.KindEvent,
	}, ev.Minutes)
	acc.buffer(in.BufferMinutes, in.Locations.Reception)
	return acc
}

// embedded places a short moment inside [floorStart, floorEnd-minutes],
// at its hard time when given or at offset minutes into the dancefloor.
func embedded(in domain.EventInputs, acc Accumulator, floorStart, floorEnd time.Time, step domain.Step, name string, ev domain.ReceptionEvent, offset int) Accumulator {
	if !ev.Enabled {
		return acc
	}

	latest := clock.AddMinutes(floorEnd, -ev.Minutes)
	if latest.Before(floorStart) {
		latest = floorStart
	}

	want := clock.AddMinutes(floorStart, offset)
	if ev.At != nil {
		want = *ev.At
	}
	start := clamp(want, floorStart, latest)
	if ev.At != nil && !start.Equal(want) {
		acc.warn("%s time (%s) falls outside dancefloor coverage (%s); placed at %s.",
			name, clock.Format(want), clock.FormatSpan(floorStart, floorEnd), clock.Format(start))
	}

	acc.place(domain.Block{
		Step:     step,
		Name:     name,
		Location: in.Locations.Reception,
		Notes:    "During dancefloor coverage.",
		Audience: domain.AudienceCouple,
		Kind:     domain.KindEvent,
	}, start, ev.Minutes)
	return acc
}

// fillReceptionDetails uses a gap before until for reception details when it
// is long enough, then moves the cursor to until.
func fillReceptionDetails(in domain.EventInputs, acc Accumulator, until time.Time) Accumulator {
	if !acc.Cursor.Before(until) {
		return acc
	}
	if gap := clock.MinutesBetween(acc.Cursor, until); gap >= minDetailsGap {
		acc.next(domain.Block{
			Step:     domain.StepReceptionDetails,
			Name:     "Reception details (before guests enter)",
			Location: in.Locations.Reception,
			Notes:    "Tablescape, florals, signage, wide shots.",
			Audience: domain.AudienceVendor,
			Kind:     domain.KindPhoto,
		}, gap)
	}
	acc.Cursor = until
	return acc
}

// familyExtraBuffer is the additional transition after family formals when
// family dynamics are likely to slow things down.
func familyExtraBuffer(in domain.EventInputs) int {
	if !in.Family.NeedsExtraBuffer() {
		return 0
	}
	return max(5, in.BufferMinutes/2)
}

func parentDancesNotes(p domain.ParentDances) string {
	switch {
	case p.FatherDaughter && p.MotherSon:
		return "Father/daughter and mother/son dances."
	case p.FatherDaughter:
		return "Father/daughter dance."
	default:
		return "Mother/son dance."
	}
}

func joinNotes(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func clamp(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}
