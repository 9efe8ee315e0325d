package domain

import "time"

// Step identifies the role a block plays in the day. Analytics and tests
// match on Step rather than on the human-readable Name.
type Step string

const (
	StepArrival               Step = "arrival"
	StepArrivalSetup          Step = "arrival_setup"
	StepFlatLay               Step = "flat_lay"
	StepGettingDressed        Step = "getting_dressed"
	StepIndividualPortraits   Step = "individual_portraits"
	StepBuffer                Step = "buffer"
	StepTravel                Step = "travel"
	StepFirstLook             Step = "first_look"
	StepCouplePortraits       Step = "couple_portraits"
	StepWeddingPartyPortraits Step = "wedding_party_portraits"
	StepFamilyPortraits       Step = "family_portraits"
	StepTuckaway              Step = "tuckaway"
	StepFlexibleCoverage      Step = "flexible_coverage"
	StepCeremony              Step = "ceremony"
	StepReceivingLine         Step = "receiving_line"
	StepReset                 Step = "reset"
	StepCocktailHour          Step = "cocktail_hour"
	StepReceptionDetails      Step = "reception_details"
	StepReceptionStart        Step = "reception_start"
	StepGrandEntrance         Step = "grand_entrance"
	StepFirstDance            Step = "first_dance"
	StepParentDances          Step = "parent_dances"
	StepToasts                Step = "toasts"
	StepDinner                Step = "dinner"
	StepDancefloor            Step = "dancefloor"
	StepCakeCutting           Step = "cake_cutting"
	StepBouquetToss           Step = "bouquet_toss"
	StepGarterToss            Step = "garter_toss"
	StepGoldenHour            Step = "golden_hour"
	StepCoverageEnd           Step = "coverage_end"
)

// Embeddable reports whether the step is one of the short reception moments
// that may be placed inside the dancefloor window.
func (s Step) Embeddable() bool {
	switch s {
	case StepCakeCutting, StepBouquetToss, StepGarterToss:
		return true
	}
	return false
}

// Block is one scheduled item on the wedding day.
// Start and End are absolute times on the wedding date; End is never before Start.
type Block struct {
	Step     Step
	Name     string
	Start    time.Time
	End      time.Time
	Location string
	Notes    string
	Audience Audience
	Kind     Kind
}

// Minutes returns the block length in whole minutes, floored.
func (b Block) Minutes() int {
	d := b.End.Sub(b.Start)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// IsSentinel reports whether b is the zero-length "coverage ends" marker.
// Analytics always skip sentinel blocks.
func (b Block) IsSentinel() bool {
	return b.Kind == KindCoverage
}
