package domain

import "fmt"

// ReceptionDefaults holds the usual length of each reception moment.
type ReceptionDefaults struct {
	GrandEntranceMinutes int `yaml:"grand_entrance_minutes" json:"grand_entrance_minutes"`
	FirstDanceMinutes    int `yaml:"first_dance_minutes" json:"first_dance_minutes"`
	ParentDancesMinutes  int `yaml:"parent_dances_minutes" json:"parent_dances_minutes"`
	ToastsMinutes        int `yaml:"toasts_minutes" json:"toasts_minutes"`
	DinnerMinutes        int `yaml:"dinner_minutes" json:"dinner_minutes"`
	DancefloorMinutes    int `yaml:"dancefloor_minutes" json:"dancefloor_minutes"`
	CakeCuttingMinutes   int `yaml:"cake_cutting_minutes" json:"cake_cutting_minutes"`
	BouquetTossMinutes   int `yaml:"bouquet_toss_minutes" json:"bouquet_toss_minutes"`
	GarterTossMinutes    int `yaml:"garter_toss_minutes" json:"garter_toss_minutes"`
}

// Defaults is the set of durations a photographer reuses across weddings.
// It is loaded from the defaults file, stored as presets, and overridden per
// request.
type Defaults struct {
	CoverageHours                float64           `yaml:"coverage_hours" json:"coverage_hours"`
	CeremonyMinutes              int               `yaml:"ceremony_minutes" json:"ceremony_minutes"`
	ArrivalSetupMinutes          int               `yaml:"arrival_setup_minutes" json:"arrival_setup_minutes"`
	BufferMinutes                int               `yaml:"buffer_minutes" json:"buffer_minutes"`
	FlatLayMinutes               int               `yaml:"flat_lay_minutes" json:"flat_lay_minutes"`
	GettingDressedMinutes        int               `yaml:"getting_dressed_minutes" json:"getting_dressed_minutes"`
	IndividualPortraitsMinutes   int               `yaml:"individual_portraits_minutes" json:"individual_portraits_minutes"`
	TuckawayMinutes              int               `yaml:"tuckaway_minutes" json:"tuckaway_minutes"`
	FirstLookMinutes             int               `yaml:"first_look_minutes" json:"first_look_minutes"`
	CouplePortraitsMinutes       int               `yaml:"couple_portraits_minutes" json:"couple_portraits_minutes"`
	WeddingPartyPortraitsMinutes int               `yaml:"wedding_party_portraits_minutes" json:"wedding_party_portraits_minutes"`
	FamilyPortraitsMinutes       int               `yaml:"family_portraits_minutes" json:"family_portraits_minutes"`
	MinutesPerFamilyGrouping     int               `yaml:"minutes_per_family_grouping" json:"minutes_per_family_grouping"`
	CocktailHourMinutes          int               `yaml:"cocktail_hour_minutes" json:"cocktail_hour_minutes"`
	GoldenHourWindowMinutes      int               `yaml:"golden_hour_window_minutes" json:"golden_hour_window_minutes"`
	TravelToCeremonyMinutes      int               `yaml:"travel_to_ceremony_minutes" json:"travel_to_ceremony_minutes"`
	TravelToReceptionMinutes     int               `yaml:"travel_to_reception_minutes" json:"travel_to_reception_minutes"`
	ReceivingLineMinutes         int               `yaml:"receiving_line_minutes" json:"receiving_line_minutes"`
	Reception                    ReceptionDefaults `yaml:"reception" json:"reception"`
}

// BuiltinDefaults returns the durations used when no defaults file or preset
// says otherwise.
func BuiltinDefaults() Defaults {
	return Defaults{
		CoverageHours:                8,
		CeremonyMinutes:              30,
		ArrivalSetupMinutes:          0,
		BufferMinutes:                0,
		FlatLayMinutes:               30,
		GettingDressedMinutes:        30,
		IndividualPortraitsMinutes:   30,
		TuckawayMinutes:              30,
		FirstLookMinutes:             15,
		CouplePortraitsMinutes:       45,
		WeddingPartyPortraitsMinutes: 30,
		FamilyPortraitsMinutes:       30,
		MinutesPerFamilyGrouping:     3,
		CocktailHourMinutes:          60,
		GoldenHourWindowMinutes:      20,
		TravelToCeremonyMinutes:      15,
		TravelToReceptionMinutes:     15,
		ReceivingLineMinutes:         15,
		Reception: ReceptionDefaults{
			GrandEntranceMinutes: 10,
			FirstDanceMinutes:    8,
			ParentDancesMinutes:  10,
			ToastsMinutes:        20,
			DinnerMinutes:        60,
			DancefloorMinutes:    90,
			CakeCuttingMinutes:   10,
			BouquetTossMinutes:   8,
			GarterTossMinutes:    5,
		},
	}
}

// Validate rejects coverage lengths and durations outside a single day.
func (d Defaults) Validate() error {
	if err := validateCoverageHours(d.CoverageHours); err != nil {
		return err
	}
	for _, m := range d.minutes() {
		if err := validateMinutes(m.name, m.value); err != nil {
			return err
		}
	}
	return nil
}

// MaxMinutes caps every configured duration at one day.
const MaxMinutes = 24 * 60

// MaxCoverageHours caps the booked coverage length.
const MaxCoverageHours = 24

func validateCoverageHours(h float64) error {
	if !(h > 0) {
		return fmt.Errorf("%w: coverage_hours must be positive", ErrValidation)
	}
	if h > MaxCoverageHours {
		return fmt.Errorf("%w: coverage_hours must be at most %d", ErrValidation, MaxCoverageHours)
	}
	return nil
}

func validateMinutes(name string, v int) error {
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrValidation, name)
	}
	if v > MaxMinutes {
		return fmt.Errorf("%w: %s must be at most %d", ErrValidation, name, MaxMinutes)
	}
	return nil
}

type namedMinutes struct {
	name  string
	value int
}

func (d Defaults) minutes() []namedMinutes {
	return []namedMinutes{
		{"ceremony_minutes", d.CeremonyMinutes},
		{"arrival_setup_minutes", d.ArrivalSetupMinutes},
		{"buffer_minutes", d.BufferMinutes},
		{"flat_lay_minutes", d.FlatLayMinutes},
		{"getting_dressed_minutes", d.GettingDressedMinutes},
		{"individual_portraits_minutes", d.IndividualPortraitsMinutes},
		{"tuckaway_minutes", d.TuckawayMinutes},
		{"first_look_minutes", d.FirstLookMinutes},
		{"couple_portraits_minutes", d.CouplePortraitsMinutes},
		{"wedding_party_portraits_minutes", d.WeddingPartyPortraitsMinutes},
		{"family_portraits_minutes", d.FamilyPortraitsMinutes},
		{"minutes_per_family_grouping", d.MinutesPerFamilyGrouping},
		{"cocktail_hour_minutes", d.CocktailHourMinutes},
		{"golden_hour_window_minutes", d.GoldenHourWindowMinutes},
		{"travel_to_ceremony_minutes", d.TravelToCeremonyMinutes},
		{"travel_to_reception_minutes", d.TravelToReceptionMinutes},
		{"receiving_line_minutes", d.ReceivingLineMinutes},
		{"grand_entrance_minutes", d.Reception.GrandEntranceMinutes},
		{"first_dance_minutes", d.Reception.FirstDanceMinutes},
		{"parent_dances_minutes", d.Reception.ParentDancesMinutes},
		{"toasts_minutes", d.Reception.ToastsMinutes},
		{"dinner_minutes", d.Reception.DinnerMinutes},
		{"dancefloor_minutes", d.Reception.DancefloorMinutes},
		{"cake_cutting_minutes", d.Reception.CakeCuttingMinutes},
		{"bouquet_toss_minutes", d.Reception.BouquetTossMinutes},
		{"garter_toss_minutes", d.Reception.GarterTossMinutes},
	}
}

// ReceptionOverrides is the per-request counterpart of ReceptionDefaults.
// Nil fields keep the underlying default.
type ReceptionOverrides struct {
	GrandEntranceMinutes *int `json:"grand_entrance_minutes,omitempty"`
	FirstDanceMinutes    *int `json:"first_dance_minutes,omitempty"`
	ParentDancesMinutes  *int `json:"parent_dances_minutes,omitempty"`
	ToastsMinutes        *int `json:"toasts_minutes,omitempty"`
	DinnerMinutes        *int `json:"dinner_minutes,omitempty"`
	DancefloorMinutes    *int `json:"dancefloor_minutes,omitempty"`
	CakeCuttingMinutes   *int `json:"cake_cutting_minutes,omitempty"`
	BouquetTossMinutes   *int `json:"bouquet_toss_minutes,omitempty"`
	GarterTossMinutes    *int `json:"garter_toss_minutes,omitempty"`
}

// DurationOverrides carries the durations a single request sets explicitly.
// Nil fields keep the underlying default.
type DurationOverrides struct {
	CoverageHours                *float64           `json:"coverage_hours,omitempty"`
	CeremonyMinutes              *int               `json:"ceremony_minutes,omitempty"`
	ArrivalSetupMinutes          *int               `json:"arrival_setup_minutes,omitempty"`
	BufferMinutes                *int               `json:"buffer_minutes,omitempty"`
	FlatLayMinutes               *int               `json:"flat_lay_minutes,omitempty"`
	GettingDressedMinutes        *int               `json:"getting_dressed_minutes,omitempty"`
	IndividualPortraitsMinutes   *int               `json:"individual_portraits_minutes,omitempty"`
	TuckawayMinutes              *int               `json:"tuckaway_minutes,omitempty"`
	FirstLookMinutes             *int               `json:"first_look_minutes,omitempty"`
	CouplePortraitsMinutes       *int               `json:"couple_portraits_minutes,omitempty"`
	WeddingPartyPortraitsMinutes *int               `json:"wedding_party_portraits_minutes,omitempty"`
	FamilyPortraitsMinutes       *int               `json:"family_portraits_minutes,omitempty"`
	MinutesPerFamilyGrouping     *int               `json:"minutes_per_family_grouping,omitempty"`
	CocktailHourMinutes          *int               `json:"cocktail_hour_minutes,omitempty"`
	GoldenHourWindowMinutes      *int               `json:"golden_hour_window_minutes,omitempty"`
	TravelToCeremonyMinutes      *int               `json:"travel_to_ceremony_minutes,omitempty"`
	TravelToReceptionMinutes     *int               `json:"travel_to_reception_minutes,omitempty"`
	ReceivingLineMinutes         *int               `json:"receiving_line_minutes,omitempty"`
	Reception                    ReceptionOverrides `json:"reception"`
}

// Apply returns a copy of d with every non-nil override applied.
func (d Defaults) Apply(o DurationOverrides) Defaults {
	if o.CoverageHours != nil {
		d.CoverageHours = *o.CoverageHours
	}
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&d.CeremonyMinutes, o.CeremonyMinutes)
	set(&d.ArrivalSetupMinutes, o.ArrivalSetupMinutes)
	set(&d.BufferMinutes, o.BufferMinutes)
	set(&d.FlatLayMinutes, o.FlatLayMinutes)
	set(&d.GettingDressedMinutes, o.GettingDressedMinutes)
	set(&d.IndividualPortraitsMinutes, o.IndividualPortraitsMinutes)
	set(&d.TuckawayMinutes, o.TuckawayMinutes)
	set(&d.FirstLookMinutes, o.FirstLookMinutes)
	set(&d.CouplePortraitsMinutes, o.CouplePortraitsMinutes)
	set(&d.WeddingPartyPortraitsMinutes, o.WeddingPartyPortraitsMinutes)
	set(&d.FamilyPortraitsMinutes, o.FamilyPortraitsMinutes)
	set(&d.MinutesPerFamilyGrouping, o.MinutesPerFamilyGrouping)
	set(&d.CocktailHourMinutes, o.CocktailHourMinutes)
	set(&d.GoldenHourWindowMinutes, o.GoldenHourWindowMinutes)
	set(&d.TravelToCeremonyMinutes, o.TravelToCeremonyMinutes)
	set(&d.TravelToReceptionMinutes, o.TravelToReceptionMinutes)
	set(&d.ReceivingLineMinutes, o.ReceivingLineMinutes)

	r := o.Reception
	set(&d.Reception.GrandEntranceMinutes, r.GrandEntranceMinutes)
	set(&d.Reception.FirstDanceMinutes, r.FirstDanceMinutes)
	set(&d.Reception.ParentDancesMinutes, r.ParentDancesMinutes)
	set(&d.Reception.ToastsMinutes, r.ToastsMinutes)
	set(&d.Reception.DinnerMinutes, r.DinnerMinutes)
	set(&d.Reception.DancefloorMinutes, r.DancefloorMinutes)
	set(&d.Reception.CakeCuttingMinutes, r.CakeCuttingMinutes)
	set(&d.Reception.BouquetTossMinutes, r.BouquetTossMinutes)
	set(&d.Reception.GarterTossMinutes, r.GarterTossMinutes)
	return d
}
