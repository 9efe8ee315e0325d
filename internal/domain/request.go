package domain

import "github.com/google/uuid"

// EventRequest is a reception moment as submitted by a client: an optional
// toggle (nil keeps the usual default) and an optional clock string.
type EventRequest struct {
	Enabled *bool
	At      string
}

// EnabledOr resolves the toggle against its default.
func (e EventRequest) EnabledOr(def bool) bool {
	if e.Enabled == nil {
		return def
	}
	return *e.Enabled
}

// ReceptionRequest is the raw reception section of a TimelineRequest.
type ReceptionRequest struct {
	GrandEntrance       EventRequest
	FirstDance          EventRequest
	FatherDaughterDance bool
	MotherSonDance      bool
	ParentDancesAt      string
	Toasts              EventRequest
	Dinner              EventRequest
	Dancefloor          *bool
	CakeCutting         EventRequest
	BouquetToss         EventRequest
	GarterToss          EventRequest
}

// TimelineRequest is a timeline generation request before parsing: clock
// fields are raw strings such as "4:00 PM" and durations are optional
// overrides on top of a preset or the configured defaults.
type TimelineRequest struct {
	PresetID *uuid.UUID

	WeddingDate         string
	CoverageStart       string
	PhotographerArrival string
	CeremonyStart       string
	SunsetTime          string
	ReceptionStart      string

	Locations Locations

	FirstLook           bool
	ReceivingLine       bool
	ProtectCocktailHour bool

	Family FamilyDynamics

	// FamilyGroupings, when positive, sizes family formals as groupings
	// times MinutesPerFamilyGrouping instead of FamilyPortraitsMinutes.
	FamilyGroupings *int

	Durations DurationOverrides
	Reception ReceptionRequest
}
