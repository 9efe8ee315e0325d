package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/wedding-timeline/internal/clock"
	"github.com/pkordes/wedding-timeline/internal/coverage"
	"github.com/pkordes/wedding-timeline/internal/domain"
	"github.com/pkordes/wedding-timeline/internal/timeline"
)

// PresetGetter is the slice of preset storage timeline generation needs.
type PresetGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Preset, error)
}

// TimelineResult is everything produced for one generation request.
type TimelineResult struct {
	Inputs   domain.EventInputs
	Blocks   []domain.Block
	Warnings []string
	Coverage coverage.Report
}

// TimelineService turns raw timeline requests into schedules. It keeps no
// per-request state, so one instance serves concurrent requests.
type TimelineService struct {
	presets  PresetGetter
	defaults domain.Defaults
	loc      *time.Location
	log      *slog.Logger
}

// NewTimelineService constructs a TimelineService. defaults are the
// configured photographer defaults; loc is the zone clock strings are read in.
func NewTimelineService(presets PresetGetter, defaults domain.Defaults, loc *time.Location, log *slog.Logger) *TimelineService {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &TimelineService{presets: presets, defaults: defaults, loc: loc, log: log}
}

// Defaults returns the configured defaults requests fall back to.
func (s *TimelineService) Defaults() domain.Defaults {
	return s.defaults
}

// Generate resolves durations (request, then preset, then configured
// defaults), parses every clock string, validates the result and runs the
// engine and the coverage analytics. topN sizes the top-blocks ranking.
//
// A malformed clock string returns a *clock.ParseError naming the field.
func (s *TimelineService) Generate(ctx context.Context, req domain.TimelineRequest, topN int) (TimelineResult, error) {
	base := s.defaults
	if req.PresetID != nil {
		p, err := s.presets.GetByID(ctx, *req.PresetID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				err = fmt.Errorf("%w: preset %s does not exist", domain.ErrValidation, *req.PresetID)
			}
			return TimelineResult{}, fmt.Errorf("service.TimelineService.Generate: %w", err)
		}
		base = p.Defaults
	}

	d := base.Apply(req.Durations)
	if err := d.Validate(); err != nil {
		return TimelineResult{}, fmt.Errorf("service.TimelineService.Generate: %w", err)
	}

	in, err := s.inputs(req, d)
	if err != nil {
		var pe *clock.ParseError
		if errors.As(err, &pe) {
			s.log.WarnContext(ctx, "timeline request has unparseable time",
				"field", pe.Field, "value", pe.Clock, "date", pe.Date)
		}
		return TimelineResult{}, fmt.Errorf("service.TimelineService.Generate: %w", err)
	}
	if err := in.Validate(); err != nil {
		return TimelineResult{}, fmt.Errorf("service.TimelineService.Generate: %w", err)
	}

	blocks, warnings := timeline.Build(in)
	report := coverage.NewReport(blocks, coverage.Window{Start: in.Coverage.Start, End: in.Coverage.End}, topN)

	s.log.DebugContext(ctx, "timeline generated",
		"blocks", len(blocks),
		"warnings", len(warnings),
		"in_coverage_minutes", report.Totals.InCoverage,
		"overage_minutes", report.Totals.Overage,
	)

	return TimelineResult{
		Inputs:   in,
		Blocks:   blocks,
		Warnings: warnings,
		Coverage: report,
	}, nil
}

// inputs parses the request's clock strings against the wedding date and
// combines them with the resolved durations.
func (s *TimelineService) inputs(req domain.TimelineRequest, d domain.Defaults) (domain.EventInputs, error) {
	p := &clockParser{date: req.WeddingDate, loc: s.loc}

	weddingDate, err := time.ParseInLocation(clock.DateLayout, req.WeddingDate, s.loc)
	if err != nil {
		return domain.EventInputs{}, &clock.ParseError{Date: req.WeddingDate, Field: "wedding_date"}
	}

	coverageStart := p.required("coverage_start", req.CoverageStart)
	ceremonyStart := p.required("ceremony_start", req.CeremonyStart)
	arrival := p.optional("photographer_arrival", req.PhotographerArrival)
	sunset := p.optional("sunset_time", req.SunsetTime)
	receptionStart := p.optional("reception_start", req.ReceptionStart)
	reception := s.reception(p, req.Reception, d.Reception)
	if p.err != nil {
		return domain.EventInputs{}, p.err
	}

	family := domain.FlatFamilyPortraits(d.FamilyPortraitsMinutes)
	if g := req.FamilyGroupings; g != nil && *g != 0 {
		family = domain.GroupedFamilyPortraits(*g, d.MinutesPerFamilyGrouping)
	}

	return domain.EventInputs{
		WeddingDate: weddingDate,
		Coverage:    domain.NewCoverage(coverageStart, d.CoverageHours),

		PhotographerArrival: arrival,
		ArrivalSetupMinutes: d.ArrivalSetupMinutes,

		CeremonyStart:   ceremonyStart,
		CeremonyMinutes: d.CeremonyMinutes,

		Locations: req.Locations,

		TravelToCeremonyMinutes:  d.TravelToCeremonyMinutes,
		TravelToReceptionMinutes: d.TravelToReceptionMinutes,

		FirstLook:            req.FirstLook,
		ReceivingLine:        req.ReceivingLine,
		ReceivingLineMinutes: d.ReceivingLineMinutes,

		CocktailHourMinutes: d.CocktailHourMinutes,
		ProtectCocktailHour: req.ProtectCocktailHour,

		Family: req.Family,

		BufferMinutes:                d.BufferMinutes,
		FlatLayMinutes:               d.FlatLayMinutes,
		GettingDressedMinutes:        d.GettingDressedMinutes,
		IndividualPortraitsMinutes:   d.IndividualPortraitsMinutes,
		FirstLookMinutes:             d.FirstLookMinutes,
		CouplePortraitsMinutes:       d.CouplePortraitsMinutes,
		WeddingPartyPortraitsMinutes: d.WeddingPartyPortraitsMinutes,
		TuckawayMinutes:              d.TuckawayMinutes,
		FamilyPortraits:              family,

		SunsetTime:              sunset,
		GoldenHourWindowMinutes: d.GoldenHourWindowMinutes,

		ReceptionStart: receptionStart,
		Reception:      reception,
	}, nil
}

// reception resolves toggles and hard times. Entrance, first dance, toasts,
// dinner, dancefloor and cake cutting are on unless switched off; the
// tosses and parent dances are off unless switched on.
func (s *TimelineService) reception(p *clockParser, r domain.ReceptionRequest, d domain.ReceptionDefaults) domain.ReceptionEvents {
	event := func(field string, e domain.EventRequest, enabledByDefault bool, minutes int) domain.ReceptionEvent {
		return domain.ReceptionEvent{
			Enabled: e.EnabledOr(enabledByDefault),
			At:      p.optional(field, e.At),
			Minutes: minutes,
		}
	}

	dancefloor := true
	if r.Dancefloor != nil {
		dancefloor = *r.Dancefloor
	}

	return domain.ReceptionEvents{
		GrandEntrance: event("grand_entrance_time", r.GrandEntrance, true, d.GrandEntranceMinutes),
		FirstDance:    event("first_dance_time", r.FirstDance, true, d.FirstDanceMinutes),
		ParentDances: domain.ParentDances{
			FatherDaughter: r.FatherDaughterDance,
			MotherSon:      r.MotherSonDance,
			At:             p.optional("parent_dances_time", r.ParentDancesAt),
			Minutes:        d.ParentDancesMinutes,
		},
		Toasts:      event("toasts_time", r.Toasts, true, d.ToastsMinutes),
		Dinner:      event("dinner_start_time", r.Dinner, true, d.DinnerMinutes),
		Dancefloor:  domain.Dancefloor{Enabled: dancefloor, Minutes: d.DancefloorMinutes},
		CakeCutting: event("cake_cutting_time", r.CakeCutting, true, d.CakeCuttingMinutes),
		BouquetToss: event("bouquet_toss_time", r.BouquetToss, false, d.BouquetTossMinutes),
		GarterToss:  event("garter_toss_time", r.GarterToss, false, d.GarterTossMinutes),
	}
}

// clockParser parses clock strings against one wedding date and keeps the
// first failure, tagged with the field it came from.
type clockParser struct {
	date string
	loc  *time.Location
	err  error
}

func (p *clockParser) required(field, value string) time.Time {
	if p.err != nil {
		return time.Time{}
	}
	t, err := clock.Parse(p.date, value, p.loc)
	if err != nil {
		p.fail(field, err)
	}
	return t
}

func (p *clockParser) optional(field, value string) *time.Time {
	if p.err != nil {
		return nil
	}
	t, err := clock.ParseOptional(p.date, value, p.loc)
	if err != nil {
		p.fail(field, err)
	}
	return t
}

func (p *clockParser) fail(field string, err error) {
	var pe *clock.ParseError
	if errors.As(err, &pe) {
		pe.Field = field
	}
	p.err = err
}
