package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wedding-timeline/internal/clock"
	"github.com/pkordes/wedding-timeline/internal/coverage"
	"github.com/pkordes/wedding-timeline/internal/domain"
	"github.com/pkordes/wedding-timeline/internal/export"
	"github.com/pkordes/wedding-timeline/internal/service"
)

// Output formats accepted by ?format= on POST /timelines.
const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatText = "text"
	formatICS  = "ics"
)

// EventBody is one reception moment in a request: an optional toggle and an
// optional planner-provided clock time.
type EventBody struct {
	Enabled *bool  `json:"enabled,omitempty"`
	At      string `json:"at,omitempty"`
}

// ReceptionBody is the reception section of a timeline request.
type ReceptionBody struct {
	GrandEntrance       EventBody `json:"grand_entrance"`
	FirstDance          EventBody `json:"first_dance"`
	FatherDaughterDance bool      `json:"father_daughter_dance"`
	MotherSonDance      bool      `json:"mother_son_dance"`
	ParentDancesAt      string    `json:"parent_dances_at,omitempty"`
	Toasts              EventBody `json:"toasts"`
	Dinner              EventBody `json:"dinner"`
	Dancefloor          *bool     `json:"dancefloor,omitempty"`
	CakeCutting         EventBody `json:"cake_cutting"`
	BouquetToss         EventBody `json:"bouquet_toss"`
	GarterToss          EventBody `json:"garter_toss"`
}

// TimelineRequestBody is the JSON body of POST /timelines. Clock fields are
// 12-hour strings such as "4:00 PM"; wedding_date is YYYY-MM-DD.
type TimelineRequestBody struct {
	PresetID *openapi_types.UUID `json:"preset_id,omitempty"`

	WeddingDate         string `json:"wedding_date"`
	CoverageStart       string `json:"coverage_start"`
	PhotographerArrival string `json:"photographer_arrival,omitempty"`
	CeremonyStart       string `json:"ceremony_start"`
	SunsetTime          string `json:"sunset_time,omitempty"`
	ReceptionStart      string `json:"reception_start,omitempty"`

	Locations domain.Locations `json:"locations"`

	FirstLook           bool `json:"first_look"`
	ReceivingLine       bool `json:"receiving_line"`
	ProtectCocktailHour bool `json:"protect_cocktail_hour"`

	FamilyDynamics  domain.FamilyDynamics `json:"family_dynamics"`
	FamilyGroupings *int                  `json:"family_groupings,omitempty"`

	Durations domain.DurationOverrides `json:"durations"`
	Reception ReceptionBody            `json:"reception"`
}

// BlockResponse is one scheduled block in the JSON output.
type BlockResponse struct {
	Step       domain.Step     `json:"step"`
	Name       string          `json:"name"`
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	StartLabel string          `json:"start_label"`
	EndLabel   string          `json:"end_label"`
	Minutes    int             `json:"minutes"`
	Location   string          `json:"location,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Audience   domain.Audience `json:"audience"`
	Kind       domain.Kind     `json:"kind"`
}

// CoverageWindowResponse describes the contracted window.
type CoverageWindowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Hours float64   `json:"hours"`
	Label string    `json:"label"`
}

// RankedBlockResponse is one entry of the top-blocks ranking.
type RankedBlockResponse struct {
	Step    domain.Step `json:"step"`
	Name    string      `json:"name"`
	Span    string      `json:"span"`
	Minutes int         `json:"minutes"`
	Human   string      `json:"human"`
}

// AnalyticsResponse is the coverage report for a timeline.
type AnalyticsResponse struct {
	Totals    coverage.Totals        `json:"totals"`
	ByKind    []coverage.KindMinutes `json:"by_kind"`
	TopBlocks []RankedBlockResponse  `json:"top_blocks"`
}

// TimelineResponse is the JSON body returned by POST /timelines.
type TimelineResponse struct {
	WeddingDate openapi_types.Date     `json:"wedding_date"`
	Coverage    CoverageWindowResponse `json:"coverage"`
	Blocks      []BlockResponse        `json:"blocks"`
	Warnings    []string               `json:"warnings"`
	Analytics   AnalyticsResponse      `json:"analytics"`
}

// timelineParams are the query parameters of POST /timelines.
type timelineParams struct {
	Format   *string
	Top      *int
	Audience *string
}

// CreateTimeline implements POST /timelines.
// It builds the schedule and renders it as JSON (default), CSV, plain text or
// iCalendar depending on ?format=. ?top= sizes the top-blocks ranking and
// ?audience= filters the text rendering.
func (s *Server) CreateTimeline(w http.ResponseWriter, r *http.Request) {
	params, err := bindTimelineParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	format := formatJSON
	if params.Format != nil {
		format = *params.Format
	}
	switch format {
	case formatJSON, formatCSV, formatText, formatICS:
	default:
		writeError(w, http.StatusBadRequest, codeBadRequest, fmt.Sprintf("unknown format %q (want json, csv, text or ics)", format))
		return
	}
	top := 0
	if params.Top != nil {
		if *params.Top < 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "top must not be negative")
			return
		}
		top = *params.Top
	}
	var audience *domain.Audience
	if params.Audience != nil {
		a, err := domain.ParseAudience(*params.Audience)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, unwrapMessage(err, domain.ErrValidation))
			return
		}
		audience = &a
	}

	var body TimelineRequestBody
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	result, err := s.timelines.Generate(r.Context(), body.toDomain(), top)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	date := result.Inputs.WeddingDate.Format(clock.DateLayout)
	switch format {
	case formatCSV:
		var buf bytes.Buffer
		if err := export.CSV(&buf, result.Blocks); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeAttachment(w, "text/csv; charset=utf-8", "timeline-"+date+".csv", buf.Bytes())
	case formatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, export.Text(result.Blocks, audience)+"\n")
	case formatICS:
		cal := export.ICS(result.Blocks, export.CalendarMeta{
			Name:  "Wedding timeline " + date,
			Stamp: s.now(),
		})
		writeAttachment(w, "text/calendar; charset=utf-8", "timeline-"+date+".ics", []byte(cal))
	default:
		writeJSON(w, http.StatusOK, newTimelineResponse(result))
	}
}

func bindTimelineParams(r *http.Request) (timelineParams, error) {
	var p timelineParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "format", q, &p.Format); err != nil {
		return p, fmt.Errorf("invalid format parameter: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "top", q, &p.Top); err != nil {
		return p, fmt.Errorf("invalid top parameter: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "audience", q, &p.Audience); err != nil {
		return p, fmt.Errorf("invalid audience parameter: %w", err)
	}
	return p, nil
}

// decodeJSON decodes a single JSON document from the request body, rejecting
// unknown fields so typos in duration names are not silently ignored.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	return nil
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (e EventBody) toDomain() domain.EventRequest {
	return domain.EventRequest{Enabled: e.Enabled, At: e.At}
}

func (b TimelineRequestBody) toDomain() domain.TimelineRequest {
	rc := b.Reception
	return domain.TimelineRequest{
		PresetID: b.PresetID,

		WeddingDate:         b.WeddingDate,
		CoverageStart:       b.CoverageStart,
		PhotographerArrival: b.PhotographerArrival,
		CeremonyStart:       b.CeremonyStart,
		SunsetTime:          b.SunsetTime,
		ReceptionStart:      b.ReceptionStart,

		Locations: b.Locations,

		FirstLook:           b.FirstLook,
		ReceivingLine:       b.ReceivingLine,
		ProtectCocktailHour: b.ProtectCocktailHour,

		Family:          b.FamilyDynamics,
		FamilyGroupings: b.FamilyGroupings,

		Durations: b.Durations,
		Reception: domain.ReceptionRequest{
			GrandEntrance:       rc.GrandEntrance.toDomain(),
			FirstDance:          rc.FirstDance.toDomain(),
			FatherDaughterDance: rc.FatherDaughterDance,
			MotherSonDance:      rc.MotherSonDance,
			ParentDancesAt:      rc.ParentDancesAt,
			Toasts:              rc.Toasts.toDomain(),
			Dinner:              rc.Dinner.toDomain(),
			Dancefloor:          rc.Dancefloor,
			CakeCutting:         rc.CakeCutting.toDomain(),
			BouquetToss:         rc.BouquetToss.toDomain(),
			GarterToss:          rc.GarterToss.toDomain(),
		},
	}
}

func newBlockResponse(b domain.Block) BlockResponse {
	return BlockResponse{
		Step:       b.Step,
		Name:       b.Name,
		Start:      b.Start,
		End:        b.End,
		StartLabel: clock.Format(b.Start),
		EndLabel:   clock.Format(b.End),
		Minutes:    b.Minutes(),
		Location:   b.Location,
		Notes:      b.Notes,
		Audience:   b.Audience,
		Kind:       b.Kind,
	}
}

func newTimelineResponse(res service.TimelineResult) TimelineResponse {
	blocks := make([]BlockResponse, 0, len(res.Blocks))
	for _, b := range res.Blocks {
		blocks = append(blocks, newBlockResponse(b))
	}

	top := make([]RankedBlockResponse, 0, len(res.Coverage.Top))
	for _, rk := range res.Coverage.Top {
		top = append(top, RankedBlockResponse{
			Step:    rk.Block.Step,
			Name:    rk.Block.Name,
			Span:    clock.FormatSpan(rk.Block.Start, rk.Block.End),
			Minutes: rk.Minutes,
			Human:   clock.HumanMinutes(rk.Minutes),
		})
	}

	byKind := res.Coverage.ByKind
	if byKind == nil {
		byKind = []coverage.KindMinutes{}
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	cov := res.Inputs.Coverage
	return TimelineResponse{
		WeddingDate: openapi_types.Date{Time: res.Inputs.WeddingDate},
		Coverage: CoverageWindowResponse{
			Start: cov.Start,
			End:   cov.End,
			Hours: cov.Hours,
			Label: clock.FormatSpan(cov.Start, cov.End),
		},
		Blocks:   blocks,
		Warnings: warnings,
		Analytics: AnalyticsResponse{
			Totals:    res.Coverage.Totals,
			ByKind:    byKind,
			TopBlocks: top,
		},
	}
}
