// Package clock converts wedding-day clock strings ("4:00 PM") into absolute
// times and performs the minute arithmetic the timeline engine runs on.
// Every function is pure; nothing here reads the wall clock.
package clock

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted by Parse ("2026-06-20").
const DateLayout = "2006-01-02"

// DisplayLayout renders a time as a 12-hour clock with no leading zero.
const DisplayLayout = "3:04 PM"

// clockLayouts are tried in order after the input is upper-cased and trimmed.
// The 24-hour layout is last so "4:00" (no meridiem) is read as 04:00.
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04",
}

// ParseError reports a date or clock string that matches none of the
// accepted layouts. It is the only hard failure of timeline generation.
type ParseError struct {
	Date  string
	Clock string
	// Field names the input the value came from, when the caller knows it.
	Field string
	cause error
}

func (e *ParseError) Error() string {
	subject := "time"
	if e.Field != "" {
		subject = e.Field
	}
	if e.cause != nil {
		return fmt.Sprintf("cannot parse %s %q on %q: %v", subject, e.Clock, e.Date, e.cause)
	}
	return fmt.Sprintf("cannot parse %s %q on %q", subject, e.Clock, e.Date)
}

// Unwrap exposes the underlying time.Parse error, if any.
func (e *ParseError) Unwrap() error { return e.cause }

// Parse combines a calendar date ("2026-06-20") and a clock string ("4:00 PM")
// into an absolute time in loc. A nil loc means UTC.
func Parse(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, &ParseError{Date: date, Clock: clock, cause: err}
	}

	normalized := strings.ToUpper(strings.Join(strings.Fields(clock), " "))
	if normalized == "" {
		return time.Time{}, &ParseError{Date: date, Clock: clock}
	}

	for _, layout := range clockLayouts {
		tod, err := time.Parse(layout, normalized)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, loc), nil
	}
	return time.Time{}, &ParseError{Date: date, Clock: clock}
}

// ParseOptional is Parse for fields that may be left blank. Blank input
// yields a nil time and no error.
func ParseOptional(date, clock string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(clock) == "" {
		return nil, nil
	}
	t, err := Parse(date, clock, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AddMinutes returns t shifted by n minutes (n may be negative).
func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}

// AddHours returns t shifted by a fractional number of hours, rounded to
// the nearest second.
func AddHours(t time.Time, h float64) time.Time {
	return t.Add(time.Duration(math.Round(h*3600)) * time.Second)
}

// MinutesBetween returns the whole minutes from a to b, floored. The result
// is negative when b is before a.
func MinutesBetween(a, b time.Time) int {
	d := b.Sub(a)
	m := int(d / time.Minute)
	if d < 0 && d%time.Minute != 0 {
		m--
	}
	return m
}

// Format renders t as "4:00 PM". The zero time renders as "".
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayLayout)
}

// FormatSpan renders an interval as "4:00 PM–4:30 PM".
func FormatSpan(start, end time.Time) string {
	return Format(start) + "–" + Format(end)
}

// HumanMinutes renders a minute count as "1 hr 30 min", "2 hrs" or "45 min".
func HumanMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours, rem := minutes/60, minutes%60
	switch {
	case hours > 0 && rem > 0:
		return fmt.Sprintf("%d hr %d min", hours, rem)
	case hours == 1:
		return "1 hr"
	case hours > 1:
		return fmt.Sprintf("%d hrs", hours)
	default:
		return fmt.Sprintf("%d min", rem)
	}
}
