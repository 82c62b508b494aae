// Package pricing computes itemised reservation prices from court rates,
// coach rates, equipment rentals and operator-defined pricing rules.
package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/codr1/courtbook/internal/timeofday"
)

type Kind string

const (
	KindPeakHour     Kind = "peak_hour"
	KindWeekend      Kind = "weekend"
	KindHoliday      Kind = "holiday"
	KindSpecialEvent Kind = "special_event"
	KindSeasonal     Kind = "seasonal"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPeakHour, KindWeekend, KindHoliday, KindSpecialEvent, KindSeasonal:
		return true
	}
	return false
}

type Scope string

const (
	ScopeAll            Scope = "all"
	ScopeSpecificCourts Scope = "specific_courts"
	// ScopeSpecificSports is accepted but not enforced; such rules apply to
	// every court. Filtering by sport needs a product decision first.
	ScopeSpecificSports Scope = "specific_sports"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopeAll, ScopeSpecificCourts, ScopeSpecificSports:
		return true
	}
	return false
}

const dateLayout = "2006-01-02"

const maxRuleNameLength = 100

// Rule is an operator-defined price adjustment. Dates are calendar dates in
// the facility timezone; times are "HH:MM".
type Rule struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Kind           Kind    `json:"kind"`
	Description    string  `json:"description,omitempty"`
	Scope          Scope   `json:"applyTo"`
	CourtIDs       []int64 `json:"courtIds"`
	Days           []int   `json:"dayOfWeek"`
	StartDate      string  `json:"startDate,omitempty"`
	EndDate        string  `json:"endDate,omitempty"`
	StartTime      string  `json:"startTime,omitempty"`
	EndTime        string  `json:"endTime,omitempty"`
	Multiplier     float64 `json:"multiplier"`
	FixedSurcharge int64   `json:"fixedSurcharge"`
	IsActive       bool    `json:"isActive"`
	Priority       int64   `json:"priority"`
}

// UnmarshalJSON decodes strictly. An omitted multiplier means 1 and an
// omitted isActive means true.
func (r *Rule) UnmarshalJSON(data []byte) error {
	type plain Rule
	decoded := plain{Multiplier: 1, IsActive: true}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&decoded); err != nil {
		return err
	}
	*r = Rule(decoded)
	return nil
}

func (r Rule) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxRuleNameLength {
		return fmt.Errorf("name must be %d characters or fewer", maxRuleNameLength)
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("kind %q is not supported", r.Kind)
	}
	if !r.Scope.Valid() {
		return fmt.Errorf("applyTo %q is not supported", r.Scope)
	}
	if r.Scope == ScopeSpecificCourts && len(r.CourtIDs) == 0 {
		return fmt.Errorf("specific_courts rules need at least one court")
	}
	if r.Multiplier <= 0 {
		return fmt.Errorf("multiplier must be greater than zero")
	}
	if r.FixedSurcharge < 0 {
		return fmt.Errorf("fixedSurcharge must not be negative")
	}
	for _, d := range r.Days {
		if d < 0 || d > 6 {
			return fmt.Errorf("dayOfWeek values must be between 0 (Sunday) and 6")
		}
	}

	var start, end time.Time
	var err error
	if r.StartDate != "" {
		if start, err = time.Parse(dateLayout, r.StartDate); err != nil {
			return fmt.Errorf("startDate must be YYYY-MM-DD")
		}
	}
	if r.EndDate != "" {
		if end, err = time.Parse(dateLayout, r.EndDate); err != nil {
			return fmt.Errorf("endDate must be YYYY-MM-DD")
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("endDate must not be before startDate")
	}

	for field, value := range map[string]string{"startTime": r.StartTime, "endTime": r.EndTime} {
		if value == "" {
			continue
		}
		if _, err := timeofday.Parse(value); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	if r.Kind == KindPeakHour && (r.StartTime == "" || r.EndTime == "") {
		return fmt.Errorf("peak_hour rules need startTime and endTime")
	}
	if r.Kind == KindWeekend && len(r.Days) == 0 {
		return fmt.Errorf("weekend rules need at least one dayOfWeek")
	}
	return nil
}

// appliesTo checks the scope and date-range filters shared by every kind.
func (r Rule) appliesTo(courtID int64, localStart time.Time) bool {
	if r.Scope == ScopeSpecificCourts && !containsInt64(r.CourtIDs, courtID) {
		return false
	}
	if r.StartDate != "" && r.EndDate != "" {
		from, err := time.Parse(dateLayout, r.StartDate)
		if err != nil {
			return false
		}
		to, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return false
		}
		day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(from) || day.After(to) {
			return false
		}
	}
	return true
}

// inHourRange compares whole hours only: a 16:45 start falls inside a
// "16:00"-"18:00" rule, and a rule ending "18:30" still ends at hour 18.
func (r Rule) inHourRange(hour int) bool {
	if r.StartTime == "" || r.EndTime == "" {
		return false
	}
	from, err := timeofday.ParseHour(r.StartTime)
	if err != nil {
		return false
	}
	to, err := timeofday.ParseHour(r.EndTime)
	if err != nil {
		return false
	}
	return hour >= from && hour < to
}

func (r Rule) onDay(weekday time.Weekday) bool {
	for _, d := range r.Days {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

func containsInt64(values []int64, v int64) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
