// Package timeofday handles wall-clock "HH:MM" values used by operating hours,
// coach availability windows and peak-hour pricing rules.
package timeofday

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a time of day in minutes since midnight.
type Clock int

const minutesPerDay = 24 * 60

// Parse reads "H:MM" or "HH:MM". "24:00" is accepted as end of day.
func Parse(value string) (Clock, error) {
	value = strings.TrimSpace(value)
	hourPart, minutePart, ok := strings.Cut(value, ":")
	if !ok || hourPart == "" || len(minutePart) != 2 {
		return 0, fmt.Errorf("time of day %q must be HH:MM", value)
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("time of day %q has an invalid hour", value)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day %q has an invalid minute", value)
	}
	if hour == 24 && minute != 0 {
		return 0, fmt.Errorf("time of day %q is past midnight", value)
	}
	return Clock(hour*60 + minute), nil
}

// ParseHour returns only the hour component, ignoring minutes.
func ParseHour(value string) (int, error) {
	c, err := Parse(value)
	if err != nil {
		return 0, err
	}
	return c.Hour(), nil
}

func (c Clock) Hour() int {
	return int(c) / 60
}

func (c Clock) Minute() int {
	return int(c) % 60
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On anchors the clock on the calendar day of date in loc.
func (c Clock) On(date time.Time, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc)
}

// Of returns the wall clock of t in loc, truncated to the minute.
func Of(t time.Time, loc *time.Location) Clock {
	local := t.In(loc)
	return Clock(local.Hour()*60 + local.Minute())
}

// Valid reports whether the clock falls within a single day.
func (c Clock) Valid() bool {
	return c >= 0 && c <= minutesPerDay
}
