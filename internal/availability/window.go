// Package availability answers whether courts and coaches are free for a
// time window and lays out the bookable slots of an operating day.
package availability

import (
	"math"
	"time"

	"github.com/codr1/courtbook/internal/apperr"
)

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time `json:"startTime"`
	End   time.Time `json:"endTime"`
}

// NewWindow normalises both ends to UTC at second precision so stored and
// queried timestamps compare consistently.
func NewWindow(start, end time.Time) (Window, error) {
	if start.IsZero() || end.IsZero() {
		return Window{}, apperr.New(apperr.InvalidInput, "missing_window", "start and end times are required")
	}
	w := Window{
		Start: start.UTC().Truncate(time.Second),
		End:   end.UTC().Truncate(time.Second),
	}
	if !w.Start.Before(w.End) {
		return Window{}, apperr.New(apperr.InvalidInput, "invalid_window", "start time must be before end time")
	}
	return w, nil
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

func (w Window) Hours() float64 {
	return w.Duration().Hours()
}

// Overlaps reports whether two half-open windows share any instant. Windows
// that merely touch do not overlap.
func Overlaps(a, b Window) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// HoursToDuration converts fractional hours to a duration rounded to the second.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*3600)) * time.Second
}
