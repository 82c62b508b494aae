package availability

import (
	"context"
	"time"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/models"
	"github.com/codr1/courtbook/internal/timeofday"
)

type OperatingHours struct {
	Opens  timeofday.Clock
	Closes timeofday.Clock
}

type Slot struct {
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
	Label       string    `json:"label"`
}

// GenerateSlots steps from opening time in increments of durationHours and
// annotates each slot with the court's availability. A slot that would end
// after closing time is not produced.
func GenerateSlots(ctx context.Context, store OverlapStore, hours OperatingHours, loc *time.Location, courtID int64, date time.Time, durationHours float64) ([]Slot, error) {
	step := HoursToDuration(durationHours)
	if step <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "invalid_duration", "duration must be positive")
	}

	dayOpen := hours.Opens.On(date, loc)
	dayClose := hours.Closes.On(date, loc)

	slots := []Slot{}
	for start := dayOpen; !start.Add(step).After(dayClose); start = start.Add(step) {
		w := Window{Start: start.UTC(), End: start.Add(step).UTC()}
		free, err := IsAvailable(ctx, store, KindCourt, courtID, w, models.BlockingStatuses(), 0)
		if err != nil {
			return nil, err
		}
		slots = append(slots, Slot{
			StartTime:   w.Start,
			EndTime:     w.End,
			IsAvailable: free,
			Label:       FormatSlot(w, loc),
		})
	}
	return slots, nil
}

// FormatSlot renders a window as "HH:MM - HH:MM" in loc.
func FormatSlot(w Window, loc *time.Location) string {
	return w.Start.In(loc).Format("15:04") + " - " + w.End.In(loc).Format("15:04")
}
