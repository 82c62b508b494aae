package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/codr1/courtbook/internal/apperr"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/models"
	"github.com/codr1/courtbook/internal/timeofday"
)

type CoachStore interface {
	OverlapStore
	GetCoach(ctx context.Context, id int64) (dbgen.Coach, error)
	ListCoachAvailability(ctx context.Context, coachID int64) ([]dbgen.CoachAvailability, error)
}

type CoachCheck struct {
	Available bool   `json:"available"`
	Code      string `json:"code,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

const (
	ReasonCoachUnavailable = "coach_unavailable"
	ReasonNoHoursOnDay     = "no_hours_on_day"
	ReasonOutsideHours     = "outside_hours"
	ReasonAlreadyBooked    = "already_booked"
)

// CheckCoach evaluates the coach's status, the first active weekly window for
// the weekday of w.Start in loc, and existing bookings, in that order.
func CheckCoach(ctx context.Context, store CoachStore, coachID int64, w Window, loc *time.Location, excludeID int64) (CoachCheck, error) {
	coach, err := store.GetCoach(ctx, coachID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoachCheck{}, apperr.Newf(apperr.NotFound, "coach_not_found", "coach %d not found", coachID)
		}
		return CoachCheck{}, fmt.Errorf("load coach: %w", err)
	}
	if coach.Status != models.CoachAvailable {
		return CoachCheck{Code: ReasonCoachUnavailable, Reason: "Coach is currently unavailable"}, nil
	}

	windows, err := store.ListCoachAvailability(ctx, coachID)
	if err != nil {
		return CoachCheck{}, fmt.Errorf("load coach availability: %w", err)
	}
	if check, ok := FitsWeeklyHours(windows, w, loc); !ok {
		return check, nil
	}

	free, err := IsAvailable(ctx, store, KindCoach, coachID, w, models.BlockingStatuses(), excludeID)
	if err != nil {
		return CoachCheck{}, err
	}
	if !free {
		return CoachCheck{Code: ReasonAlreadyBooked, Reason: "Coach is already booked for the selected time"}, nil
	}
	return CoachCheck{Available: true}, nil
}

// FitsWeeklyHours checks w against the first active window on the booking's
// weekday. Only that one window is consulted even if the coach has several
// on the same day. Malformed window times fail closed.
func FitsWeeklyHours(windows []dbgen.CoachAvailability, w Window, loc *time.Location) (CoachCheck, bool) {
	localStart := w.Start.In(loc)
	weekday := int64(localStart.Weekday())

	var match *dbgen.CoachAvailability
	for i := range windows {
		if windows[i].DayOfWeek == weekday && windows[i].IsActive {
			match = &windows[i]
			break
		}
	}
	if match == nil {
		return CoachCheck{
			Code:   ReasonNoHoursOnDay,
			Reason: fmt.Sprintf("Coach is not available on %s", localStart.Weekday()),
		}, false
	}

	outside := CoachCheck{
		Code: ReasonOutsideHours,
		Reason: fmt.Sprintf("Coach is only available from %s to %s on %s",
			match.StartTime, match.EndTime, localStart.Weekday()),
	}
	from, err := timeofday.Parse(match.StartTime)
	if err != nil {
		return outside, false
	}
	to, err := timeofday.Parse(match.EndTime)
	if err != nil {
		return outside, false
	}

	startMinute := timeofday.Of(localStart, loc)
	endMinute := startMinute + timeofday.Clock(w.Duration()/time.Minute)
	if startMinute < from || endMinute > to {
		return outside, false
	}
	return CoachCheck{Available: true}, true
}
