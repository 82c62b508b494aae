package availability

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/courtbook/internal/apperr"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

type fakeCoachStore struct {
	coach    dbgen.Coach
	windows  []dbgen.CoachAvailability
	overlaps int64
	missing  bool
}

func (f *fakeCoachStore) GetCoach(ctx context.Context, id int64) (dbgen.Coach, error) {
	if f.missing {
		return dbgen.Coach{}, sql.ErrNoRows
	}
	return f.coach, nil
}

func (f *fakeCoachStore) ListCoachAvailability(ctx context.Context, coachID int64) ([]dbgen.CoachAvailability, error) {
	return f.windows, nil
}

func (f *fakeCoachStore) CountOverlappingReservations(ctx context.Context, arg dbgen.CountOverlappingReservationsParams) (int64, error) {
	return f.overlaps, nil
}

// 2026-05-04 is a Monday.
var monday = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

func mondayWindow(fromHour, fromMin, toHour, toMin int) Window {
	return Window{
		Start: monday.Add(time.Duration(fromHour)*time.Hour + time.Duration(fromMin)*time.Minute),
		End:   monday.Add(time.Duration(toHour)*time.Hour + time.Duration(toMin)*time.Minute),
	}
}

func TestCheckCoach(t *testing.T) {
	workdays := []dbgen.CoachAvailability{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:30", IsActive: true},
		{DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00", IsActive: true},
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsActive: false},
	}

	tests := []struct {
		name     string
		store    *fakeCoachStore
		window   Window
		wantOK   bool
		wantCode string
	}{
		{
			name:   "inside first window",
			store:  &fakeCoachStore{coach: dbgen.Coach{Status: "available"}, windows: workdays},
			window: mondayWindow(10, 0, 12, 30),
			wantOK: true,
		},
		{
			name:     "minute resolution end",
			store:    &fakeCoachStore{coach: dbgen.Coach{Status: "available"}, windows: workdays},
			window:   mondayWindow(11, 45, 12, 45),
			wantCode: ReasonOutsideHours,
		},
		{
			name:     "second window on same day is not consulted",
			store:    &fakeCoachStore{coach: dbgen.Coach{Status: "available"}, windows: workdays},
			window:   mondayWindow(15, 0, 16, 0),
			wantCode: ReasonOutsideHours,
		},
		{
			name:     "inactive window",
			store:    &fakeCoachStore{coach: dbgen.Coach{Status: "available"}, windows: workdays},
			window:   Window{Start: monday.Add(34 * time.Hour), End: monday.Add(35 * time.Hour)},
			wantCode: ReasonNoHoursOnDay,
		},
		{
			name:     "on leave",
			store:    &fakeCoachStore{coach: dbgen.Coach{Status: "on_leave"}, windows: workdays},
			window:   mondayWindow(10, 0, 11, 0),
			wantCode: ReasonCoachUnavailable,
		},
		{
			name:     "already booked",
			store:    &fakeCoachStore{coach: dbgen.Coach{Status: "available"}, windows: workdays, overlaps: 1},
			window:   mondayWindow(10, 0, 11, 0),
			wantCode: ReasonAlreadyBooked,
		},
		{
			name: "malformed window fails closed",
			store: &fakeCoachStore{coach: dbgen.Coach{Status: "available"}, windows: []dbgen.CoachAvailability{
				{DayOfWeek: 1, StartTime: "nine", EndTime: "18:00", IsActive: true},
			}},
			window:   mondayWindow(10, 0, 11, 0),
			wantCode: ReasonOutsideHours,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckCoach(context.Background(), tt.store, 1, tt.window, time.UTC, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, got.Available)
			assert.Equal(t, tt.wantCode, got.Code)
			if !tt.wantOK {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}

func TestCheckCoachNotFound(t *testing.T) {
	_, err := CheckCoach(context.Background(), &fakeCoachStore{missing: true}, 9, mondayWindow(10, 0, 11, 0), time.UTC, 0)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
