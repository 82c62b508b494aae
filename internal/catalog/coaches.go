package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	appdb "github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/models"
	"github.com/codr1/courtbook/internal/timeofday"
)

type CoachInput struct {
	Name         string                      `json:"name" validate:"required,max=100"`
	Email        string                      `json:"email" validate:"required,email"`
	HourlyRate   int64                       `json:"hourlyRate" validate:"gte=0"`
	Status       string                      `json:"status" validate:"omitempty,oneof=available unavailable on_leave"`
	Sports       []string                    `json:"sports" validate:"dive,required,max=50"`
	Availability []models.AvailabilityWindow `json:"availability" validate:"dive"`
}

func (in CoachInput) status() string {
	if in.Status == "" {
		return models.CoachAvailable
	}
	return in.Status
}

// validateWindows checks each weekly window parses and is non-empty. Several
// windows on one day are stored, but bookings only consult the first active one.
func validateWindows(windows []models.AvailabilityWindow) error {
	for i, w := range windows {
		from, err := timeofday.Parse(w.StartTime)
		if err != nil {
			return apperr.Newf(apperr.InvalidInput, "invalid_availability", "availability[%d].startTime: %v", i, err)
		}
		to, err := timeofday.Parse(w.EndTime)
		if err != nil {
			return apperr.Newf(apperr.InvalidInput, "invalid_availability", "availability[%d].endTime: %v", i, err)
		}
		if from >= to {
			return apperr.Newf(apperr.InvalidInput, "invalid_availability", "availability[%d] must end after it starts", i)
		}
	}
	return nil
}

func (s *Service) ListCoaches(ctx context.Context) ([]models.Coach, error) {
	rows, err := s.db.Queries.ListCoaches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	coaches := make([]models.Coach, 0, len(rows))
	for _, row := range rows {
		coach, err := s.loadCoachDetails(ctx, s.db.Queries, row)
		if err != nil {
			return nil, err
		}
		coaches = append(coaches, coach)
	}
	return coaches, nil
}

func (s *Service) GetCoach(ctx context.Context, id int64) (models.Coach, error) {
	row, err := s.db.Queries.GetCoach(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Coach{}, notFound("coach", id)
		}
		return models.Coach{}, fmt.Errorf("get coach: %w", err)
	}
	return s.loadCoachDetails(ctx, s.db.Queries, row)
}

func (s *Service) loadCoachDetails(ctx context.Context, q *dbgen.Queries, row dbgen.Coach) (models.Coach, error) {
	sports, err := q.ListCoachSports(ctx, row.ID)
	if err != nil {
		return models.Coach{}, fmt.Errorf("list coach sports: %w", err)
	}
	windows, err := q.ListCoachAvailability(ctx, row.ID)
	if err != nil {
		return models.Coach{}, fmt.Errorf("list coach availability: %w", err)
	}
	return models.CoachFromDB(row, sports, windows), nil
}

func (s *Service) CreateCoach(ctx context.Context, in CoachInput) (models.Coach, error) {
	if err := s.check(in); err != nil {
		return models.Coach{}, err
	}
	if err := validateWindows(in.Availability); err != nil {
		return models.Coach{}, err
	}

	var created models.Coach
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		q := tx.Queries
		row, err := q.CreateCoach(ctx, dbgen.CreateCoachParams{
			Name:            strings.TrimSpace(in.Name),
			Email:           strings.ToLower(strings.TrimSpace(in.Email)),
			HourlyRateCents: in.HourlyRate,
			Status:          in.status(),
		})
		if err != nil {
			return constraintErr("create coach", err)
		}
		if err := replaceCoachSchedule(ctx, q, row.ID, in); err != nil {
			return err
		}
		created, err = s.loadCoachDetails(ctx, q, row)
		return err
	})
	if err != nil {
		return models.Coach{}, err
	}
	log.Ctx(ctx).Info().Int64("coach_id", created.ID).Msg("Coach created")
	return created, nil
}

// UpdateCoach replaces the coach's profile, specialisations and weekly hours.
func (s *Service) UpdateCoach(ctx context.Context, id int64, in CoachInput) (models.Coach, error) {
	if err := s.check(in); err != nil {
		return models.Coach{}, err
	}
	if err := validateWindows(in.Availability); err != nil {
		return models.Coach{}, err
	}

	var updated models.Coach
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		q := tx.Queries
		row, err := q.UpdateCoach(ctx, dbgen.UpdateCoachParams{
			Name:            strings.TrimSpace(in.Name),
			Email:           strings.ToLower(strings.TrimSpace(in.Email)),
			HourlyRateCents: in.HourlyRate,
			Status:          in.status(),
			ID:              id,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFound("coach", id)
			}
			return constraintErr("update coach", err)
		}
		if err := q.DeleteCoachSports(ctx, id); err != nil {
			return fmt.Errorf("clear coach sports: %w", err)
		}
		if err := q.DeleteCoachAvailability(ctx, id); err != nil {
			return fmt.Errorf("clear coach availability: %w", err)
		}
		if err := replaceCoachSchedule(ctx, q, id, in); err != nil {
			return err
		}
		updated, err = s.loadCoachDetails(ctx, q, row)
		return err
	})
	if err != nil {
		return models.Coach{}, err
	}
	log.Ctx(ctx).Info().Int64("coach_id", id).Msg("Coach updated")
	return updated, nil
}

func replaceCoachSchedule(ctx context.Context, q *dbgen.Queries, coachID int64, in CoachInput) error {
	seen := make(map[string]bool, len(in.Sports))
	for _, sport := range in.Sports {
		sport = strings.TrimSpace(sport)
		if seen[sport] {
			continue
		}
		seen[sport] = true
		if err := q.AddCoachSport(ctx, dbgen.AddCoachSportParams{CoachID: coachID, SportType: sport}); err != nil {
			return fmt.Errorf("add coach sport: %w", err)
		}
	}
	for i, w := range in.Availability {
		err := q.AddCoachAvailability(ctx, dbgen.AddCoachAvailabilityParams{
			CoachID:   coachID,
			Position:  int64(i),
			DayOfWeek: int64(w.Day),
			StartTime: strings.TrimSpace(w.StartTime),
			EndTime:   strings.TrimSpace(w.EndTime),
			IsActive:  w.IsActive,
		})
		if err != nil {
			return constraintErr("add coach availability", err)
		}
	}
	return nil
}

// DeleteCoach removes a coach who has no upcoming pending or confirmed
// sessions. Past reservations keep their row with the coach cleared.
func (s *Service) DeleteCoach(ctx context.Context, id int64) error {
	q := s.db.Queries
	upcoming, err := q.CountUpcomingCoachReservations(ctx, dbgen.CountUpcomingCoachReservationsParams{
		CoachID:  id,
		Statuses: models.BlockingStatuses(),
		Now:      s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("count coach reservations: %w", err)
	}
	if upcoming > 0 {
		return inUse("coach", upcoming)
	}
	affected, err := q.DeleteCoach(ctx, id)
	if err != nil {
		return fmt.Errorf("delete coach: %w", err)
	}
	if affected == 0 {
		return notFound("coach", id)
	}
	log.Ctx(ctx).Info().Int64("coach_id", id).Msg("Coach deleted")
	return nil
}
