package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/models"
)

type CourtInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	CourtType   string `json:"courtType" validate:"required,oneof=indoor outdoor"`
	SportType   string `json:"sportType" validate:"required,max=50"`
	BasePrice   int64  `json:"basePrice" validate:"gte=0"`
	Status      string `json:"status" validate:"omitempty,oneof=active maintenance inactive"`
	Description string `json:"description" validate:"max=500"`
}

func (in CourtInput) status() string {
	if in.Status == "" {
		return models.CourtActive
	}
	return in.Status
}

func (s *Service) ListCourts(ctx context.Context) ([]models.Court, error) {
	rows, err := s.db.Queries.ListCourts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	courts := make([]models.Court, 0, len(rows))
	for _, row := range rows {
		courts = append(courts, models.CourtFromDB(row))
	}
	return courts, nil
}

func (s *Service) GetCourt(ctx context.Context, id int64) (models.Court, error) {
	row, err := s.db.Queries.GetCourt(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Court{}, notFound("court", id)
		}
		return models.Court{}, fmt.Errorf("get court: %w", err)
	}
	return models.CourtFromDB(row), nil
}

func (s *Service) CreateCourt(ctx context.Context, in CourtInput) (models.Court, error) {
	if err := s.check(in); err != nil {
		return models.Court{}, err
	}
	row, err := s.db.Queries.CreateCourt(ctx, dbgen.CreateCourtParams{
		Name:           strings.TrimSpace(in.Name),
		CourtType:      in.CourtType,
		SportType:      strings.TrimSpace(in.SportType),
		BasePriceCents: in.BasePrice,
		Status:         in.status(),
		Description:    optional(in.Description),
	})
	if err != nil {
		return models.Court{}, constraintErr("create court", err)
	}
	log.Ctx(ctx).Info().Int64("court_id", row.ID).Str("name", row.Name).Msg("Court created")
	return models.CourtFromDB(row), nil
}

func (s *Service) UpdateCourt(ctx context.Context, id int64, in CourtInput) (models.Court, error) {
	if err := s.check(in); err != nil {
		return models.Court{}, err
	}
	row, err := s.db.Queries.UpdateCourt(ctx, dbgen.UpdateCourtParams{
		Name:           strings.TrimSpace(in.Name),
		CourtType:      in.CourtType,
		SportType:      strings.TrimSpace(in.SportType),
		BasePriceCents: in.BasePrice,
		Status:         in.status(),
		Description:    optional(in.Description),
		ID:             id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Court{}, notFound("court", id)
		}
		return models.Court{}, constraintErr("update court", err)
	}
	log.Ctx(ctx).Info().Int64("court_id", id).Msg("Court updated")
	return models.CourtFromDB(row), nil
}

// DeleteCourt retires a court by marking it inactive. Reservation history
// keeps pointing at it, so the row itself is never removed. A court with
// upcoming pending or confirmed bookings cannot be retired.
func (s *Service) DeleteCourt(ctx context.Context, id int64) error {
	q := s.db.Queries
	if _, err := s.GetCourt(ctx, id); err != nil {
		return err
	}
	upcoming, err := q.CountUpcomingCourtReservations(ctx, dbgen.CountUpcomingCourtReservationsParams{
		CourtID:  id,
		Statuses: models.BlockingStatuses(),
		Now:      s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("count court reservations: %w", err)
	}
	if upcoming > 0 {
		return inUse("court", upcoming)
	}
	if _, err := q.SetCourtStatus(ctx, dbgen.SetCourtStatusParams{Status: models.CourtInactive, ID: id}); err != nil {
		return fmt.Errorf("retire court: %w", err)
	}
	log.Ctx(ctx).Info().Int64("court_id", id).Msg("Court retired")
	return nil
}

func optional(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

