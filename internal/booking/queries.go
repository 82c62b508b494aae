package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/availability"
	"github.com/codr1/courtbook/internal/inventory"
	"github.com/codr1/courtbook/internal/models"
	"github.com/codr1/courtbook/internal/pricing"
)

// The read paths in this file take no locks. Their answers can be stale by
// the time a caller acts on them; Create re-checks everything.

func (s *Service) Get(ctx context.Context, id int64) (models.Reservation, error) {
	row, lines, err := loadReservation(ctx, s.db.Queries, id)
	if err != nil {
		return models.Reservation{}, err
	}
	return models.ReservationFromDB(row, lines), nil
}

// ListForCustomer returns a customer's reservations, most recent start first.
func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]models.Reservation, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, apperr.New(apperr.InvalidInput, "missing_customer", "customer id is required")
	}

	rows, err := s.db.Queries.ListReservationsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list reservations for customer: %w", err)
	}
	reservations := make([]models.Reservation, 0, len(rows))
	for _, row := range rows {
		lines, err := s.db.Queries.ListReservationEquipment(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("load reservation %d equipment: %w", row.ID, err)
		}
		reservations = append(reservations, models.ReservationFromDB(row, lines))
	}
	return reservations, nil
}

// CheckAvailability lists the bookable slots of durationHours on the court
// for the given facility-local date.
func (s *Service) CheckAvailability(ctx context.Context, courtID int64, date time.Time, durationHours float64) ([]availability.Slot, error) {
	if durationHours < s.cfg.MinDurationHours || durationHours > s.cfg.MaxDurationHours {
		return nil, apperr.Newf(apperr.InvalidInput, "invalid_duration",
			"duration must be between %g and %g hours", s.cfg.MinDurationHours, s.cfg.MaxDurationHours)
	}
	if _, err := loadCourt(ctx, s.db.Queries, courtID); err != nil {
		return nil, err
	}
	return availability.GenerateSlots(ctx, s.db.Queries, s.cfg.Hours, s.cfg.Location, courtID, date, durationHours)
}

// CheckCoachAvailability answers whether the coach could take the window:
// status, weekly hours and existing bookings, with the first failing reason.
func (s *Service) CheckCoachAvailability(ctx context.Context, coachID int64, start, end time.Time) (availability.CoachCheck, error) {
	w, err := availability.NewWindow(start, end)
	if err != nil {
		return availability.CoachCheck{}, err
	}
	return availability.CheckCoach(ctx, s.db.Queries, coachID, w, s.cfg.Location, 0)
}

// AvailableCoaches returns the coaches who teach the court's sport and are
// free for the whole window.
func (s *Service) AvailableCoaches(ctx context.Context, courtID int64, start, end time.Time) ([]models.Coach, error) {
	w, err := availability.NewWindow(start, end)
	if err != nil {
		return nil, err
	}
	q := s.db.Queries
	court, err := loadCourt(ctx, q, courtID)
	if err != nil {
		return nil, err
	}

	candidates, err := q.ListAvailableCoachesForSport(ctx, court.SportType)
	if err != nil {
		return nil, fmt.Errorf("list coaches for sport: %w", err)
	}

	coaches := []models.Coach{}
	for _, coach := range candidates {
		windows, err := q.ListCoachAvailability(ctx, coach.ID)
		if err != nil {
			return nil, fmt.Errorf("load coach %d availability: %w", coach.ID, err)
		}
		if _, ok := availability.FitsWeeklyHours(windows, w, s.cfg.Location); !ok {
			continue
		}
		free, err := availability.IsAvailable(ctx, q, availability.KindCoach, coach.ID, w, models.BlockingStatuses(), 0)
		if err != nil {
			return nil, err
		}
		if !free {
			continue
		}
		sports, err := q.ListCoachSports(ctx, coach.ID)
		if err != nil {
			return nil, fmt.Errorf("load coach %d sports: %w", coach.ID, err)
		}
		coaches = append(coaches, models.CoachFromDB(coach, sports, windows))
	}
	return coaches, nil
}

type QuoteRequest struct {
	CourtID   int64                  `json:"courtId" validate:"required,gt=0"`
	CoachID   *int64                 `json:"coachId,omitempty" validate:"omitempty,gt=0"`
	StartTime time.Time              `json:"startTime" validate:"required"`
	EndTime   time.Time              `json:"endTime" validate:"required"`
	Equipment []models.EquipmentLine `json:"equipment" validate:"dive"`
	Discount  int64                  `json:"discount" validate:"gte=0"`
}

// Quote prices a window exactly as Create would, without checking whether
// the court, coach or equipment is free.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (models.PriceBreakdown, error) {
	if req.Discount < 0 {
		return models.PriceBreakdown{}, apperr.New(apperr.InvalidInput, "invalid_discount", "discount must not be negative")
	}
	w, err := s.validateWindow(req.StartTime, req.EndTime)
	if err != nil {
		return models.PriceBreakdown{}, err
	}
	lines, err := inventory.Normalize(req.Equipment)
	if err != nil {
		return models.PriceBreakdown{}, err
	}

	q := s.db.Queries
	court, err := loadCourt(ctx, q, req.CourtID)
	if err != nil {
		return models.PriceBreakdown{}, err
	}

	in := pricing.Input{
		Court:    pricing.CourtRate{ID: court.ID, SportType: court.SportType, BasePrice: court.BasePriceCents},
		Start:    w.Start,
		End:      w.End,
		Discount: req.Discount,
	}
	if req.CoachID != nil {
		coach, err := loadCoach(ctx, q, *req.CoachID)
		if err != nil {
			return models.PriceBreakdown{}, err
		}
		in.Coach = &pricing.CoachRate{ID: coach.ID, HourlyRate: coach.HourlyRateCents}
	}
	for _, line := range lines {
		item, err := q.GetEquipment(ctx, line.EquipmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.PriceBreakdown{}, apperr.Newf(apperr.NotFound, "equipment_not_found", "equipment %d not found", line.EquipmentID)
			}
			return models.PriceBreakdown{}, fmt.Errorf("load equipment %d: %w", line.EquipmentID, err)
		}
		in.Equipment = append(in.Equipment, pricing.EquipmentCharge{
			EquipmentID: item.ID,
			RentalPrice: item.RentalPriceCents,
			Quantity:    line.Quantity,
		})
	}

	return s.pricing.Calculate(ctx, in)
}

// EquipmentPreview lists equipment free for the window, optionally of one type.
func (s *Service) EquipmentPreview(ctx context.Context, start, end time.Time, equipmentType string) (inventory.Preview, error) {
	w, err := availability.NewWindow(start, end)
	if err != nil {
		return inventory.Preview{}, err
	}
	if equipmentType != "" && !models.ValidEquipmentType(equipmentType) {
		return inventory.Preview{}, apperr.Newf(apperr.InvalidInput, "invalid_equipment_type", "equipment type %q is not supported", equipmentType)
	}
	return inventory.BuildPreview(ctx, s.db.Queries, w, equipmentType)
}
