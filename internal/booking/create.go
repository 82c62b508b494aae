package booking

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/availability"
	appdb "github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/events"
	"github.com/codr1/courtbook/internal/inventory"
	"github.com/codr1/courtbook/internal/lock"
	"github.com/codr1/courtbook/internal/metrics"
	"github.com/codr1/courtbook/internal/models"
	"github.com/codr1/courtbook/internal/pricing"
)

const maxNotesLength = 500

type CreateRequest struct {
	CustomerID   string                 `json:"customerId" validate:"required,max=100"`
	CourtID      int64                  `json:"courtId" validate:"required,gt=0"`
	CoachID      *int64                 `json:"coachId,omitempty" validate:"omitempty,gt=0"`
	StartTime    time.Time              `json:"startTime" validate:"required"`
	EndTime      time.Time              `json:"endTime" validate:"required"`
	Equipment    []models.EquipmentLine `json:"equipment" validate:"dive"`
	Discount     int64                  `json:"discount" validate:"gte=0"`
	Notes        string                 `json:"notes" validate:"max=500"`
	ContactEmail string                 `json:"contactEmail,omitempty" validate:"omitempty,email"`
}

// Create validates and books a reservation. The court, coach and equipment
// checks, the price calculation, the insert and the stock decrements all run
// in one transaction while the affected resources are locked, so two
// requests for the same court can never both pass validation.
func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Reservation, error) {
	logger := log.Ctx(ctx)

	w, lines, err := s.validateCreate(req)
	if err != nil {
		return models.Reservation{}, rejected("create", err)
	}

	keys := []string{lock.CourtKey(req.CourtID)}
	if req.CoachID != nil {
		keys = append(keys, lock.CoachKey(*req.CoachID))
	}
	for _, line := range lines {
		keys = append(keys, lock.EquipmentKey(line.EquipmentID))
	}

	var created models.Reservation
	var court models.Court
	err = s.withLocks(ctx, keys, func() error {
		return s.db.RunInTx(ctx, func(tx *appdb.DB) error {
			q := tx.Queries

			courtRow, err := loadCourt(ctx, q, req.CourtID)
			if err != nil {
				return err
			}
			if courtRow.Status != models.CourtActive {
				return apperr.Newf(apperr.ResourceUnavailable, "court_inactive", "court %d is %s", courtRow.ID, courtRow.Status)
			}
			free, err := availability.IsAvailable(ctx, q, availability.KindCourt, courtRow.ID, w, models.BlockingStatuses(), 0)
			if err != nil {
				return err
			}
			if !free {
				return apperr.New(apperr.ResourceUnavailable, "court_unavailable", "Court is not available for the selected time slot")
			}

			var coachRate *pricing.CoachRate
			if req.CoachID != nil {
				coach, err := s.checkCoach(ctx, q, *req.CoachID, w, 0)
				if err != nil {
					return err
				}
				coachRate = &pricing.CoachRate{ID: coach.ID, HourlyRate: coach.HourlyRateCents}
			}

			charges, err := equipmentCharges(ctx, q, lines, w, 0)
			if err != nil {
				return err
			}

			breakdown, err := s.pricing.WithRules(pricing.NewStoreRules(q)).Calculate(ctx, pricing.Input{
				Court:     pricing.CourtRate{ID: courtRow.ID, SportType: courtRow.SportType, BasePrice: courtRow.BasePriceCents},
				Start:     w.Start,
				End:       w.End,
				Equipment: charges,
				Coach:     coachRate,
				Discount:  req.Discount,
			})
			if err != nil {
				return err
			}

			row, err := q.CreateReservation(ctx, dbgen.CreateReservationParams{
				CustomerID:           strings.TrimSpace(req.CustomerID),
				CourtID:              courtRow.ID,
				CoachID:              nullInt64(req.CoachID),
				StartTime:            w.Start,
				EndTime:              w.End,
				DurationHours:        breakdown.DurationHours,
				Status:               string(models.StatusConfirmed),
				PaymentStatus:        string(models.PaymentPending),
				BasePriceCents:       breakdown.BasePrice,
				PeakHourFeeCents:     breakdown.PeakHourFee,
				WeekendFeeCents:      breakdown.WeekendFee,
				SpecialEventFeeCents: breakdown.SpecialEventFee,
				EquipmentFeeCents:    breakdown.EquipmentFee,
				CoachFeeCents:        breakdown.CoachFee,
				DiscountCents:        breakdown.Discount,
				SubtotalCents:        breakdown.Subtotal,
				TaxCents:             breakdown.Tax,
				TotalCents:           breakdown.Total,
				Notes:                nullString(req.Notes),
				ContactEmail:         nullString(req.ContactEmail),
			})
			if err != nil {
				return err
			}

			lineRows := make([]dbgen.ReservationEquipment, 0, len(lines))
			for _, line := range lines {
				params := dbgen.AddReservationEquipmentParams{
					ReservationID: row.ID,
					EquipmentID:   line.EquipmentID,
					Quantity:      line.Quantity,
				}
				if err := q.AddReservationEquipment(ctx, params); err != nil {
					return err
				}
				lineRows = append(lineRows, dbgen.ReservationEquipment{
					ReservationID: row.ID,
					EquipmentID:   line.EquipmentID,
					Quantity:      line.Quantity,
				})
			}
			if err := inventory.Commit(ctx, q, lines); err != nil {
				return err
			}

			created = models.ReservationFromDB(row, lineRows)
			court = models.CourtFromDB(courtRow)
			return nil
		})
	})
	if err != nil {
		return models.Reservation{}, rejected("create", err)
	}

	metrics.RecordReservationCreated(created.Pricing.Total)
	logger.Info().
		Int64("reservation_id", created.ID).
		Int64("court_id", created.CourtID).
		Int64("total", created.Pricing.Total).
		Msg("Reservation created")

	s.publish(ctx, events.ReservationCreated, created, "")
	if s.notifier != nil {
		s.notifier.ReservationConfirmed(ctx, created, court)
	}
	return created, nil
}

func (s *Service) validateCreate(req CreateRequest) (availability.Window, []models.EquipmentLine, error) {
	if strings.TrimSpace(req.CustomerID) == "" {
		return availability.Window{}, nil, apperr.New(apperr.InvalidInput, "missing_customer", "customer id is required")
	}
	if req.CourtID <= 0 {
		return availability.Window{}, nil, apperr.New(apperr.InvalidInput, "invalid_court", "court id must be a positive integer")
	}
	if req.CoachID != nil && *req.CoachID <= 0 {
		return availability.Window{}, nil, apperr.New(apperr.InvalidInput, "invalid_coach", "coach id must be a positive integer")
	}
	if req.Discount < 0 {
		return availability.Window{}, nil, apperr.New(apperr.InvalidInput, "invalid_discount", "discount must not be negative")
	}
	if len(req.Notes) > maxNotesLength {
		return availability.Window{}, nil, apperr.Newf(apperr.InvalidInput, "notes_too_long", "notes must be %d characters or fewer", maxNotesLength)
	}

	w, err := s.validateWindow(req.StartTime, req.EndTime)
	if err != nil {
		return availability.Window{}, nil, err
	}
	if w.Start.Before(s.now()) {
		return availability.Window{}, nil, apperr.New(apperr.InvalidInput, "start_in_past", "Cannot book in the past")
	}

	lines, err := inventory.Normalize(req.Equipment)
	if err != nil {
		return availability.Window{}, nil, err
	}
	return w, lines, nil
}

// checkCoach verifies the coach's status, optionally their weekly hours, and
// that they have no overlapping booking.
func (s *Service) checkCoach(ctx context.Context, q *dbgen.Queries, coachID int64, w availability.Window, excludeID int64) (dbgen.Coach, error) {
	coach, err := loadCoach(ctx, q, coachID)
	if err != nil {
		return dbgen.Coach{}, err
	}
	if coach.Status != models.CoachAvailable {
		return dbgen.Coach{}, apperr.New(apperr.ResourceUnavailable, availability.ReasonCoachUnavailable, "Coach is not available")
	}
	if s.cfg.EnforceCoachHours {
		windows, err := q.ListCoachAvailability(ctx, coachID)
		if err != nil {
			return dbgen.Coach{}, err
		}
		if check, ok := availability.FitsWeeklyHours(windows, w, s.cfg.Location); !ok {
			return dbgen.Coach{}, apperr.New(apperr.ResourceUnavailable, check.Code, check.Reason)
		}
	}
	free, err := availability.IsAvailable(ctx, q, availability.KindCoach, coachID, w, models.BlockingStatuses(), excludeID)
	if err != nil {
		return dbgen.Coach{}, err
	}
	if !free {
		return dbgen.Coach{}, apperr.New(apperr.ResourceUnavailable, availability.ReasonAlreadyBooked, "Coach is not available for the selected time slot")
	}
	return coach, nil
}

// equipmentCharges runs the inventory check and returns the priced lines.
func equipmentCharges(ctx context.Context, q *dbgen.Queries, lines []models.EquipmentLine, w availability.Window, excludeID int64) ([]pricing.EquipmentCharge, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	result, err := inventory.Check(ctx, q, lines, w, excludeID)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	charges := make([]pricing.EquipmentCharge, 0, len(lines))
	for _, line := range lines {
		item, err := q.GetEquipment(ctx, line.EquipmentID)
		if err != nil {
			return nil, err
		}
		charges = append(charges, pricing.EquipmentCharge{
			EquipmentID: item.ID,
			RentalPrice: item.RentalPriceCents,
			Quantity:    line.Quantity,
		})
	}
	return charges, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
