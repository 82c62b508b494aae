package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/availability"
	appdb "github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/events"
	"github.com/codr1/courtbook/internal/inventory"
	"github.com/codr1/courtbook/internal/metrics"
	"github.com/codr1/courtbook/internal/models"
)

// transitions lists the statuses an administrator may move a reservation to.
var transitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCancelled, models.StatusCompleted, models.StatusNoShow},
	models.StatusCancelled: {models.StatusConfirmed},
}

func CanTransition(from, to models.ReservationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancel is the self-service cancellation. It refuses reservations that are
// not the actor's (unless the actor is an admin), that are already over or
// under way, and any closer to their start than the cancellation grace.
func (s *Service) Cancel(ctx context.Context, id int64, actor Actor) (models.Reservation, error) {
	var cancelled models.Reservation
	var previous models.ReservationStatus
	err := s.lockReservation(ctx, id, func() error {
		return s.db.RunInTx(ctx, func(tx *appdb.DB) error {
			q := tx.Queries
			row, lines, err := loadReservation(ctx, q, id)
			if err != nil {
				return err
			}
			if err := s.cancellable(row, actor); err != nil {
				return err
			}

			previous = models.ReservationStatus(row.Status)
			updated, err := s.markCancelled(ctx, q, row, lines, actor)
			if err != nil {
				return err
			}
			cancelled = models.ReservationFromDB(updated, lines)
			return nil
		})
	})
	if err != nil {
		return models.Reservation{}, rejected("cancel", err)
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", id).
		Str("cancelled_by", actor.ID).
		Msg("Reservation cancelled")
	s.afterCancel(ctx, cancelled, previous)
	return cancelled, nil
}

func (s *Service) cancellable(row dbgen.Reservation, actor Actor) error {
	if !actor.Admin && row.CustomerID != actor.ID {
		return apperr.New(apperr.PolicyViolation, "not_owner", "Not authorized to cancel this reservation")
	}
	switch models.ReservationStatus(row.Status) {
	case models.StatusCancelled:
		return apperr.New(apperr.PolicyViolation, "already_cancelled", "Reservation is already cancelled")
	case models.StatusCompleted, models.StatusNoShow:
		return apperr.Newf(apperr.PolicyViolation, "not_cancellable", "Cannot cancel a reservation that is %s", row.Status)
	}

	now := s.now()
	if !row.StartTime.After(now) {
		return apperr.New(apperr.PolicyViolation, "already_started", "Cannot cancel a reservation that has already started")
	}
	remaining := row.StartTime.Sub(now)
	if remaining < s.cfg.CancellationGrace {
		hours := roundHours(remaining.Hours())
		err := apperr.Newf(apperr.PolicyViolation, "cancellation_window",
			"Cannot cancel less than %g hours before start time (%.2f hours remaining)",
			s.cfg.CancellationGrace.Hours(), hours)
		err.HoursRemaining = &hours
		return err
	}
	return nil
}

// markCancelled stamps the cancellation and returns held equipment to stock.
func (s *Service) markCancelled(ctx context.Context, q *dbgen.Queries, row dbgen.Reservation, lines []dbgen.ReservationEquipment, actor Actor) (dbgen.Reservation, error) {
	updated, err := q.CancelReservation(ctx, dbgen.CancelReservationParams{
		CancelledAt: sql.NullTime{Time: s.now(), Valid: true},
		CancelledBy: nullString(actor.ID),
		ID:          row.ID,
	})
	if err != nil {
		return dbgen.Reservation{}, err
	}
	if models.ReservationStatus(row.Status).Blocking() {
		if err := inventory.Release(ctx, q, models.EquipmentLinesFromDB(lines)); err != nil {
			return dbgen.Reservation{}, err
		}
	}
	return updated, nil
}

func (s *Service) afterCancel(ctx context.Context, r models.Reservation, previous models.ReservationStatus) {
	metrics.RecordTransition(string(previous), string(models.StatusCancelled))
	s.publish(ctx, events.ReservationCancelled, r, previous)
	if s.notifier != nil {
		s.notifier.ReservationCancelled(ctx, r, s.courtForEvents(ctx, r.CourtID))
	}
}

// UpdateStatus is the administrative status correction. Entering cancelled
// releases held equipment; leaving cancelled for confirmed re-validates the
// court, coach and equipment and takes the recorded quantities again.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status models.ReservationStatus, actor Actor) (models.Reservation, error) {
	if !status.Valid() {
		return models.Reservation{}, rejected("update_status",
			apperr.Newf(apperr.InvalidInput, "invalid_status", "status %q is not valid", status))
	}

	var updated models.Reservation
	var previous models.ReservationStatus
	err := s.lockReservation(ctx, id, func() error {
		return s.db.RunInTx(ctx, func(tx *appdb.DB) error {
			q := tx.Queries
			row, lines, err := loadReservation(ctx, q, id)
			if err != nil {
				return err
			}
			previous = models.ReservationStatus(row.Status)
			if !CanTransition(previous, status) {
				return apperr.Newf(apperr.PolicyViolation, "invalid_transition",
					"cannot move a reservation from %s to %s", previous, status)
			}

			var next dbgen.Reservation
			switch {
			case status == models.StatusCancelled:
				next, err = s.markCancelled(ctx, q, row, lines, actor)
			case previous == models.StatusCancelled:
				next, err = s.reacquire(ctx, q, row, lines)
			default:
				next, err = q.UpdateReservationStatus(ctx, dbgen.UpdateReservationStatusParams{
					Status: string(status),
					ID:     id,
				})
			}
			if err != nil {
				return err
			}
			updated = models.ReservationFromDB(next, lines)
			return nil
		})
	})
	if err != nil {
		return models.Reservation{}, rejected("update_status", err)
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", id).
		Str("from", string(previous)).
		Str("to", string(status)).
		Str("actor", actor.ID).
		Msg("Reservation status updated")

	if status == models.StatusCancelled {
		s.afterCancel(ctx, updated, previous)
		return updated, nil
	}
	metrics.RecordTransition(string(previous), string(status))
	s.publish(ctx, events.ReservationStatusChanged, updated, previous)
	if previous == models.StatusCancelled && s.notifier != nil {
		s.notifier.ReservationConfirmed(ctx, updated, s.courtForEvents(ctx, updated.CourtID))
	}
	return updated, nil
}

// reacquire restores a cancelled reservation to confirmed. The reservation's
// own row no longer blocks anything, so the checks see the current state of
// its court, coach and equipment.
func (s *Service) reacquire(ctx context.Context, q *dbgen.Queries, row dbgen.Reservation, lines []dbgen.ReservationEquipment) (dbgen.Reservation, error) {
	w := availability.Window{Start: row.StartTime.UTC(), End: row.EndTime.UTC()}

	free, err := availability.IsAvailable(ctx, q, availability.KindCourt, row.CourtID, w, models.BlockingStatuses(), row.ID)
	if err != nil {
		return dbgen.Reservation{}, err
	}
	if !free {
		return dbgen.Reservation{}, apperr.New(apperr.ResourceUnavailable, "court_unavailable", "Court has been booked by another reservation")
	}
	if row.CoachID.Valid {
		free, err := availability.IsAvailable(ctx, q, availability.KindCoach, row.CoachID.Int64, w, models.BlockingStatuses(), row.ID)
		if err != nil {
			return dbgen.Reservation{}, err
		}
		if !free {
			return dbgen.Reservation{}, apperr.New(apperr.ResourceUnavailable, availability.ReasonAlreadyBooked, "Coach has been booked by another reservation")
		}
	}

	recorded := models.EquipmentLinesFromDB(lines)
	if len(recorded) > 0 {
		result, err := inventory.Check(ctx, q, recorded, w, row.ID)
		if err != nil {
			return dbgen.Reservation{}, err
		}
		if err := result.Err(); err != nil {
			return dbgen.Reservation{}, err
		}
	}

	restored, err := q.RestoreReservation(ctx, row.ID)
	if err != nil {
		return dbgen.Reservation{}, err
	}
	if err := inventory.Commit(ctx, q, recorded); err != nil {
		return dbgen.Reservation{}, err
	}
	return restored, nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) (models.Reservation, error) {
	if !status.Valid() {
		return models.Reservation{}, rejected("update_payment_status",
			apperr.Newf(apperr.InvalidInput, "invalid_payment_status", "payment status %q is not valid", status))
	}

	var updated models.Reservation
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		q := tx.Queries
		_, lines, err := loadReservation(ctx, q, id)
		if err != nil {
			return err
		}
		row, err := q.UpdateReservationPaymentStatus(ctx, dbgen.UpdateReservationPaymentStatusParams{
			PaymentStatus: string(status),
			ID:            id,
		})
		if err != nil {
			return err
		}
		updated = models.ReservationFromDB(row, lines)
		return nil
	})
	if err != nil {
		return models.Reservation{}, rejected("update_payment_status", err)
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", id).
		Str("payment_status", string(status)).
		Msg("Reservation payment status updated")
	return updated, nil
}

// Delete removes a reservation in any status, first returning equipment it
// still holds. It ignores the cancellation grace window.
func (s *Service) Delete(ctx context.Context, id int64, actor Actor) error {
	var deleted models.Reservation
	err := s.lockReservation(ctx, id, func() error {
		return s.db.RunInTx(ctx, func(tx *appdb.DB) error {
			q := tx.Queries
			row, lines, err := loadReservation(ctx, q, id)
			if err != nil {
				return err
			}
			if models.ReservationStatus(row.Status) != models.StatusCancelled {
				if err := inventory.Release(ctx, q, models.EquipmentLinesFromDB(lines)); err != nil {
					return err
				}
			}
			affected, err := q.DeleteReservation(ctx, id)
			if err != nil {
				return err
			}
			if affected == 0 {
				return apperr.Newf(apperr.NotFound, "reservation_not_found", "reservation %d not found", id)
			}
			deleted = models.ReservationFromDB(row, lines)
			return nil
		})
	})
	if err != nil {
		return rejected("delete", err)
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", id).
		Str("actor", actor.ID).
		Msg("Reservation deleted")
	s.publish(ctx, events.ReservationDeleted, deleted, deleted.Status)
	return nil
}

// CompleteEnded marks confirmed reservations that ended at or before cutoff
// as completed, at most limit per call. It returns how many were updated.
func (s *Service) CompleteEnded(ctx context.Context, cutoff time.Time, limit int64) (int, error) {
	rows, err := s.db.Queries.ListReservationsEndedBefore(ctx, dbgen.ListReservationsEndedBeforeParams{
		Cutoff:  cutoff.UTC().Truncate(time.Second),
		MaxRows: limit,
	})
	if err != nil {
		return 0, fmt.Errorf("list ended reservations: %w", err)
	}

	completed := 0
	for _, row := range rows {
		updated, err := s.UpdateStatus(ctx, row.ID, models.StatusCompleted, Actor{ID: "system", Admin: true})
		if err != nil {
			if apperr.IsKind(err, apperr.PolicyViolation) || apperr.IsKind(err, apperr.NotFound) {
				// Changed or removed since it was listed.
				continue
			}
			return completed, err
		}
		if updated.Status == models.StatusCompleted {
			completed++
		}
	}
	return completed, nil
}
