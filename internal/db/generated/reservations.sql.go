// Hand-maintained in sqlc's output shape. Keep in sync with
// internal/db/queries/reservations.sql; do not regenerate over it.

package dbgen

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

const reservationColumns = `id, customer_id, court_id, coach_id, start_time, end_time, duration_hours, status, payment_status, base_price_cents, peak_hour_fee_cents, weekend_fee_cents, special_event_fee_cents, equipment_fee_cents, coach_fee_cents, discount_cents, subtotal_cents, tax_cents, total_cents, notes, contact_email, cancelled_at, cancelled_by, created_at, updated_at`

const addReservationEquipment = `-- name: AddReservationEquipment :exec
INSERT INTO reservation_equipment (reservation_id, equipment_id, quantity) VALUES (?, ?, ?)
`

type AddReservationEquipmentParams struct {
	ReservationID int64
	EquipmentID   int64
	Quantity      int64
}

func (q *Queries) AddReservationEquipment(ctx context.Context, arg AddReservationEquipmentParams) error {
	_, err := q.db.ExecContext(ctx, addReservationEquipment, arg.ReservationID, arg.EquipmentID, arg.Quantity)
	return err
}

const cancelReservation = `-- name: CancelReservation :one
UPDATE reservations
SET status = 'cancelled',
    cancelled_at = ?,
    cancelled_by = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING ` + reservationColumns + `
`

type CancelReservationParams struct {
	CancelledAt sql.NullTime
	CancelledBy sql.NullString
	ID          int64
}

func (q *Queries) CancelReservation(ctx context.Context, arg CancelReservationParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, cancelReservation, arg.CancelledAt, arg.CancelledBy, arg.ID)
	return scanReservation(row)
}

const countOverlappingReservations = `-- name: CountOverlappingReservations :one
SELECT COUNT(*) FROM reservations
WHERE (
        (? = 'court' AND court_id = ?)
     OR (? = 'coach' AND coach_id = ?)
    )
  AND status IN (/*SLICE:statuses*/?)
  AND start_time < ?
  AND end_time > ?
  AND id != ?
`

type CountOverlappingReservationsParams struct {
	ResourceKind string
	ResourceID   int64
	Statuses     []string
	WindowEnd    time.Time
	WindowStart  time.Time
	ExcludeID    int64
}

// The resource column is chosen by kind so courts and coaches share one
// overlap predicate.
func (q *Queries) CountOverlappingReservations(ctx context.Context, arg CountOverlappingReservationsParams) (int64, error) {
	query := countOverlappingReservations
	var queryParams []interface{}
	queryParams = append(queryParams,
		arg.ResourceKind,
		arg.ResourceID,
		arg.ResourceKind,
		arg.ResourceID,
	)
	if len(arg.Statuses) > 0 {
		for _, v := range arg.Statuses {
			queryParams = append(queryParams, v)
		}
		query = strings.Replace(query, "/*SLICE:statuses*/?", strings.Repeat(",?", len(arg.Statuses))[1:], 1)
	} else {
		query = strings.Replace(query, "/*SLICE:statuses*/?", "NULL", 1)
	}
	queryParams = append(queryParams, arg.WindowEnd, arg.WindowStart, arg.ExcludeID)
	row := q.db.QueryRowContext(ctx, query, queryParams...)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countUpcomingCoachReservations = `-- name: CountUpcomingCoachReservations :one
SELECT COUNT(*) FROM reservations
WHERE coach_id = ?
  AND status IN (/*SLICE:statuses*/?)
  AND end_time > ?
`

type CountUpcomingCoachReservationsParams struct {
	CoachID  int64
	Statuses []string
	Now      time.Time
}

func (q *Queries) CountUpcomingCoachReservations(ctx context.Context, arg CountUpcomingCoachReservationsParams) (int64, error) {
	query := countUpcomingCoachReservations
	var queryParams []interface{}
	queryParams = append(queryParams, arg.CoachID)
	if len(arg.Statuses) > 0 {
		for _, v := range arg.Statuses {
			queryParams = append(queryParams, v)
		}
		query = strings.Replace(query, "/*SLICE:statuses*/?", strings.Repeat(",?", len(arg.Statuses))[1:], 1)
	} else {
		query = strings.Replace(query, "/*SLICE:statuses*/?", "NULL", 1)
	}
	queryParams = append(queryParams, arg.Now)
	row := q.db.QueryRowContext(ctx, query, queryParams...)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countUpcomingCourtReservations = `-- name: CountUpcomingCourtReservations :one
SELECT COUNT(*) FROM reservations
WHERE court_id = ?
  AND status IN (/*SLICE:statuses*/?)
  AND end_time > ?
`

type CountUpcomingCourtReservationsParams struct {
	CourtID  int64
	Statuses []string
	Now      time.Time
}

func (q *Queries) CountUpcomingCourtReservations(ctx context.Context, arg CountUpcomingCourtReservationsParams) (int64, error) {
	query := countUpcomingCourtReservations
	var queryParams []interface{}
	queryParams = append(queryParams, arg.CourtID)
	if len(arg.Statuses) > 0 {
		for _, v := range arg.Statuses {
			queryParams = append(queryParams, v)
		}
		query = strings.Replace(query, "/*SLICE:statuses*/?", strings.Repeat(",?", len(arg.Statuses))[1:], 1)
	} else {
		query = strings.Replace(query, "/*SLICE:statuses*/?", "NULL", 1)
	}
	queryParams = append(queryParams, arg.Now)
	row := q.db.QueryRowContext(ctx, query, queryParams...)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createReservation = `-- name: CreateReservation :one
INSERT INTO reservations (
    customer_id, court_id, coach_id, start_time, end_time, duration_hours, status, payment_status,
    base_price_cents, peak_hour_fee_cents, weekend_fee_cents, special_event_fee_cents,
    equipment_fee_cents, coach_fee_cents, discount_cents, subtotal_cents, tax_cents, total_cents,
    notes, contact_email
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + reservationColumns + `
`

type CreateReservationParams struct {
	CustomerID           string
	CourtID              int64
	CoachID              sql.NullInt64
	StartTime            time.Time
	EndTime              time.Time
	DurationHours        float64
	Status               string
	PaymentStatus        string
	BasePriceCents       int64
	PeakHourFeeCents     int64
	WeekendFeeCents      int64
	SpecialEventFeeCents int64
	EquipmentFeeCents    int64
	CoachFeeCents        int64
	DiscountCents        int64
	SubtotalCents        int64
	TaxCents             int64
	TotalCents           int64
	Notes                sql.NullString
	ContactEmail         sql.NullString
}

func (q *Queries) CreateReservation(ctx context.Context, arg CreateReservationParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, createReservation,
		arg.CustomerID,
		arg.CourtID,
		arg.CoachID,
		arg.StartTime,
		arg.EndTime,
		arg.DurationHours,
		arg.Status,
		arg.PaymentStatus,
		arg.BasePriceCents,
		arg.PeakHourFeeCents,
		arg.WeekendFeeCents,
		arg.SpecialEventFeeCents,
		arg.EquipmentFeeCents,
		arg.CoachFeeCents,
		arg.DiscountCents,
		arg.SubtotalCents,
		arg.TaxCents,
		arg.TotalCents,
		arg.Notes,
		arg.ContactEmail,
	)
	return scanReservation(row)
}

const deleteReservation = `-- name: DeleteReservation :execrows
DELETE FROM reservations WHERE id = ?
`

func (q *Queries) DeleteReservation(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteReservation, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getReservation = `-- name: GetReservation :one
SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?
`

func (q *Queries) GetReservation(ctx context.Context, id int64) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, getReservation, id)
	return scanReservation(row)
}

const listOverlappingEquipmentUsage = `-- name: ListOverlappingEquipmentUsage :many
SELECT re.equipment_id, CAST(SUM(re.quantity) AS INTEGER) AS booked_quantity
FROM reservation_equipment re
JOIN reservations r ON r.id = re.reservation_id
WHERE r.status IN (/*SLICE:statuses*/?)
  AND r.start_time < ?
  AND r.end_time > ?
GROUP BY re.equipment_id
ORDER BY re.equipment_id
`

type ListOverlappingEquipmentUsageParams struct {
	Statuses    []string
	WindowEnd   time.Time
	WindowStart time.Time
}

type ListOverlappingEquipmentUsageRow struct {
	EquipmentID    int64
	BookedQuantity int64
}

func (q *Queries) ListOverlappingEquipmentUsage(ctx context.Context, arg ListOverlappingEquipmentUsageParams) ([]ListOverlappingEquipmentUsageRow, error) {
	query := listOverlappingEquipmentUsage
	var queryParams []interface{}
	if len(arg.Statuses) > 0 {
		for _, v := range arg.Statuses {
			queryParams = append(queryParams, v)
		}
		query = strings.Replace(query, "/*SLICE:statuses*/?", strings.Repeat(",?", len(arg.Statuses))[1:], 1)
	} else {
		query = strings.Replace(query, "/*SLICE:statuses*/?", "NULL", 1)
	}
	queryParams = append(queryParams, arg.WindowEnd, arg.WindowStart)
	rows, err := q.db.QueryContext(ctx, query, queryParams...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListOverlappingEquipmentUsageRow
	for rows.Next() {
		var i ListOverlappingEquipmentUsageRow
		if err := rows.Scan(&i.EquipmentID, &i.BookedQuantity); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReservationEquipment = `-- name: ListReservationEquipment :many
SELECT reservation_id, equipment_id, quantity FROM reservation_equipment
WHERE reservation_id = ?
ORDER BY equipment_id
`

func (q *Queries) ListReservationEquipment(ctx context.Context, reservationID int64) ([]ReservationEquipment, error) {
	rows, err := q.db.QueryContext(ctx, listReservationEquipment, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ReservationEquipment
	for rows.Next() {
		var i ReservationEquipment
		if err := rows.Scan(&i.ReservationID, &i.EquipmentID, &i.Quantity); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReservationsByCustomer = `-- name: ListReservationsByCustomer :many
SELECT ` + reservationColumns + ` FROM reservations
WHERE customer_id = ?
ORDER BY start_time DESC, id DESC
`

func (q *Queries) ListReservationsByCustomer(ctx context.Context, customerID string) ([]Reservation, error) {
	rows, err := q.db.QueryContext(ctx, listReservationsByCustomer, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservationRows(rows)
}

const listReservationsEndedBefore = `-- name: ListReservationsEndedBefore :many
SELECT ` + reservationColumns + ` FROM reservations
WHERE status = 'confirmed'
  AND end_time <= ?
ORDER BY end_time, id
LIMIT ?
`

type ListReservationsEndedBeforeParams struct {
	Cutoff  time.Time
	MaxRows int64
}

func (q *Queries) ListReservationsEndedBefore(ctx context.Context, arg ListReservationsEndedBeforeParams) ([]Reservation, error) {
	rows, err := q.db.QueryContext(ctx, listReservationsEndedBefore, arg.Cutoff, arg.MaxRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservationRows(rows)
}

const restoreReservation = `-- name: RestoreReservation :one
UPDATE reservations
SET status = 'confirmed',
    cancelled_at = NULL,
    cancelled_by = NULL,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND status = 'cancelled'
RETURNING ` + reservationColumns + `
`

func (q *Queries) RestoreReservation(ctx context.Context, id int64) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, restoreReservation, id)
	return scanReservation(row)
}

const sumOverlappingEquipmentQuantity = `-- name: SumOverlappingEquipmentQuantity :one
SELECT CAST(COALESCE(SUM(re.quantity), 0) AS INTEGER) FROM reservation_equipment re
JOIN reservations r ON r.id = re.reservation_id
WHERE re.equipment_id = ?
  AND r.status IN (/*SLICE:statuses*/?)
  AND r.start_time < ?
  AND r.end_time > ?
  AND r.id != ?
`

type SumOverlappingEquipmentQuantityParams struct {
	EquipmentID int64
	Statuses    []string
	WindowEnd   time.Time
	WindowStart time.Time
	ExcludeID   int64
}

func (q *Queries) SumOverlappingEquipmentQuantity(ctx context.Context, arg SumOverlappingEquipmentQuantityParams) (int64, error) {
	query := sumOverlappingEquipmentQuantity
	var queryParams []interface{}
	queryParams = append(queryParams, arg.EquipmentID)
	if len(arg.Statuses) > 0 {
		for _, v := range arg.Statuses {
			queryParams = append(queryParams, v)
		}
		query = strings.Replace(query, "/*SLICE:statuses*/?", strings.Repeat(",?", len(arg.Statuses))[1:], 1)
	} else {
		query = strings.Replace(query, "/*SLICE:statuses*/?", "NULL", 1)
	}
	queryParams = append(queryParams, arg.WindowEnd, arg.WindowStart, arg.ExcludeID)
	row := q.db.QueryRowContext(ctx, query, queryParams...)
	var column_1 int64
	err := row.Scan(&column_1)
	return column_1, err
}

const updateReservationPaymentStatus = `-- name: UpdateReservationPaymentStatus :one
UPDATE reservations
SET payment_status = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING ` + reservationColumns + `
`

type UpdateReservationPaymentStatusParams struct {
	PaymentStatus string
	ID            int64
}

func (q *Queries) UpdateReservationPaymentStatus(ctx context.Context, arg UpdateReservationPaymentStatusParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, updateReservationPaymentStatus, arg.PaymentStatus, arg.ID)
	return scanReservation(row)
}

const updateReservationStatus = `-- name: UpdateReservationStatus :one
UPDATE reservations
SET status = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING ` + reservationColumns + `
`

type UpdateReservationStatusParams struct {
	Status string
	ID     int64
}

func (q *Queries) UpdateReservationStatus(ctx context.Context, arg UpdateReservationStatusParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, updateReservationStatus, arg.Status, arg.ID)
	return scanReservation(row)
}

func scanReservationRows(rows *sql.Rows) ([]Reservation, error) {
	var items []Reservation
	for rows.Next() {
		i, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanReservation(row rowScanner) (Reservation, error) {
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.CourtID,
		&i.CoachID,
		&i.StartTime,
		&i.EndTime,
		&i.DurationHours,
		&i.Status,
		&i.PaymentStatus,
		&i.BasePriceCents,
		&i.PeakHourFeeCents,
		&i.WeekendFeeCents,
		&i.SpecialEventFeeCents,
		&i.EquipmentFeeCents,
		&i.CoachFeeCents,
		&i.DiscountCents,
		&i.SubtotalCents,
		&i.TaxCents,
		&i.TotalCents,
		&i.Notes,
		&i.ContactEmail,
		&i.CancelledAt,
		&i.CancelledBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
