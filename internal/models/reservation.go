// internal/models/reservation.go
package models

import (
	"time"

	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusNoShow    ReservationStatus = "no_show"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Blocking reports whether a reservation in this status occupies its court,
// coach and equipment.
func (s ReservationStatus) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// BlockingStatuses returns the statuses counted by overlap and inventory checks.
func BlockingStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// EquipmentLine is one rented item on a reservation.
type EquipmentLine struct {
	EquipmentID int64 `json:"equipmentId" validate:"gt=0"`
	Quantity    int64 `json:"quantity" validate:"gt=0"`
}

// PriceBreakdown is an itemised price in minor currency units.
type PriceBreakdown struct {
	BasePrice       int64   `json:"basePrice"`
	PeakHourFee     int64   `json:"peakHourFee"`
	WeekendFee      int64   `json:"weekendFee"`
	SpecialEventFee int64   `json:"specialEventFee"`
	EquipmentFee    int64   `json:"equipmentFee"`
	CoachFee        int64   `json:"coachFee"`
	Discount        int64   `json:"discount"`
	Subtotal        int64   `json:"subtotal"`
	Tax             int64   `json:"tax"`
	Total           int64   `json:"total"`
	DurationHours   float64 `json:"durationHours"`
}

type Reservation struct {
	ID            int64             `json:"id"`
	CustomerID    string            `json:"customerId"`
	CourtID       int64             `json:"courtId"`
	CoachID       *int64            `json:"coachId,omitempty"`
	StartTime     time.Time         `json:"startTime"`
	EndTime       time.Time         `json:"endTime"`
	DurationHours float64           `json:"durationHours"`
	Status        ReservationStatus `json:"status"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	Equipment     []EquipmentLine   `json:"equipment"`
	Pricing       PriceBreakdown    `json:"pricing"`
	Notes         string            `json:"notes,omitempty"`
	ContactEmail  string            `json:"contactEmail,omitempty"`
	CancelledAt   *time.Time        `json:"cancelledAt,omitempty"`
	CancelledBy   string            `json:"cancelledBy,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func ReservationFromDB(row dbgen.Reservation, lines []dbgen.ReservationEquipment) Reservation {
	r := Reservation{
		ID:            row.ID,
		CustomerID:    row.CustomerID,
		CourtID:       row.CourtID,
		StartTime:     row.StartTime.UTC(),
		EndTime:       row.EndTime.UTC(),
		DurationHours: row.DurationHours,
		Status:        ReservationStatus(row.Status),
		PaymentStatus: PaymentStatus(row.PaymentStatus),
		Equipment:     EquipmentLinesFromDB(lines),
		Pricing: PriceBreakdown{
			BasePrice:       row.BasePriceCents,
			PeakHourFee:     row.PeakHourFeeCents,
			WeekendFee:      row.WeekendFeeCents,
			SpecialEventFee: row.SpecialEventFeeCents,
			EquipmentFee:    row.EquipmentFeeCents,
			CoachFee:        row.CoachFeeCents,
			Discount:        row.DiscountCents,
			Subtotal:        row.SubtotalCents,
			Tax:             row.TaxCents,
			Total:           row.TotalCents,
			DurationHours:   row.DurationHours,
		},
		Notes:        row.Notes.String,
		ContactEmail: row.ContactEmail.String,
		CancelledBy:  row.CancelledBy.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.CoachID.Valid {
		coachID := row.CoachID.Int64
		r.CoachID = &coachID
	}
	if row.CancelledAt.Valid {
		cancelledAt := row.CancelledAt.Time.UTC()
		r.CancelledAt = &cancelledAt
	}
	return r
}

func EquipmentLinesFromDB(rows []dbgen.ReservationEquipment) []EquipmentLine {
	lines := make([]EquipmentLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, EquipmentLine{EquipmentID: row.EquipmentID, Quantity: row.Quantity})
	}
	return lines
}
