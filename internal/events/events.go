// Package events publishes reservation lifecycle events for downstream
// consumers such as billing and notification workers.
package events

import (
	"context"
	"time"

	"github.com/codr1/courtbook/internal/models"
)

type Type string

const (
	ReservationCreated       Type = "reservation.created"
	ReservationCancelled     Type = "reservation.cancelled"
	ReservationStatusChanged Type = "reservation.status_changed"
	ReservationDeleted       Type = "reservation.deleted"
)

type ReservationEvent struct {
	Type           Type                     `json:"type"`
	ReservationID  int64                    `json:"reservationId"`
	CustomerID     string                   `json:"customerId"`
	CourtID        int64                    `json:"courtId"`
	CoachID        *int64                   `json:"coachId,omitempty"`
	Status         models.ReservationStatus `json:"status"`
	PreviousStatus models.ReservationStatus `json:"previousStatus,omitempty"`
	StartTime      time.Time                `json:"startTime"`
	EndTime        time.Time                `json:"endTime"`
	Total          int64                    `json:"total"`
	OccurredAt     time.Time                `json:"occurredAt"`
}

// NewReservationEvent snapshots r for publication.
func NewReservationEvent(typ Type, r models.Reservation, previous models.ReservationStatus, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:           typ,
		ReservationID:  r.ID,
		CustomerID:     r.CustomerID,
		CourtID:        r.CourtID,
		CoachID:        r.CoachID,
		Status:         r.Status,
		PreviousStatus: previous,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Total:          r.Pricing.Total,
		OccurredAt:     at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ReservationEvent) error { return nil }
