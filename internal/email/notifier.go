package email

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/metrics"
	"github.com/codr1/courtbook/internal/models"
)

const reservationEmailTimeout = 5 * time.Second

// Notifier emails the reservation's contact address about confirmations and
// cancellations. Sends are asynchronous and failures are only logged; Close
// waits for sends still in flight.
type Notifier struct {
	sender       EmailSender
	facilityName string
	loc          *time.Location
	inFlight     sync.WaitGroup
}

func NewNotifier(sender EmailSender, facilityName string, loc *time.Location) *Notifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{sender: sender, facilityName: facilityName, loc: loc}
}

func (n *Notifier) ReservationConfirmed(ctx context.Context, r models.Reservation, court models.Court) {
	if n == nil {
		return
	}
	n.send(ctx, "confirmation", r, BuildConfirmation(n.details(r, court)))
}

func (n *Notifier) ReservationCancelled(ctx context.Context, r models.Reservation, court models.Court) {
	if n == nil {
		return
	}
	details := n.details(r, court)
	if r.CancelledBy != "" && r.CancelledBy != r.CustomerID {
		details.Reason = "Cancelled by the facility"
	}
	n.send(ctx, "cancellation", r, BuildCancellation(details))
}

func (n *Notifier) details(r models.Reservation, court models.Court) ReservationDetails {
	date, timeRange := FormatDateTimeRange(r.StartTime.In(n.loc), r.EndTime.In(n.loc))
	var units int64
	for _, line := range r.Equipment {
		units += line.Quantity
	}
	return ReservationDetails{
		FacilityName:  n.facilityName,
		ReservationID: r.ID,
		CourtName:     court.Name,
		Date:          date,
		TimeRange:     timeRange,
		Coach:         r.CoachID != nil,
		Equipment:     units,
		Total:         FormatPriceCents(r.Pricing.Total),
	}
}

func (n *Notifier) send(ctx context.Context, kind string, r models.Reservation, message Message) {
	if n.sender == nil {
		return
	}
	recipient := strings.TrimSpace(r.ContactEmail)
	if recipient == "" {
		return
	}
	logger := log.Ctx(ctx)

	n.inFlight.Add(1)
	go func() {
		defer n.inFlight.Done()
		sendCtx, cancel := newEmailContext(ctx, reservationEmailTimeout)
		defer cancel()
		if err := n.sender.Send(sendCtx, recipient, message.Subject, message.Body); err != nil {
			metrics.RecordEmail(kind, "failed")
			logger.Error().Err(err).Int64("reservation_id", r.ID).Str("type", kind).Msg("Failed to send reservation email")
			return
		}
		metrics.RecordEmail(kind, "sent")
	}()
}

// Close blocks until every queued email has been sent or has timed out. Call
// it after the HTTP server has stopped accepting requests.
func (n *Notifier) Close() error {
	if n == nil {
		return nil
	}
	n.inFlight.Wait()
	return nil
}
