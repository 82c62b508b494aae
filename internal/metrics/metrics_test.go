package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/api/v1/reservations", "201", 0.02)
	RecordHTTPRequest("POST", "/api/v1/reservations", "201", 0.03)
	RecordHTTPRequest("POST", "/api/v1/reservations", "409", 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/reservations", "201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/reservations", "409")))
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordReservationCreated(t *testing.T) {
	before := testutil.ToFloat64(ReservationsCreatedTotal)
	revenue := testutil.ToFloat64(ReservationRevenueCents)

	RecordReservationCreated(5720)

	assert.Equal(t, before+1, testutil.ToFloat64(ReservationsCreatedTotal))
	assert.Equal(t, revenue+5720, testutil.ToFloat64(ReservationRevenueCents))
}

func TestRecordRejectionAndTransition(t *testing.T) {
	ReservationRejectionsTotal.Reset()
	ReservationTransitionsTotal.Reset()

	RecordRejection("create", "inventory_shortage")
	RecordRejection("create", "inventory_shortage")
	RecordTransition("confirmed", "cancelled")

	assert.Equal(t, float64(2), testutil.ToFloat64(ReservationRejectionsTotal.WithLabelValues("create", "inventory_shortage")))
	assert.Equal(t, float64(1), testutil.ToFloat64(ReservationTransitionsTotal.WithLabelValues("confirmed", "cancelled")))
}

func TestRecordEventAndEmail(t *testing.T) {
	EventsPublishedTotal.Reset()
	EmailsSentTotal.Reset()

	RecordEvent("reservation.created", "ok")
	RecordEmail("confirmation", "failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(EventsPublishedTotal.WithLabelValues("reservation.created", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("confirmation", "failed")))
}
