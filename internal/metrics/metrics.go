package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtbook_reservations_created_total",
			Help: "Total number of reservations created",
		},
	)

	// Labelled by error kind, e.g. resource_unavailable or inventory_shortage.
	ReservationRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_reservation_rejections_total",
			Help: "Total number of rejected reservation operations",
		},
		[]string{"operation", "kind"},
	)

	ReservationTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_reservation_transitions_total",
			Help: "Total number of reservation status transitions",
		},
		[]string{"from", "to"},
	)

	ReservationRevenueCents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtbook_reservation_revenue_cents_total",
			Help: "Sum of reservation totals at creation, in cents",
		},
	)

	LockWaitSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "courtbook_lock_wait_seconds",
			Help:    "Time spent acquiring resource locks",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_events_published_total",
			Help: "Total number of reservation events published",
		},
		[]string{"type", "status"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtbook_rate_limited_requests_total",
			Help: "Total number of requests refused by the write limiter",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservationCreated(totalCents int64) {
	ReservationsCreatedTotal.Inc()
	ReservationRevenueCents.Add(float64(totalCents))
}

func RecordRejection(operation, kind string) {
	ReservationRejectionsTotal.WithLabelValues(operation, kind).Inc()
}

func RecordTransition(from, to string) {
	ReservationTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordLockWait(seconds float64) {
	LockWaitSeconds.Observe(seconds)
}

func RecordEvent(eventType, status string) {
	EventsPublishedTotal.WithLabelValues(eventType, status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordRateLimited() {
	RateLimitedTotal.Inc()
}
