package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/courtbook/internal/apperr"
	appdb "github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/events"
	"github.com/codr1/courtbook/internal/models"
	"github.com/codr1/courtbook/internal/pricing"
	"github.com/codr1/courtbook/internal/testutil"
)

// Friday 13 June 2025, 09:00 UTC.
var now = time.Date(2025, time.June, 13, 9, 0, 0, 0, time.UTC)

// Saturday 14 June 2025, 10:00 UTC.
var saturday = time.Date(2025, time.June, 14, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ReservationEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	var types []events.Type
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type recordingNotifier struct {
	confirmed []int64
	cancelled []int64
}

func (n *recordingNotifier) ReservationConfirmed(_ context.Context, r models.Reservation, _ models.Court) {
	n.confirmed = append(n.confirmed, r.ID)
}

func (n *recordingNotifier) ReservationCancelled(_ context.Context, r models.Reservation, _ models.Court) {
	n.cancelled = append(n.cancelled, r.ID)
}

type fixture struct {
	db        *appdb.DB
	svc       *Service
	publisher *recordingPublisher
	notifier  *recordingNotifier
	court     dbgen.Court
}

func newFixture(t *testing.T, cfg Config) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	publisher := &recordingPublisher{}
	notifier := &recordingNotifier{}
	svc := NewService(database, cfg,
		WithClock(fixedClock{now}),
		WithPublisher(publisher),
		WithNotifier(notifier),
	)
	return fixture{
		db:        database,
		svc:       svc,
		publisher: publisher,
		notifier:  notifier,
		court:     testutil.SeedCourt(t, database, "Centre", "tennis", 2000),
	}
}

func (f fixture) request(customer string, start time.Time, hours float64) CreateRequest {
	return CreateRequest{
		CustomerID: customer,
		CourtID:    f.court.ID,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(hours * float64(time.Hour))),
	}
}

func (f fixture) availableStock(t *testing.T, id int64) int64 {
	t.Helper()
	item, err := f.db.Queries.GetEquipment(context.Background(), id)
	require.NoError(t, err)
	return item.AvailableStock
}

func seedWeekendRule(t *testing.T, database *appdb.DB) {
	t.Helper()
	ctx := context.Background()
	rule := pricing.Rule{Name: "Weekend", Kind: pricing.KindWeekend, Scope: pricing.ScopeAll, Multiplier: 1.3, IsActive: true}
	row, err := database.Queries.CreatePricingRule(ctx, rule.ToCreateParams())
	require.NoError(t, err)
	for _, day := range []int64{0, 6} {
		require.NoError(t, database.Queries.AddPricingRuleDay(ctx, dbgen.AddPricingRuleDayParams{RuleID: row.ID, DayOfWeek: day}))
	}
}

func requireAppErr(t *testing.T, err error, kind apperr.Kind, code string) *apperr.Error {
	t.Helper()
	appErr, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %v", err)
	assert.Equal(t, kind, appErr.Kind)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestCreateWeekendBooking(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	seedWeekendRule(t, f.db)

	r, err := f.svc.Create(context.Background(), f.request("cust-1", saturday, 2))
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, r.Status)
	assert.Equal(t, models.PaymentPending, r.PaymentStatus)
	assert.Equal(t, int64(4000), r.Pricing.BasePrice)
	assert.Equal(t, int64(1200), r.Pricing.WeekendFee)
	assert.Equal(t, int64(520), r.Pricing.Tax)
	assert.Equal(t, int64(5720), r.Pricing.Total)
	assert.Equal(t, 2.0, r.DurationHours)

	stored, err := f.svc.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Pricing, stored.Pricing)

	assert.Equal(t, []events.Type{events.ReservationCreated}, f.publisher.types())
	assert.Equal(t, []int64{r.ID}, f.notifier.confirmed)
}

func TestCreateRejectsInvalidRequests(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	tests := []struct {
		name string
		req  CreateRequest
		code string
	}{
		{"past start", f.request("cust-1", now.Add(-time.Minute), 1), "start_in_past"},
		{"end before start", f.request("cust-1", saturday, -1), "invalid_window"},
		{"too short", f.request("cust-1", saturday, 0.25), "invalid_duration"},
		{"too long", f.request("cust-1", saturday, 5), "invalid_duration"},
		{"missing customer", f.request(" ", saturday, 1), "missing_customer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.req)
			requireAppErr(t, err, apperr.InvalidInput, tt.code)
		})
	}

	withEquipment := f.request("cust-1", saturday, 1)
	withEquipment.Equipment = []models.EquipmentLine{{EquipmentID: 1, Quantity: 0}}
	_, err := f.svc.Create(context.Background(), withEquipment)
	requireAppErr(t, err, apperr.InvalidInput, "invalid_quantity")
}

func TestCreateOverlapAndAdjacency(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.request("cust-1", saturday, 2))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.request("cust-2", saturday.Add(time.Hour), 2))
	requireAppErr(t, err, apperr.ResourceUnavailable, "court_unavailable")

	// Back-to-back bookings share only the boundary instant.
	_, err = f.svc.Create(ctx, f.request("cust-2", saturday.Add(2*time.Hour), 1))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.request("cust-3", saturday.Add(-time.Hour), 1))
	require.NoError(t, err)
}

func TestCreateCourtChecks(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	req := f.request("cust-1", saturday, 1)
	req.CourtID = 999
	_, err := f.svc.Create(ctx, req)
	requireAppErr(t, err, apperr.NotFound, "court_not_found")

	_, err = f.db.Queries.SetCourtStatus(ctx, dbgen.SetCourtStatusParams{Status: models.CourtMaintenance, ID: f.court.ID})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.request("cust-1", saturday, 1))
	requireAppErr(t, err, apperr.ResourceUnavailable, "court_inactive")
}

func TestCreateEquipmentShortage(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()
	other := testutil.SeedCourt(t, f.db, "East", "tennis", 2000)
	rackets := testutil.SeedEquipment(t, f.db, "Racket", models.EquipmentRacket, 2, 500)

	first := f.request("cust-1", saturday, 2)
	first.Equipment = []models.EquipmentLine{{EquipmentID: rackets.ID, Quantity: 2}}
	r, err := f.svc.Create(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), r.Pricing.EquipmentFee)
	assert.Equal(t, int64(0), f.availableStock(t, rackets.ID))

	second := f.request("cust-2", saturday.Add(time.Hour), 2)
	second.CourtID = other.ID
	second.Equipment = []models.EquipmentLine{{EquipmentID: rackets.ID, Quantity: 2}}
	_, err = f.svc.Create(ctx, second)
	appErr := requireAppErr(t, err, apperr.InventoryShortage, "insufficient_equipment")
	require.Len(t, appErr.Shortages, 1)
	assert.Equal(t, apperr.Shortage{ItemID: rackets.ID, Requested: 2, Available: 0}, appErr.Shortages[0])

	// The rejected request left nothing behind.
	assert.Equal(t, int64(0), f.availableStock(t, rackets.ID))
	list, err := f.svc.ListForCustomer(ctx, "cust-2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConcurrentCreatesOnOneCourt(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Create(context.Background(), f.request("cust", saturday, 2))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, apperr.IsKind(err, apperr.ResourceUnavailable), "unexpected error %v", err)
	}
	assert.Equal(t, 1, succeeded)
}

func TestInventoryConservation(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()
	balls := testutil.SeedEquipment(t, f.db, "Balls", models.EquipmentBall, 5, 300)

	first := f.request("cust-1", saturday, 2)
	first.Equipment = []models.EquipmentLine{{EquipmentID: balls.ID, Quantity: 2}}
	r1, err := f.svc.Create(ctx, first)
	require.NoError(t, err)

	second := f.request("cust-2", saturday.Add(4*time.Hour), 1)
	second.Equipment = []models.EquipmentLine{{EquipmentID: balls.ID, Quantity: 1}}
	r2, err := f.svc.Create(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.availableStock(t, balls.ID))

	_, err = f.svc.Cancel(ctx, r1.ID, Actor{ID: "cust-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.availableStock(t, balls.ID))

	// Deleting a cancelled reservation must not release twice.
	require.NoError(t, f.svc.Delete(ctx, r1.ID, Actor{ID: "admin", Admin: true}))
	assert.Equal(t, int64(4), f.availableStock(t, balls.ID))

	require.NoError(t, f.svc.Delete(ctx, r2.ID, Actor{ID: "admin", Admin: true}))
	assert.Equal(t, int64(5), f.availableStock(t, balls.ID))

	_, err = f.svc.Get(ctx, r2.ID)
	requireAppErr(t, err, apperr.NotFound, "reservation_not_found")
	assert.Contains(t, f.publisher.types(), events.ReservationDeleted)
}

func TestCancelInsideGraceWindow(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.request("cust-1", now.Add(90*time.Minute), 1))
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, r.ID, Actor{ID: "cust-1"})
	appErr := requireAppErr(t, err, apperr.PolicyViolation, "cancellation_window")
	require.NotNil(t, appErr.HoursRemaining)
	assert.Equal(t, 1.5, *appErr.HoursRemaining)

	// Admin deletion bypasses the grace window.
	require.NoError(t, f.svc.Delete(ctx, r.ID, Actor{ID: "admin", Admin: true}))
}

func TestCancelRules(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.request("cust-1", saturday, 1))
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, r.ID, Actor{ID: "cust-2"})
	requireAppErr(t, err, apperr.PolicyViolation, "not_owner")

	cancelled, err := f.svc.Cancel(ctx, r.ID, Actor{ID: "desk", Admin: true})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.True(t, now.Equal(*cancelled.CancelledAt))
	assert.Equal(t, "desk", cancelled.CancelledBy)
	assert.Equal(t, []int64{r.ID}, f.notifier.cancelled)

	_, err = f.svc.Cancel(ctx, r.ID, Actor{ID: "cust-1"})
	requireAppErr(t, err, apperr.PolicyViolation, "already_cancelled")

	started := testutil.SeedReservation(t, f.db, f.court.ID, 0, now.Add(-30*time.Minute), now.Add(30*time.Minute), "confirmed")
	_, err = f.svc.Cancel(ctx, started.ID, Actor{ID: "seed-customer"})
	requireAppErr(t, err, apperr.PolicyViolation, "already_started")

	done := testutil.SeedReservation(t, f.db, f.court.ID, 0, saturday.Add(5*time.Hour), saturday.Add(6*time.Hour), "completed")
	_, err = f.svc.Cancel(ctx, done.ID, Actor{ID: "seed-customer"})
	requireAppErr(t, err, apperr.PolicyViolation, "not_cancellable")

	_, err = f.svc.Cancel(ctx, 999, Actor{ID: "cust-1"})
	requireAppErr(t, err, apperr.NotFound, "reservation_not_found")
}

func TestCancelThenReconfirmRestoresStock(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()
	shoes := testutil.SeedEquipment(t, f.db, "Shoes", models.EquipmentShoes, 3, 400)
	admin := Actor{ID: "admin", Admin: true}

	req := f.request("cust-1", saturday, 2)
	req.Equipment = []models.EquipmentLine{{EquipmentID: shoes.ID, Quantity: 2}}
	r, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.availableStock(t, shoes.ID))

	_, err = f.svc.UpdateStatus(ctx, r.ID, models.StatusCancelled, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.availableStock(t, shoes.ID))

	restored, err := f.svc.UpdateStatus(ctx, r.ID, models.StatusConfirmed, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, restored.Status)
	assert.Nil(t, restored.CancelledAt)
	assert.Equal(t, []models.EquipmentLine{{EquipmentID: shoes.ID, Quantity: 2}}, restored.Equipment)
	assert.Equal(t, int64(1), f.availableStock(t, shoes.ID))

	assert.Equal(t, []events.Type{
		events.ReservationCreated,
		events.ReservationCancelled,
		events.ReservationStatusChanged,
	}, f.publisher.types())
}

func TestReconfirmBlockedWhenCourtRebooked(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()
	admin := Actor{ID: "admin", Admin: true}

	r1, err := f.svc.Create(ctx, f.request("cust-1", saturday, 2))
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, r1.ID, Actor{ID: "cust-1"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.request("cust-2", saturday, 2))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, r1.ID, models.StatusConfirmed, admin)
	requireAppErr(t, err, apperr.ResourceUnavailable, "court_unavailable")

	stored, err := f.svc.Get(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()
	admin := Actor{ID: "admin", Admin: true}

	pending := testutil.SeedReservation(t, f.db, f.court.ID, 0, saturday, saturday.Add(time.Hour), "pending")

	_, err := f.svc.UpdateStatus(ctx, pending.ID, "archived", admin)
	requireAppErr(t, err, apperr.InvalidInput, "invalid_status")

	_, err = f.svc.UpdateStatus(ctx, pending.ID, models.StatusCompleted, admin)
	requireAppErr(t, err, apperr.PolicyViolation, "invalid_transition")

	r, err := f.svc.UpdateStatus(ctx, pending.ID, models.StatusConfirmed, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, r.Status)

	r, err = f.svc.UpdateStatus(ctx, pending.ID, models.StatusNoShow, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNoShow, r.Status)

	for _, next := range []models.ReservationStatus{models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted} {
		_, err = f.svc.UpdateStatus(ctx, pending.ID, next, admin)
		requireAppErr(t, err, apperr.PolicyViolation, "invalid_transition")
	}

	assert.True(t, CanTransition(models.StatusCancelled, models.StatusConfirmed))
	assert.False(t, CanTransition(models.StatusCompleted, models.StatusConfirmed))
}

func TestUpdatePaymentStatus(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.request("cust-1", saturday, 1))
	require.NoError(t, err)

	paid, err := f.svc.UpdatePaymentStatus(ctx, r.ID, models.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)
	assert.Equal(t, models.StatusConfirmed, paid.Status)

	_, err = f.svc.UpdatePaymentStatus(ctx, r.ID, "comped")
	requireAppErr(t, err, apperr.InvalidInput, "invalid_payment_status")

	_, err = f.svc.UpdatePaymentStatus(ctx, 999, models.PaymentPaid)
	requireAppErr(t, err, apperr.NotFound, "reservation_not_found")
}

func TestCompleteEnded(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	ended := testutil.SeedReservation(t, f.db, f.court.ID, 0, now.Add(-3*time.Hour), now.Add(-time.Hour), "confirmed")
	endsNow := testutil.SeedReservation(t, f.db, f.court.ID, 0, now.Add(-time.Hour), now, "confirmed")
	upcoming := testutil.SeedReservation(t, f.db, f.court.ID, 0, saturday, saturday.Add(time.Hour), "confirmed")
	cancelled := testutil.SeedReservation(t, f.db, f.court.ID, 0, now.Add(-5*time.Hour), now.Add(-4*time.Hour), "cancelled")

	n, err := f.svc.CompleteEnded(ctx, now, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for id, want := range map[int64]models.ReservationStatus{
		ended.ID:     models.StatusCompleted,
		endsNow.ID:   models.StatusCompleted,
		upcoming.ID:  models.StatusConfirmed,
		cancelled.ID: models.StatusCancelled,
	} {
		r, err := f.svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, r.Status, "reservation %d", id)
	}

	n, err = f.svc.CompleteEnded(ctx, now, 10)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateStoreFailureIsInternal(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	database := &appdb.DB{DB: sqlDB, Queries: dbgen.New(sqlDB)}
	svc := NewService(database, DefaultConfig(), WithClock(fixedClock{now}))

	mock.ExpectBegin()
	mock.ExpectQuery("FROM courts WHERE id").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, err = svc.Create(context.Background(), CreateRequest{
		CustomerID: "cust-1",
		CourtID:    1,
		StartTime:  saturday,
		EndTime:    saturday.Add(time.Hour),
	})
	require.Error(t, err)
	_, ok := apperr.As(err)
	assert.False(t, ok, "store failures must not look like rejections")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteMatchesCreate(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()
	seedWeekendRule(t, f.db)
	coach := testutil.SeedCoach(t, f.db, "coach@example.com", 3000, []string{"tennis"}, nil)
	rackets := testutil.SeedEquipment(t, f.db, "Racket", models.EquipmentRacket, 4, 500)

	lines := []models.EquipmentLine{{EquipmentID: rackets.ID, Quantity: 2}}
	quote, err := f.svc.Quote(ctx, QuoteRequest{
		CourtID:   f.court.ID,
		CoachID:   &coach.ID,
		StartTime: saturday,
		EndTime:   saturday.Add(2 * time.Hour),
		Equipment: lines,
		Discount:  200,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6000), quote.CoachFee)
	assert.Equal(t, int64(1000), quote.EquipmentFee)

	req := f.request("cust-1", saturday, 2)
	req.CoachID = &coach.ID
	req.Equipment = lines
	req.Discount = 200
	r, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, quote, r.Pricing)

	// Quotes ignore availability.
	again, err := f.svc.Quote(ctx, QuoteRequest{CourtID: f.court.ID, StartTime: saturday, EndTime: saturday.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, int64(5720), again.Total)

	_, err = f.svc.Quote(ctx, QuoteRequest{
		CourtID:   f.court.ID,
		StartTime: saturday,
		EndTime:   saturday.Add(time.Hour),
		Equipment: []models.EquipmentLine{{EquipmentID: 999, Quantity: 1}},
	})
	requireAppErr(t, err, apperr.NotFound, "equipment_not_found")
}

func TestCreateCoachConflicts(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()
	other := testutil.SeedCourt(t, f.db, "East", "tennis", 2000)
	coach := testutil.SeedCoach(t, f.db, "coach@example.com", 3000, []string{"tennis"}, nil)

	req := f.request("cust-1", saturday, 2)
	req.CoachID = &coach.ID
	_, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	clash := f.request("cust-2", saturday.Add(time.Hour), 1)
	clash.CourtID = other.ID
	clash.CoachID = &coach.ID
	_, err = f.svc.Create(ctx, clash)
	requireAppErr(t, err, apperr.ResourceUnavailable, "already_booked")

	_, err = f.db.ExecContext(ctx, "UPDATE coaches SET status = 'on_leave' WHERE id = ?", coach.ID)
	require.NoError(t, err)
	later := f.request("cust-2", saturday.Add(4*time.Hour), 1)
	later.CoachID = &coach.ID
	_, err = f.svc.Create(ctx, later)
	requireAppErr(t, err, apperr.ResourceUnavailable, "coach_unavailable")

	missing := int64(999)
	later.CoachID = &missing
	_, err = f.svc.Create(ctx, later)
	requireAppErr(t, err, apperr.NotFound, "coach_not_found")
}

func TestEnforceCoachHours(t *testing.T) {
	sundayOnly := []testutil.CoachWindow{{Day: 0, Start: "08:00", End: "18:00", Active: true}}

	relaxed := newFixture(t, DefaultConfig())
	coach := testutil.SeedCoach(t, relaxed.db, "coach@example.com", 3000, []string{"tennis"}, sundayOnly)
	req := relaxed.request("cust-1", saturday, 1)
	req.CoachID = &coach.ID
	_, err := relaxed.svc.Create(context.Background(), req)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.EnforceCoachHours = true
	strict := newFixture(t, cfg)
	coach = testutil.SeedCoach(t, strict.db, "coach@example.com", 3000, []string{"tennis"}, sundayOnly)
	req = strict.request("cust-1", saturday, 1)
	req.CoachID = &coach.ID
	_, err = strict.svc.Create(context.Background(), req)
	requireAppErr(t, err, apperr.ResourceUnavailable, "no_hours_on_day")
}

func TestAvailableCoaches(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()
	saturdayHours := []testutil.CoachWindow{{Day: 6, Start: "08:00", End: "18:00", Active: true}}

	free := testutil.SeedCoach(t, f.db, "free@example.com", 3000, []string{"tennis"}, saturdayHours)
	testutil.SeedCoach(t, f.db, "padel@example.com", 3000, []string{"padel"}, saturdayHours)
	testutil.SeedCoach(t, f.db, "sunday@example.com", 3000, []string{"tennis"}, []testutil.CoachWindow{{Day: 0, Start: "08:00", End: "18:00", Active: true}})
	busy := testutil.SeedCoach(t, f.db, "busy@example.com", 3000, []string{"tennis"}, saturdayHours)
	other := testutil.SeedCourt(t, f.db, "East", "tennis", 2000)
	testutil.SeedReservation(t, f.db, other.ID, busy.ID, saturday, saturday.Add(time.Hour), "confirmed")

	coaches, err := f.svc.AvailableCoaches(ctx, f.court.ID, saturday, saturday.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, coaches, 1)
	assert.Equal(t, free.ID, coaches[0].ID)
	assert.Equal(t, []string{"tennis"}, coaches[0].Sports)

	check, err := f.svc.CheckCoachAvailability(ctx, busy.ID, saturday, saturday.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, check.Available)
	assert.Equal(t, "already_booked", check.Code)
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()
	testutil.SeedReservation(t, f.db, f.court.ID, 0, saturday, saturday.Add(time.Hour), "confirmed")

	slots, err := f.svc.CheckAvailability(ctx, f.court.ID, saturday, 1)
	require.NoError(t, err)
	require.Len(t, slots, 14)
	assert.Equal(t, "10:00 - 11:00", slots[2].Label)
	assert.False(t, slots[2].IsAvailable)
	assert.True(t, slots[3].IsAvailable)

	_, err = f.svc.CheckAvailability(ctx, f.court.ID, saturday, 6)
	requireAppErr(t, err, apperr.InvalidInput, "invalid_duration")

	_, err = f.svc.CheckAvailability(ctx, 999, saturday, 1)
	requireAppErr(t, err, apperr.NotFound, "court_not_found")
}

func TestEquipmentPreviewAndListing(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	_, err := f.svc.EquipmentPreview(ctx, saturday, saturday.Add(time.Hour), "skis")
	requireAppErr(t, err, apperr.InvalidInput, "invalid_equipment_type")

	testutil.SeedEquipment(t, f.db, "Racket", models.EquipmentRacket, 2, 500)
	preview, err := f.svc.EquipmentPreview(ctx, saturday, saturday.Add(90*time.Minute), models.EquipmentRacket)
	require.NoError(t, err)
	require.Len(t, preview.Available, 1)
	assert.Equal(t, int64(750), preview.Available[0].SlotRentalCost)

	_, err = f.svc.ListForCustomer(ctx, "  ")
	requireAppErr(t, err, apperr.InvalidInput, "missing_customer")
}
