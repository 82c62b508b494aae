// Package booking arbitrates reservation requests. It validates a window
// against courts, coaches and equipment, prices it, and drives the
// reservation lifecycle with its inventory side effects.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/availability"
	"github.com/codr1/courtbook/internal/config"
	appdb "github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/events"
	"github.com/codr1/courtbook/internal/lock"
	"github.com/codr1/courtbook/internal/metrics"
	"github.com/codr1/courtbook/internal/models"
	"github.com/codr1/courtbook/internal/pricing"
	"github.com/codr1/courtbook/internal/timeofday"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Notifier is told about confirmed and cancelled reservations after commit.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, r models.Reservation, court models.Court)
	ReservationCancelled(ctx context.Context, r models.Reservation, court models.Court)
}

// Actor identifies who asks for a change. Admins may act on any reservation.
type Actor struct {
	ID    string
	Admin bool
}

type Config struct {
	MinDurationHours  float64
	MaxDurationHours  float64
	CancellationGrace time.Duration
	TaxRate           float64
	Hours             availability.OperatingHours
	Location          *time.Location
	// When set, a requested coach must also be inside their weekly hours.
	EnforceCoachHours bool
}

func DefaultConfig() Config {
	return Config{
		MinDurationHours:  0.5,
		MaxDurationHours:  4,
		CancellationGrace: 2 * time.Hour,
		TaxRate:           0.10,
		Hours:             availability.OperatingHours{Opens: 8 * 60, Closes: 22 * 60},
		Location:          time.UTC,
	}
}

// ConfigFrom maps validated application configuration onto the booking core.
func ConfigFrom(cfg *config.Config) (Config, error) {
	opens, err := timeofday.Parse(cfg.Booking.OpensAt)
	if err != nil {
		return Config{}, fmt.Errorf("opens_at: %w", err)
	}
	closes, err := timeofday.Parse(cfg.Booking.ClosesAt)
	if err != nil {
		return Config{}, fmt.Errorf("closes_at: %w", err)
	}
	return Config{
		MinDurationHours:  cfg.Booking.MinDurationHours,
		MaxDurationHours:  cfg.Booking.MaxDurationHours,
		CancellationGrace: cfg.Booking.CancellationGrace(),
		TaxRate:           cfg.Booking.TaxRate,
		Hours:             availability.OperatingHours{Opens: opens, Closes: closes},
		Location:          cfg.Location(),
		EnforceCoachHours: cfg.Booking.EnforceCoachHours,
	}, nil
}

type Service struct {
	db        *appdb.DB
	cfg       Config
	locker    lock.Locker
	pricing   *pricing.Engine
	publisher events.Publisher
	notifier  Notifier
	clock     Clock
}

type Option func(*Service)

func WithLocker(l lock.Locker) Option {
	return func(s *Service) { s.locker = l }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

func NewService(database *appdb.DB, cfg Config, opts ...Option) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	s := &Service{
		db:        database,
		cfg:       cfg,
		locker:    lock.NewMemoryLocker(),
		publisher: events.NopPublisher{},
		clock:     realClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pricing = pricing.NewEngine(pricing.NewStoreRules(database.Queries), cfg.Location, cfg.TaxRate)
	return s
}

func (s *Service) Config() Config {
	return s.cfg
}

func (s *Service) now() time.Time {
	return s.clock.Now().UTC()
}

// validateWindow normalises the window and applies the duration bounds.
func (s *Service) validateWindow(start, end time.Time) (availability.Window, error) {
	w, err := availability.NewWindow(start, end)
	if err != nil {
		return availability.Window{}, err
	}
	hours := w.Hours()
	if hours < s.cfg.MinDurationHours || hours > s.cfg.MaxDurationHours {
		return availability.Window{}, apperr.Newf(apperr.InvalidInput, "invalid_duration",
			"duration must be between %g and %g hours", s.cfg.MinDurationHours, s.cfg.MaxDurationHours)
	}
	return w, nil
}

// withLocks runs fn while holding every key.
func (s *Service) withLocks(ctx context.Context, keys []string, fn func() error) error {
	started := time.Now()
	release, err := s.locker.Acquire(ctx, keys)
	metrics.RecordLockWait(time.Since(started).Seconds())
	if err != nil {
		return fmt.Errorf("lock resources: %w", err)
	}
	defer release()
	return fn()
}

func reservationKeys(row dbgen.Reservation, lines []dbgen.ReservationEquipment) []string {
	keys := []string{lock.ReservationKey(row.ID), lock.CourtKey(row.CourtID)}
	if row.CoachID.Valid {
		keys = append(keys, lock.CoachKey(row.CoachID.Int64))
	}
	for _, line := range lines {
		keys = append(keys, lock.EquipmentKey(line.EquipmentID))
	}
	return keys
}

// lockReservation takes the locks covering an existing reservation and its
// resources, then runs fn.
func (s *Service) lockReservation(ctx context.Context, id int64, fn func() error) error {
	row, lines, err := loadReservation(ctx, s.db.Queries, id)
	if err != nil {
		return err
	}
	return s.withLocks(ctx, reservationKeys(row, lines), fn)
}

func loadReservation(ctx context.Context, q *dbgen.Queries, id int64) (dbgen.Reservation, []dbgen.ReservationEquipment, error) {
	row, err := q.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Reservation{}, nil, apperr.Newf(apperr.NotFound, "reservation_not_found", "reservation %d not found", id)
		}
		return dbgen.Reservation{}, nil, fmt.Errorf("load reservation %d: %w", id, err)
	}
	lines, err := q.ListReservationEquipment(ctx, id)
	if err != nil {
		return dbgen.Reservation{}, nil, fmt.Errorf("load reservation %d equipment: %w", id, err)
	}
	return row, lines, nil
}

func loadCourt(ctx context.Context, q *dbgen.Queries, id int64) (dbgen.Court, error) {
	court, err := q.GetCourt(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Court{}, apperr.Newf(apperr.NotFound, "court_not_found", "court %d not found", id)
		}
		return dbgen.Court{}, fmt.Errorf("load court %d: %w", id, err)
	}
	return court, nil
}

func loadCoach(ctx context.Context, q *dbgen.Queries, id int64) (dbgen.Coach, error) {
	coach, err := q.GetCoach(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Coach{}, apperr.Newf(apperr.NotFound, "coach_not_found", "coach %d not found", id)
		}
		return dbgen.Coach{}, fmt.Errorf("load coach %d: %w", id, err)
	}
	return coach, nil
}

// courtForEvents best-effort loads the court for notifications.
func (s *Service) courtForEvents(ctx context.Context, id int64) models.Court {
	court, err := s.db.Queries.GetCourt(ctx, id)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Int64("court_id", id).Msg("Failed to load court for notification")
		return models.Court{ID: id}
	}
	return models.CourtFromDB(court)
}

func (s *Service) publish(ctx context.Context, typ events.Type, r models.Reservation, previous models.ReservationStatus) {
	event := events.NewReservationEvent(typ, r, previous, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		metrics.RecordEvent(string(typ), "failed")
		log.Ctx(ctx).Warn().Err(err).
			Int64("reservation_id", r.ID).
			Str("event", string(typ)).
			Msg("Failed to publish reservation event")
		return
	}
	metrics.RecordEvent(string(typ), "ok")
}

// rejected counts structured rejections per operation and returns err.
func rejected(operation string, err error) error {
	if appErr, ok := apperr.As(err); ok {
		metrics.RecordRejection(operation, string(appErr.Kind))
	}
	return err
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
