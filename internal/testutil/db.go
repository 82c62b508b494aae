package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// SeedCourt inserts an active court with the given hourly price in cents.
func SeedCourt(t *testing.T, database *db.DB, name, sport string, priceCents int64) dbgen.Court {
	t.Helper()

	court, err := database.Queries.CreateCourt(context.Background(), dbgen.CreateCourtParams{
		Name:           name,
		CourtType:      "indoor",
		SportType:      sport,
		BasePriceCents: priceCents,
		Status:         "active",
	})
	if err != nil {
		t.Fatalf("seed court: %v", err)
	}
	return court
}

// CoachWindow is a weekly availability window used when seeding coaches.
type CoachWindow struct {
	Day        int64
	Start, End string
	Active     bool
}

// SeedCoach inserts an available coach with specialisations and windows in order.
func SeedCoach(t *testing.T, database *db.DB, email string, rateCents int64, sports []string, windows []CoachWindow) dbgen.Coach {
	t.Helper()
	ctx := context.Background()

	coach, err := database.Queries.CreateCoach(ctx, dbgen.CreateCoachParams{
		Name:            email,
		Email:           email,
		HourlyRateCents: rateCents,
		Status:          "available",
	})
	if err != nil {
		t.Fatalf("seed coach: %v", err)
	}
	for _, sport := range sports {
		if err := database.Queries.AddCoachSport(ctx, dbgen.AddCoachSportParams{CoachID: coach.ID, SportType: sport}); err != nil {
			t.Fatalf("seed coach sport: %v", err)
		}
	}
	for i, w := range windows {
		err := database.Queries.AddCoachAvailability(ctx, dbgen.AddCoachAvailabilityParams{
			CoachID:   coach.ID,
			Position:  int64(i),
			DayOfWeek: w.Day,
			StartTime: w.Start,
			EndTime:   w.End,
			IsActive:  w.Active,
		})
		if err != nil {
			t.Fatalf("seed coach availability: %v", err)
		}
	}
	return coach
}

// SeedEquipment inserts an item whose available stock equals its total stock.
func SeedEquipment(t *testing.T, database *db.DB, name, kind string, stock, priceCents int64) dbgen.Equipment {
	t.Helper()

	item, err := database.Queries.CreateEquipment(context.Background(), dbgen.CreateEquipmentParams{
		Name:             name,
		EquipmentType:    kind,
		TotalStock:       stock,
		AvailableStock:   stock,
		RentalPriceCents: priceCents,
		Description:      sql.NullString{},
		Status:           "available",
	})
	if err != nil {
		t.Fatalf("seed equipment: %v", err)
	}
	return item
}

// SeedReservation inserts a reservation row directly, bypassing booking
// validation. coachID 0 means no coach.
func SeedReservation(t *testing.T, database *db.DB, courtID, coachID int64, start, end time.Time, status string) dbgen.Reservation {
	t.Helper()

	params := dbgen.CreateReservationParams{
		CustomerID:     "seed-customer",
		CourtID:        courtID,
		StartTime:      start.UTC(),
		EndTime:        end.UTC(),
		DurationHours:  end.Sub(start).Hours(),
		Status:         status,
		PaymentStatus:  "pending",
		BasePriceCents: 0,
	}
	if coachID != 0 {
		params.CoachID = sql.NullInt64{Int64: coachID, Valid: true}
	}
	reservation, err := database.Queries.CreateReservation(context.Background(), params)
	if err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	return reservation
}
