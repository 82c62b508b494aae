// Hand-maintained in sqlc's output shape; do not regenerate over it.

package dbgen

import (
	"database/sql"
	"time"
)

type Coach struct {
	ID              int64
	Name            string
	Email           string
	HourlyRateCents int64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CoachAvailability struct {
	ID        int64
	CoachID   int64
	Position  int64
	DayOfWeek int64
	StartTime string
	EndTime   string
	IsActive  bool
}

type CoachSport struct {
	CoachID   int64
	SportType string
}

type Court struct {
	ID             int64
	Name           string
	CourtType      string
	SportType      string
	BasePriceCents int64
	Status         string
	Description    sql.NullString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Equipment struct {
	ID               int64
	Name             string
	EquipmentType    string
	TotalStock       int64
	AvailableStock   int64
	RentalPriceCents int64
	Description      sql.NullString
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type PricingRule struct {
	ID                  int64
	Name                string
	Kind                string
	Description         sql.NullString
	ApplyTo             string
	StartDate           sql.NullString
	EndDate             sql.NullString
	StartTime           sql.NullString
	EndTime             sql.NullString
	Multiplier          float64
	FixedSurchargeCents int64
	IsActive            bool
	Priority            int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type PricingRuleCourt struct {
	RuleID  int64
	CourtID int64
}

type PricingRuleDay struct {
	RuleID    int64
	DayOfWeek int64
}

type Reservation struct {
	ID                   int64
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
	CancelledAt          sql.NullTime
	CancelledBy          sql.NullString
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type ReservationEquipment struct {
	ReservationID int64
	EquipmentID   int64
	Quantity      int64
}
