// Hand-maintained in sqlc's output shape; do not regenerate over it.

package dbgen

import (
	"context"
)

type Querier interface {
	AddCoachAvailability(ctx context.Context, arg AddCoachAvailabilityParams) error
	AddCoachSport(ctx context.Context, arg AddCoachSportParams) error
	AddPricingRuleCourt(ctx context.Context, arg AddPricingRuleCourtParams) error
	AddPricingRuleDay(ctx context.Context, arg AddPricingRuleDayParams) error
	AddReservationEquipment(ctx context.Context, arg AddReservationEquipmentParams) error
	AdjustEquipmentTotalStock(ctx context.Context, arg AdjustEquipmentTotalStockParams) (int64, error)
	CancelReservation(ctx context.Context, arg CancelReservationParams) (Reservation, error)
	CountEquipmentReservations(ctx context.Context, arg CountEquipmentReservationsParams) (int64, error)
	CountOverlappingReservations(ctx context.Context, arg CountOverlappingReservationsParams) (int64, error)
	CountUpcomingCoachReservations(ctx context.Context, arg CountUpcomingCoachReservationsParams) (int64, error)
	CountUpcomingCourtReservations(ctx context.Context, arg CountUpcomingCourtReservationsParams) (int64, error)
	CreateCoach(ctx context.Context, arg CreateCoachParams) (Coach, error)
	CreateCourt(ctx context.Context, arg CreateCourtParams) (Court, error)
	CreateEquipment(ctx context.Context, arg CreateEquipmentParams) (Equipment, error)
	CreatePricingRule(ctx context.Context, arg CreatePricingRuleParams) (PricingRule, error)
	CreateReservation(ctx context.Context, arg CreateReservationParams) (Reservation, error)
	DecrementEquipmentStock(ctx context.Context, arg DecrementEquipmentStockParams) (int64, error)
	DeleteCoach(ctx context.Context, id int64) (int64, error)
	DeleteCoachAvailability(ctx context.Context, coachID int64) error
	DeleteCoachSports(ctx context.Context, coachID int64) error
	DeleteEquipment(ctx context.Context, id int64) (int64, error)
	DeletePricingRule(ctx context.Context, id int64) (int64, error)
	DeletePricingRuleCourts(ctx context.Context, ruleID int64) error
	DeletePricingRuleDays(ctx context.Context, ruleID int64) error
	DeleteReservation(ctx context.Context, id int64) (int64, error)
	GetCoach(ctx context.Context, id int64) (Coach, error)
	GetCourt(ctx context.Context, id int64) (Court, error)
	GetEquipment(ctx context.Context, id int64) (Equipment, error)
	GetPricingRule(ctx context.Context, id int64) (PricingRule, error)
	GetReservation(ctx context.Context, id int64) (Reservation, error)
	IncrementEquipmentStock(ctx context.Context, arg IncrementEquipmentStockParams) (int64, error)
	ListActivePricingRules(ctx context.Context) ([]PricingRule, error)
	ListAvailableCoachesForSport(ctx context.Context, sportType string) ([]Coach, error)
	ListCoachAvailability(ctx context.Context, coachID int64) ([]CoachAvailability, error)
	ListCoachSports(ctx context.Context, coachID int64) ([]string, error)
	ListCoaches(ctx context.Context) ([]Coach, error)
	ListCourts(ctx context.Context) ([]Court, error)
	ListEquipment(ctx context.Context) ([]Equipment, error)
	ListEquipmentByType(ctx context.Context, equipmentType string) ([]Equipment, error)
	ListOverlappingEquipmentUsage(ctx context.Context, arg ListOverlappingEquipmentUsageParams) ([]ListOverlappingEquipmentUsageRow, error)
	ListPricingRuleCourts(ctx context.Context) ([]PricingRuleCourt, error)
	ListPricingRuleDays(ctx context.Context) ([]PricingRuleDay, error)
	ListPricingRules(ctx context.Context) ([]PricingRule, error)
	ListReservationEquipment(ctx context.Context, reservationID int64) ([]ReservationEquipment, error)
	ListReservationsByCustomer(ctx context.Context, customerID string) ([]Reservation, error)
	ListReservationsEndedBefore(ctx context.Context, arg ListReservationsEndedBeforeParams) ([]Reservation, error)
	RestoreReservation(ctx context.Context, id int64) (Reservation, error)
	SetCourtStatus(ctx context.Context, arg SetCourtStatusParams) (int64, error)
	SumOverlappingEquipmentQuantity(ctx context.Context, arg SumOverlappingEquipmentQuantityParams) (int64, error)
	UpdateCoach(ctx context.Context, arg UpdateCoachParams) (Coach, error)
	UpdateCourt(ctx context.Context, arg UpdateCourtParams) (Court, error)
	UpdateEquipment(ctx context.Context, arg UpdateEquipmentParams) (Equipment, error)
	UpdatePricingRule(ctx context.Context, arg UpdatePricingRuleParams) (PricingRule, error)
	UpdateReservationPaymentStatus(ctx context.Context, arg UpdateReservationPaymentStatusParams) (Reservation, error)
	UpdateReservationStatus(ctx context.Context, arg UpdateReservationStatusParams) (Reservation, error)
}

var _ Querier = (*Queries)(nil)
