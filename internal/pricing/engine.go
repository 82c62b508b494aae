package pricing

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/codr1/courtbook/internal/models"
)

type CourtRate struct {
	ID        int64
	SportType string
	BasePrice int64
}

type CoachRate struct {
	ID         int64
	HourlyRate int64
}

type EquipmentCharge struct {
	EquipmentID int64
	RentalPrice int64
	Quantity    int64
}

type Input struct {
	Court     CourtRate
	Start     time.Time
	End       time.Time
	Equipment []EquipmentCharge
	Coach     *CoachRate
	Discount  int64
}

// RuleSource supplies the active pricing rules at call time.
type RuleSource interface {
	ActiveRules(ctx context.Context) ([]Rule, error)
}

type Engine struct {
	rules   RuleSource
	loc     *time.Location
	taxRate float64
}

func NewEngine(rules RuleSource, loc *time.Location, taxRate float64) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{rules: rules, loc: loc, taxRate: taxRate}
}

// WithRules returns a copy of the engine reading rules from src, typically a
// transaction-bound store.
func (e *Engine) WithRules(src RuleSource) *Engine {
	clone := *e
	clone.rules = src
	return &clone
}

func (e *Engine) Calculate(ctx context.Context, in Input) (models.PriceBreakdown, error) {
	rules, err := e.rules.ActiveRules(ctx)
	if err != nil {
		return models.PriceBreakdown{}, fmt.Errorf("load pricing rules: %w", err)
	}
	return Evaluate(rules, in, e.loc, e.taxRate), nil
}

// Evaluate prices in against rules. Inactive rules are ignored. Rules are
// visited from highest to lowest priority and each kind keeps the fee of the
// last applicable rule visited, so among matching rules of one kind the
// lowest priority wins. Seasonal rules never contribute a fee.
func Evaluate(rules []Rule, in Input, loc *time.Location, taxRate float64) models.PriceBreakdown {
	if loc == nil {
		loc = time.UTC
	}
	hours := in.End.Sub(in.Start).Hours()
	base := roundCents(float64(in.Court.BasePrice) * hours)

	ordered := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].ID < ordered[j].ID
	})

	localStart := in.Start.In(loc)
	var peakFee, weekendFee, specialFee int64
	for _, rule := range ordered {
		if !rule.appliesTo(in.Court.ID, localStart) {
			continue
		}
		switch rule.Kind {
		case KindPeakHour:
			if rule.inHourRange(localStart.Hour()) {
				peakFee = multiplierFee(base, rule.Multiplier)
			}
		case KindWeekend:
			if rule.onDay(localStart.Weekday()) {
				weekendFee = surchargeOrMultiplier(base, rule)
			}
		case KindHoliday, KindSpecialEvent:
			specialFee = surchargeOrMultiplier(base, rule)
		}
	}

	var equipmentFee int64
	for _, line := range in.Equipment {
		equipmentFee += line.RentalPrice * line.Quantity
	}

	var coachFee int64
	if in.Coach != nil {
		coachFee = roundCents(float64(in.Coach.HourlyRate) * hours)
	}

	subtotal := base + peakFee + weekendFee + specialFee + equipmentFee + coachFee - in.Discount
	if subtotal < 0 {
		subtotal = 0
	}
	tax := roundCents(float64(subtotal) * taxRate)

	return models.PriceBreakdown{
		BasePrice:       base,
		PeakHourFee:     peakFee,
		WeekendFee:      weekendFee,
		SpecialEventFee: specialFee,
		EquipmentFee:    equipmentFee,
		CoachFee:        coachFee,
		Discount:        in.Discount,
		Subtotal:        subtotal,
		Tax:             tax,
		Total:           subtotal + tax,
		DurationHours:   hours,
	}
}

func multiplierFee(base int64, multiplier float64) int64 {
	if multiplier <= 0 {
		return 0
	}
	return roundCents(float64(base)*multiplier) - base
}

func surchargeOrMultiplier(base int64, rule Rule) int64 {
	if rule.FixedSurcharge != 0 {
		return rule.FixedSurcharge
	}
	return multiplierFee(base, rule.Multiplier)
}

// roundCents rounds half away from zero.
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
