package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Saturday 14 June 2025.
var saturday = time.Date(2025, time.June, 14, 10, 0, 0, 0, time.UTC)

func twoHoursOn(start time.Time, basePrice int64) Input {
	return Input{
		Court: CourtRate{ID: 1, SportType: "tennis", BasePrice: basePrice},
		Start: start,
		End:   start.Add(2 * time.Hour),
	}
}

func weekendRule() Rule {
	return Rule{ID: 1, Name: "Weekend", Kind: KindWeekend, Scope: ScopeAll, Days: []int{0, 6}, Multiplier: 1.3, IsActive: true}
}

func TestEvaluateWeekendBooking(t *testing.T) {
	got := Evaluate([]Rule{weekendRule()}, twoHoursOn(saturday, 2000), time.UTC, 0.10)

	assert.Equal(t, int64(4000), got.BasePrice)
	assert.Equal(t, int64(1200), got.WeekendFee)
	assert.Equal(t, int64(0), got.PeakHourFee)
	assert.Equal(t, int64(5200), got.Subtotal)
	assert.Equal(t, int64(520), got.Tax)
	assert.Equal(t, int64(5720), got.Total)
	assert.Equal(t, 2.0, got.DurationHours)
}

func TestEvaluateWeekdayIgnoresWeekendRule(t *testing.T) {
	monday := saturday.AddDate(0, 0, 2)
	got := Evaluate([]Rule{weekendRule()}, twoHoursOn(monday, 2000), time.UTC, 0.10)

	assert.Equal(t, int64(0), got.WeekendFee)
	assert.Equal(t, int64(4400), got.Total)
}

func TestEvaluateLowestPriorityMatchWins(t *testing.T) {
	rules := []Rule{
		{ID: 1, Name: "Evening", Kind: KindPeakHour, Scope: ScopeAll, StartTime: "09:00", EndTime: "12:00", Multiplier: 1.5, IsActive: true, Priority: 10},
		{ID: 2, Name: "Morning", Kind: KindPeakHour, Scope: ScopeAll, StartTime: "08:00", EndTime: "11:00", Multiplier: 2.0, IsActive: true, Priority: 1},
	}

	got := Evaluate(rules, twoHoursOn(saturday, 2000), time.UTC, 0)
	assert.Equal(t, int64(4000), got.PeakHourFee)

	// Input order does not matter.
	reversed := Evaluate([]Rule{rules[1], rules[0]}, twoHoursOn(saturday, 2000), time.UTC, 0)
	assert.Equal(t, got, reversed)
}

func TestEvaluatePeakHourUsesStartHourOnly(t *testing.T) {
	rule := Rule{ID: 1, Name: "Peak", Kind: KindPeakHour, Scope: ScopeAll, StartTime: "16:00", EndTime: "18:00", Multiplier: 1.5, IsActive: true}

	inside := twoHoursOn(time.Date(2025, 6, 10, 16, 45, 0, 0, time.UTC), 2000)
	assert.Equal(t, int64(2000), Evaluate([]Rule{rule}, inside, time.UTC, 0).PeakHourFee)

	// Starts before the window even though most of the booking is inside it.
	before := twoHoursOn(time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC), 2000)
	assert.Equal(t, int64(0), Evaluate([]Rule{rule}, before, time.UTC, 0).PeakHourFee)

	atEnd := twoHoursOn(time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC), 2000)
	assert.Equal(t, int64(0), Evaluate([]Rule{rule}, atEnd, time.UTC, 0).PeakHourFee)
}

func TestEvaluateMalformedPeakRuleContributesNothing(t *testing.T) {
	rule := Rule{ID: 1, Name: "Broken", Kind: KindPeakHour, Scope: ScopeAll, StartTime: "4pm", EndTime: "18:00", Multiplier: 3, IsActive: true}
	got := Evaluate([]Rule{rule}, twoHoursOn(time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC), 2000), time.UTC, 0)
	assert.Equal(t, int64(0), got.PeakHourFee)
}

func TestEvaluateSurchargeOverridesMultiplier(t *testing.T) {
	holiday := Rule{ID: 1, Name: "Holiday", Kind: KindHoliday, Scope: ScopeAll, Multiplier: 2, FixedSurcharge: 1500, IsActive: true}
	got := Evaluate([]Rule{holiday}, twoHoursOn(saturday, 2000), time.UTC, 0)
	assert.Equal(t, int64(1500), got.SpecialEventFee)

	event := Rule{ID: 2, Name: "Final", Kind: KindSpecialEvent, Scope: ScopeAll, Multiplier: 1.25, IsActive: true}
	got = Evaluate([]Rule{event}, twoHoursOn(saturday, 2000), time.UTC, 0)
	assert.Equal(t, int64(1000), got.SpecialEventFee)
}

func TestEvaluateDateRangeUsesFacilityCalendar(t *testing.T) {
	eastern := time.FixedZone("EDT", -4*60*60)
	rule := Rule{ID: 1, Name: "Open day", Kind: KindSpecialEvent, Scope: ScopeAll, StartDate: "2025-06-14", EndDate: "2025-06-14", FixedSurcharge: 800, IsActive: true}

	// 02:00 UTC on the 15th is still the evening of the 14th in the facility.
	late := twoHoursOn(time.Date(2025, 6, 15, 2, 0, 0, 0, time.UTC), 2000)
	assert.Equal(t, int64(800), Evaluate([]Rule{rule}, late, eastern, 0).SpecialEventFee)
	assert.Equal(t, int64(0), Evaluate([]Rule{rule}, late, time.UTC, 0).SpecialEventFee)
}

func TestEvaluateScopeAndActivity(t *testing.T) {
	rules := []Rule{
		{ID: 1, Name: "Court nine", Kind: KindHoliday, Scope: ScopeSpecificCourts, CourtIDs: []int64{9}, FixedSurcharge: 700, IsActive: true},
		{ID: 2, Name: "Off", Kind: KindWeekend, Scope: ScopeAll, Days: []int{6}, Multiplier: 2, IsActive: false},
		{ID: 3, Name: "Summer", Kind: KindSeasonal, Scope: ScopeAll, Multiplier: 3, IsActive: true},
	}

	got := Evaluate(rules, twoHoursOn(saturday, 2000), time.UTC, 0)
	assert.Equal(t, int64(4000), got.Total)

	in := twoHoursOn(saturday, 2000)
	in.Court.ID = 9
	assert.Equal(t, int64(700), Evaluate(rules, in, time.UTC, 0).SpecialEventFee)
}

func TestEvaluateSportScopedRuleAppliesEverywhere(t *testing.T) {
	rule := Rule{ID: 1, Name: "Padel only", Kind: KindHoliday, Scope: ScopeSpecificSports, FixedSurcharge: 300, IsActive: true}
	got := Evaluate([]Rule{rule}, twoHoursOn(saturday, 2000), time.UTC, 0)
	assert.Equal(t, int64(300), got.SpecialEventFee)
}

func TestEvaluateExtrasAndDiscount(t *testing.T) {
	in := Input{
		Court:     CourtRate{ID: 1, BasePrice: 2000},
		Start:     time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		End:       time.Date(2025, 6, 10, 10, 30, 0, 0, time.UTC),
		Equipment: []EquipmentCharge{{EquipmentID: 1, RentalPrice: 500, Quantity: 2}, {EquipmentID: 2, RentalPrice: 150, Quantity: 1}},
		Coach:     &CoachRate{ID: 4, HourlyRate: 3000},
		Discount:  500,
	}

	got := Evaluate(nil, in, time.UTC, 0.08)
	assert.Equal(t, int64(3000), got.BasePrice)
	assert.Equal(t, int64(1150), got.EquipmentFee)
	assert.Equal(t, int64(4500), got.CoachFee)
	assert.Equal(t, int64(8150), got.Subtotal)
	assert.Equal(t, int64(652), got.Tax)
	assert.Equal(t, int64(8802), got.Total)
}

func TestEvaluateDiscountNeverMakesSubtotalNegative(t *testing.T) {
	in := twoHoursOn(saturday, 1000)
	in.Discount = 10000
	got := Evaluate(nil, in, time.UTC, 0.1)
	assert.Equal(t, int64(0), got.Subtotal)
	assert.Equal(t, int64(0), got.Total)
}

type staticRules struct {
	rules []Rule
	err   error
}

func (s staticRules) ActiveRules(context.Context) ([]Rule, error) {
	return s.rules, s.err
}

func TestEngineCalculate(t *testing.T) {
	engine := NewEngine(staticRules{rules: []Rule{weekendRule()}}, time.UTC, 0.10)

	got, err := engine.Calculate(context.Background(), twoHoursOn(saturday, 2000))
	require.NoError(t, err)
	assert.Equal(t, int64(5720), got.Total)

	again, err := engine.Calculate(context.Background(), twoHoursOn(saturday, 2000))
	require.NoError(t, err)
	assert.Equal(t, got, again)

	failing := engine.WithRules(staticRules{err: errors.New("database is locked")})
	_, err = failing.Calculate(context.Background(), twoHoursOn(saturday, 2000))
	assert.ErrorContains(t, err, "load pricing rules")
}

func TestEvaluateIgnoresNonPositiveMultiplier(t *testing.T) {
	peak := Rule{ID: 2, Name: "Peak", Kind: KindPeakHour, Scope: ScopeAll, StartTime: "09:00", EndTime: "12:00", FixedSurcharge: 500, IsActive: true}
	holiday := Rule{ID: 3, Name: "Midsummer", Kind: KindHoliday, Scope: ScopeAll, IsActive: true}

	got := Evaluate([]Rule{peak, holiday}, twoHoursOn(saturday, 2000), time.UTC, 0)

	assert.Equal(t, int64(4000), got.BasePrice)
	assert.Zero(t, got.PeakHourFee)
	assert.Zero(t, got.SpecialEventFee)
	assert.Equal(t, int64(4000), got.Total)
}
