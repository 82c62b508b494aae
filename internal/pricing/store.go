package pricing

import (
	"context"
	"database/sql"

	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

type RuleQueries interface {
	ListActivePricingRules(ctx context.Context) ([]dbgen.PricingRule, error)
	ListPricingRuleDays(ctx context.Context) ([]dbgen.PricingRuleDay, error)
	ListPricingRuleCourts(ctx context.Context) ([]dbgen.PricingRuleCourt, error)
}

// StoreRules reads active rules with their day and court sets from the database.
type StoreRules struct {
	q RuleQueries
}

func NewStoreRules(q RuleQueries) StoreRules {
	return StoreRules{q: q}
}

func (s StoreRules) ActiveRules(ctx context.Context) ([]Rule, error) {
	rows, err := s.q.ListActivePricingRules(ctx)
	if err != nil {
		return nil, err
	}
	days, err := s.q.ListPricingRuleDays(ctx)
	if err != nil {
		return nil, err
	}
	courts, err := s.q.ListPricingRuleCourts(ctx)
	if err != nil {
		return nil, err
	}
	return RulesFromDB(rows, days, courts), nil
}

// RulesFromDB joins rule rows with their day and court rows.
func RulesFromDB(rows []dbgen.PricingRule, days []dbgen.PricingRuleDay, courts []dbgen.PricingRuleCourt) []Rule {
	daysByRule := make(map[int64][]int)
	for _, d := range days {
		daysByRule[d.RuleID] = append(daysByRule[d.RuleID], int(d.DayOfWeek))
	}
	courtsByRule := make(map[int64][]int64)
	for _, c := range courts {
		courtsByRule[c.RuleID] = append(courtsByRule[c.RuleID], c.CourtID)
	}

	rules := make([]Rule, 0, len(rows))
	for _, row := range rows {
		rule := Rule{
			ID:             row.ID,
			Name:           row.Name,
			Kind:           Kind(row.Kind),
			Description:    row.Description.String,
			Scope:          Scope(row.ApplyTo),
			CourtIDs:       courtsByRule[row.ID],
			Days:           daysByRule[row.ID],
			StartDate:      row.StartDate.String,
			EndDate:        row.EndDate.String,
			StartTime:      row.StartTime.String,
			EndTime:        row.EndTime.String,
			Multiplier:     row.Multiplier,
			FixedSurcharge: row.FixedSurchargeCents,
			IsActive:       row.IsActive,
			Priority:       row.Priority,
		}
		if rule.CourtIDs == nil {
			rule.CourtIDs = []int64{}
		}
		if rule.Days == nil {
			rule.Days = []int{}
		}
		rules = append(rules, rule)
	}
	return rules
}

// ToCreateParams maps a rule onto its row parameters.
func (r Rule) ToCreateParams() dbgen.CreatePricingRuleParams {
	return dbgen.CreatePricingRuleParams{
		Name:                r.Name,
		Kind:                string(r.Kind),
		Description:         nullString(r.Description),
		ApplyTo:             string(r.Scope),
		StartDate:           nullString(r.StartDate),
		EndDate:             nullString(r.EndDate),
		StartTime:           nullString(r.StartTime),
		EndTime:             nullString(r.EndTime),
		Multiplier:          r.Multiplier,
		FixedSurchargeCents: r.FixedSurcharge,
		IsActive:            r.IsActive,
		Priority:            r.Priority,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
