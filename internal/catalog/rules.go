package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	appdb "github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/pricing"
)

// ListRules returns every pricing rule, active or not, highest priority first.
func (s *Service) ListRules(ctx context.Context) ([]pricing.Rule, error) {
	q := s.db.Queries
	rows, err := q.ListPricingRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules: %w", err)
	}
	return s.attachRuleSets(ctx, q, rows)
}

func (s *Service) GetRule(ctx context.Context, id int64) (pricing.Rule, error) {
	return s.getRule(ctx, s.db.Queries, id)
}

func (s *Service) getRule(ctx context.Context, q *dbgen.Queries, id int64) (pricing.Rule, error) {
	row, err := q.GetPricingRule(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.Rule{}, notFound("pricing_rule", id)
		}
		return pricing.Rule{}, fmt.Errorf("get pricing rule: %w", err)
	}
	rules, err := s.attachRuleSets(ctx, q, []dbgen.PricingRule{row})
	if err != nil {
		return pricing.Rule{}, err
	}
	return rules[0], nil
}

func (s *Service) attachRuleSets(ctx context.Context, q *dbgen.Queries, rows []dbgen.PricingRule) ([]pricing.Rule, error) {
	days, err := q.ListPricingRuleDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pricing rule days: %w", err)
	}
	courts, err := q.ListPricingRuleCourts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pricing rule courts: %w", err)
	}
	return pricing.RulesFromDB(rows, days, courts), nil
}

func validateRule(rule pricing.Rule) error {
	if err := rule.Validate(); err != nil {
		return apperr.New(apperr.InvalidInput, "invalid_rule", err.Error())
	}
	return nil
}

func (s *Service) CreateRule(ctx context.Context, rule pricing.Rule) (pricing.Rule, error) {
	rule.Name = strings.TrimSpace(rule.Name)
	if err := validateRule(rule); err != nil {
		return pricing.Rule{}, err
	}

	var created pricing.Rule
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		q := tx.Queries
		row, err := q.CreatePricingRule(ctx, rule.ToCreateParams())
		if err != nil {
			return constraintErr("create pricing rule", err)
		}
		if err := writeRuleSets(ctx, q, row.ID, rule); err != nil {
			return err
		}
		created, err = s.getRule(ctx, q, row.ID)
		return err
	})
	if err != nil {
		return pricing.Rule{}, err
	}
	log.Ctx(ctx).Info().
		Int64("rule_id", created.ID).
		Str("kind", string(created.Kind)).
		Msg("Pricing rule created")
	return created, nil
}

// UpdateRule replaces a rule, including its day and court sets.
func (s *Service) UpdateRule(ctx context.Context, id int64, rule pricing.Rule) (pricing.Rule, error) {
	rule.Name = strings.TrimSpace(rule.Name)
	if err := validateRule(rule); err != nil {
		return pricing.Rule{}, err
	}

	var updated pricing.Rule
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		q := tx.Queries
		params := rule.ToCreateParams()
		_, err := q.UpdatePricingRule(ctx, dbgen.UpdatePricingRuleParams{
			Name:                params.Name,
			Kind:                params.Kind,
			Description:         params.Description,
			ApplyTo:             params.ApplyTo,
			StartDate:           params.StartDate,
			EndDate:             params.EndDate,
			StartTime:           params.StartTime,
			EndTime:             params.EndTime,
			Multiplier:          params.Multiplier,
			FixedSurchargeCents: params.FixedSurchargeCents,
			IsActive:            params.IsActive,
			Priority:            params.Priority,
			ID:                  id,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFound("pricing_rule", id)
			}
			return constraintErr("update pricing rule", err)
		}
		if err := q.DeletePricingRuleDays(ctx, id); err != nil {
			return fmt.Errorf("clear pricing rule days: %w", err)
		}
		if err := q.DeletePricingRuleCourts(ctx, id); err != nil {
			return fmt.Errorf("clear pricing rule courts: %w", err)
		}
		if err := writeRuleSets(ctx, q, id, rule); err != nil {
			return err
		}
		updated, err = s.getRule(ctx, q, id)
		return err
	})
	if err != nil {
		return pricing.Rule{}, err
	}
	log.Ctx(ctx).Info().Int64("rule_id", id).Msg("Pricing rule updated")
	return updated, nil
}

func writeRuleSets(ctx context.Context, q *dbgen.Queries, ruleID int64, rule pricing.Rule) error {
	seenDays := make(map[int]bool, len(rule.Days))
	for _, day := range rule.Days {
		if seenDays[day] {
			continue
		}
		seenDays[day] = true
		if err := q.AddPricingRuleDay(ctx, dbgen.AddPricingRuleDayParams{RuleID: ruleID, DayOfWeek: int64(day)}); err != nil {
			return constraintErr("add pricing rule day", err)
		}
	}
	seenCourts := make(map[int64]bool, len(rule.CourtIDs))
	for _, courtID := range rule.CourtIDs {
		if seenCourts[courtID] {
			continue
		}
		seenCourts[courtID] = true
		if err := q.AddPricingRuleCourt(ctx, dbgen.AddPricingRuleCourtParams{RuleID: ruleID, CourtID: courtID}); err != nil {
			return constraintErr("add pricing rule court", err)
		}
	}
	return nil
}

func (s *Service) DeleteRule(ctx context.Context, id int64) error {
	affected, err := s.db.Queries.DeletePricingRule(ctx, id)
	if err != nil {
		return fmt.Errorf("delete pricing rule: %w", err)
	}
	if affected == 0 {
		return notFound("pricing_rule", id)
	}
	log.Ctx(ctx).Info().Int64("rule_id", id).Msg("Pricing rule deleted")
	return nil
}
