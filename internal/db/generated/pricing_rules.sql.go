// Hand-maintained in sqlc's output shape. Keep in sync with
// internal/db/queries/pricing_rules.sql; do not regenerate over it.

package dbgen

import (
	"context"
	"database/sql"
)

const pricingRuleColumns = `id, name, kind, description, apply_to, start_date, end_date, start_time, end_time, multiplier, fixed_surcharge_cents, is_active, priority, created_at, updated_at`

const addPricingRuleCourt = `-- name: AddPricingRuleCourt :exec
INSERT INTO pricing_rule_courts (rule_id, court_id) VALUES (?, ?)
`

type AddPricingRuleCourtParams struct {
	RuleID  int64
	CourtID int64
}

func (q *Queries) AddPricingRuleCourt(ctx context.Context, arg AddPricingRuleCourtParams) error {
	_, err := q.db.ExecContext(ctx, addPricingRuleCourt, arg.RuleID, arg.CourtID)
	return err
}

const addPricingRuleDay = `-- name: AddPricingRuleDay :exec
INSERT INTO pricing_rule_days (rule_id, day_of_week) VALUES (?, ?)
`

type AddPricingRuleDayParams struct {
	RuleID    int64
	DayOfWeek int64
}

func (q *Queries) AddPricingRuleDay(ctx context.Context, arg AddPricingRuleDayParams) error {
	_, err := q.db.ExecContext(ctx, addPricingRuleDay, arg.RuleID, arg.DayOfWeek)
	return err
}

const createPricingRule = `-- name: CreatePricingRule :one
INSERT INTO pricing_rules (
    name, kind, description, apply_to, start_date, end_date, start_time, end_time,
    multiplier, fixed_surcharge_cents, is_active, priority
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + pricingRuleColumns + `
`

type CreatePricingRuleParams struct {
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
}

func (q *Queries) CreatePricingRule(ctx context.Context, arg CreatePricingRuleParams) (PricingRule, error) {
	row := q.db.QueryRowContext(ctx, createPricingRule,
		arg.Name,
		arg.Kind,
		arg.Description,
		arg.ApplyTo,
		arg.StartDate,
		arg.EndDate,
		arg.StartTime,
		arg.EndTime,
		arg.Multiplier,
		arg.FixedSurchargeCents,
		arg.IsActive,
		arg.Priority,
	)
	return scanPricingRule(row)
}

const deletePricingRule = `-- name: DeletePricingRule :execrows
DELETE FROM pricing_rules WHERE id = ?
`

func (q *Queries) DeletePricingRule(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePricingRule, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deletePricingRuleCourts = `-- name: DeletePricingRuleCourts :exec
DELETE FROM pricing_rule_courts WHERE rule_id = ?
`

func (q *Queries) DeletePricingRuleCourts(ctx context.Context, ruleID int64) error {
	_, err := q.db.ExecContext(ctx, deletePricingRuleCourts, ruleID)
	return err
}

const deletePricingRuleDays = `-- name: DeletePricingRuleDays :exec
DELETE FROM pricing_rule_days WHERE rule_id = ?
`

func (q *Queries) DeletePricingRuleDays(ctx context.Context, ruleID int64) error {
	_, err := q.db.ExecContext(ctx, deletePricingRuleDays, ruleID)
	return err
}

const getPricingRule = `-- name: GetPricingRule :one
SELECT ` + pricingRuleColumns + ` FROM pricing_rules WHERE id = ?
`

func (q *Queries) GetPricingRule(ctx context.Context, id int64) (PricingRule, error) {
	row := q.db.QueryRowContext(ctx, getPricingRule, id)
	return scanPricingRule(row)
}

const listActivePricingRules = `-- name: ListActivePricingRules :many
SELECT ` + pricingRuleColumns + ` FROM pricing_rules WHERE is_active = 1 ORDER BY priority DESC, id
`

func (q *Queries) ListActivePricingRules(ctx context.Context) ([]PricingRule, error) {
	return q.listPricingRules(ctx, listActivePricingRules)
}

const listPricingRuleCourts = `-- name: ListPricingRuleCourts :many
SELECT rule_id, court_id FROM pricing_rule_courts
ORDER BY rule_id, court_id
`

func (q *Queries) ListPricingRuleCourts(ctx context.Context) ([]PricingRuleCourt, error) {
	rows, err := q.db.QueryContext(ctx, listPricingRuleCourts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PricingRuleCourt
	for rows.Next() {
		var i PricingRuleCourt
		if err := rows.Scan(&i.RuleID, &i.CourtID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPricingRuleDays = `-- name: ListPricingRuleDays :many
SELECT rule_id, day_of_week FROM pricing_rule_days
ORDER BY rule_id, day_of_week
`

func (q *Queries) ListPricingRuleDays(ctx context.Context) ([]PricingRuleDay, error) {
	rows, err := q.db.QueryContext(ctx, listPricingRuleDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PricingRuleDay
	for rows.Next() {
		var i PricingRuleDay
		if err := rows.Scan(&i.RuleID, &i.DayOfWeek); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPricingRules = `-- name: ListPricingRules :many
SELECT ` + pricingRuleColumns + ` FROM pricing_rules ORDER BY priority DESC, id
`

func (q *Queries) ListPricingRules(ctx context.Context) ([]PricingRule, error) {
	return q.listPricingRules(ctx, listPricingRules)
}

const updatePricingRule = `-- name: UpdatePricingRule :one
UPDATE pricing_rules
SET name = ?,
    kind = ?,
    description = ?,
    apply_to = ?,
    start_date = ?,
    end_date = ?,
    start_time = ?,
    end_time = ?,
    multiplier = ?,
    fixed_surcharge_cents = ?,
    is_active = ?,
    priority = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING ` + pricingRuleColumns + `
`

type UpdatePricingRuleParams struct {
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
	ID                  int64
}

func (q *Queries) UpdatePricingRule(ctx context.Context, arg UpdatePricingRuleParams) (PricingRule, error) {
	row := q.db.QueryRowContext(ctx, updatePricingRule,
		arg.Name,
		arg.Kind,
		arg.Description,
		arg.ApplyTo,
		arg.StartDate,
		arg.EndDate,
		arg.StartTime,
		arg.EndTime,
		arg.Multiplier,
		arg.FixedSurchargeCents,
		arg.IsActive,
		arg.Priority,
		arg.ID,
	)
	return scanPricingRule(row)
}

func (q *Queries) listPricingRules(ctx context.Context, query string) ([]PricingRule, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PricingRule
	for rows.Next() {
		i, err := scanPricingRule(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPricingRule(row rowScanner) (PricingRule, error) {
	var i PricingRule
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Kind,
		&i.Description,
		&i.ApplyTo,
		&i.StartDate,
		&i.EndDate,
		&i.StartTime,
		&i.EndTime,
		&i.Multiplier,
		&i.FixedSurchargeCents,
		&i.IsActive,
		&i.Priority,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
