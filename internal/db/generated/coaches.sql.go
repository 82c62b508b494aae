// Hand-maintained in sqlc's output shape. Keep in sync with
// internal/db/queries/coaches.sql; do not regenerate over it.

package dbgen

import (
	"context"
)

const addCoachAvailability = `-- name: AddCoachAvailability :exec
INSERT INTO coach_availability (coach_id, position, day_of_week, start_time, end_time, is_active)
VALUES (?, ?, ?, ?, ?, ?)
`

type AddCoachAvailabilityParams struct {
	CoachID   int64
	Position  int64
	DayOfWeek int64
	StartTime string
	EndTime   string
	IsActive  bool
}

func (q *Queries) AddCoachAvailability(ctx context.Context, arg AddCoachAvailabilityParams) error {
	_, err := q.db.ExecContext(ctx, addCoachAvailability,
		arg.CoachID,
		arg.Position,
		arg.DayOfWeek,
		arg.StartTime,
		arg.EndTime,
		arg.IsActive,
	)
	return err
}

const addCoachSport = `-- name: AddCoachSport :exec
INSERT INTO coach_sports (coach_id, sport_type) VALUES (?, ?)
`

type AddCoachSportParams struct {
	CoachID   int64
	SportType string
}

func (q *Queries) AddCoachSport(ctx context.Context, arg AddCoachSportParams) error {
	_, err := q.db.ExecContext(ctx, addCoachSport, arg.CoachID, arg.SportType)
	return err
}

const createCoach = `-- name: CreateCoach :one
INSERT INTO coaches (name, email, hourly_rate_cents, status)
VALUES (?, ?, ?, ?)
RETURNING id, name, email, hourly_rate_cents, status, created_at, updated_at
`

type CreateCoachParams struct {
	Name            string
	Email           string
	HourlyRateCents int64
	Status          string
}

func (q *Queries) CreateCoach(ctx context.Context, arg CreateCoachParams) (Coach, error) {
	row := q.db.QueryRowContext(ctx, createCoach,
		arg.Name,
		arg.Email,
		arg.HourlyRateCents,
		arg.Status,
	)
	var i Coach
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.HourlyRateCents,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteCoach = `-- name: DeleteCoach :execrows
DELETE FROM coaches WHERE id = ?
`

func (q *Queries) DeleteCoach(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCoach, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteCoachAvailability = `-- name: DeleteCoachAvailability :exec
DELETE FROM coach_availability WHERE coach_id = ?
`

func (q *Queries) DeleteCoachAvailability(ctx context.Context, coachID int64) error {
	_, err := q.db.ExecContext(ctx, deleteCoachAvailability, coachID)
	return err
}

const deleteCoachSports = `-- name: DeleteCoachSports :exec
DELETE FROM coach_sports WHERE coach_id = ?
`

func (q *Queries) DeleteCoachSports(ctx context.Context, coachID int64) error {
	_, err := q.db.ExecContext(ctx, deleteCoachSports, coachID)
	return err
}

const getCoach = `-- name: GetCoach :one
SELECT id, name, email, hourly_rate_cents, status, created_at, updated_at FROM coaches WHERE id = ?
`

func (q *Queries) GetCoach(ctx context.Context, id int64) (Coach, error) {
	row := q.db.QueryRowContext(ctx, getCoach, id)
	var i Coach
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.HourlyRateCents,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listAvailableCoachesForSport = `-- name: ListAvailableCoachesForSport :many
SELECT c.id, c.name, c.email, c.hourly_rate_cents, c.status, c.created_at, c.updated_at FROM coaches c
JOIN coach_sports cs ON cs.coach_id = c.id
WHERE c.status = 'available'
  AND cs.sport_type = ?
ORDER BY c.name, c.id
`

func (q *Queries) ListAvailableCoachesForSport(ctx context.Context, sportType string) ([]Coach, error) {
	rows, err := q.db.QueryContext(ctx, listAvailableCoachesForSport, sportType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Coach
	for rows.Next() {
		var i Coach
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Email,
			&i.HourlyRateCents,
			&i.Status,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
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

const listCoachAvailability = `-- name: ListCoachAvailability :many
SELECT id, coach_id, position, day_of_week, start_time, end_time, is_active FROM coach_availability
WHERE coach_id = ?
ORDER BY position, id
`

func (q *Queries) ListCoachAvailability(ctx context.Context, coachID int64) ([]CoachAvailability, error) {
	rows, err := q.db.QueryContext(ctx, listCoachAvailability, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CoachAvailability
	for rows.Next() {
		var i CoachAvailability
		if err := rows.Scan(
			&i.ID,
			&i.CoachID,
			&i.Position,
			&i.DayOfWeek,
			&i.StartTime,
			&i.EndTime,
			&i.IsActive,
		); err != nil {
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

const listCoachSports = `-- name: ListCoachSports :many
SELECT sport_type FROM coach_sports WHERE coach_id = ? ORDER BY sport_type
`

func (q *Queries) ListCoachSports(ctx context.Context, coachID int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listCoachSports, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var sport_type string
		if err := rows.Scan(&sport_type); err != nil {
			return nil, err
		}
		items = append(items, sport_type)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCoaches = `-- name: ListCoaches :many
SELECT id, name, email, hourly_rate_cents, status, created_at, updated_at FROM coaches ORDER BY name, id
`

func (q *Queries) ListCoaches(ctx context.Context) ([]Coach, error) {
	rows, err := q.db.QueryContext(ctx, listCoaches)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Coach
	for rows.Next() {
		var i Coach
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Email,
			&i.HourlyRateCents,
			&i.Status,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
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

const updateCoach = `-- name: UpdateCoach :one
UPDATE coaches
SET name = ?,
    email = ?,
    hourly_rate_cents = ?,
    status = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, name, email, hourly_rate_cents, status, created_at, updated_at
`

type UpdateCoachParams struct {
	Name            string
	Email           string
	HourlyRateCents int64
	Status          string
	ID              int64
}

func (q *Queries) UpdateCoach(ctx context.Context, arg UpdateCoachParams) (Coach, error) {
	row := q.db.QueryRowContext(ctx, updateCoach,
		arg.Name,
		arg.Email,
		arg.HourlyRateCents,
		arg.Status,
		arg.ID,
	)
	var i Coach
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.HourlyRateCents,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
