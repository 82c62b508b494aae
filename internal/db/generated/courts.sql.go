// Hand-maintained in sqlc's output shape. Keep in sync with
// internal/db/queries/courts.sql; do not regenerate over it.

package dbgen

import (
	"context"
	"database/sql"
)

const createCourt = `-- name: CreateCourt :one
INSERT INTO courts (name, court_type, sport_type, base_price_cents, status, description)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, name, court_type, sport_type, base_price_cents, status, description, created_at, updated_at
`

type CreateCourtParams struct {
	Name           string
	CourtType      string
	SportType      string
	BasePriceCents int64
	Status         string
	Description    sql.NullString
}

func (q *Queries) CreateCourt(ctx context.Context, arg CreateCourtParams) (Court, error) {
	row := q.db.QueryRowContext(ctx, createCourt,
		arg.Name,
		arg.CourtType,
		arg.SportType,
		arg.BasePriceCents,
		arg.Status,
		arg.Description,
	)
	var i Court
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.CourtType,
		&i.SportType,
		&i.BasePriceCents,
		&i.Status,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCourt = `-- name: GetCourt :one
SELECT id, name, court_type, sport_type, base_price_cents, status, description, created_at, updated_at FROM courts WHERE id = ?
`

func (q *Queries) GetCourt(ctx context.Context, id int64) (Court, error) {
	row := q.db.QueryRowContext(ctx, getCourt, id)
	var i Court
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.CourtType,
		&i.SportType,
		&i.BasePriceCents,
		&i.Status,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listCourts = `-- name: ListCourts :many
SELECT id, name, court_type, sport_type, base_price_cents, status, description, created_at, updated_at FROM courts ORDER BY name, id
`

func (q *Queries) ListCourts(ctx context.Context) ([]Court, error) {
	rows, err := q.db.QueryContext(ctx, listCourts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Court
	for rows.Next() {
		var i Court
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.CourtType,
			&i.SportType,
			&i.BasePriceCents,
			&i.Status,
			&i.Description,
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

const setCourtStatus = `-- name: SetCourtStatus :execrows
UPDATE courts
SET status = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

type SetCourtStatusParams struct {
	Status string
	ID     int64
}

func (q *Queries) SetCourtStatus(ctx context.Context, arg SetCourtStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, setCourtStatus, arg.Status, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateCourt = `-- name: UpdateCourt :one
UPDATE courts
SET name = ?,
    court_type = ?,
    sport_type = ?,
    base_price_cents = ?,
    status = ?,
    description = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, name, court_type, sport_type, base_price_cents, status, description, created_at, updated_at
`

type UpdateCourtParams struct {
	Name           string
	CourtType      string
	SportType      string
	BasePriceCents int64
	Status         string
	Description    sql.NullString
	ID             int64
}

func (q *Queries) UpdateCourt(ctx context.Context, arg UpdateCourtParams) (Court, error) {
	row := q.db.QueryRowContext(ctx, updateCourt,
		arg.Name,
		arg.CourtType,
		arg.SportType,
		arg.BasePriceCents,
		arg.Status,
		arg.Description,
		arg.ID,
	)
	var i Court
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.CourtType,
		&i.SportType,
		&i.BasePriceCents,
		&i.Status,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
