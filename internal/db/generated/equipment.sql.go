// Hand-maintained in sqlc's output shape. Keep in sync with
// internal/db/queries/equipment.sql; do not regenerate over it.

package dbgen

import (
	"context"
	"database/sql"
	"strings"
)

const adjustEquipmentTotalStock = `-- name: AdjustEquipmentTotalStock :execrows
UPDATE equipment
SET total_stock = total_stock + ?,
    available_stock = available_stock + ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
  AND available_stock + ? >= 0
`

type AdjustEquipmentTotalStockParams struct {
	Delta int64
	ID    int64
}

func (q *Queries) AdjustEquipmentTotalStock(ctx context.Context, arg AdjustEquipmentTotalStockParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, adjustEquipmentTotalStock,
		arg.Delta,
		arg.Delta,
		arg.ID,
		arg.Delta,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countEquipmentReservations = `-- name: CountEquipmentReservations :one
SELECT COUNT(*) FROM reservation_equipment re
JOIN reservations r ON r.id = re.reservation_id
WHERE re.equipment_id = ?
  AND r.status IN (/*SLICE:statuses*/?)
`

type CountEquipmentReservationsParams struct {
	EquipmentID int64
	Statuses    []string
}

func (q *Queries) CountEquipmentReservations(ctx context.Context, arg CountEquipmentReservationsParams) (int64, error) {
	query := countEquipmentReservations
	var queryParams []interface{}
	queryParams = append(queryParams, arg.EquipmentID)
	if len(arg.Statuses) > 0 {
		for _, v := range arg.Statuses {
			queryParams = append(queryParams, v)
		}
		query = strings.Replace(query, "/*SLICE:statuses*/?", strings.Repeat(",?", len(arg.Statuses))[1:], 1)
	} else {
		query = strings.Replace(query, "/*SLICE:statuses*/?", "NULL", 1)
	}
	row := q.db.QueryRowContext(ctx, query, queryParams...)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createEquipment = `-- name: CreateEquipment :one
INSERT INTO equipment (name, equipment_type, total_stock, available_stock, rental_price_cents, description, status)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, name, equipment_type, total_stock, available_stock, rental_price_cents, description, status, created_at, updated_at
`

type CreateEquipmentParams struct {
	Name             string
	EquipmentType    string
	TotalStock       int64
	AvailableStock   int64
	RentalPriceCents int64
	Description      sql.NullString
	Status           string
}

func (q *Queries) CreateEquipment(ctx context.Context, arg CreateEquipmentParams) (Equipment, error) {
	row := q.db.QueryRowContext(ctx, createEquipment,
		arg.Name,
		arg.EquipmentType,
		arg.TotalStock,
		arg.AvailableStock,
		arg.RentalPriceCents,
		arg.Description,
		arg.Status,
	)
	var i Equipment
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.EquipmentType,
		&i.TotalStock,
		&i.AvailableStock,
		&i.RentalPriceCents,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const decrementEquipmentStock = `-- name: DecrementEquipmentStock :execrows
UPDATE equipment
SET available_stock = available_stock - ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
  AND available_stock >= ?
`

type DecrementEquipmentStockParams struct {
	Quantity int64
	ID       int64
}

func (q *Queries) DecrementEquipmentStock(ctx context.Context, arg DecrementEquipmentStockParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, decrementEquipmentStock, arg.Quantity, arg.ID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteEquipment = `-- name: DeleteEquipment :execrows
DELETE FROM equipment WHERE id = ?
`

func (q *Queries) DeleteEquipment(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteEquipment, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getEquipment = `-- name: GetEquipment :one
SELECT id, name, equipment_type, total_stock, available_stock, rental_price_cents, description, status, created_at, updated_at FROM equipment WHERE id = ?
`

func (q *Queries) GetEquipment(ctx context.Context, id int64) (Equipment, error) {
	row := q.db.QueryRowContext(ctx, getEquipment, id)
	var i Equipment
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.EquipmentType,
		&i.TotalStock,
		&i.AvailableStock,
		&i.RentalPriceCents,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const incrementEquipmentStock = `-- name: IncrementEquipmentStock :execrows
UPDATE equipment
SET available_stock = available_stock + ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

type IncrementEquipmentStockParams struct {
	Quantity int64
	ID       int64
}

func (q *Queries) IncrementEquipmentStock(ctx context.Context, arg IncrementEquipmentStockParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, incrementEquipmentStock, arg.Quantity, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listEquipment = `-- name: ListEquipment :many
SELECT id, name, equipment_type, total_stock, available_stock, rental_price_cents, description, status, created_at, updated_at FROM equipment ORDER BY name, id
`

func (q *Queries) ListEquipment(ctx context.Context) ([]Equipment, error) {
	rows, err := q.db.QueryContext(ctx, listEquipment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEquipmentRows(rows)
}

const listEquipmentByType = `-- name: ListEquipmentByType :many
SELECT id, name, equipment_type, total_stock, available_stock, rental_price_cents, description, status, created_at, updated_at FROM equipment WHERE equipment_type = ? ORDER BY name, id
`

func (q *Queries) ListEquipmentByType(ctx context.Context, equipmentType string) ([]Equipment, error) {
	rows, err := q.db.QueryContext(ctx, listEquipmentByType, equipmentType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEquipmentRows(rows)
}

func scanEquipmentRows(rows *sql.Rows) ([]Equipment, error) {
	var items []Equipment
	for rows.Next() {
		var i Equipment
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.EquipmentType,
			&i.TotalStock,
			&i.AvailableStock,
			&i.RentalPriceCents,
			&i.Description,
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

const updateEquipment = `-- name: UpdateEquipment :one
UPDATE equipment
SET name = ?,
    equipment_type = ?,
    rental_price_cents = ?,
    description = ?,
    status = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, name, equipment_type, total_stock, available_stock, rental_price_cents, description, status, created_at, updated_at
`

type UpdateEquipmentParams struct {
	Name             string
	EquipmentType    string
	RentalPriceCents int64
	Description      sql.NullString
	Status           string
	ID               int64
}

func (q *Queries) UpdateEquipment(ctx context.Context, arg UpdateEquipmentParams) (Equipment, error) {
	row := q.db.QueryRowContext(ctx, updateEquipment,
		arg.Name,
		arg.EquipmentType,
		arg.RentalPriceCents,
		arg.Description,
		arg.Status,
		arg.ID,
	)
	var i Equipment
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.EquipmentType,
		&i.TotalStock,
		&i.AvailableStock,
		&i.RentalPriceCents,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
