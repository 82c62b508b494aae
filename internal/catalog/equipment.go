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
	"github.com/codr1/courtbook/internal/models"
)

type EquipmentInput struct {
	Name          string `json:"name" validate:"required,max=100"`
	EquipmentType string `json:"type" validate:"required,oneof=racket shoes ball other"`
	TotalStock    int64  `json:"totalStock" validate:"gte=0"`
	RentalPrice   int64  `json:"rentalPrice" validate:"gte=0"`
	Description   string `json:"description" validate:"max=500"`
	Status        string `json:"status" validate:"omitempty,oneof=available low_stock unavailable"`
}

func (in EquipmentInput) status() string {
	if in.Status == "" {
		return models.EquipmentStatusAvailable
	}
	return in.Status
}

// ListEquipment returns every item, or only items of equipmentType when set.
func (s *Service) ListEquipment(ctx context.Context, equipmentType string) ([]models.Equipment, error) {
	var (
		rows []dbgen.Equipment
		err  error
	)
	if equipmentType != "" {
		if !models.ValidEquipmentType(equipmentType) {
			return nil, apperr.Newf(apperr.InvalidInput, "invalid_equipment_type", "equipment type %q is not supported", equipmentType)
		}
		rows, err = s.db.Queries.ListEquipmentByType(ctx, equipmentType)
	} else {
		rows, err = s.db.Queries.ListEquipment(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	items := make([]models.Equipment, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.EquipmentFromDB(row))
	}
	return items, nil
}

func (s *Service) GetEquipment(ctx context.Context, id int64) (models.Equipment, error) {
	row, err := s.db.Queries.GetEquipment(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Equipment{}, notFound("equipment", id)
		}
		return models.Equipment{}, fmt.Errorf("get equipment: %w", err)
	}
	return models.EquipmentFromDB(row), nil
}

// CreateEquipment adds an item with its whole stock available.
func (s *Service) CreateEquipment(ctx context.Context, in EquipmentInput) (models.Equipment, error) {
	if err := s.check(in); err != nil {
		return models.Equipment{}, err
	}
	row, err := s.db.Queries.CreateEquipment(ctx, dbgen.CreateEquipmentParams{
		Name:             strings.TrimSpace(in.Name),
		EquipmentType:    in.EquipmentType,
		TotalStock:       in.TotalStock,
		AvailableStock:   in.TotalStock,
		RentalPriceCents: in.RentalPrice,
		Description:      optional(in.Description),
		Status:           in.status(),
	})
	if err != nil {
		return models.Equipment{}, constraintErr("create equipment", err)
	}
	log.Ctx(ctx).Info().Int64("equipment_id", row.ID).Int64("stock", row.TotalStock).Msg("Equipment created")
	return models.EquipmentFromDB(row), nil
}

// UpdateEquipment changes the item's details. A new total stock moves the
// available counter by the same delta, and is refused when that would take
// away units that are currently rented out.
func (s *Service) UpdateEquipment(ctx context.Context, id int64, in EquipmentInput) (models.Equipment, error) {
	if err := s.check(in); err != nil {
		return models.Equipment{}, err
	}

	var updated models.Equipment
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		q := tx.Queries
		current, err := q.GetEquipment(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFound("equipment", id)
			}
			return fmt.Errorf("get equipment: %w", err)
		}

		if delta := in.TotalStock - current.TotalStock; delta != 0 {
			affected, err := q.AdjustEquipmentTotalStock(ctx, dbgen.AdjustEquipmentTotalStockParams{Delta: delta, ID: id})
			if err != nil {
				return fmt.Errorf("adjust equipment stock: %w", err)
			}
			if affected == 0 {
				rented := current.TotalStock - current.AvailableStock
				return apperr.Newf(apperr.PolicyViolation, "stock_in_use",
					"total stock cannot drop below the %d unit(s) currently rented", rented)
			}
		}

		row, err := q.UpdateEquipment(ctx, dbgen.UpdateEquipmentParams{
			Name:             strings.TrimSpace(in.Name),
			EquipmentType:    in.EquipmentType,
			RentalPriceCents: in.RentalPrice,
			Description:      optional(in.Description),
			Status:           in.status(),
			ID:               id,
		})
		if err != nil {
			return constraintErr("update equipment", err)
		}
		updated = models.EquipmentFromDB(row)
		return nil
	})
	if err != nil {
		return models.Equipment{}, err
	}
	log.Ctx(ctx).Info().Int64("equipment_id", id).Msg("Equipment updated")
	return updated, nil
}

// DeleteEquipment removes an item that no pending or confirmed reservation
// holds.
func (s *Service) DeleteEquipment(ctx context.Context, id int64) error {
	q := s.db.Queries
	held, err := q.CountEquipmentReservations(ctx, dbgen.CountEquipmentReservationsParams{
		EquipmentID: id,
		Statuses:    models.BlockingStatuses(),
	})
	if err != nil {
		return fmt.Errorf("count equipment reservations: %w", err)
	}
	if held > 0 {
		return inUse("equipment", held)
	}
	affected, err := q.DeleteEquipment(ctx, id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	if affected == 0 {
		return notFound("equipment", id)
	}
	log.Ctx(ctx).Info().Int64("equipment_id", id).Msg("Equipment deleted")
	return nil
}
