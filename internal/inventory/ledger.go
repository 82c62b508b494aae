// Package inventory keeps equipment counts consistent with reservations.
//
// Two counters guard stock. The persisted available_stock column is a coarse
// counter decremented on commit and incremented on release, independent of
// time. The window-aware check additionally subtracts quantities already held
// by blocking reservations that overlap the requested window. A request must
// pass both.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/availability"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/models"
)

type Store interface {
	GetEquipment(ctx context.Context, id int64) (dbgen.Equipment, error)
	SumOverlappingEquipmentQuantity(ctx context.Context, arg dbgen.SumOverlappingEquipmentQuantityParams) (int64, error)
	DecrementEquipmentStock(ctx context.Context, arg dbgen.DecrementEquipmentStockParams) (int64, error)
	IncrementEquipmentStock(ctx context.Context, arg dbgen.IncrementEquipmentStockParams) (int64, error)
}

type Result struct {
	Available bool              `json:"available"`
	Shortages []apperr.Shortage `json:"shortages"`
}

// Err returns the InventoryShortage for an unavailable result, nil otherwise.
func (r Result) Err() error {
	if r.Available {
		return nil
	}
	return apperr.Shortfall(r.Shortages)
}

// Normalize merges duplicate lines for the same item and orders lines by
// item id. Non-positive quantities are rejected.
func Normalize(lines []models.EquipmentLine) ([]models.EquipmentLine, error) {
	totals := make(map[int64]int64, len(lines))
	for _, line := range lines {
		if line.EquipmentID <= 0 {
			return nil, apperr.New(apperr.InvalidInput, "invalid_equipment", "equipment id must be a positive integer")
		}
		if line.Quantity <= 0 {
			return nil, apperr.Newf(apperr.InvalidInput, "invalid_quantity",
				"quantity for equipment %d must be greater than zero", line.EquipmentID)
		}
		totals[line.EquipmentID] += line.Quantity
	}

	merged := make([]models.EquipmentLine, 0, len(totals))
	for id, qty := range totals {
		merged = append(merged, models.EquipmentLine{EquipmentID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].EquipmentID < merged[j].EquipmentID })
	return merged, nil
}

// Check reports every line that cannot be satisfied for w. excludeID skips
// the reservation being re-validated; pass 0 when there is none.
func Check(ctx context.Context, store Store, lines []models.EquipmentLine, w availability.Window, excludeID int64) (Result, error) {
	lines, err := Normalize(lines)
	if err != nil {
		return Result{}, err
	}

	result := Result{Available: true, Shortages: []apperr.Shortage{}}
	for _, line := range lines {
		item, err := store.GetEquipment(ctx, line.EquipmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				result.Available = false
				result.Shortages = append(result.Shortages, apperr.Shortage{
					ItemID:    line.EquipmentID,
					Requested: line.Quantity,
					Available: 0,
				})
				continue
			}
			return Result{}, fmt.Errorf("load equipment %d: %w", line.EquipmentID, err)
		}

		committed, err := store.SumOverlappingEquipmentQuantity(ctx, dbgen.SumOverlappingEquipmentQuantityParams{
			EquipmentID: line.EquipmentID,
			Statuses:    models.BlockingStatuses(),
			WindowStart: w.Start,
			WindowEnd:   w.End,
			ExcludeID:   excludeID,
		})
		if err != nil {
			return Result{}, fmt.Errorf("sum overlapping equipment %d: %w", line.EquipmentID, err)
		}

		effective := EffectiveAvailability(item.AvailableStock, committed)
		if item.AvailableStock < line.Quantity || effective < line.Quantity {
			result.Available = false
			result.Shortages = append(result.Shortages, apperr.Shortage{
				ItemID:    line.EquipmentID,
				Requested: line.Quantity,
				Available: effective,
			})
		}
	}
	return result, nil
}

// EffectiveAvailability is the persisted counter less quantities held by
// overlapping reservations, floored at zero.
func EffectiveAvailability(persisted, overlappingCommitted int64) int64 {
	return max(0, persisted-overlappingCommitted)
}

// Commit decrements persisted stock for each line. The decrement is guarded
// in SQL so the counter never goes negative; a failed guard is reported as an
// InventoryShortage and the caller's transaction must be rolled back.
func Commit(ctx context.Context, store Store, lines []models.EquipmentLine) error {
	for _, line := range lines {
		affected, err := store.DecrementEquipmentStock(ctx, dbgen.DecrementEquipmentStockParams{
			Quantity: line.Quantity,
			ID:       line.EquipmentID,
		})
		if err != nil {
			return fmt.Errorf("decrement equipment %d: %w", line.EquipmentID, err)
		}
		if affected == 0 {
			var available int64
			if item, err := store.GetEquipment(ctx, line.EquipmentID); err == nil {
				available = item.AvailableStock
			}
			return apperr.Shortfall([]apperr.Shortage{{
				ItemID:    line.EquipmentID,
				Requested: line.Quantity,
				Available: available,
			}})
		}
	}
	return nil
}

// Release returns the recorded quantities to persisted stock.
func Release(ctx context.Context, store Store, lines []models.EquipmentLine) error {
	for _, line := range lines {
		affected, err := store.IncrementEquipmentStock(ctx, dbgen.IncrementEquipmentStockParams{
			Quantity: line.Quantity,
			ID:       line.EquipmentID,
		})
		if err != nil {
			return fmt.Errorf("increment equipment %d: %w", line.EquipmentID, err)
		}
		if affected == 0 {
			log.Ctx(ctx).Warn().
				Int64("equipment_id", line.EquipmentID).
				Int64("quantity", line.Quantity).
				Msg("Released equipment no longer exists")
		}
	}
	return nil
}
