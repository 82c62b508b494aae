package inventory

import (
	"context"
	"fmt"
	"math"

	"github.com/codr1/courtbook/internal/availability"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/models"
)

type PreviewStore interface {
	ListEquipment(ctx context.Context) ([]dbgen.Equipment, error)
	ListEquipmentByType(ctx context.Context, equipmentType string) ([]dbgen.Equipment, error)
	ListOverlappingEquipmentUsage(ctx context.Context, arg dbgen.ListOverlappingEquipmentUsageParams) ([]dbgen.ListOverlappingEquipmentUsageRow, error)
}

type ItemAvailability struct {
	Equipment      models.Equipment `json:"equipment"`
	AvailableCount int64            `json:"availableCount"`
	BookedCount    int64            `json:"bookedCount"`
	SlotRentalCost int64            `json:"slotRentalCost"`
}

type Preview struct {
	Window        availability.Window `json:"window"`
	DurationHours float64             `json:"durationHours"`
	Available     []ItemAvailability  `json:"available"`
	Unavailable   []ItemAvailability  `json:"unavailable"`
}

// SlotRentalCost is the rental price scaled by the window's length. It is only
// used for previews; a booked reservation charges the flat equipment fee.
func SlotRentalCost(rentalPrice int64, hours float64) int64 {
	return int64(math.Round(float64(rentalPrice) * hours))
}

// BuildPreview lists equipment, optionally filtered by type, with the
// quantity still free for w. It takes no locks and is advisory only.
func BuildPreview(ctx context.Context, store PreviewStore, w availability.Window, equipmentType string) (Preview, error) {
	var (
		items []dbgen.Equipment
		err   error
	)
	if equipmentType != "" {
		items, err = store.ListEquipmentByType(ctx, equipmentType)
	} else {
		items, err = store.ListEquipment(ctx)
	}
	if err != nil {
		return Preview{}, fmt.Errorf("list equipment: %w", err)
	}

	usage, err := store.ListOverlappingEquipmentUsage(ctx, dbgen.ListOverlappingEquipmentUsageParams{
		Statuses:    models.BlockingStatuses(),
		WindowStart: w.Start,
		WindowEnd:   w.End,
	})
	if err != nil {
		return Preview{}, fmt.Errorf("list equipment usage: %w", err)
	}
	booked := make(map[int64]int64, len(usage))
	for _, row := range usage {
		booked[row.EquipmentID] = row.BookedQuantity
	}

	hours := w.Hours()
	preview := Preview{
		Window:        w,
		DurationHours: math.Round(hours*100) / 100,
		Available:     []ItemAvailability{},
		Unavailable:   []ItemAvailability{},
	}
	for _, item := range items {
		entry := ItemAvailability{
			Equipment:      models.EquipmentFromDB(item),
			BookedCount:    booked[item.ID],
			AvailableCount: EffectiveAvailability(item.AvailableStock, booked[item.ID]),
			SlotRentalCost: SlotRentalCost(item.RentalPriceCents, hours),
		}
		if entry.AvailableCount > 0 {
			preview.Available = append(preview.Available, entry)
		} else {
			preview.Unavailable = append(preview.Unavailable, entry)
		}
	}
	return preview, nil
}
