package availability

import (
	"context"
	"fmt"

	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

type ResourceKind string

const (
	KindCourt ResourceKind = "court"
	KindCoach ResourceKind = "coach"
)

// OverlapStore counts reservations of one resource that intersect a window.
type OverlapStore interface {
	CountOverlappingReservations(ctx context.Context, arg dbgen.CountOverlappingReservationsParams) (int64, error)
}

// IsAvailable reports whether no reservation in one of the blocking statuses
// intersects w for the given court or coach. excludeID skips the reservation
// being modified; pass 0 when there is none.
func IsAvailable(ctx context.Context, store OverlapStore, kind ResourceKind, resourceID int64, w Window, blocking []string, excludeID int64) (bool, error) {
	switch kind {
	case KindCourt, KindCoach:
	default:
		return false, fmt.Errorf("unknown resource kind %q", kind)
	}

	count, err := store.CountOverlappingReservations(ctx, dbgen.CountOverlappingReservationsParams{
		ResourceKind: string(kind),
		ResourceID:   resourceID,
		Statuses:     blocking,
		WindowStart:  w.Start,
		WindowEnd:    w.End,
		ExcludeID:    excludeID,
	})
	if err != nil {
		return false, fmt.Errorf("count overlapping %s reservations: %w", kind, err)
	}
	return count == 0, nil
}
