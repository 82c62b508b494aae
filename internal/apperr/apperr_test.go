package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsFindsWrappedError(t *testing.T) {
	base := New(PolicyViolation, "cancellation_window", "too late")
	wrapped := fmt.Errorf("cancel reservation 4: %w", base)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, base, got)
	assert.True(t, IsKind(wrapped, PolicyViolation))
	assert.False(t, IsKind(wrapped, NotFound))
}

func TestPlainErrorsAreNotClassified(t *testing.T) {
	_, ok := As(errors.New("disk I/O error"))
	assert.False(t, ok)
	assert.False(t, IsKind(nil, InvalidInput))
}

func TestShortfallMessage(t *testing.T) {
	err := Shortfall([]Shortage{{ItemID: 3, Requested: 2, Available: 0}})

	assert.Equal(t, InventoryShortage, err.Kind)
	assert.Equal(t, "inventory_shortage: insufficient_equipment: 1 equipment line(s) cannot be satisfied", err.Error())
	assert.Equal(t, int64(0), err.Shortages[0].Available)
}
