package grove

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

func TestHarvestOrder_RejectsDuplicates(t *testing.T) {
	_, err := NewHarvestOrder([]int{1, 2, 1})

	var inv *shared.InvariantViolationError
	assert.True(t, errors.As(err, &inv))
}

func TestHarvestOrder_PromoteAfterShiftsSkippedEntries(t *testing.T) {
	// Arrange
	o, err := NewHarvestOrder([]int{5, 6, 1, 3, 2, 4})
	require.NoError(t, err)

	// Act
	err = o.PromoteAfter(1, 4)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6, 4, 1, 3, 2}, o.IDs())
}

func TestHarvestOrder_PromoteAfterNextIsNoop(t *testing.T) {
	o, _ := NewHarvestOrder([]int{1, 2, 3})

	require.NoError(t, o.PromoteAfter(0, 2))

	assert.Equal(t, []int{1, 2, 3}, o.IDs())
}

func TestHarvestOrder_PromoteAfterNeverTouchesProcessedEntries(t *testing.T) {
	o, _ := NewHarvestOrder([]int{1, 2, 3, 4})

	err := o.PromoteAfter(2, 2)

	var inv *shared.InvariantViolationError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "harvest-order", inv.Invariant)
	assert.Equal(t, []int{1, 2, 3, 4}, o.IDs())

	err = o.PromoteAfter(0, 9)
	assert.True(t, errors.As(err, &inv))
}

func TestHarvestOrder_IDsIsACopy(t *testing.T) {
	o, _ := NewHarvestOrder([]int{1, 2})

	ids := o.IDs()
	ids[0] = 7

	assert.Equal(t, 1, o.At(0))
	assert.Equal(t, -1, o.IndexOf(7))
}
