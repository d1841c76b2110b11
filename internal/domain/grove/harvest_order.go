package grove

import (
	"fmt"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

// HarvestOrder is the mutable sequence of crop ids processed by one
// iteration. Each included id appears exactly once. Re-ordering only
// ever moves entries strictly after the processing cursor.
type HarvestOrder struct {
	ids []int
}

// NewHarvestOrder copies ids into a new order, rejecting duplicates
func NewHarvestOrder(ids []int) (*HarvestOrder, error) {
	o := &HarvestOrder{}
	if err := o.set(ids); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *HarvestOrder) set(ids []int) error {
	o.ids = append(o.ids[:0], ids...)
	for i := range o.ids {
		for j := i + 1; j < len(o.ids); j++ {
			if o.ids[i] == o.ids[j] {
				return shared.NewInvariantViolationError("harvest-order", fmt.Sprintf("crop %d appears twice", o.ids[i]))
			}
		}
	}
	return nil
}

// Len returns the number of entries
func (o *HarvestOrder) Len() int {
	return len(o.ids)
}

// At returns the crop id at position i
func (o *HarvestOrder) At(i int) int {
	return o.ids[i]
}

// IDs returns a copy of the current sequence
func (o *HarvestOrder) IDs() []int {
	out := make([]int, len(o.ids))
	copy(out, o.ids)
	return out
}

// IndexOf returns the position of id, or -1
func (o *HarvestOrder) IndexOf(id int) int {
	for i, v := range o.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// PromoteAfter moves id to position cursor+1, shifting the entries in
// between back by one. The id must currently sit after the cursor.
func (o *HarvestOrder) PromoteAfter(cursor, id int) error {
	pos := o.IndexOf(id)
	if pos < 0 {
		return shared.NewInvariantViolationError("harvest-order", fmt.Sprintf("crop %d is not in the harvest order", id))
	}
	if pos <= cursor {
		return shared.NewInvariantViolationError("harvest-order", fmt.Sprintf("crop %d at position %d was already processed (cursor %d)", id, pos, cursor))
	}
	copy(o.ids[cursor+2:pos+1], o.ids[cursor+1:pos])
	o.ids[cursor+1] = id
	return nil
}
