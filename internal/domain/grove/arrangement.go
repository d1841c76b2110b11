package grove

import (
	"fmt"
	"strings"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

// ArrangedCrop is a user-fixed slot: its color and starting seed counts
type ArrangedCrop struct {
	Color Color
	Tiers Tiers
}

// Arrangement is a user-chosen grove with fixed colors and an explicit
// harvest permutation of slot labels ("A1".."E2"). Slots missing from
// Crops are empty and never harvestable.
type Arrangement struct {
	Crops       map[string]ArrangedCrop
	Permutation []string
}

// Evaluation summarizes repeated harvests of one arrangement
type Evaluation struct {
	Iterations  int
	Mean        float64
	Variance    float64
	StdDev      float64
	Permutation []string
}

// Validate checks labels, tier counts and the permutation
func (a Arrangement) Validate() error {
	for label, c := range a.Crops {
		if _, ok := IDForLabel(label); !ok {
			return shared.NewValidationError("crops", fmt.Sprintf("unknown slot label %q", label))
		}
		if c.Color == ColorNone {
			return shared.NewValidationError("crops", fmt.Sprintf("slot %s has no color", label))
		}
		t := c.Tiers
		if t.One < 0 || t.Two < 0 || t.Three < 0 || t.Four < 0 {
			return shared.NewValidationError("crops", fmt.Sprintf("slot %s has a negative tier count", label))
		}
	}
	if len(a.Permutation) == 0 {
		return shared.NewValidationError("permutation", "must name at least one crop")
	}
	seen := make(map[int]bool, len(a.Permutation))
	for _, label := range a.Permutation {
		id, ok := IDForLabel(label)
		if !ok {
			return shared.NewValidationError("permutation", fmt.Sprintf("unknown slot label %q", label))
		}
		if _, present := a.lookup(label); !present {
			return shared.NewValidationError("permutation", fmt.Sprintf("slot %s is empty", label))
		}
		if seen[id] {
			return shared.NewValidationError("permutation", fmt.Sprintf("slot %s listed twice", label))
		}
		seen[id] = true
	}
	return nil
}

func (a Arrangement) lookup(label string) (ArrangedCrop, bool) {
	if c, ok := a.Crops[label]; ok {
		return c, true
	}
	c, ok := a.Crops[strings.ToUpper(label)]
	return c, ok
}

// Grove builds the fixed grove and resolves the permutation to crop ids
func (a Arrangement) Grove() (*Grove, []int, error) {
	if err := a.Validate(); err != nil {
		return nil, nil, err
	}
	var specs [CropCount]CropSpec
	for i := range specs {
		if c, ok := a.lookup(LabelForID(i + 1)); ok {
			specs[i] = CropSpec{Color: c.Color, Tiers: c.Tiers, Harvestable: true}
		}
	}
	ids := make([]int, len(a.Permutation))
	for i, label := range a.Permutation {
		ids[i], _ = IDForLabel(label)
	}
	return NewGroveFromSpecs(specs), ids, nil
}

// EvaluateArrangement harvests the arrangement in permutation order for
// the given number of iterations. Colors stay fixed and no re-ordering
// heuristics run; destruction and upgrade propagation work as in
// RunIteration.
func EvaluateArrangement(a Arrangement, params Params, iterations int, rng Source) (Evaluation, error) {
	if iterations < 1 {
		return Evaluation{}, shared.NewValidationError("iterations", "must be at least 1")
	}
	g, ids, err := a.Grove()
	if err != nil {
		return Evaluation{}, err
	}
	s, err := NewSimulator(params, rng)
	if err != nil {
		return Evaluation{}, err
	}
	order, err := NewHarvestOrder(ids)
	if err != nil {
		return Evaluation{}, err
	}

	var stats RunningStats
	for n := 0; n < iterations; n++ {
		g.Restore()
		total := 0.0
		for i := 0; i < order.Len(); i++ {
			c, err := g.Crop(order.At(i))
			if err != nil {
				return Evaluation{}, err
			}
			if c.Harvestable {
				total += s.harvestCrop(g, c)
			}
		}
		stats.Add(total)
	}

	return Evaluation{
		Iterations:  stats.Count(),
		Mean:        stats.Mean(),
		Variance:    stats.Variance(),
		StdDev:      stats.StdDev(),
		Permutation: append([]string(nil), a.Permutation...),
	}, nil
}
