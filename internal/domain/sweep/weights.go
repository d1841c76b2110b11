package sweep

import (
	"fmt"
	"math"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

// DefaultWeightValues is the candidate value set swept by default
func DefaultWeightValues() []float64 {
	return []float64{0.55, 0.65, 0.75, 0.8, 0.9, 1}
}

// ReducedMarker returns the designated "reduced" value of a set: its minimum
func ReducedMarker(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Min(m, v)
	}
	return m
}

// EnumerateWeightTriples returns every (Yellow, Blue, Purple) triple drawn
// with repetition from values that contains reduced in at least one
// component. Triples equal under swapping Blue and Purple are returned once,
// in the orientation met first in lexicographic order of values.
func EnumerateWeightTriples(values []float64, reduced float64) ([]grove.WeightTriple, error) {
	if len(values) == 0 {
		return nil, shared.NewValidationError("weight_values", "must not be empty")
	}
	found := false
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, shared.NewValidationError("weight_values", fmt.Sprintf("weight %v must be a finite non-negative number", v))
		}
		if v == reduced {
			found = true
		}
	}
	if !found {
		return nil, shared.NewValidationError("reduced_weight", fmt.Sprintf("%v is not one of the weight values", reduced))
	}

	seen := make(map[grove.WeightTriple]bool)
	var out []grove.WeightTriple
	for _, y := range values {
		for _, b := range values {
			for _, p := range values {
				if y != reduced && b != reduced && p != reduced {
					continue
				}
				w := grove.WeightTriple{Yellow: y, Blue: b, Purple: p}
				if seen[w] || seen[w.Swapped()] {
					continue
				}
				seen[w] = true
				if w.Sum() > 0 {
					out = append(out, w)
				}
			}
		}
	}
	return out, nil
}
