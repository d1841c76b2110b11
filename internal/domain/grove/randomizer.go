package grove

import (
	"fmt"
	"math"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

// Source is the random stream the engine draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// WeightTriple is a relative color distribution (Yellow, Blue, Purple).
// The components need not sum to 1.
type WeightTriple struct {
	Yellow float64 `json:"yellow" yaml:"yellow"`
	Blue   float64 `json:"blue" yaml:"blue"`
	Purple float64 `json:"purple" yaml:"purple"`
}

// EqualWeights gives every color the same chance
func EqualWeights() WeightTriple {
	return WeightTriple{Yellow: 1, Blue: 1, Purple: 1}
}

// Sum returns the total weight
func (w WeightTriple) Sum() float64 {
	return w.Yellow + w.Blue + w.Purple
}

// Swapped exchanges the two minority (non-yellow) components
func (w WeightTriple) Swapped() WeightTriple {
	return WeightTriple{Yellow: w.Yellow, Blue: w.Purple, Purple: w.Blue}
}

func (w WeightTriple) String() string {
	return fmt.Sprintf("(%g, %g, %g)", w.Yellow, w.Blue, w.Purple)
}

// Validate rejects negative, non-finite or all-zero weights
func (w WeightTriple) Validate() error {
	for _, v := range [3]float64{w.Yellow, w.Blue, w.Purple} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return shared.NewValidationError("weights", fmt.Sprintf("weight %v must be a finite non-negative number", v))
		}
	}
	if w.Sum() <= 0 {
		return shared.NewValidationError("weights", "at least one weight must be positive")
	}
	return nil
}

// PickColor draws one color from the weight triple
func PickColor(rng Source, w WeightTriple) Color {
	x := rng.Float64() * w.Sum()
	if x < w.Yellow {
		return Yellow
	}
	if x < w.Yellow+w.Blue {
		return Blue
	}
	return Purple
}

// pickWeighted returns the index of a weighted draw over weights
func pickWeighted(rng Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if x < cum {
			return i
		}
	}
	return len(weights) - 1
}
