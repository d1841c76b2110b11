package grove

import (
	"fmt"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

const (
	// PlotCount is the number of plots in a grove
	PlotCount = 5
	// CropsPerPlot is the number of neighbor-paired crops per plot
	CropsPerPlot = 2
	// CropCount is the number of crop slots in a grove
	CropCount = PlotCount * CropsPerPlot
	// DefaultTierOne is the T1 seed count every crop starts with
	DefaultTierOne = 23
)

// PlotIDs names the plots in id order; crop ids are pre-ordered by plot
var PlotIDs = [PlotCount]string{"A", "B", "C", "D", "E"}

// Grove is the fixed arrangement of five plots of two crops each.
//
// Crops live in a flat slot array indexed by id-1; the neighbor relation
// is a paired-index table, so there are no back-references between crops.
// A Grove is owned by one simulation context at a time; use Clone to give
// each concurrent worker its own copy.
type Grove struct {
	crops   []Crop
	pairs   [][2]int
	weights WeightTriple
}

// CropSpec describes one slot at construction time
type CropSpec struct {
	Color       Color
	Tiers       Tiers
	Harvestable bool
}

// NewGrove builds the standard grove: every crop harvestable with
// DefaultTierOne T1 seeds and no higher-tier seeds
func NewGrove() *Grove {
	var specs [CropCount]CropSpec
	for i := range specs {
		specs[i] = CropSpec{Tiers: Tiers{One: DefaultTierOne}, Harvestable: true}
	}
	return NewGroveFromSpecs(specs)
}

// NewGroveFromSpecs builds a grove from explicit per-slot initial state.
// Slot i holds crop id i+1; slots 2k and 2k+1 are neighbors in plot k.
func NewGroveFromSpecs(specs [CropCount]CropSpec) *Grove {
	g := &Grove{
		crops:   make([]Crop, CropCount),
		pairs:   make([][2]int, 0, PlotCount),
		weights: EqualWeights(),
	}
	for i, spec := range specs {
		neighbor := i + 1
		if i%CropsPerPlot == 1 {
			neighbor = i - 1
		}
		g.crops[i] = Crop{
			ID:       i + 1,
			PlotID:   PlotIDs[i/CropsPerPlot],
			neighbor: neighbor,
			initial: CropState{
				Harvestable: spec.Harvestable,
				Tiers:       spec.Tiers,
			},
			initialColor: spec.Color,
		}
		g.crops[i].Restore()
		if i%CropsPerPlot == 0 {
			g.pairs = append(g.pairs, [2]int{i, neighbor})
		}
	}
	return g
}

// Clone returns an independent deep copy of the grove
func (g *Grove) Clone() *Grove {
	c := &Grove{
		crops:   make([]Crop, len(g.crops)),
		pairs:   make([][2]int, len(g.pairs)),
		weights: g.weights,
	}
	copy(c.crops, g.crops)
	copy(c.pairs, g.pairs)
	return c
}

// Len returns the number of crop slots
func (g *Grove) Len() int {
	return len(g.crops)
}

// Crop resolves a crop id. An unknown id is an invariant violation.
func (g *Grove) Crop(id int) (*Crop, error) {
	if id < 1 || id > len(g.crops) {
		return nil, shared.NewUnknownCropError(id)
	}
	return &g.crops[id-1], nil
}

// Crops exposes the slot array in id order. Mutations are visible to the grove.
func (g *Grove) Crops() []Crop {
	return g.crops
}

// Neighbor returns the crop paired with c
func (g *Grove) Neighbor(c *Crop) *Crop {
	return &g.crops[c.neighbor]
}

// Pairs returns the neighbor pairs as crop id tuples
func (g *Grove) Pairs() [][2]int {
	out := make([][2]int, len(g.pairs))
	for i, p := range g.pairs {
		out[i] = [2]int{p[0] + 1, p[1] + 1}
	}
	return out
}

// SetWeights sets the color distribution used by Reset
func (g *Grove) SetWeights(w WeightTriple) {
	g.weights = w
}

// Weights returns the color distribution used by Reset
func (g *Grove) Weights() WeightTriple {
	return g.weights
}

// Reset restores every crop, in id order, and re-rolls its color
func (g *Grove) Reset(rng Source) {
	for i := range g.crops {
		g.crops[i].Reset(rng, g.weights)
	}
}

// Restore returns every crop to its constructed state without re-rolling colors
func (g *Grove) Restore() {
	for i := range g.crops {
		g.crops[i].Restore()
	}
}

// Validate checks the neighbor relation: symmetric, disjoint, covering every slot
func (g *Grove) Validate() error {
	seen := make([]bool, len(g.crops))
	for _, p := range g.pairs {
		a, b := p[0], p[1]
		if a < 0 || b < 0 || a >= len(g.crops) || b >= len(g.crops) {
			return shared.NewInvariantViolationError("neighbor", fmt.Sprintf("pair %v out of range", p))
		}
		if g.crops[a].neighbor != b || g.crops[b].neighbor != a {
			return shared.NewInvariantViolationError("neighbor", fmt.Sprintf("crops %d and %d are not mutual neighbors", a+1, b+1))
		}
		if seen[a] || seen[b] {
			return shared.NewInvariantViolationError("neighbor", fmt.Sprintf("crop in pair %d/%d belongs to two plots", a+1, b+1))
		}
		seen[a], seen[b] = true, true
	}
	for i, ok := range seen {
		if !ok {
			return shared.NewInvariantViolationError("neighbor", fmt.Sprintf("crop %d has no neighbor", i+1))
		}
	}
	return nil
}
