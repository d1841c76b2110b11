package grove

import (
	"fmt"
	"math"
	"strings"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

// DefaultDestroyChance is the probability that harvesting a crop destroys
// its still-harvestable neighbor
const DefaultDestroyChance = 0.4

// Multipliers weight the yield of a harvest
type Multipliers struct {
	T3     float64 // value of one T3 seed in T2 units
	T4     float64 // value of one T4 seed in T2 units
	Vivid  float64 // yellow crops
	Primal float64 // blue crops
	Wild   float64 // purple crops
}

// DefaultMultipliers returns the reference multiplier set
func DefaultMultipliers() Multipliers {
	return Multipliers{T3: 25, T4: 100, Vivid: 2.5, Primal: 1, Wild: 1}
}

// ForColor returns the color-specific yield multiplier
func (m Multipliers) ForColor(c Color) float64 {
	switch c {
	case Yellow:
		return m.Vivid
	case Blue:
		return m.Primal
	case Purple:
		return m.Wild
	default:
		return 0
	}
}

// MultipliersFromDust derives color multipliers from per-color dust prices:
// the most expensive color gets 1 and the others scale by max/price.
// A zero price yields a zero multiplier.
func MultipliersFromDust(vivid, primal, wild float64) (vividMult, primalMult, wildMult float64) {
	highest := math.Max(vivid, math.Max(primal, wild))
	ratio := func(v float64) float64 {
		if v == 0 {
			return 0
		}
		return highest / v
	}
	return ratio(vivid), ratio(primal), ratio(wild)
}

// Probabilities are the per-seed promotion chances applied on each upgrade step
type Probabilities struct {
	T3ToT4 float64 // p1
	T2ToT3 float64 // p2
	T1ToT2 float64 // p3
}

// DefaultProbabilities returns the reference promotion chances
func DefaultProbabilities() Probabilities {
	return Probabilities{T3ToT4: 0.05, T2ToT3: 0.2, T1ToT2: 0.25}
}

// YellowRiskPick selects which pending yellow is exposed first by the
// yellow-risk avoidance heuristic
type YellowRiskPick int

const (
	// PickLeastJuicy exposes the yellow with the lowest seed value
	PickLeastJuicy YellowRiskPick = iota
	// PickMostJuicy exposes the yellow with the highest seed value
	PickMostJuicy
)

func (p YellowRiskPick) String() string {
	if p == PickMostJuicy {
		return "most"
	}
	return "least"
}

// ParseYellowRiskPick accepts "least" or "most"
func ParseYellowRiskPick(s string) (YellowRiskPick, error) {
	switch strings.ToLower(s) {
	case "", "least":
		return PickLeastJuicy, nil
	case "most":
		return PickMostJuicy, nil
	default:
		return PickLeastJuicy, fmt.Errorf("unknown yellow risk pick %q (want least or most)", s)
	}
}

// Params bundles everything the iteration engine reads
type Params struct {
	Multipliers   Multipliers
	Probabilities Probabilities
	DestroyChance float64
	YellowRisk    YellowRiskPick
}

// DefaultParams returns the reference configuration
func DefaultParams() Params {
	return Params{
		Multipliers:   DefaultMultipliers(),
		Probabilities: DefaultProbabilities(),
		DestroyChance: DefaultDestroyChance,
		YellowRisk:    PickLeastJuicy,
	}
}

// Validate rejects out-of-range inputs before any simulation starts
func (p Params) Validate() error {
	mults := []struct {
		name string
		v    float64
	}{
		{"t3_mult", p.Multipliers.T3},
		{"t4_mult", p.Multipliers.T4},
		{"vivid_mult", p.Multipliers.Vivid},
		{"primal_mult", p.Multipliers.Primal},
		{"wild_mult", p.Multipliers.Wild},
	}
	for _, m := range mults {
		if math.IsNaN(m.v) || math.IsInf(m.v, 0) || m.v < 0 {
			return shared.NewValidationError(m.name, fmt.Sprintf("must be a finite non-negative number, got %v", m.v))
		}
	}

	probs := []struct {
		name string
		v    float64
	}{
		{"p1", p.Probabilities.T3ToT4},
		{"p2", p.Probabilities.T2ToT3},
		{"p3", p.Probabilities.T1ToT2},
		{"destroy_chance", p.DestroyChance},
	}
	for _, pr := range probs {
		if math.IsNaN(pr.v) || pr.v < 0 || pr.v > 1 {
			return shared.NewValidationError(pr.name, fmt.Sprintf("must be a probability in [0,1], got %v", pr.v))
		}
	}

	if p.YellowRisk != PickLeastJuicy && p.YellowRisk != PickMostJuicy {
		return shared.NewValidationError("yellow_risk_pick", "must be least or most")
	}
	return nil
}
