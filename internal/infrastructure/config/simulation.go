package config

import (
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
)

// SimulationConfig holds the engine inputs. Zero is a meaningful value for
// every field, so defaults are registered with viper rather than filled in
// by SetDefaults.
type SimulationConfig struct {
	T3Mult     float64 `mapstructure:"t3_mult" validate:"gte=0"`
	T4Mult     float64 `mapstructure:"t4_mult" validate:"gte=0"`
	VividMult  float64 `mapstructure:"vivid_mult" validate:"gte=0"`
	PrimalMult float64 `mapstructure:"primal_mult" validate:"gte=0"`
	WildMult   float64 `mapstructure:"wild_mult" validate:"gte=0"`

	// Per-seed promotion chances: T3→T4, T2→T3, T1→T2
	P1 float64 `mapstructure:"p1" validate:"gte=0,lte=1"`
	P2 float64 `mapstructure:"p2" validate:"gte=0,lte=1"`
	P3 float64 `mapstructure:"p3" validate:"gte=0,lte=1"`

	// Chance that a harvest destroys the still-harvestable neighbor
	DestroyChance float64 `mapstructure:"destroy_chance" validate:"gte=0,lte=1"`

	// Which pending yellow the risk-avoidance heuristic exposes: least or most
	YellowRiskPick string `mapstructure:"yellow_risk_pick" validate:"oneof=least most"`

	// Random seed; 0 draws a fresh seed per run
	Seed uint64 `mapstructure:"seed"`
}

// Params converts the section into engine parameters
func (c SimulationConfig) Params() (grove.Params, error) {
	pick, err := grove.ParseYellowRiskPick(c.YellowRiskPick)
	if err != nil {
		return grove.Params{}, err
	}
	p := grove.Params{
		Multipliers: grove.Multipliers{
			T3:     c.T3Mult,
			T4:     c.T4Mult,
			Vivid:  c.VividMult,
			Primal: c.PrimalMult,
			Wild:   c.WildMult,
		},
		Probabilities: grove.Probabilities{T3ToT4: c.P1, T2ToT3: c.P2, T1ToT2: c.P3},
		DestroyChance: c.DestroyChance,
		YellowRisk:    pick,
	}
	return p, p.Validate()
}
