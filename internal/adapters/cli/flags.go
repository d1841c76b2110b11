package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
)

// simulationFlags are the engine inputs shared by iterate, sweep and evaluate.
// Only flags given on the command line override configuration.
type simulationFlags struct {
	flags *pflag.FlagSet

	t3Mult, t4Mult                  float64
	vividMult, primalMult, wildMult float64
	p1, p2, p3                      float64
	destroyChance                   float64
	yellowRiskPick                  string
	vividDust, primalDust, wildDust float64
	seed                            uint64
}

func bindSimulationFlags(cmd *cobra.Command) *simulationFlags {
	f := &simulationFlags{flags: cmd.Flags()}
	fs := cmd.Flags()
	fs.Float64Var(&f.t3Mult, "t3-mult", 25, "Value of one T3 seed in T2 units")
	fs.Float64Var(&f.t4Mult, "t4-mult", 100, "Value of one T4 seed in T2 units")
	fs.Float64Var(&f.vividMult, "vivid-mult", 2.5, "Yield multiplier for yellow crops")
	fs.Float64Var(&f.primalMult, "primal-mult", 1, "Yield multiplier for blue crops")
	fs.Float64Var(&f.wildMult, "wild-mult", 1, "Yield multiplier for purple crops")
	fs.Float64Var(&f.p1, "p1", 0.05, "Per-seed T3→T4 promotion chance")
	fs.Float64Var(&f.p2, "p2", 0.2, "Per-seed T2→T3 promotion chance")
	fs.Float64Var(&f.p3, "p3", 0.25, "Per-seed T1→T2 promotion chance")
	fs.Float64Var(&f.destroyChance, "destroy-chance", grove.DefaultDestroyChance, "Chance a harvest destroys its neighbor")
	fs.StringVar(&f.yellowRiskPick, "yellow-risk-pick", "least", "Yellow exposed first when avoiding risk: least or most")
	fs.Float64Var(&f.vividDust, "vivid-dust", 0, "Vivid dust price; with --primal-dust and --wild-dust derives the color multipliers")
	fs.Float64Var(&f.primalDust, "primal-dust", 0, "Primal dust price")
	fs.Float64Var(&f.wildDust, "wild-dust", 0, "Wild dust price")
	fs.Uint64Var(&f.seed, "seed", 0, "Random seed (0 = random)")
	return f
}

// apply copies the explicitly-set flags into cfg
func (f *simulationFlags) apply(cfg *config.SimulationConfig) error {
	set := func(name string, dst *float64, v float64) {
		if f.flags.Changed(name) {
			*dst = v
		}
	}
	set("t3-mult", &cfg.T3Mult, f.t3Mult)
	set("t4-mult", &cfg.T4Mult, f.t4Mult)
	set("vivid-mult", &cfg.VividMult, f.vividMult)
	set("primal-mult", &cfg.PrimalMult, f.primalMult)
	set("wild-mult", &cfg.WildMult, f.wildMult)
	set("p1", &cfg.P1, f.p1)
	set("p2", &cfg.P2, f.p2)
	set("p3", &cfg.P3, f.p3)
	set("destroy-chance", &cfg.DestroyChance, f.destroyChance)
	if f.flags.Changed("yellow-risk-pick") {
		cfg.YellowRiskPick = f.yellowRiskPick
	}
	if f.flags.Changed("seed") {
		cfg.Seed = f.seed
	}

	dust := 0
	for _, name := range []string{"vivid-dust", "primal-dust", "wild-dust"} {
		if f.flags.Changed(name) {
			dust++
		}
	}
	switch dust {
	case 0:
	case 3:
		for _, v := range []float64{f.vividDust, f.primalDust, f.wildDust} {
			if v < 0 {
				return fmt.Errorf("dust prices must be non-negative, got %v", v)
			}
		}
		cfg.VividMult, cfg.PrimalMult, cfg.WildMult = grove.MultipliersFromDust(f.vividDust, f.primalDust, f.wildDust)
	default:
		return fmt.Errorf("--vivid-dust, --primal-dust and --wild-dust must be given together")
	}
	return nil
}

// parseWeightTriple reads "yellow,blue,purple"
func parseWeightTriple(s string) (grove.WeightTriple, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return grove.WeightTriple{}, fmt.Errorf("weights must be yellow,blue,purple; got %q", s)
	}
	var vs [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return grove.WeightTriple{}, fmt.Errorf("invalid weight %q: %w", p, err)
		}
		vs[i] = v
	}
	w := grove.WeightTriple{Yellow: vs[0], Blue: vs[1], Purple: vs[2]}
	return w, w.Validate()
}
