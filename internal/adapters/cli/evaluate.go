package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/report"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/commands"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
)

// NewEvaluateCommand creates the evaluate command
func NewEvaluateCommand() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "evaluate <arrangement.yaml>",
		Short: "Score a fixed arrangement and harvest order",
		Long: `Harvest a user-chosen arrangement repeatedly in the given order, with colors
fixed and no re-ordering, and report the mean, variance and standard deviation
of the yield.

Arrangement file:
  crops:
    A1: {color: yellow}            # 23 T1 seeds
    A2: {color: blue, t2: 4}
    B1: {color: wild, t1: 20, t3: 1}
  permutation: [A2, A1, B1]

Examples:
  grovesim evaluate arrangement.yaml
  grovesim evaluate arrangement.yaml --iterations 1000000 --seed 3
  grovesim evaluate arrangement.yaml --vivid-dust 40 --primal-dust 100 --wild-dust 80`,
		Args: cobra.ExactArgs(1),
	}
	sim := bindSimulationFlags(cmd)
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 100_000, "Harvests to average")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		arrangement, err := loadArrangement(args[0])
		if err != nil {
			return err
		}

		return withApp(cmd, func(cfg *config.Config) error { return sim.apply(&cfg.Simulation) }, func(ctx context.Context, a *app) error {
			params, err := a.cfg.Simulation.Params()
			if err != nil {
				return err
			}
			out, err := a.mediator.Send(ctx, &commands.EvaluateArrangementCommand{
				Arrangement: arrangement,
				Params:      params,
				Iterations:  iterations,
				Seed:        a.cfg.Simulation.Seed,
			})
			if err != nil {
				return err
			}
			return report.WriteEvaluation(cmd.OutOrStdout(), out.(*commands.EvaluateArrangementResponse).Evaluation)
		})
	}

	return cmd
}
