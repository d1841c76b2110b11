package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/grpc"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/report"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/commands"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
)

// NewIterateCommand creates the iterate command
func NewIterateCommand() *cobra.Command {
	var (
		weights   string
		showGrove bool
		remote    string
	)

	cmd := &cobra.Command{
		Use:   "iterate",
		Short: "Simulate one randomized grove harvest",
		Long: `Randomize the grove colors from a weight triple, build the harvest order and
harvest it once, printing the total yield.

Examples:
  grovesim iterate
  grovesim iterate --seed 42 --weights 0.55,1,0.8 --show-grove
  grovesim iterate --remote localhost:50061`,
		Args: cobra.NoArgs,
	}
	sim := bindSimulationFlags(cmd)
	cmd.Flags().StringVar(&weights, "weights", "1,1,1", "Color weights as yellow,blue,purple")
	cmd.Flags().BoolVar(&showGrove, "show-grove", false, "Print the final state of every crop")
	cmd.Flags().StringVar(&remote, "remote", "", "Run on the daemon at this address")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		w, err := parseWeightTriple(weights)
		if err != nil {
			return err
		}

		return withApp(cmd, func(cfg *config.Config) error { return sim.apply(&cfg.Simulation) }, func(ctx context.Context, a *app) error {
			params, err := a.cfg.Simulation.Params()
			if err != nil {
				return err
			}
			iterCmd := &commands.RunIterationCommand{Params: params, Weights: w, Seed: a.cfg.Simulation.Seed}

			var resp *commands.RunIterationResponse
			if remote != "" {
				client, err := grpc.NewSimulationClient(remote)
				if err != nil {
					return err
				}
				defer client.Close()
				if resp, err = client.RunIteration(ctx, iterCmd); err != nil {
					return err
				}
			} else {
				out, err := a.mediator.Send(ctx, iterCmd)
				if err != nil {
					return err
				}
				resp = out.(*commands.RunIterationResponse)
			}

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Yield: %.2f (seed %d)\n", resp.Yield, resp.Seed)
			if showGrove {
				fmt.Fprintln(stdout)
				return report.WriteCrops(stdout, resp.Crops)
			}
			return nil
		})
	}

	return cmd
}
