package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/grpc"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/queries"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
)

// NewWeightsCommand creates the weights command
func NewWeightsCommand() *cobra.Command {
	var (
		values  []float64
		reduced float64
		remote  string
	)

	cmd := &cobra.Command{
		Use:   "weights",
		Short: "List the weight triples a sweep would simulate",
		Long: `Enumerate (yellow, blue, purple) triples drawn from the weight values that
contain the reduced value at least once. Triples that differ only by swapping
blue and purple are listed once.

Examples:
  grovesim weights
  grovesim weights --values 0.55,1`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().Float64SliceVar(&values, "values", nil, "Candidate weight values (default: sweep.weight_values)")
	cmd.Flags().Float64Var(&reduced, "reduced", 0, "Value every triple must contain (default: smallest value)")
	cmd.Flags().StringVar(&remote, "remote", "", "Enumerate on the daemon at this address")

	configure := func(cfg *config.Config) error {
		if cmd.Flags().Changed("values") {
			cfg.Sweep.WeightValues = values
		}
		if cmd.Flags().Changed("reduced") {
			cfg.Sweep.ReducedWeight = reduced
		}
		return nil
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, configure, func(ctx context.Context, a *app) error {
			query := &queries.EnumerateWeightsQuery{Values: a.cfg.Sweep.WeightValues, Reduced: a.cfg.Sweep.Reduced()}

			var resp *queries.EnumerateWeightsResponse
			if remote != "" {
				client, err := grpc.NewSimulationClient(remote)
				if err != nil {
					return err
				}
				defer client.Close()
				if resp, err = client.EnumerateWeights(ctx, query); err != nil {
					return err
				}
			} else {
				out, err := a.mediator.Send(ctx, query)
				if err != nil {
					return err
				}
				resp = out.(*queries.EnumerateWeightsResponse)
			}

			stdout := cmd.OutOrStdout()
			for _, w := range resp.Triples {
				fmt.Fprintln(stdout, w)
			}
			fmt.Fprintf(stdout, "%d triples (reduced value %g)\n", len(resp.Triples), resp.Reduced)
			return nil
		})
	}

	return cmd
}
