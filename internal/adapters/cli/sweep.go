package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/grpc"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/report"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/commands"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/queries"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
	"github.com/JZongit/Crop-Rotation-Simulator/pkg/utils"
)

// NewSweepCommand creates the sweep command
func NewSweepCommand() *cobra.Command {
	var (
		iterations  int
		parallelism int
		values      []float64
		reduced     float64
		withStdDev  bool
		output      string
		format      string
		remote      string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Average the yield over every enumerated weight triple",
		Long: `Enumerate weight triples from the configured weight values and simulate
each one for the configured number of iterations, in parallel. Results are
written as CSV (Yellow Weight, Blue Weight, Purple Weight, Average Seed Count)
or as a table. Output files ending in .zst are zstd-compressed.

When database.enabled is set the run is stored and can be read back with
'grovesim results'.

Examples:
  grovesim sweep --iterations 100000
  grovesim sweep --values 0.55,1 --output sweep.csv.zst --with-stddev
  grovesim sweep --format table --parallelism 4 --seed 7
  grovesim sweep --remote localhost:50061`,
		Args: cobra.NoArgs,
	}
	sim := bindSimulationFlags(cmd)
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "Iterations per weight triple (default: sweep.iterations)")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "j", 0, "Concurrent workers (default: sweep.parallelism, 0 = one per CPU)")
	cmd.Flags().Float64SliceVar(&values, "values", nil, "Candidate weight values (default: sweep.weight_values)")
	cmd.Flags().Float64Var(&reduced, "reduced", 0, "Value every triple must contain (default: smallest value)")
	cmd.Flags().BoolVar(&withStdDev, "with-stddev", false, "Add a Std Dev column")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or table")
	cmd.Flags().StringVar(&remote, "remote", "", "Run on the daemon at this address")

	configure := func(cfg *config.Config) error {
		if err := sim.apply(&cfg.Simulation); err != nil {
			return err
		}
		if cmd.Flags().Changed("iterations") {
			cfg.Sweep.Iterations = iterations
		}
		if cmd.Flags().Changed("parallelism") {
			cfg.Sweep.Parallelism = parallelism
		}
		if cmd.Flags().Changed("values") {
			cfg.Sweep.WeightValues = values
		}
		if cmd.Flags().Changed("reduced") {
			cfg.Sweep.ReducedWeight = reduced
		}
		if format != "csv" && format != "table" {
			return fmt.Errorf("unknown format %q (want csv or table)", format)
		}
		return nil
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, configure, func(ctx context.Context, a *app) error {
			params, err := a.cfg.Simulation.Params()
			if err != nil {
				return err
			}
			enumerated, err := a.mediator.Send(ctx, &queries.EnumerateWeightsQuery{
				Values:  a.cfg.Sweep.WeightValues,
				Reduced: a.cfg.Sweep.Reduced(),
			})
			if err != nil {
				return err
			}

			sweepCmd := &commands.RunSweepCommand{
				Params:      params,
				Iterations:  a.cfg.Sweep.Iterations,
				Parallelism: a.cfg.Sweep.Parallelism,
				Seed:        a.cfg.Simulation.Seed,
				Weights:     enumerated.(*queries.EnumerateWeightsResponse).Triples,
			}

			resp, err := runSweep(ctx, a, sweepCmd, remote)
			if err != nil {
				return err
			}

			if err := writeSweep(cmd.OutOrStdout(), output, format, resp, report.Options{WithStdDev: withStdDev}); err != nil {
				return err
			}

			a.logger.Info().
				Str("run", utils.ShortID(resp.RunID.String())).
				Uint64("seed", resp.Seed).
				Bool("stored", resp.Stored).
				Msg("sweep finished")
			if resp.Stored {
				rememberLastRun(a, resp.RunID.String())
			}
			return nil
		})
	}

	return cmd
}

func runSweep(ctx context.Context, a *app, cmd *commands.RunSweepCommand, remote string) (*commands.RunSweepResponse, error) {
	if remote != "" {
		client, err := grpc.NewSimulationClient(remote)
		if err != nil {
			return nil, err
		}
		defer client.Close()
		return client.RunSweep(ctx, cmd)
	}

	out, err := a.mediator.Send(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return out.(*commands.RunSweepResponse), nil
}

func writeSweep(stdout io.Writer, output, format string, resp *commands.RunSweepResponse, opts report.Options) error {
	write := func(w io.Writer) error {
		if format == "table" {
			return report.WriteTable(w, resp.Points, opts)
		}
		return report.WriteCSV(w, resp.Points, opts)
	}

	if output == "-" || output == "" {
		return write(stdout)
	}

	f, err := report.Create(output)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// rememberLastRun records the run for 'grovesim results show'; failures only warn
func rememberLastRun(a *app, runID string) {
	handler, err := config.NewUserConfigHandler()
	if err == nil {
		err = handler.SetLastRun(runID)
	}
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to remember last run")
	}
}
