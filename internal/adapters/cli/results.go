package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/report"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/queries"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
)

// NewResultsCommand creates the results command with subcommands
func NewResultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Browse stored sweep runs",
		Long: `Read sweeps stored in the result store (requires database.enabled).

Examples:
  grovesim results list --limit 5
  grovesim results list --status FAILED
  grovesim results show                 # the last stored run
  grovesim results show 0b8e6c9d-3f4a-4c58-9b0e-1f2d3c4b5a69 --with-stddev`,
	}

	cmd.AddCommand(newResultsListCommand())
	cmd.AddCommand(newResultsShowCommand())

	return cmd
}

func newResultsListCommand() *cobra.Command {
	var (
		limit  int
		offset int
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := sweep.ListOptions{Limit: limit, Offset: offset}
			if status != "" {
				s := shared.LifecycleStatus(strings.ToUpper(status))
				opts.Status = &s
			}

			return withApp(cmd, nil, func(ctx context.Context, a *app) error {
				out, err := a.mediator.Send(ctx, &queries.ListSweepResultsQuery{Options: opts})
				if err != nil {
					return err
				}
				runs := out.(*queries.ListSweepResultsResponse).Runs
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No stored runs.")
					return nil
				}
				return report.WriteRuns(cmd.OutOrStdout(), runs)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", sweep.DefaultListOptions().Limit, "Maximum runs to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Runs to skip")
	cmd.Flags().StringVar(&status, "status", "", "Only runs with this status (COMPLETED, FAILED, STOPPED, RUNNING)")

	return cmd
}

func newResultsShowCommand() *cobra.Command {
	var (
		withStdDev bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show the points of a stored run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := resolveRunID(args)
			if err != nil {
				return err
			}

			return withApp(cmd, nil, func(ctx context.Context, a *app) error {
				out, err := a.mediator.Send(ctx, &queries.GetSweepResultQuery{RunID: runID})
				if err != nil {
					return err
				}
				run := out.(*queries.GetSweepResultResponse).Run

				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Run %s: %s, %d iterations per point, seed %d\n\n",
					run.ID(), run.Status(), run.Iterations(), run.Seed())
				if run.LastError() != nil {
					fmt.Fprintf(stdout, "Error: %v\n", run.LastError())
					return nil
				}

				opts := report.Options{WithStdDev: withStdDev}
				if format == "csv" {
					return report.WriteCSV(stdout, run.Points(), opts)
				}
				return report.WriteTable(stdout, run.Points(), opts)
			})
		},
	}
	cmd.Flags().BoolVar(&withStdDev, "with-stddev", false, "Add a Std Dev column")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: csv or table")

	return cmd
}

// resolveRunID returns the argument or the last run remembered in the user config
func resolveRunID(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", err
	}
	userCfg, err := handler.Load()
	if err != nil {
		return "", err
	}
	if userCfg.LastRunID == "" {
		return "", fmt.Errorf("no run id given and no stored run remembered")
	}
	return userCfg.LastRunID, nil
}
