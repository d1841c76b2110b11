package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	logLevel   string
	verbose    bool
)

// Build metadata, set with -ldflags at release time
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "grovesim",
		Short: "grovesim - Monte-Carlo grove harvest simulator",
		Long: `grovesim estimates the expected seed yield of harvesting a randomized
five-plot grove, and searches color-weight triples for the best average.

Configuration is read from config.yaml (., ./configs, /etc/grovesim), GROVE_*
environment variables and command flags, in increasing priority.

Examples:
  grovesim iterate --seed 42 --show-grove
  grovesim sweep --iterations 100000 --output sweep.csv
  grovesim sweep --remote localhost:50061 --with-stddev
  grovesim weights --values 0.55,0.8,1
  grovesim evaluate arrangement.yaml --iterations 50000
  grovesim results list`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: search for config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add commands
	rootCmd.AddCommand(NewIterateCommand())
	rootCmd.AddCommand(NewSweepCommand())
	rootCmd.AddCommand(NewWeightsCommand())
	rootCmd.AddCommand(NewEvaluateCommand())
	rootCmd.AddCommand(NewResultsCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewVersionCommand prints build metadata
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "grovesim %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
