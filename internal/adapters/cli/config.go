package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect grovesim configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (GROVE_* prefix, e.g. GROVE_SIMULATION_T4_MULT)
2. Config file (config.yaml)
3. Default values

Per-user state (the last stored run) lives in ~/.grovesim/config.json

Example:
  grovesim config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.DefaultConfig()
			}

			lastRun := "(none)"
			configFile := "(unavailable)"
			if handler, err := config.NewUserConfigHandler(); err == nil {
				configFile = handler.GetConfigPath()
				if userCfg, err := handler.Load(); err == nil && userCfg.LastRunID != "" {
					lastRun = userCfg.LastRunID
				}
			}

			s := cfg.Simulation
			fmt.Fprintln(out, "grovesim Configuration")
			fmt.Fprintln(out, "======================")

			fmt.Fprintln(out, "User State:")
			fmt.Fprintf(out, "  Config file:      %s\n", configFile)
			fmt.Fprintf(out, "  Last run:         %s\n", lastRun)

			fmt.Fprintln(out, "\nSimulation:")
			fmt.Fprintf(out, "  T3 / T4 mult:     %g / %g\n", s.T3Mult, s.T4Mult)
			fmt.Fprintf(out, "  Color mults:      vivid=%g primal=%g wild=%g\n", s.VividMult, s.PrimalMult, s.WildMult)
			fmt.Fprintf(out, "  Promotions:       p1=%g p2=%g p3=%g\n", s.P1, s.P2, s.P3)
			fmt.Fprintf(out, "  Destroy chance:   %g\n", s.DestroyChance)
			fmt.Fprintf(out, "  Yellow risk pick: %s\n", s.YellowRiskPick)
			fmt.Fprintf(out, "  Seed:             %d\n", s.Seed)

			fmt.Fprintln(out, "\nSweep:")
			fmt.Fprintf(out, "  Iterations:       %d\n", cfg.Sweep.Iterations)
			fmt.Fprintf(out, "  Parallelism:      %d\n", cfg.Sweep.Parallelism)
			fmt.Fprintf(out, "  Weight values:    %v (reduced %g)\n", cfg.Sweep.WeightValues, cfg.Sweep.Reduced())
			fmt.Fprintf(out, "  Progress every:   %s\n", cfg.Sweep.ProgressInterval)

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Database.Enabled)
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Endpoint:         %s\n", cfg.Metrics)

			fmt.Fprintln(out, "\nDaemon:")
			fmt.Fprintf(out, "  Address:          %s\n", cfg.Daemon.Address)
			fmt.Fprintf(out, "  PID file:         %s\n", cfg.Daemon.PIDFile)
			fmt.Fprintf(out, "  Max sweeps:       %d\n", cfg.Daemon.MaxConcurrentSweeps)
			fmt.Fprintf(out, "  Shutdown timeout: %s\n", cfg.Daemon.ShutdownTimeout)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, has := u.User.Password(); has {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
