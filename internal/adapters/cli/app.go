package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/metrics"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/persistence"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/setup"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/database"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/logging"
)

// app is the per-invocation runtime shared by the commands
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	mediator common.Mediator
	repo     sweep.ResultRepository // nil when the result store is disabled

	metricsServer *metrics.Server
	closers       []io.Closer
}

// loadConfig reads configuration and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newApp wires logging, the optional result store and metrics server, and
// a mediator with every handler registered
func newApp(cfg *config.Config) (*app, error) {
	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	if cfg.Database.Enabled {
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, closerFunc(func() error { return database.Close(db) }))
		if err := database.AutoMigrate(db); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		a.repo = persistence.NewGormSweepRunRepository(db)
	}

	var commandMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		if commandMetrics, err = a.startMetrics(); err != nil {
			a.Close()
			return nil, err
		}
	}

	runner := simulation.NewSweepRunner(
		simulation.WithProgressInterval(cfg.Sweep.ProgressInterval),
		simulation.WithLowIterationWarning(cfg.Sweep.LowIterationWarning),
	)
	registry := setup.NewHandlerRegistry(runner, a.repo, nil,
		common.LoggingMiddleware(),
		metrics.PrometheusMiddleware(commandMetrics),
	)
	if a.mediator, err = registry.CreateConfiguredMediator(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) startMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	sweepMetrics := metrics.NewSweepMetricsCollector()
	if err := sweepMetrics.Register(); err != nil {
		return nil, fmt.Errorf("failed to register sweep metrics: %w", err)
	}
	metrics.SetGlobalSweepCollector(sweepMetrics)

	commandMetrics := metrics.NewCommandMetricsCollector()
	if err := commandMetrics.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}

	srv, err := metrics.NewServer(a.cfg.Metrics.ListenAddress(), a.cfg.Metrics.Path, a.logger)
	if err != nil {
		return nil, err
	}
	if err := srv.Start(); err != nil {
		return nil, err
	}
	a.metricsServer = srv
	return commandMetrics, nil
}

// context returns the command context carrying the app logger
func (a *app) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return common.WithLogger(ctx, a.logger)
}

// Close releases everything newApp opened, in reverse order
func (a *app) Close() {
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.metricsServer.Shutdown(ctx)
		cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// withApp loads configuration, lets configure adjust it from flags, then
// runs fn with a wired app
func withApp(cmd *cobra.Command, configure func(*config.Config) error, fn func(ctx context.Context, a *app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if configure != nil {
		if err := configure(cfg); err != nil {
			return err
		}
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a.context(cmd), a)
}
