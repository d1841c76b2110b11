package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/grpc"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/metrics"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/persistence"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/setup"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/database"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/logging"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/pidfile"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: search for config.yaml)")
	forceFlag := flag.Bool("force", false, "Stop any running daemon and start a new one")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		var running *pidfile.AlreadyRunningError
		if !*forceFlag || !errors.As(err, &running) {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to stop the existing daemon", err)
		}
		if err := pf.StopExisting(cfg.Daemon.ShutdownTimeout); err != nil {
			log.Fatalf("Failed to stop existing daemon: %v", err)
		}
		if err := pf.Acquire(); err != nil {
			log.Fatalf("Failed to acquire PID file lock after stopping existing daemon: %v", err)
		}
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()

	if err := run(cfg); err != nil {
		log.Printf("Fatal error: %v", err)
		_ = pf.Release()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logCloser.Close()

	logger.Info().
		Str("address", cfg.Daemon.Address).
		Int("max_concurrent_sweeps", cfg.Daemon.MaxConcurrentSweeps).
		Msg("starting grovesim daemon")

	// Result store
	var repo sweep.ResultRepository
	if cfg.Database.Enabled {
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close(db)
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		repo = persistence.NewGormSweepRunRepository(db)
		logger.Info().Str("type", cfg.Database.Type).Msg("result store enabled")
	}

	// Metrics
	var commandMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		var metricsServer *metrics.Server
		commandMetrics, metricsServer, err = startMetrics(cfg.Metrics, logger)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
			defer cancel()
			_ = metricsServer.Shutdown(ctx)
		}()
	}

	// Mediator
	runner := simulation.NewSweepRunner(
		simulation.WithProgressInterval(cfg.Sweep.ProgressInterval),
		simulation.WithLowIterationWarning(cfg.Sweep.LowIterationWarning),
	)
	registry := setup.NewHandlerRegistry(runner, repo, nil,
		common.LoggingMiddleware(),
		metrics.PrometheusMiddleware(commandMetrics),
	)
	med, err := registry.CreateConfiguredMediator()
	if err != nil {
		return err
	}

	// gRPC server
	listener, err := grpc.Listen(cfg.Daemon.Address)
	if err != nil {
		return err
	}
	server := grpc.NewDaemonServer(med, listener, cfg.Daemon.MaxConcurrentSweeps, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve() }()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		logger.Info().Dur("timeout", cfg.Daemon.ShutdownTimeout).Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
	defer cancel()
	server.Shutdown(shutdownCtx)

	return <-serveErr
}

func startMetrics(cfg config.MetricsConfig, logger zerolog.Logger) (*metrics.CommandMetricsCollector, *metrics.Server, error) {
	metrics.InitRegistry()

	sweepMetrics := metrics.NewSweepMetricsCollector()
	if err := sweepMetrics.Register(); err != nil {
		return nil, nil, fmt.Errorf("failed to register sweep metrics: %w", err)
	}
	metrics.SetGlobalSweepCollector(sweepMetrics)

	commandMetrics := metrics.NewCommandMetricsCollector()
	if err := commandMetrics.Register(); err != nil {
		return nil, nil, fmt.Errorf("failed to register command metrics: %w", err)
	}

	srv, err := metrics.NewServer(cfg.ListenAddress(), cfg.Path, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := srv.Start(); err != nil {
		return nil, nil, err
	}
	return commandMetrics, srv, nil
}
