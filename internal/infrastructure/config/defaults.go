package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

// RegisterDefaults registers defaults for settings where zero is a valid
// explicit value, so a file or env var setting them to 0 is honoured
func RegisterDefaults(v *viper.Viper) {
	m := grove.DefaultMultipliers()
	p := grove.DefaultProbabilities()

	v.SetDefault("simulation.t3_mult", m.T3)
	v.SetDefault("simulation.t4_mult", m.T4)
	v.SetDefault("simulation.vivid_mult", m.Vivid)
	v.SetDefault("simulation.primal_mult", m.Primal)
	v.SetDefault("simulation.wild_mult", m.Wild)
	v.SetDefault("simulation.p1", p.T3ToT4)
	v.SetDefault("simulation.p2", p.T2ToT3)
	v.SetDefault("simulation.p3", p.T1ToT2)
	v.SetDefault("simulation.destroy_chance", grove.DefaultDestroyChance)
	v.SetDefault("simulation.yellow_risk_pick", grove.PickLeastJuicy.String())
	v.SetDefault("simulation.seed", 0)

	v.SetDefault("sweep.iterations", 1_000_000)
	v.SetDefault("sweep.parallelism", 0)
	v.SetDefault("sweep.weight_values", sweep.DefaultWeightValues())
	v.SetDefault("sweep.reduced_weight", 0)
	v.SetDefault("sweep.low_iteration_warning", 10_000)

	v.SetDefault("database.enabled", false)
	v.SetDefault("metrics.enabled", false)
}

// SetDefaults sets default values for fields left empty
func SetDefaults(cfg *Config) {
	// Sweep defaults
	if cfg.Sweep.ProgressInterval == 0 {
		cfg.Sweep.ProgressInterval = 5 * time.Second
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "grovesim.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "grovesim"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "grovesim"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Daemon defaults
	if cfg.Daemon.Address == "" {
		cfg.Daemon.Address = "localhost:50061"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/grovesim-daemon.pid"
	}
	if cfg.Daemon.MaxConcurrentSweeps == 0 {
		cfg.Daemon.MaxConcurrentSweeps = 1
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}
}
