package config

import "time"

// DaemonConfig holds simulation daemon configuration
type DaemonConfig struct {
	// gRPC server address (host:port)
	Address string `mapstructure:"address" validate:"required"`

	// PID file location
	PIDFile string `mapstructure:"pid_file"`

	// Sweeps allowed to run at once; further requests are rejected
	MaxConcurrentSweeps int `mapstructure:"max_concurrent_sweeps" validate:"min=1"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
