package config

import (
	"fmt"
	"net"
	"strconv"
)

// MetricsConfig holds metrics collection and exposure configuration
type MetricsConfig struct {
	// Enabled controls whether sweep metrics are collected and served
	Enabled bool `mapstructure:"enabled"`

	// Port for the HTTP metrics server
	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Host to bind the metrics HTTP server (default: localhost)
	Host string `mapstructure:"host"`

	// Path for the metrics endpoint (default: /metrics)
	Path string `mapstructure:"path"`
}

// ListenAddress returns host:port for the metrics server
func (c MetricsConfig) ListenAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c MetricsConfig) String() string {
	return fmt.Sprintf("http://%s%s", c.ListenAddress(), c.Path)
}
