package config

import (
	"time"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

// SweepConfig holds the weighted-sweep settings
type SweepConfig struct {
	// Iterations per weight triple
	Iterations int `mapstructure:"iterations" validate:"min=1"`

	// Concurrent workers; 0 means one per CPU
	Parallelism int `mapstructure:"parallelism" validate:"min=0"`

	// Candidate values for each weight component
	WeightValues []float64 `mapstructure:"weight_values" validate:"required,min=1,dive,gte=0"`

	// Value every enumerated triple must contain; 0 means the smallest weight value
	ReducedWeight float64 `mapstructure:"reduced_weight" validate:"gte=0"`

	// Below this many iterations a sweep logs a high-variance warning
	LowIterationWarning int `mapstructure:"low_iteration_warning" validate:"min=0"`

	// Minimum interval between progress log lines
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
}

// Reduced resolves the reduced marker
func (c SweepConfig) Reduced() float64 {
	if c.ReducedWeight == 0 {
		return sweep.ReducedMarker(c.WeightValues)
	}
	return c.ReducedWeight
}
