package sweep

import (
	"context"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

// ResultRepository stores finished sweeps
type ResultRepository interface {
	// Save inserts or replaces the run and its points
	Save(ctx context.Context, run *Run) error

	// FindByID loads a run with its points
	FindByID(ctx context.Context, id RunID) (*Run, error)

	// List returns runs without their points, newest first
	List(ctx context.Context, opts ListOptions) ([]*Run, error)
}

// ListOptions filters and pages List
type ListOptions struct {
	Status *shared.LifecycleStatus
	Limit  int
	Offset int
}

// DefaultListOptions returns the first page of all runs
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 20}
}
