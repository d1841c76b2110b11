package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

// MockResultRepository is an in-memory sweep.ResultRepository
type MockResultRepository struct {
	mu    sync.RWMutex
	runs  map[string]*sweep.Run
	saves []string // status of each Save call, in order

	// Error injection
	shouldError bool
	errorMsg    string
}

// NewMockResultRepository creates an empty repository
func NewMockResultRepository() *MockResultRepository {
	return &MockResultRepository{runs: make(map[string]*sweep.Run)}
}

// SetError makes every call fail with msg
func (r *MockResultRepository) SetError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shouldError = true
	r.errorMsg = msg
}

// SavedStatuses returns the run status recorded by each Save call
func (r *MockResultRepository) SavedStatuses() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.saves...)
}

// Save stores the run
func (r *MockResultRepository) Save(ctx context.Context, run *sweep.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shouldError {
		return fmt.Errorf("%s", r.errorMsg)
	}
	r.runs[run.ID().String()] = run
	r.saves = append(r.saves, string(run.Status()))
	return nil
}

// FindByID returns the stored run
func (r *MockResultRepository) FindByID(ctx context.Context, id sweep.RunID) (*sweep.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.shouldError {
		return nil, fmt.Errorf("%s", r.errorMsg)
	}
	run, ok := r.runs[id.String()]
	if !ok {
		return nil, &sweep.ErrRunNotFound{ID: id.String()}
	}
	return run, nil
}

// List returns stored runs newest first
func (r *MockResultRepository) List(ctx context.Context, opts sweep.ListOptions) ([]*sweep.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.shouldError {
		return nil, fmt.Errorf("%s", r.errorMsg)
	}

	runs := make([]*sweep.Run, 0, len(r.runs))
	for _, run := range r.runs {
		if opts.Status != nil && run.Status() != *opts.Status {
			continue
		}
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].CreatedAt().After(runs[j].CreatedAt()) })

	if opts.Offset >= len(runs) {
		return nil, nil
	}
	runs = runs[opts.Offset:]
	if opts.Limit > 0 && len(runs) > opts.Limit {
		runs = runs[:opts.Limit]
	}
	return runs, nil
}
