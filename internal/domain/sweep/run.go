package sweep

import (
	"fmt"
	"time"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

// Run is one weighted sweep: its inputs, lifecycle and, once completed,
// one point per weight triple in input order
type Run struct {
	id          RunID
	params      grove.Params
	iterations  int
	parallelism int
	seed        uint64
	weights     []grove.WeightTriple
	points      []Point
	pointCount  int
	lifecycle   *shared.LifecycleStateMachine
}

// NewRun creates a PENDING run
func NewRun(params grove.Params, iterations, parallelism int, seed uint64, weights []grove.WeightTriple, clock shared.Clock) (*Run, error) {
	if iterations < 1 {
		return nil, shared.NewValidationError("iterations", "must be at least 1")
	}
	if len(weights) == 0 {
		return nil, shared.NewValidationError("weights", "at least one weight triple is required")
	}
	for _, w := range weights {
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Run{
		id:          NewRunID(),
		params:      params,
		iterations:  iterations,
		parallelism: parallelism,
		seed:        seed,
		weights:     append([]grove.WeightTriple(nil), weights...),
		lifecycle:   shared.NewLifecycleStateMachine(clock),
	}, nil
}

// ReconstructRun rebuilds a stored run. points may be nil when only the
// run summary was loaded; pointCount still reports how many were stored.
func ReconstructRun(
	id RunID,
	params grove.Params,
	iterations, parallelism int,
	seed uint64,
	pointCount int,
	points []Point,
	status shared.LifecycleStatus,
	createdAt time.Time,
	startedAt, finishedAt *time.Time,
	lastError string,
) *Run {
	weights := make([]grove.WeightTriple, len(points))
	for i, p := range points {
		weights[i] = p.Weights
	}
	var err error
	if lastError != "" {
		err = shared.NewDomainError(lastError)
	}
	sm := shared.NewLifecycleStateMachine(nil)
	sm.RecoverFromPersistence(status, createdAt, startedAt, finishedAt, err)
	return &Run{
		id:          id,
		params:      params,
		iterations:  iterations,
		parallelism: parallelism,
		seed:        seed,
		weights:     weights,
		points:      points,
		pointCount:  pointCount,
		lifecycle:   sm,
	}
}

func (r *Run) ID() RunID                     { return r.id }
func (r *Run) Params() grove.Params          { return r.params }
func (r *Run) Iterations() int               { return r.iterations }
func (r *Run) Parallelism() int              { return r.parallelism }
func (r *Run) Seed() uint64                  { return r.seed }
func (r *Run) Weights() []grove.WeightTriple { return r.weights }
func (r *Run) Points() []Point               { return r.points }
func (r *Run) PointCount() int               { return r.pointCount }

func (r *Run) Status() shared.LifecycleStatus { return r.lifecycle.Status() }
func (r *Run) CreatedAt() time.Time           { return r.lifecycle.CreatedAt() }
func (r *Run) StartedAt() *time.Time          { return r.lifecycle.StartedAt() }
func (r *Run) FinishedAt() *time.Time         { return r.lifecycle.FinishedAt() }
func (r *Run) LastError() error               { return r.lifecycle.LastError() }
func (r *Run) Duration() time.Duration        { return r.lifecycle.RuntimeDuration() }

// Start marks the run as running
func (r *Run) Start() error {
	return r.lifecycle.Start()
}

// Complete records the points. There must be exactly one per weight triple.
func (r *Run) Complete(points []Point) error {
	if len(points) != len(r.weights) {
		return shared.NewInvariantViolationError("sweep-points", fmt.Sprintf("got %d points for %d weight triples", len(points), len(r.weights)))
	}
	if err := r.lifecycle.Complete(); err != nil {
		return err
	}
	r.points = points
	r.pointCount = len(points)
	return nil
}

// Fail marks the run failed. No partial points are kept.
func (r *Run) Fail(err error) error {
	r.points, r.pointCount = nil, 0
	return r.lifecycle.Fail(err)
}

// Stop marks the run cancelled
func (r *Run) Stop() error {
	r.points, r.pointCount = nil, 0
	return r.lifecycle.Stop()
}
