package sweep

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

func newTestRun(t *testing.T, clock shared.Clock) *Run {
	t.Helper()
	weights := []grove.WeightTriple{grove.EqualWeights(), {Yellow: 0.55, Blue: 1, Purple: 1}}
	run, err := NewRun(grove.DefaultParams(), 1000, 4, 42, weights, clock)
	require.NoError(t, err)
	return run
}

func TestRun_CompleteLifecycle(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	run := newTestRun(t, clock)
	require.Equal(t, shared.LifecycleStatusPending, run.Status())
	require.False(t, run.ID().IsZero())

	// Act
	require.NoError(t, run.Start())
	clock.Advance(90 * time.Second)
	points := []Point{{Weights: run.Weights()[0], Mean: 10}, {Weights: run.Weights()[1], Mean: 12}}
	err := run.Complete(points)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, shared.LifecycleStatusCompleted, run.Status())
	assert.Equal(t, 90*time.Second, run.Duration())
	assert.Len(t, run.Points(), 2)
}

func TestRun_CompleteRejectsMissingPoints(t *testing.T) {
	run := newTestRun(t, nil)
	require.NoError(t, run.Start())

	err := run.Complete([]Point{{Mean: 1}})

	var inv *shared.InvariantViolationError
	assert.True(t, errors.As(err, &inv))
	assert.Equal(t, shared.LifecycleStatusRunning, run.Status())
}

func TestRun_FailDropsPoints(t *testing.T) {
	run := newTestRun(t, nil)
	require.NoError(t, run.Start())

	require.NoError(t, run.Fail(errors.New("boom")))

	assert.Equal(t, shared.LifecycleStatusFailed, run.Status())
	assert.EqualError(t, run.LastError(), "boom")
	assert.Nil(t, run.Points())
	assert.Error(t, run.Stop(), "terminal states are final")
}

func TestNewRun_ValidatesInputs(t *testing.T) {
	var ve *shared.ValidationError

	_, err := NewRun(grove.DefaultParams(), 0, 1, 0, []grove.WeightTriple{grove.EqualWeights()}, nil)
	assert.True(t, errors.As(err, &ve))

	_, err = NewRun(grove.DefaultParams(), 10, 1, 0, nil, nil)
	assert.True(t, errors.As(err, &ve))

	_, err = NewRun(grove.DefaultParams(), 10, 1, 0, []grove.WeightTriple{{}}, nil)
	assert.True(t, errors.As(err, &ve))
}

func TestBest(t *testing.T) {
	_, ok := Best(nil)
	assert.False(t, ok)

	best, ok := Best([]Point{{Mean: 3}, {Mean: 7.5}, {Mean: 7}})
	assert.True(t, ok)
	assert.Equal(t, 7.5, best.Mean)
}

func TestPoint_AverageSeedCountRounds(t *testing.T) {
	p := Point{Mean: 1234.5678}

	assert.Equal(t, 1234.57, p.AverageSeedCount())
}

func TestParseRunID(t *testing.T) {
	id := NewRunID()

	parsed, err := ParseRunID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseRunID("not-a-uuid")
	assert.Error(t, err)
}
