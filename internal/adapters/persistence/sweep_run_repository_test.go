package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/persistence"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
	"github.com/JZongit/Crop-Rotation-Simulator/test/helpers"
)

func completedRun(t *testing.T, clock *shared.MockClock, means ...float64) *sweep.Run {
	t.Helper()
	weights := make([]grove.WeightTriple, len(means))
	for i := range means {
		weights[i] = grove.WeightTriple{Yellow: 0.55, Blue: 1, Purple: float64(i + 1)}
	}
	params := grove.DefaultParams()
	params.YellowRisk = grove.PickMostJuicy
	run, err := sweep.NewRun(params, 5000, 8, 1<<63+7, weights, clock)
	require.NoError(t, err)
	require.NoError(t, run.Start())
	clock.Advance(time.Minute)

	points := make([]sweep.Point, len(means))
	for i, m := range means {
		points[i] = sweep.Point{Weights: weights[i], Iterations: 5000, Mean: m, Variance: m / 2, StdDev: 1.5}
	}
	require.NoError(t, run.Complete(points))
	return run
}

func TestSweepRunRepository_SaveAndFind(t *testing.T) {
	// Arrange
	repo, _ := helpers.NewTestSweepRunRepository(t)
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	run := completedRun(t, clock, 101.5, 99.25, 120)

	// Act - Save
	err := repo.Save(context.Background(), run)

	// Assert
	require.NoError(t, err)

	// Act - FindByID
	found, err := repo.FindByID(context.Background(), run.ID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, run.ID(), found.ID())
	assert.Equal(t, shared.LifecycleStatusCompleted, found.Status())
	assert.Equal(t, run.Params(), found.Params())
	assert.Equal(t, run.Seed(), found.Seed())
	assert.Equal(t, 5000, found.Iterations())
	assert.Equal(t, 8, found.Parallelism())
	assert.Equal(t, run.Points(), found.Points())
	assert.Equal(t, 3, found.PointCount())
	require.NotNil(t, found.FinishedAt())
	assert.Equal(t, time.Minute, found.Duration())
}

func TestSweepRunRepository_SaveReplacesPoints(t *testing.T) {
	repo, db := helpers.NewTestSweepRunRepository(t)
	clock := shared.NewMockClock(time.Now())
	run := completedRun(t, clock, 1, 2)
	require.NoError(t, repo.Save(context.Background(), run))

	require.NoError(t, repo.Save(context.Background(), run))

	var count int64
	require.NoError(t, db.Model(&persistence.SweepPointModel{}).Where("run_id = ?", run.ID().String()).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSweepRunRepository_FindMissing(t *testing.T) {
	repo, _ := helpers.NewTestSweepRunRepository(t)

	_, err := repo.FindByID(context.Background(), sweep.NewRunID())

	var notFound *sweep.ErrRunNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestSweepRunRepository_ListNewestFirst(t *testing.T) {
	// Arrange
	repo, _ := helpers.NewTestSweepRunRepository(t)
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	older := completedRun(t, clock, 1)
	clock.Advance(time.Hour)
	newer := completedRun(t, clock, 2, 3)
	require.NoError(t, repo.Save(context.Background(), older))
	require.NoError(t, repo.Save(context.Background(), newer))

	failed, err := sweep.NewRun(grove.DefaultParams(), 10, 1, 0, []grove.WeightTriple{grove.EqualWeights()}, clock)
	require.NoError(t, err)
	require.NoError(t, failed.Fail(errors.New("cancelled")))
	require.NoError(t, repo.Save(context.Background(), failed))

	// Act
	completed := shared.LifecycleStatusCompleted
	runs, err := repo.List(context.Background(), sweep.ListOptions{Status: &completed, Limit: 10})

	// Assert
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID(), runs[0].ID())
	assert.Equal(t, older.ID(), runs[1].ID())
	assert.Equal(t, 2, runs[0].PointCount())
	assert.Nil(t, runs[0].Points(), "list does not load points")

	all, err := repo.List(context.Background(), sweep.DefaultListOptions())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
