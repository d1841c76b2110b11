package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleStateMachine_CompletedRunTracksTimestamps(t *testing.T) {
	// Arrange
	clock := NewMockClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	sm := NewLifecycleStateMachine(clock)

	// Act
	require.NoError(t, sm.Start())
	clock.Advance(90 * time.Second)
	require.NoError(t, sm.Complete())
	clock.Advance(time.Hour)

	// Assert
	assert.Equal(t, LifecycleStatusCompleted, sm.Status())
	assert.True(t, sm.IsFinished())
	assert.False(t, sm.IsRunning())
	require.NotNil(t, sm.StartedAt())
	require.NotNil(t, sm.FinishedAt())
	assert.Equal(t, 90*time.Second, sm.RuntimeDuration(), "duration stops at completion")
}

func TestLifecycleStateMachine_RunningDurationUsesClock(t *testing.T) {
	clock := NewMockClock(time.Time{})
	sm := NewLifecycleStateMachine(clock)
	assert.Zero(t, sm.RuntimeDuration())

	require.NoError(t, sm.Start())
	clock.Advance(5 * time.Second)

	assert.True(t, sm.IsRunning())
	assert.Equal(t, 5*time.Second, sm.RuntimeDuration())
}

func TestLifecycleStateMachine_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(sm *LifecycleStateMachine)
		act     func(sm *LifecycleStateMachine) error
		want    LifecycleStatus
		wantErr bool
	}{
		{
			name:    "complete requires running",
			act:     func(sm *LifecycleStateMachine) error { return sm.Complete() },
			want:    LifecycleStatusPending,
			wantErr: true,
		},
		{
			name:    "start twice",
			prepare: func(sm *LifecycleStateMachine) { _ = sm.Start() },
			act:     func(sm *LifecycleStateMachine) error { return sm.Start() },
			want:    LifecycleStatusRunning,
			wantErr: true,
		},
		{
			name: "stop from pending",
			act:  func(sm *LifecycleStateMachine) error { return sm.Stop() },
			want: LifecycleStatusStopped,
		},
		{
			name:    "fail from running",
			prepare: func(sm *LifecycleStateMachine) { _ = sm.Start() },
			act:     func(sm *LifecycleStateMachine) error { return sm.Fail(errors.New("boom")) },
			want:    LifecycleStatusFailed,
		},
		{
			name:    "no transition out of a terminal state",
			prepare: func(sm *LifecycleStateMachine) { _ = sm.Start(); _ = sm.Complete() },
			act:     func(sm *LifecycleStateMachine) error { return sm.Stop() },
			want:    LifecycleStatusCompleted,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewLifecycleStateMachine(NewMockClock(time.Time{}))
			if tt.prepare != nil {
				tt.prepare(sm)
			}

			err := tt.act(sm)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, sm.Status())
		})
	}
}

func TestLifecycleStateMachine_FailKeepsError(t *testing.T) {
	sm := NewLifecycleStateMachine(nil)
	require.NoError(t, sm.Start())

	require.NoError(t, sm.Fail(errors.New("disk full")))

	assert.EqualError(t, sm.LastError(), "disk full")
}

func TestUnknownCropError_IsInvariantViolation(t *testing.T) {
	err := error(NewUnknownCropError(11))

	var violation *InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "crop-lookup", violation.Invariant)
	assert.Contains(t, err.Error(), "crop 11 not found")
}

func TestMockClock_SetAndAdvance(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	clock.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), clock.Now())

	clock.Set(start)
	assert.Equal(t, start, clock.Now())
}
