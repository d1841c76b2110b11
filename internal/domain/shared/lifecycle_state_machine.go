package shared

import (
	"fmt"
	"time"
)

// LifecycleStatus is the state of a long-running unit of work such as a sweep
type LifecycleStatus string

const (
	LifecycleStatusPending   LifecycleStatus = "PENDING"
	LifecycleStatusRunning   LifecycleStatus = "RUNNING"
	LifecycleStatusCompleted LifecycleStatus = "COMPLETED"
	LifecycleStatusFailed    LifecycleStatus = "FAILED"

	// LifecycleStatusStopped marks work cancelled from outside
	LifecycleStatusStopped LifecycleStatus = "STOPPED"
)

// IsTerminal reports whether no further transition is allowed
func (s LifecycleStatus) IsTerminal() bool {
	return s == LifecycleStatusCompleted || s == LifecycleStatusFailed || s == LifecycleStatusStopped
}

// LifecycleStateMachine tracks PENDING → RUNNING → COMPLETED|FAILED|STOPPED
// with clock-driven timestamps. Terminal states are final.
type LifecycleStateMachine struct {
	status     LifecycleStatus
	createdAt  time.Time
	startedAt  *time.Time
	finishedAt *time.Time
	lastError  error
	clock      Clock
}

// NewLifecycleStateMachine starts in PENDING. A nil clock uses wall time.
func NewLifecycleStateMachine(clock Clock) *LifecycleStateMachine {
	if clock == nil {
		clock = NewRealClock()
	}
	return &LifecycleStateMachine{
		status:    LifecycleStatusPending,
		createdAt: clock.Now(),
		clock:     clock,
	}
}

func (sm *LifecycleStateMachine) Status() LifecycleStatus  { return sm.status }
func (sm *LifecycleStateMachine) CreatedAt() time.Time     { return sm.createdAt }
func (sm *LifecycleStateMachine) StartedAt() *time.Time    { return sm.startedAt }
func (sm *LifecycleStateMachine) FinishedAt() *time.Time   { return sm.finishedAt }
func (sm *LifecycleStateMachine) LastError() error         { return sm.lastError }

// Start moves PENDING to RUNNING
func (sm *LifecycleStateMachine) Start() error {
	if sm.status != LifecycleStatusPending {
		return fmt.Errorf("cannot start from %s state", sm.status)
	}
	now := sm.clock.Now()
	sm.status = LifecycleStatusRunning
	sm.startedAt = &now
	return nil
}

// Complete moves RUNNING to COMPLETED
func (sm *LifecycleStateMachine) Complete() error {
	if sm.status != LifecycleStatusRunning {
		return fmt.Errorf("cannot complete from %s state", sm.status)
	}
	sm.finish(LifecycleStatusCompleted)
	return nil
}

// Fail records err and moves any non-terminal state to FAILED
func (sm *LifecycleStateMachine) Fail(err error) error {
	if sm.status.IsTerminal() {
		return fmt.Errorf("cannot fail from %s state", sm.status)
	}
	sm.lastError = err
	sm.finish(LifecycleStatusFailed)
	return nil
}

// Stop moves any non-terminal state to STOPPED
func (sm *LifecycleStateMachine) Stop() error {
	if sm.status.IsTerminal() {
		return fmt.Errorf("cannot stop from %s state", sm.status)
	}
	sm.finish(LifecycleStatusStopped)
	return nil
}

func (sm *LifecycleStateMachine) finish(status LifecycleStatus) {
	now := sm.clock.Now()
	sm.status = status
	sm.finishedAt = &now
}

func (sm *LifecycleStateMachine) IsRunning() bool  { return sm.status == LifecycleStatusRunning }
func (sm *LifecycleStateMachine) IsFinished() bool { return sm.status.IsTerminal() }

// RuntimeDuration is the time spent running so far, 0 before Start
func (sm *LifecycleStateMachine) RuntimeDuration() time.Duration {
	if sm.startedAt == nil {
		return 0
	}
	end := sm.clock.Now()
	if sm.finishedAt != nil {
		end = *sm.finishedAt
	}
	return end.Sub(*sm.startedAt)
}

// RecoverFromPersistence restores state read back from storage
func (sm *LifecycleStateMachine) RecoverFromPersistence(
	status LifecycleStatus,
	createdAt time.Time,
	startedAt, finishedAt *time.Time,
	lastError error,
) {
	sm.status = status
	sm.createdAt = createdAt
	sm.startedAt = startedAt
	sm.finishedAt = finishedAt
	sm.lastError = lastError
}
