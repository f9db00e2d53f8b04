package domain

import (
	"time"

	apperrors "wellness/internal/platform/errors"
)

type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerPaused
)

func (s TimerState) String() string {
	switch s {
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	default:
		return "idle"
	}
}

// Timer is the count-up practice clock. Every Start opens a new tick
// generation; a tick for any other generation is dropped, so the repeating
// callback of a paused or reset timer ends on its next delivery.
type Timer struct {
	state      TimerState
	seconds    int
	generation uint64
}

func (t Timer) State() TimerState  { return t.state }
func (t Timer) Seconds() int       { return t.seconds }
func (t Timer) Generation() uint64 { return t.generation }
func (t Timer) Running() bool      { return t.state == TimerRunning }

// Start moves Idle or Paused to Running and returns the generation the
// caller must attach to its ticks. ok is false when already running.
func (t *Timer) Start() (generation uint64, ok bool) {
	if t.state == TimerRunning {
		return t.generation, false
	}
	t.state = TimerRunning
	t.generation++
	return t.generation, true
}

func (t *Timer) Pause() bool {
	if t.state != TimerRunning {
		return false
	}
	t.state = TimerPaused
	return true
}

// Toggle is the single start/pause button.
func (t *Timer) Toggle() (generation uint64, started bool) {
	if t.state == TimerRunning {
		t.Pause()
		return t.generation, false
	}
	return t.Start()
}

func (t *Timer) Reset() {
	t.state = TimerIdle
	t.seconds = 0
	t.generation++
}

// Tick advances the counter by one second. It reports false when the tick is
// stale and must not be rescheduled.
func (t *Timer) Tick(generation uint64) bool {
	if t.state != TimerRunning || generation != t.generation {
		return false
	}
	t.seconds++
	return true
}

func (t Timer) CanSave() bool {
	return t.state == TimerPaused && t.seconds > 0
}

// Record builds the session to persist. The timer itself is left unchanged;
// callers reset it only once the store accepted the record.
func (t Timer) Record(now time.Time) (SessionRecord, error) {
	if !t.CanSave() {
		return SessionRecord{}, apperrors.ErrNothingToSave
	}
	return NewSessionRecord(now, t.seconds), nil
}
