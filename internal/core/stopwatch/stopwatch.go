package stopwatch

import (
	"sync"
	"time"
)

// State represents the current Timer mode.
type State string

const (
	StateZero    State = "zero"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Snapshot is a consistent copy of a Timer's observable values.
type Snapshot struct {
	State       State
	Accumulated time.Duration
	Elapsed     time.Duration
}

// Millis returns the displayed time in whole milliseconds.
func (snapshot Snapshot) Millis() int64 {
	return snapshot.Elapsed.Milliseconds()
}

// Text returns the formatted display string.
func (snapshot Snapshot) Text() string {
	return Format(snapshot.Millis())
}

// Timer is a stopwatch that accumulates running time across start/stop
// cycles. It is safe for one goroutine to Tick while others read.
type Timer struct {
	mu            sync.Mutex
	clock         Clock
	state         State
	accumulated   time.Duration
	intervalStart time.Time
	live          time.Duration
}

// New creates a Timer in the zero state. A nil clock selects SystemClock.
func New(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timer{
		clock: clock,
		state: StateZero,
	}
}

// Start begins a new running interval. Calling Start on a running timer
// keeps the current interval.
func (timer *Timer) Start() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.state == StateRunning {
		return
	}
	timer.state = StateRunning
	timer.intervalStart = timer.clock.Now()
	timer.live = timer.accumulated
}

// Stop folds the running interval into the accumulated time and pauses.
func (timer *Timer) Stop() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.state != StateRunning {
		return
	}
	timer.accumulated += nonNegative(timer.clock.Now().Sub(timer.intervalStart))
	timer.live = timer.accumulated
	timer.state = StatePaused
}

// Reset returns the timer to zero, dropping any running interval.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.state = StateZero
	timer.accumulated = 0
	timer.live = 0
	timer.intervalStart = time.Time{}
}

// Tick recomputes the displayed time of a running timer.
func (timer *Timer) Tick(now time.Time) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.state != StateRunning {
		return
	}
	timer.live = timer.accumulated + nonNegative(now.Sub(timer.intervalStart))
}

// State returns the current state.
func (timer *Timer) State() State {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.state
}

// Accumulated returns the time folded in by completed intervals.
func (timer *Timer) Accumulated() time.Duration {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.accumulated
}

// Elapsed returns the displayed time as of the last tick or transition.
func (timer *Timer) Elapsed() time.Duration {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.live
}

// Millis returns Elapsed in whole milliseconds.
func (timer *Timer) Millis() int64 {
	return timer.Elapsed().Milliseconds()
}

// Text returns the formatted display string.
func (timer *Timer) Text() string {
	return Format(timer.Millis())
}

// Snapshot returns state and times read under a single lock.
func (timer *Timer) Snapshot() Snapshot {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return Snapshot{
		State:       timer.state,
		Accumulated: timer.accumulated,
		Elapsed:     timer.live,
	}
}

func nonNegative(value time.Duration) time.Duration {
	if value < 0 {
		return 0
	}
	return value
}
