package duo

import (
	"time"

	"duotimer/internal/core/stopwatch"
)

// TimerID identifies one of the two timers.
type TimerID int

const (
	TimerNone TimerID = iota - 1
	TimerFirst
	TimerSecond
)

// Valid reports whether the id names an existing timer.
func (id TimerID) Valid() bool {
	return id == TimerFirst || id == TimerSecond
}

// Action is a user command routed from hotkeys, menus or the mouse.
type Action string

const (
	ActionSelectFirst  Action = "select_first"
	ActionSelectSecond Action = "select_second"
	ActionCycle        Action = "cycle"
	ActionToggle       Action = "toggle"
	ActionResetAll     Action = "reset_all"
)

// Highlight selects the color a timer is drawn with.
type Highlight string

const (
	HighlightNormal      Highlight = "normal"
	HighlightSelected    Highlight = "selected"
	HighlightLastSeconds Highlight = "last_seconds"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventFrame       EventType = "frame"
	EventStateChange EventType = "state_change"
)

// TimerView is the display state of a single timer.
type TimerView struct {
	ID        TimerID
	State     stopwatch.State
	Elapsed   time.Duration
	Text      string
	Highlight Highlight
}

// Frame is a consistent view of both timers.
type Frame struct {
	Active TimerID
	Timers [2]TimerView
	At     time.Time
}

// Event represents a controller update for observers.
type Event struct {
	Type  EventType
	Frame Frame
}
