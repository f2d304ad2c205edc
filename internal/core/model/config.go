package model

import "time"

// DefaultLastSecondsWindow is the lead within which the second timer is
// highlighted as closing in on the first.
const DefaultLastSecondsWindow = 20 * time.Second

// ControllerConfig contains runtime settings for the two-timer controller.
type ControllerConfig struct {
	// StartOnChange cycles a timer as soon as it is selected.
	StartOnChange bool

	LastSecondsWindow time.Duration
}
