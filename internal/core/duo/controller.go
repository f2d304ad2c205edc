package duo

import (
	"sync"
	"time"

	"duotimer/internal/core/model"
	"duotimer/internal/core/stopwatch"

	"github.com/sirupsen/logrus"
)

// Config contains runtime options for the Controller loop.
type Config struct {
	TickInterval  time.Duration
	FrameInterval time.Duration
}

// Controller owns two stopwatches, the active selection and the update loop
// that ticks them.
type Controller struct {
	mu            sync.Mutex
	config        model.ControllerConfig
	options       Config
	clock         stopwatch.Clock
	timers        [2]*stopwatch.Timer
	active        TimerID
	events        []chan Event
	stopCh        chan struct{}
	running       bool
	lastFrameSent time.Time
}

// New creates a Controller. A nil clock selects the system clock.
func New(config model.ControllerConfig, options Config, clock stopwatch.Clock) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Millisecond
	}
	if options.FrameInterval <= 0 {
		options.FrameInterval = 16 * time.Millisecond
	}
	if config.LastSecondsWindow <= 0 {
		config.LastSecondsWindow = model.DefaultLastSecondsWindow
	}
	if clock == nil {
		clock = stopwatch.SystemClock{}
	}

	return &Controller{
		config:  config,
		options: options,
		clock:   clock,
		timers:  [2]*stopwatch.Timer{stopwatch.New(clock), stopwatch.New(clock)},
		active:  TimerNone,
	}
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	controller.events = append(controller.events, ch)
	controller.mu.Unlock()
	return ch
}

// Start launches the ticking loop.
func (controller *Controller) Start() {
	controller.mu.Lock()
	if controller.running {
		controller.mu.Unlock()
		return
	}
	controller.running = true
	controller.stopCh = make(chan struct{})
	stopCh := controller.stopCh
	controller.mu.Unlock()

	go controller.run(stopCh)
}

// Stop terminates the ticking loop and closes observers.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	if !controller.running {
		controller.mu.Unlock()
		return
	}
	close(controller.stopCh)
	controller.running = false
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// UpdateConfig replaces runtime settings. Timer values are kept.
func (controller *Controller) UpdateConfig(config model.ControllerConfig) {
	if config.LastSecondsWindow <= 0 {
		config.LastSecondsWindow = model.DefaultLastSecondsWindow
	}
	controller.mu.Lock()
	controller.config = config
	controller.emitStateLocked()
	controller.mu.Unlock()
}

// Handle applies a hotkey or menu action.
func (controller *Controller) Handle(action Action) {
	logrus.WithField("action", action).Debug("handle action")

	controller.mu.Lock()
	defer controller.mu.Unlock()

	cycle := false
	switch action {
	case ActionSelectFirst:
		controller.active = TimerFirst
		cycle = controller.config.StartOnChange
	case ActionSelectSecond:
		controller.active = TimerSecond
		cycle = controller.config.StartOnChange
	case ActionCycle:
		cycle = true
	case ActionToggle:
		if timer := controller.activeTimerLocked(); timer != nil {
			toggle(timer)
		}
	case ActionResetAll:
		for _, timer := range controller.timers {
			timer.Reset()
		}
	default:
		return
	}

	if cycle {
		if timer := controller.activeTimerLocked(); timer != nil {
			advance(timer)
		}
	}
	controller.emitStateLocked()
}

// Select makes the given timer active without changing its state.
func (controller *Controller) Select(id TimerID) {
	if !id.Valid() && id != TimerNone {
		return
	}
	controller.mu.Lock()
	controller.active = id
	controller.emitStateLocked()
	controller.mu.Unlock()
}

// Toggle starts or stops a specific timer.
func (controller *Controller) Toggle(id TimerID) {
	if !id.Valid() {
		return
	}
	controller.mu.Lock()
	toggle(controller.timers[id])
	controller.emitStateLocked()
	controller.mu.Unlock()
}

// Active returns the selected timer, or TimerNone.
func (controller *Controller) Active() TimerID {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.active
}

// Timer exposes one of the stopwatches.
func (controller *Controller) Timer(id TimerID) *stopwatch.Timer {
	if !id.Valid() {
		return nil
	}
	return controller.timers[id]
}

// Frame returns the current display state of both timers.
func (controller *Controller) Frame() Frame {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.frameLocked(controller.clock.Now())
}

func (controller *Controller) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(controller.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			controller.tick(controller.clock.Now())
		}
	}
}

func (controller *Controller) tick(now time.Time) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	anyRunning := false
	for _, timer := range controller.timers {
		timer.Tick(now)
		if timer.State() == stopwatch.StateRunning {
			anyRunning = true
		}
	}
	if !anyRunning {
		return
	}
	if !controller.lastFrameSent.IsZero() && now.Sub(controller.lastFrameSent) < controller.options.FrameInterval {
		return
	}
	controller.lastFrameSent = now
	controller.emitLocked(Event{
		Type:  EventFrame,
		Frame: controller.frameLocked(now),
	})
}

func (controller *Controller) activeTimerLocked() *stopwatch.Timer {
	if !controller.active.Valid() {
		return nil
	}
	return controller.timers[controller.active]
}

func (controller *Controller) frameLocked(now time.Time) Frame {
	first := controller.timers[TimerFirst].Snapshot()
	second := controller.timers[TimerSecond].Snapshot()

	frame := Frame{
		Active: controller.active,
		At:     now,
	}
	frame.Timers[TimerFirst] = view(TimerFirst, first, HighlightNormal)
	frame.Timers[TimerSecond] = view(TimerSecond, second, HighlightNormal)

	if controller.active == TimerNone {
		return frame
	}
	if controller.active == TimerFirst {
		frame.Timers[TimerFirst].Highlight = HighlightSelected
	}

	lead := first.Elapsed - second.Elapsed
	switch {
	case first.Elapsed > 0 && second.State != stopwatch.StateZero &&
		lead > 0 && lead <= controller.config.LastSecondsWindow:
		frame.Timers[TimerSecond].Highlight = HighlightLastSeconds
	case controller.active == TimerSecond:
		frame.Timers[TimerSecond].Highlight = HighlightSelected
	}
	return frame
}

func (controller *Controller) emitStateLocked() {
	controller.emitLocked(Event{
		Type:  EventStateChange,
		Frame: controller.frameLocked(controller.clock.Now()),
	})
}

func (controller *Controller) emitLocked(event Event) {
	events := append([]chan Event(nil), controller.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

func view(id TimerID, snapshot stopwatch.Snapshot, highlight Highlight) TimerView {
	return TimerView{
		ID:        id,
		State:     snapshot.State,
		Elapsed:   snapshot.Elapsed,
		Text:      snapshot.Text(),
		Highlight: highlight,
	}
}

// advance steps a timer through zero -> running -> paused -> zero.
func advance(timer *stopwatch.Timer) {
	switch timer.State() {
	case stopwatch.StateZero:
		timer.Start()
	case stopwatch.StateRunning:
		timer.Stop()
	default:
		timer.Reset()
	}
}

func toggle(timer *stopwatch.Timer) {
	if timer.State() == stopwatch.StateRunning {
		timer.Stop()
		return
	}
	timer.Start()
}
