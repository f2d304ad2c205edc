package tray

import (
	"fmt"
	"time"

	"duotimer/internal/core/duo"
	"duotimer/internal/core/stopwatch"

	"fyne.io/fyne/v2"
)

// MenuSetter is the part of desktop.App the tray needs.
type MenuSetter interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnSettings func()
	OnToggle   func(duo.TimerID)
	OnResetAll func()
	OnQuit     func()
}

// Manager handles system tray state.
type Manager struct {
	app        MenuSetter
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggles    [2]*fyne.MenuItem
	status     string
}

// New creates a tray manager with the provided callbacks.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("1: 0.00 | 2: 0.00", nil)
	manager.statusItem.Disabled = true

	for _, id := range []duo.TimerID{duo.TimerFirst, duo.TimerSecond} {
		id := id
		manager.toggles[id] = fyne.NewMenuItem(toggleLabel(id, stopwatch.StateZero), func() {
			if manager.callbacks.OnToggle != nil {
				manager.callbacks.OnToggle(id)
			}
		})
	}

	manager.refreshMenu()
	return manager
}

// Update reflects a frame in the menu. It reports whether anything changed.
func (manager *Manager) Update(frame duo.Frame) bool {
	first := frame.Timers[duo.TimerFirst]
	second := frame.Timers[duo.TimerSecond]

	status := fmt.Sprintf("1: %s | 2: %s", statusText(first), statusText(second))
	changed := status != manager.status
	manager.status = status
	manager.statusItem.Label = status

	for _, view := range frame.Timers {
		if !view.ID.Valid() {
			continue
		}
		label := toggleLabel(view.ID, view.State)
		if manager.toggles[view.ID].Label != label {
			manager.toggles[view.ID].Label = label
			changed = true
		}
	}

	if changed {
		manager.refreshMenu()
	}
	return changed
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	call := func(handler func()) func() {
		return func() {
			if handler != nil {
				handler()
			}
		}
	}
	return fyne.NewMenu("DuoTimer",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggles[duo.TimerFirst],
		manager.toggles[duo.TimerSecond],
		fyne.NewMenuItem("Reset both", call(manager.callbacks.OnResetAll)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", call(manager.callbacks.OnSettings)),
		fyne.NewMenuItem("Quit", call(manager.callbacks.OnQuit)),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

// statusText shows whole seconds so the native menu is rebuilt at most
// once a second while a timer runs.
func statusText(view duo.TimerView) string {
	return stopwatch.Format(view.Elapsed.Truncate(time.Second).Milliseconds())
}

func toggleLabel(id duo.TimerID, state stopwatch.State) string {
	verb := "Start"
	if state == stopwatch.StateRunning {
		verb = "Stop"
	}
	return fmt.Sprintf("%s timer %d", verb, int(id)+1)
}
