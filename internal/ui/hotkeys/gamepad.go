package hotkeys

import (
	"sort"

	"duotimer/internal/core/duo"
)

// GamepadButton is a button index in the standard gamepad layout.
type GamepadButton int

const (
	ButtonA GamepadButton = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftBumper
	ButtonRightBumper
)

// GamepadReader reports which buttons are held. ok is false when no gamepad
// is connected.
type GamepadReader interface {
	Buttons() (held []bool, ok bool)
}

// GamepadBindings maps buttons to controller actions.
type GamepadBindings map[GamepadButton]duo.Action

// DefaultGamepadBindings mirrors the keyboard layout on the face buttons:
// bumpers select a timer, A cycles, X starts or stops, Y resets both.
func DefaultGamepadBindings() GamepadBindings {
	return GamepadBindings{
		ButtonLeftBumper:  duo.ActionSelectFirst,
		ButtonRightBumper: duo.ActionSelectSecond,
		ButtonA:           duo.ActionCycle,
		ButtonX:           duo.ActionToggle,
		ButtonY:           duo.ActionResetAll,
	}
}

// Gamepad turns polled button state into actions, one per press.
type Gamepad struct {
	reader  GamepadReader
	buttons []GamepadButton
	actions GamepadBindings
	held    map[GamepadButton]bool
}

// NewGamepad creates a Gamepad over reader.
func NewGamepad(reader GamepadReader, bindings GamepadBindings) *Gamepad {
	buttons := make([]GamepadButton, 0, len(bindings))
	for button := range bindings {
		buttons = append(buttons, button)
	}
	sort.Slice(buttons, func(i, j int) bool { return buttons[i] < buttons[j] })

	return &Gamepad{
		reader:  reader,
		buttons: buttons,
		actions: bindings,
		held:    make(map[GamepadButton]bool),
	}
}

// Poll returns the actions of buttons pressed since the previous poll.
// Holding a button does not repeat its action.
func (pad *Gamepad) Poll() []duo.Action {
	state, ok := pad.reader.Buttons()
	if !ok {
		clear(pad.held)
		return nil
	}

	var actions []duo.Action
	for _, button := range pad.buttons {
		down := int(button) < len(state) && state[button]
		if down && !pad.held[button] {
			actions = append(actions, pad.actions[button])
		}
		pad.held[button] = down
	}
	return actions
}
