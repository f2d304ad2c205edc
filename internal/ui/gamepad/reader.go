//go:build !js && !wasm && !android && !ios

// Package gamepad reads joystick buttons through GLFW, the windowing
// library behind fyne's desktop driver.
package gamepad

import "github.com/go-gl/glfw/v3.3/glfw"

// Reader reports the buttons of the first joystick that has a gamepad
// mapping. GLFW must be initialised and calls must run on the main thread,
// which fyne.Do guarantees once the app is running.
type Reader struct{}

// Buttons implements hotkeys.GamepadReader.
func (Reader) Buttons() ([]bool, bool) {
	for joystick := glfw.Joystick1; joystick <= glfw.JoystickLast; joystick++ {
		if !joystick.IsGamepad() {
			continue
		}
		state := joystick.GetGamepadState()
		if state == nil {
			continue
		}
		held := make([]bool, len(state.Buttons))
		for i, action := range state.Buttons {
			held[i] = action == glfw.Press
		}
		return held, true
	}
	return nil, false
}
