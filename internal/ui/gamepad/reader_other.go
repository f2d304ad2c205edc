//go:build js || wasm || android || ios

package gamepad

// Reader never reports a gamepad on platforms without GLFW.
type Reader struct{}

// Buttons implements hotkeys.GamepadReader.
func (Reader) Buttons() ([]bool, bool) {
	return nil, false
}
