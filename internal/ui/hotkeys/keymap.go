package hotkeys

import (
	"errors"
	"fmt"
	"strings"

	"duotimer/internal/core/duo"

	"fyne.io/fyne/v2"
)

var (
	// ErrUnknownKey indicates a binding names a key outside the supported set.
	ErrUnknownKey = errors.New("unknown key")
	// ErrDuplicateKey indicates two actions are bound to the same key.
	ErrDuplicateKey = errors.New("key bound twice")
)

// Bindings maps each controller action to a key name.
type Bindings struct {
	First    string
	Second   string
	Cycle    string
	Toggle   string
	ResetAll string
}

// DefaultBindings returns the function-key layout.
func DefaultBindings() Bindings {
	return Bindings{
		First:    string(fyne.KeyF1),
		Second:   string(fyne.KeyF2),
		Cycle:    string(fyne.KeyF3),
		Toggle:   string(fyne.KeyF4),
		ResetAll: string(fyne.KeyF5),
	}
}

// Keymap resolves key names to actions.
type Keymap struct {
	actions map[fyne.KeyName]duo.Action
}

// NewKeymap validates bindings and builds a Keymap. Empty bindings are
// left unassigned.
func NewKeymap(bindings Bindings) (*Keymap, error) {
	keymap := &Keymap{actions: make(map[fyne.KeyName]duo.Action)}
	entries := []struct {
		name   string
		action duo.Action
	}{
		{bindings.First, duo.ActionSelectFirst},
		{bindings.Second, duo.ActionSelectSecond},
		{bindings.Cycle, duo.ActionCycle},
		{bindings.Toggle, duo.ActionToggle},
		{bindings.ResetAll, duo.ActionResetAll},
	}

	for _, entry := range entries {
		if strings.TrimSpace(entry.name) == "" {
			continue
		}
		key, err := ParseKey(entry.name)
		if err != nil {
			return nil, fmt.Errorf("bind %s: %w", entry.action, err)
		}
		if existing, ok := keymap.actions[key]; ok {
			return nil, fmt.Errorf("bind %s to %s: %w (already %s)", entry.action, key, ErrDuplicateKey, existing)
		}
		keymap.actions[key] = entry.action
	}
	return keymap, nil
}

// Resolve returns the action bound to a key name.
func (keymap *Keymap) Resolve(name fyne.KeyName) (duo.Action, bool) {
	if keymap == nil {
		return "", false
	}
	action, ok := keymap.actions[name]
	return action, ok
}

// ParseKey normalizes a user-entered key name, accepting any letter case.
func ParseKey(name string) (fyne.KeyName, error) {
	trimmed := strings.TrimSpace(name)
	for _, key := range supportedKeys {
		if strings.EqualFold(string(key), trimmed) {
			return key, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownKey)
}

// Escape is left out: the terminal frontend quits on it.
var supportedKeys = []fyne.KeyName{
	fyne.KeyF1, fyne.KeyF2, fyne.KeyF3, fyne.KeyF4, fyne.KeyF5, fyne.KeyF6,
	fyne.KeyF7, fyne.KeyF8, fyne.KeyF9, fyne.KeyF10, fyne.KeyF11, fyne.KeyF12,
	fyne.KeyA, fyne.KeyB, fyne.KeyC, fyne.KeyD, fyne.KeyE, fyne.KeyF, fyne.KeyG,
	fyne.KeyH, fyne.KeyI, fyne.KeyJ, fyne.KeyK, fyne.KeyL, fyne.KeyM, fyne.KeyN,
	fyne.KeyO, fyne.KeyP, fyne.KeyQ, fyne.KeyR, fyne.KeyS, fyne.KeyT, fyne.KeyU,
	fyne.KeyV, fyne.KeyW, fyne.KeyX, fyne.KeyY, fyne.KeyZ,
	fyne.Key0, fyne.Key1, fyne.Key2, fyne.Key3, fyne.Key4,
	fyne.Key5, fyne.Key6, fyne.Key7, fyne.Key8, fyne.Key9,
	fyne.KeySpace, fyne.KeyReturn, fyne.KeyTab, fyne.KeyBackspace,
	fyne.KeyInsert, fyne.KeyDelete, fyne.KeyHome, fyne.KeyEnd,
	fyne.KeyPageUp, fyne.KeyPageDown,
	fyne.KeyUp, fyne.KeyDown, fyne.KeyLeft, fyne.KeyRight,
}
