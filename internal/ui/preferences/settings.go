package preferences

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"duotimer/internal/core/model"
	"duotimer/internal/ui/hotkeys"
)

const (
	MinWindowSide = 25
	MaxWindowSide = 700
)

var (
	// ErrInvalidColor indicates a color that is not #RRGGBB.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInvalidSize indicates a window side outside the allowed range.
	ErrInvalidSize = errors.New("invalid window size")
)

// Colors holds the palette as #RRGGBB strings.
type Colors struct {
	Timer       string
	Selected    string
	LastSeconds string
	Background  string
}

// Settings defines editable user preferences.
type Settings struct {
	Colors Colors
	Keys   hotkeys.Bindings

	StartOnChange     bool
	LastSecondsWindow time.Duration

	// ChimeOnLastSeconds sounds a tone when timer 2 enters the window.
	ChimeOnLastSeconds bool

	// Gamepad routes gamepad buttons to the same actions as the hotkeys.
	Gamepad bool

	Transparent   bool
	AlwaysOnTop   bool
	LaunchAtLogin bool
	Width         int
	Height        int

	LogLevel string
}

// DefaultSettings returns default settings for DuoTimer.
func DefaultSettings() Settings {
	return Settings{
		Colors: Colors{
			Timer:       "#00B300",
			Selected:    "#FFD700",
			LastSeconds: "#FF4040",
			Background:  "#000000",
		},
		Keys:              hotkeys.DefaultBindings(),
		StartOnChange:     false,
		LastSecondsWindow: model.DefaultLastSecondsWindow,
		AlwaysOnTop:       true,
		Width:             300,
		Height:            80,
		LogLevel:          "info",
	}
}

// ControllerConfig converts settings to a ControllerConfig.
func (settings Settings) ControllerConfig() model.ControllerConfig {
	return model.ControllerConfig{
		StartOnChange:     settings.StartOnChange,
		LastSecondsWindow: settings.LastSecondsWindow,
	}
}

// Keymap builds the hotkey table for these settings.
func (settings Settings) Keymap() (*hotkeys.Keymap, error) {
	return hotkeys.NewKeymap(settings.Keys)
}

// Validate reports the first invalid field.
func (settings Settings) Validate() error {
	palette := []struct {
		name  string
		value string
	}{
		{"timer color", settings.Colors.Timer},
		{"selected color", settings.Colors.Selected},
		{"last seconds color", settings.Colors.LastSeconds},
		{"background color", settings.Colors.Background},
	}
	for _, entry := range palette {
		if _, err := ParseColor(entry.value); err != nil {
			return fmt.Errorf("%s: %w", entry.name, err)
		}
	}

	if !ValidSide(settings.Width) || !ValidSide(settings.Height) {
		return fmt.Errorf("%dx%d: %w", settings.Width, settings.Height, ErrInvalidSize)
	}

	if _, err := settings.Keymap(); err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	return nil
}

// ValidSide reports whether a window side is within the resize bounds.
func ValidSide(value int) bool {
	return value >= MinWindowSide && value <= MaxWindowSide
}

// ParseColor parses #RRGGBB (the leading # is optional).
func ParseColor(value string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%q: %w", value, ErrInvalidColor)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%q: %w", value, ErrInvalidColor)
	}
	return color.NRGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 255,
	}, nil
}

// FormatColor renders a color as #RRGGBB.
func FormatColor(value color.Color) string {
	r, g, b, _ := value.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}
