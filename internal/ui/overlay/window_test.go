package overlay

import (
	"image/color"
	"testing"

	"duotimer/internal/core/duo"
	"duotimer/internal/core/stopwatch"
	"duotimer/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWindow(t *testing.T, callbacks Callbacks) *Window {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	config, err := ConfigFromSettings(preferences.DefaultSettings())
	require.NoError(t, err)
	return New(app, config, callbacks)
}

func TestConfigFromSettings(t *testing.T) {
	settings := preferences.DefaultSettings()
	settings.Transparent = true

	config, err := ConfigFromSettings(settings)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x00, G: 0xB3, B: 0x00, A: 255}, config.Palette.Timer)
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0x40, B: 0x40, A: 255}, config.Palette.LastSeconds)
	assert.Equal(t, float32(300), config.Width)
	assert.True(t, config.Transparent)

	settings.Colors.Background = "nope"
	_, err = ConfigFromSettings(settings)
	assert.ErrorIs(t, err, preferences.ErrInvalidColor)
}

func TestRenderAppliesTextAndHighlight(t *testing.T) {
	overlay := newTestWindow(t, Callbacks{})

	frame := duo.Frame{Active: duo.TimerSecond}
	frame.Timers[duo.TimerFirst] = duo.TimerView{ID: duo.TimerFirst, State: stopwatch.StatePaused, Text: "1:05.0", Highlight: duo.HighlightNormal}
	frame.Timers[duo.TimerSecond] = duo.TimerView{ID: duo.TimerSecond, State: stopwatch.StateRunning, Text: "58.12", Highlight: duo.HighlightLastSeconds}
	overlay.renderUnsafe(frame)

	assert.Equal(t, "1:05.0", overlay.Text(duo.TimerFirst))
	assert.Equal(t, "58.12", overlay.Text(duo.TimerSecond))
	assert.Equal(t, overlay.config.Palette.Timer, overlay.panes[duo.TimerFirst].text.Color)
	assert.Equal(t, overlay.config.Palette.LastSeconds, overlay.panes[duo.TimerSecond].text.Color)
	assert.Equal(t, "", overlay.Text(duo.TimerNone))
}

func TestUpdateConfigRecolorsCurrentFrame(t *testing.T) {
	overlay := newTestWindow(t, Callbacks{})

	frame := duo.Frame{Active: duo.TimerFirst}
	frame.Timers[duo.TimerFirst] = duo.TimerView{ID: duo.TimerFirst, Text: "0.00", Highlight: duo.HighlightSelected}
	frame.Timers[duo.TimerSecond] = duo.TimerView{ID: duo.TimerSecond, Text: "0.00", Highlight: duo.HighlightNormal}
	overlay.renderUnsafe(frame)

	config := overlay.config
	config.Palette.Selected = color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	config.Transparent = true
	overlay.UpdateConfig(config)

	assert.Equal(t, config.Palette.Selected, overlay.panes[duo.TimerFirst].text.Color)
	assert.Equal(t, uint8(0), overlay.background.FillColor.(color.NRGBA).A)
}

func TestPointerCallbacks(t *testing.T) {
	var selected, toggled []duo.TimerID
	overlay := newTestWindow(t, Callbacks{
		OnSelect: func(id duo.TimerID) { selected = append(selected, id) },
		OnToggle: func(id duo.TimerID) { toggled = append(toggled, id) },
	})

	overlay.panes[duo.TimerSecond].Tapped(&fyne.PointEvent{})
	overlay.panes[duo.TimerFirst].DoubleTapped(&fyne.PointEvent{})

	assert.Equal(t, []duo.TimerID{duo.TimerSecond}, selected)
	assert.Equal(t, []duo.TimerID{duo.TimerFirst}, toggled)
}

func TestTypedKeysAreForwarded(t *testing.T) {
	var keys []fyne.KeyName
	overlay := newTestWindow(t, Callbacks{
		OnKey: func(name fyne.KeyName) { keys = append(keys, name) },
	})

	overlay.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyF3})

	assert.Equal(t, []fyne.KeyName{fyne.KeyF3}, keys)
}

func TestContextMenuItems(t *testing.T) {
	quit := false
	overlay := newTestWindow(t, Callbacks{OnQuit: func() { quit = true }})

	menu := overlay.contextMenu()
	labels := make([]string, 0, len(menu.Items))
	for _, item := range menu.Items {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Settings", "Reset both", "", "Quit"}, labels)

	menu.Items[0].Action()
	menu.Items[3].Action()
	assert.True(t, quit)
}
