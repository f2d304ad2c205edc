package overlay

import (
	"fmt"
	"image/color"

	"duotimer/internal/core/duo"
	"duotimer/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const transparentAlpha uint8 = 190

// Palette holds the parsed overlay colors.
type Palette struct {
	Timer       color.NRGBA
	Selected    color.NRGBA
	LastSeconds color.NRGBA
	Background  color.NRGBA
}

// Config defines overlay visuals.
type Config struct {
	Palette     Palette
	Width       float32
	Height      float32
	Transparent bool
	AlwaysOnTop bool
}

// ConfigFromSettings converts stored preferences into overlay visuals.
func ConfigFromSettings(settings preferences.Settings) (Config, error) {
	var palette Palette
	targets := []struct {
		value  string
		target *color.NRGBA
	}{
		{settings.Colors.Timer, &palette.Timer},
		{settings.Colors.Selected, &palette.Selected},
		{settings.Colors.LastSeconds, &palette.LastSeconds},
		{settings.Colors.Background, &palette.Background},
	}
	for _, entry := range targets {
		parsed, err := preferences.ParseColor(entry.value)
		if err != nil {
			return Config{}, fmt.Errorf("overlay palette: %w", err)
		}
		*entry.target = parsed
	}

	return Config{
		Palette:     palette,
		Width:       float32(settings.Width),
		Height:      float32(settings.Height),
		Transparent: settings.Transparent,
		AlwaysOnTop: settings.AlwaysOnTop,
	}, nil
}

// Callbacks defines overlay interaction handlers.
type Callbacks struct {
	OnKey      func(fyne.KeyName)
	OnSelect   func(duo.TimerID)
	OnToggle   func(duo.TimerID)
	OnSettings func()
	OnResetAll func()
	OnQuit     func()
}

// Window manages the overlay UI.
type Window struct {
	app        fyne.App
	window     fyne.Window
	config     Config
	callbacks  Callbacks
	background *canvas.Rectangle
	panes      [2]*timerPane
	frame      duo.Frame
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window.
func New(app fyne.App, config Config, callbacks Callbacks) *Window {
	window := app.NewWindow("DuoTimer")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	overlay := &Window{
		app:        app,
		window:     window,
		config:     config,
		callbacks:  callbacks,
		background: canvas.NewRectangle(config.Palette.Background),
	}

	for _, id := range []duo.TimerID{duo.TimerFirst, duo.TimerSecond} {
		pane := newTimerPane(id, config.Palette.Timer)
		pane.onTapped = overlay.handleTap
		pane.onDoubleTapped = overlay.handleDoubleTap
		pane.onTappedSecondary = overlay.showContextMenu
		overlay.panes[id] = pane
	}

	content := container.NewGridWithColumns(2, overlay.panes[duo.TimerFirst], overlay.panes[duo.TimerSecond])
	window.SetContent(container.NewStack(overlay.background, content))
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if overlay.callbacks.OnKey != nil {
			overlay.callbacks.OnKey(event.Name)
		}
	})

	overlay.applyConfig()
	return overlay
}

// Show displays the overlay.
func (overlay *Window) Show() {
	overlay.window.Show()
	overlay.applyNative()
}

// Hide hides the overlay.
func (overlay *Window) Hide() {
	overlay.window.Hide()
}

// Render applies a controller frame from any goroutine.
func (overlay *Window) Render(frame duo.Frame) {
	fyne.Do(func() {
		overlay.renderUnsafe(frame)
	})
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.applyConfig()
	overlay.renderUnsafe(overlay.frame)
	overlay.applyNative()
}

// Text returns the displayed text of a timer.
func (overlay *Window) Text(id duo.TimerID) string {
	if !id.Valid() {
		return ""
	}
	return overlay.panes[id].text.Text
}

func (overlay *Window) renderUnsafe(frame duo.Frame) {
	overlay.frame = frame
	for _, view := range frame.Timers {
		if !view.ID.Valid() {
			continue
		}
		overlay.panes[view.ID].setView(view.Text, overlay.highlightColor(view.Highlight))
	}
}

func (overlay *Window) highlightColor(highlight duo.Highlight) color.NRGBA {
	switch highlight {
	case duo.HighlightSelected:
		return overlay.config.Palette.Selected
	case duo.HighlightLastSeconds:
		return overlay.config.Palette.LastSeconds
	default:
		return overlay.config.Palette.Timer
	}
}

func (overlay *Window) applyConfig() {
	fill := overlay.config.Palette.Background
	if overlay.config.Transparent {
		fill.A = 0
	}
	overlay.background.FillColor = fill
	overlay.background.Refresh()

	if overlay.config.Width > 0 && overlay.config.Height > 0 {
		overlay.window.Resize(fyne.NewSize(overlay.config.Width, overlay.config.Height))
	}
}

func (overlay *Window) applyNative() {
	alpha := uint8(255)
	if overlay.config.Transparent {
		alpha = transparentAlpha
	}
	overlay.applyNativeStyle(overlay.config.AlwaysOnTop, alpha)
}

func (overlay *Window) handleTap(id duo.TimerID) {
	if overlay.callbacks.OnSelect != nil {
		overlay.callbacks.OnSelect(id)
	}
}

func (overlay *Window) handleDoubleTap(id duo.TimerID) {
	if overlay.callbacks.OnToggle != nil {
		overlay.callbacks.OnToggle(id)
	}
}

func (overlay *Window) showContextMenu(_ duo.TimerID, position fyne.Position) {
	widget.ShowPopUpMenuAtPosition(overlay.contextMenu(), overlay.window.Canvas(), position)
}

func (overlay *Window) contextMenu() *fyne.Menu {
	call := func(handler func()) func() {
		return func() {
			if handler != nil {
				handler()
			}
		}
	}
	return fyne.NewMenu("",
		fyne.NewMenuItem("Settings", call(overlay.callbacks.OnSettings)),
		fyne.NewMenuItem("Reset both", call(overlay.callbacks.OnResetAll)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", call(overlay.callbacks.OnQuit)),
	)
}
