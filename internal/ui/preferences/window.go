package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)

	timerColor    *widget.Entry
	selectedColor *widget.Entry
	lastColor     *widget.Entry
	background    *widget.Entry

	keyFirst    *widget.Entry
	keySecond   *widget.Entry
	keyCycle    *widget.Entry
	keyToggle   *widget.Entry
	keyResetAll *widget.Entry

	lastWindow *widget.Entry
	width      *widget.Entry
	height     *widget.Entry

	startOnChange *widget.Check
	chime         *widget.Check
	gamepad       *widget.Check
	transparent   *widget.Check
	alwaysOnTop   *widget.Check
	launchAtLogin *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("DuoTimer Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		timerColor:    widget.NewEntry(),
		selectedColor: widget.NewEntry(),
		lastColor:     widget.NewEntry(),
		background:    widget.NewEntry(),
		keyFirst:      widget.NewEntry(),
		keySecond:     widget.NewEntry(),
		keyCycle:      widget.NewEntry(),
		keyToggle:     widget.NewEntry(),
		keyResetAll:   widget.NewEntry(),
		lastWindow:    widget.NewEntry(),
		width:         widget.NewEntry(),
		height:        widget.NewEntry(),
		startOnChange: widget.NewCheck("Start timer when selected", nil),
		chime:         widget.NewCheck("Chime when timer 2 closes in", nil),
		gamepad:       widget.NewCheck("Gamepad buttons (LB/RB select, A cycle, X start/stop, Y reset)", nil),
		transparent:   widget.NewCheck("Transparent background", nil),
		alwaysOnTop:   widget.NewCheck("Always on top", nil),
		launchAtLogin: widget.NewCheck("Launch at login", nil),
	}

	colors := widget.NewForm(
		widget.NewFormItem("Timer", prefs.timerColor),
		widget.NewFormItem("Selected timer", prefs.selectedColor),
		widget.NewFormItem("Last seconds", prefs.lastColor),
		widget.NewFormItem("Background", prefs.background),
	)
	keys := widget.NewForm(
		widget.NewFormItem("Select timer 1", prefs.keyFirst),
		widget.NewFormItem("Select timer 2", prefs.keySecond),
		widget.NewFormItem("Start / stop / reset", prefs.keyCycle),
		widget.NewFormItem("Start / stop", prefs.keyToggle),
		widget.NewFormItem("Reset both", prefs.keyResetAll),
	)
	windowForm := widget.NewForm(
		widget.NewFormItem("Last seconds window (s)", prefs.lastWindow),
		widget.NewFormItem("Width", prefs.width),
		widget.NewFormItem("Height", prefs.height),
	)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Colors", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		colors,
		widget.NewLabelWithStyle("Hotkeys", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		keys,
		widget.NewLabelWithStyle("Window", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		windowForm,
		prefs.startOnChange,
		prefs.chime,
		prefs.gamepad,
		prefs.transparent,
		prefs.alwaysOnTop,
		prefs.launchAtLogin,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.Resize(fyne.NewSize(420, 560))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.timerColor.SetText(settings.Colors.Timer)
	prefs.selectedColor.SetText(settings.Colors.Selected)
	prefs.lastColor.SetText(settings.Colors.LastSeconds)
	prefs.background.SetText(settings.Colors.Background)
	prefs.keyFirst.SetText(settings.Keys.First)
	prefs.keySecond.SetText(settings.Keys.Second)
	prefs.keyCycle.SetText(settings.Keys.Cycle)
	prefs.keyToggle.SetText(settings.Keys.Toggle)
	prefs.keyResetAll.SetText(settings.Keys.ResetAll)
	prefs.lastWindow.SetText(fmt.Sprintf("%d", int(settings.LastSecondsWindow.Seconds())))
	prefs.width.SetText(fmt.Sprintf("%d", settings.Width))
	prefs.height.SetText(fmt.Sprintf("%d", settings.Height))
	prefs.startOnChange.SetChecked(settings.StartOnChange)
	prefs.chime.SetChecked(settings.ChimeOnLastSeconds)
	prefs.gamepad.SetChecked(settings.Gamepad)
	prefs.transparent.SetChecked(settings.Transparent)
	prefs.alwaysOnTop.SetChecked(settings.AlwaysOnTop)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) handleSave() {
	settings, err := prefs.collect()
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) collect() (Settings, error) {
	settings := prefs.settings

	settings.Colors = Colors{
		Timer:       normalizeColor(prefs.timerColor.Text),
		Selected:    normalizeColor(prefs.selectedColor.Text),
		LastSeconds: normalizeColor(prefs.lastColor.Text),
		Background:  normalizeColor(prefs.background.Text),
	}
	settings.Keys.First = strings.TrimSpace(prefs.keyFirst.Text)
	settings.Keys.Second = strings.TrimSpace(prefs.keySecond.Text)
	settings.Keys.Cycle = strings.TrimSpace(prefs.keyCycle.Text)
	settings.Keys.Toggle = strings.TrimSpace(prefs.keyToggle.Text)
	settings.Keys.ResetAll = strings.TrimSpace(prefs.keyResetAll.Text)

	if seconds, ok := parsePositiveInt(prefs.lastWindow.Text); ok {
		settings.LastSecondsWindow = time.Duration(seconds) * time.Second
	}
	if width, ok := parsePositiveInt(prefs.width.Text); ok {
		settings.Width = width
	}
	if height, ok := parsePositiveInt(prefs.height.Text); ok {
		settings.Height = height
	}

	settings.StartOnChange = prefs.startOnChange.Checked
	settings.ChimeOnLastSeconds = prefs.chime.Checked
	settings.Gamepad = prefs.gamepad.Checked
	settings.Transparent = prefs.transparent.Checked
	settings.AlwaysOnTop = prefs.alwaysOnTop.Checked
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked

	if err := settings.Validate(); err != nil {
		return prefs.settings, err
	}
	return settings, nil
}

func normalizeColor(value string) string {
	parsed, err := ParseColor(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return FormatColor(parsed)
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
