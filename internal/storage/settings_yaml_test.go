package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"duotimer/internal/core/duo"
	"duotimer/internal/ui/hotkeys"
	"duotimer/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", settingsFileName)

	settings := preferences.DefaultSettings()
	settings.Colors.Timer = "#112233"
	settings.Keys.Cycle = "Space"
	settings.StartOnChange = true
	settings.LastSecondsWindow = 45 * time.Second
	settings.ChimeOnLastSeconds = true
	settings.Gamepad = true
	settings.Transparent = true
	settings.AlwaysOnTop = false
	settings.Width = 420
	settings.Height = 120
	settings.LogLevel = "debug"

	require.NoError(t, SaveSettingsFile(path, settings))
	loaded, err := LoadSettingsFile(path)

	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestInvalidFieldsFallBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	content := `
colors:
  timer: green
  selected: "#abcdef"
keys:
  select_first: F1
  select_second: F1
last_seconds_window_seconds: -3
width: 5000
height: 60
start_on_change: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)

	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.Colors.Timer, settings.Colors.Timer)
	assert.Equal(t, "#ABCDEF", settings.Colors.Selected)
	assert.Equal(t, defaults.Keys, settings.Keys)
	assert.Equal(t, defaults.LastSecondsWindow, settings.LastSecondsWindow)
	assert.Equal(t, defaults.Width, settings.Width)
	assert.Equal(t, 60, settings.Height)
	assert.True(t, settings.AlwaysOnTop)
	assert.True(t, settings.StartOnChange)
}

func TestPartialKeysMergeOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	content := `
keys:
  select_first: F6
  reset_all: " r "
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)

	want := hotkeys.DefaultBindings()
	want.First = "F6"
	want.ResetAll = "r"
	assert.Equal(t, want, settings.Keys)

	keymap, err := settings.Keymap()
	require.NoError(t, err)
	action, ok := keymap.Resolve(fyne.KeyF3)
	assert.True(t, ok)
	assert.Equal(t, duo.ActionCycle, action)
}

func TestEmptyKeyStaysUnbound(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)

	settings := preferences.DefaultSettings()
	settings.Keys.Toggle = ""
	require.NoError(t, SaveSettingsFile(path, settings))

	loaded, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.Keys.Toggle)
	assert.Equal(t, settings.Keys, loaded.Keys)
}

func TestMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("colors: [unclosed"), 0o644))

	settings, err := LoadSettingsFile(path)

	assert.ErrorContains(t, err, "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())

	path, err := ResolveConfigPath("DuoTimer")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("DuoTimer", settingsFileName), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
