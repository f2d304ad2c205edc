package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"duotimer/internal/ui/hotkeys"
	"duotimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlColors struct {
	Timer       string `yaml:"timer"`
	Selected    string `yaml:"selected"`
	LastSeconds string `yaml:"last_seconds"`
	Background  string `yaml:"background"`
}

// yamlKeys uses pointers so an absent key keeps its default while an
// empty one leaves the action unbound.
type yamlKeys struct {
	SelectFirst  *string `yaml:"select_first"`
	SelectSecond *string `yaml:"select_second"`
	Cycle        *string `yaml:"cycle"`
	Toggle       *string `yaml:"toggle"`
	ResetAll     *string `yaml:"reset_all"`
}

type yamlSettings struct {
	Colors                   yamlColors `yaml:"colors"`
	Keys                     yamlKeys   `yaml:"keys"`
	StartOnChange            bool       `yaml:"start_on_change"`
	LastSecondsWindowSeconds int        `yaml:"last_seconds_window_seconds"`
	ChimeOnLastSeconds       bool       `yaml:"chime_on_last_seconds"`
	Gamepad                  bool       `yaml:"gamepad"`
	Transparent              bool       `yaml:"transparent"`
	AlwaysOnTop              *bool      `yaml:"always_on_top,omitempty"`
	LaunchAtLogin            bool       `yaml:"launch_at_login"`
	Width                    int        `yaml:"width"`
	Height                   int        `yaml:"height"`
	LogLevel                 string     `yaml:"log_level,omitempty"`
}

// LoadSettings reads user preferences from the per-user config directory.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes user preferences to the per-user config directory.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// LoadSettingsFile reads preferences from an explicit path.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes preferences to an explicit path.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	alwaysOnTop := settings.AlwaysOnTop
	keys := settings.Keys
	fileData := yamlSettings{
		Colors: yamlColors{
			Timer:       settings.Colors.Timer,
			Selected:    settings.Colors.Selected,
			LastSeconds: settings.Colors.LastSeconds,
			Background:  settings.Colors.Background,
		},
		Keys: yamlKeys{
			SelectFirst:  &keys.First,
			SelectSecond: &keys.Second,
			Cycle:        &keys.Cycle,
			Toggle:       &keys.Toggle,
			ResetAll:     &keys.ResetAll,
		},
		StartOnChange:            settings.StartOnChange,
		LastSecondsWindowSeconds: int(settings.LastSecondsWindow / time.Second),
		ChimeOnLastSeconds:       settings.ChimeOnLastSeconds,
		Gamepad:                  settings.Gamepad,
		Transparent:              settings.Transparent,
		AlwaysOnTop:              &alwaysOnTop,
		LaunchAtLogin:            settings.LaunchAtLogin,
		Width:                    settings.Width,
		Height:                   settings.Height,
		LogLevel:                 settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ResolveConfigPath returns the settings file location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	applyColor(&settings.Colors.Timer, fileData.Colors.Timer)
	applyColor(&settings.Colors.Selected, fileData.Colors.Selected)
	applyColor(&settings.Colors.LastSeconds, fileData.Colors.LastSeconds)
	applyColor(&settings.Colors.Background, fileData.Colors.Background)

	keys := settings.Keys
	applyKey(&keys.First, fileData.Keys.SelectFirst)
	applyKey(&keys.Second, fileData.Keys.SelectSecond)
	applyKey(&keys.Cycle, fileData.Keys.Cycle)
	applyKey(&keys.Toggle, fileData.Keys.Toggle)
	applyKey(&keys.ResetAll, fileData.Keys.ResetAll)
	if _, err := hotkeys.NewKeymap(keys); err == nil {
		settings.Keys = keys
	}

	if fileData.LastSecondsWindowSeconds > 0 {
		settings.LastSecondsWindow = time.Duration(fileData.LastSecondsWindowSeconds) * time.Second
	}
	if preferences.ValidSide(fileData.Width) {
		settings.Width = fileData.Width
	}
	if preferences.ValidSide(fileData.Height) {
		settings.Height = fileData.Height
	}
	if fileData.AlwaysOnTop != nil {
		settings.AlwaysOnTop = *fileData.AlwaysOnTop
	}
	if level := strings.TrimSpace(fileData.LogLevel); level != "" {
		settings.LogLevel = level
	}

	settings.StartOnChange = fileData.StartOnChange
	settings.ChimeOnLastSeconds = fileData.ChimeOnLastSeconds
	settings.Gamepad = fileData.Gamepad
	settings.Transparent = fileData.Transparent
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}

func applyKey(target *string, value *string) {
	if value != nil {
		*target = strings.TrimSpace(*value)
	}
}

func applyColor(target *string, value string) {
	parsed, err := preferences.ParseColor(value)
	if err != nil {
		return
	}
	*target = preferences.FormatColor(parsed)
}
