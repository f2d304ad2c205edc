package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrEmptyAppName indicates an autostart call without an application name.
	ErrEmptyAppName = errors.New("app name is empty")
	// ErrEmptyExecPath indicates an autostart call without an executable.
	ErrEmptyExecPath = errors.New("exec path is empty")
)

// Autostart toggles launching the application at login.
type Autostart interface {
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type autostart struct {
	configDir func() (string, error)
	homeDir   func() (string, error)
}

// NewAutostart returns the implementation for the running OS.
func NewAutostart() Autostart {
	return &autostart{
		configDir: os.UserConfigDir,
		homeDir:   os.UserHomeDir,
	}
}

// SetAutostart enables or disables launch at login for the current binary.
func SetAutostart(service Autostart, appName string, enabled bool) error {
	if !enabled {
		return service.DisableAutostart(appName)
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("enable autostart: resolve executable: %w", err)
	}
	return service.EnableAutostart(appName, execPath)
}

func checkArgs(operation, appName, execPath string, needExec bool) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("%s: %w", operation, ErrEmptyAppName)
	}
	if needExec && strings.TrimSpace(execPath) == "" {
		return fmt.Errorf("%s: %w", operation, ErrEmptyExecPath)
	}
	return nil
}

// slug lower-cases the app name and replaces spaces, for file names and
// launchd labels.
func slug(appName string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(appName)), " ", "-")
}
