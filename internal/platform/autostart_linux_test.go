//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinuxDesktopEntryLifecycle(t *testing.T) {
	configDir := t.TempDir()
	service := &autostart{
		configDir: func() (string, error) { return configDir, nil },
		homeDir:   func() (string, error) { return t.TempDir(), nil },
	}
	entryPath := filepath.Join(configDir, "autostart", "duotimer.desktop")

	require.NoError(t, service.EnableAutostart("DuoTimer", "/opt/duo timer/duotimer"))
	content, err := os.ReadFile(entryPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Name=DuoTimer\n")
	assert.Contains(t, string(content), `Exec="/opt/duo timer/duotimer"`)

	require.NoError(t, service.DisableAutostart("DuoTimer"))
	_, err = os.Stat(entryPath)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, service.DisableAutostart("DuoTimer"))
}
