//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *autostart) EnableAutostart(appName, execPath string) error {
	if err := checkArgs("enable autostart", appName, execPath, true); err != nil {
		return err
	}
	quoted := `"` + strings.Trim(execPath, `"`) + `"`
	return runReg("enable autostart", "add", registryRunKey, "/v", appName, "/t", "REG_SZ", "/d", quoted, "/f")
}

func (service *autostart) DisableAutostart(appName string) error {
	if err := checkArgs("disable autostart", appName, "", false); err != nil {
		return err
	}
	return runReg("disable autostart", "delete", registryRunKey, "/v", appName, "/f")
}

func runReg(operation string, args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: reg %s failed: %w: %s", operation, args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
