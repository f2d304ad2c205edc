package main

import (
	"flag"
	"os"
	"time"

	"duotimer/internal/core/duo"
	"duotimer/internal/core/stopwatch"
	"duotimer/internal/logging"
	"duotimer/internal/platform"
	"duotimer/internal/storage"
	"duotimer/internal/ui/chime"
	"duotimer/internal/ui/gamepad"
	"duotimer/internal/ui/hotkeys"
	"duotimer/internal/ui/overlay"
	"duotimer/internal/ui/preferences"
	"duotimer/internal/ui/tray"
	"duotimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/sirupsen/logrus"
)

const (
	appName             = "DuoTimer"
	gamepadPollInterval = 20 * time.Millisecond
)

func main() {
	configFlag := flag.String("config", "", "settings file (default: user config dir)")
	levelFlag := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if err := logging.Setup(*levelFlag, os.Stderr); err != nil {
		logrus.WithError(err).Warn("falling back to info level")
	}

	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		logrus.WithError(err).Info("another DuoTimer is running")
		return
	}
	defer func() {
		_ = lock.Release()
	}()

	configPath := *configFlag
	if configPath == "" {
		configPath, err = storage.ResolveConfigPath(appName)
		if err != nil {
			logrus.WithError(err).Fatal("resolve settings path")
		}
	}
	settings, err := storage.LoadSettingsFile(configPath)
	if err != nil {
		logrus.WithError(err).WithField("path", configPath).Warn("using default settings")
	}
	if *levelFlag == "" {
		if err := logging.Setup(settings.LogLevel, nil); err != nil {
			logrus.WithError(err).Warn("invalid stored log level")
		}
	}
	logrus.WithField("path", configPath).Debug("settings loaded")

	keymap, err := settings.Keymap()
	if err != nil {
		logrus.WithError(err).Warn("invalid hotkeys, using defaults")
		keymap, _ = hotkeys.NewKeymap(hotkeys.DefaultBindings())
	}
	overlayConfig, err := overlay.ConfigFromSettings(settings)
	if err != nil {
		logrus.WithError(err).Warn("invalid colors, using defaults")
		overlayConfig, _ = overlay.ConfigFromSettings(preferences.DefaultSettings())
	}

	device := chime.NewDevice()
	defer device.Close()
	watcher := chime.NewWatcher(device, false)
	enableChime := func(enabled bool) {
		if enabled {
			if err := device.Open(); err != nil {
				logrus.WithError(err).Warn("audio unavailable, chime disabled")
			}
		}
		watcher.SetEnabled(enabled && device.Opened())
	}
	enableChime(settings.ChimeOnLastSeconds)

	controller := duo.New(settings.ControllerConfig(), duo.Config{}, stopwatch.SystemClock{})
	events := controller.Subscribe(8)
	controller.Start()

	fyneApp := app.NewWithID("com.duotimer.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconIdle))

	var overlayWindow *overlay.Window
	var prefsWindow *preferences.Window
	quit := func() {
		controller.Stop()
		fyneApp.Quit()
	}
	resetAll := func() {
		controller.Handle(duo.ActionResetAll)
	}
	showSettings := func() {
		prefsWindow.Show()
	}

	overlayWindow = overlay.New(fyneApp, overlayConfig, overlay.Callbacks{
		OnKey: func(name fyne.KeyName) {
			if action, ok := keymap.Resolve(name); ok {
				controller.Handle(action)
			}
		},
		OnSelect:   controller.Select,
		OnToggle:   controller.Toggle,
		OnSettings: showSettings,
		OnResetAll: resetAll,
		OnQuit:     quit,
	})

	pad := hotkeys.NewGamepad(gamepad.Reader{}, hotkeys.DefaultGamepadBindings())
	gamepadOn := settings.Gamepad
	stopPolling := make(chan struct{})
	defer close(stopPolling)
	fyneApp.Lifecycle().SetOnStarted(func() {
		go pollGamepad(stopPolling, func() {
			if !gamepadOn {
				return
			}
			for _, action := range pad.Poll() {
				controller.Handle(action)
			}
		})
	})

	autostart := platform.NewAutostart()
	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettingsFile(configPath, updated); err != nil {
			logrus.WithError(err).Error("save settings")
		}
		if updated.LaunchAtLogin != settings.LaunchAtLogin {
			if err := platform.SetAutostart(autostart, appName, updated.LaunchAtLogin); err != nil {
				logrus.WithError(err).Error("update launch at login")
			}
		}
		if *levelFlag == "" && updated.LogLevel != settings.LogLevel {
			if err := logging.Setup(updated.LogLevel, nil); err != nil {
				logrus.WithError(err).Warn("invalid log level")
			}
		}
		settings = updated

		controller.UpdateConfig(updated.ControllerConfig())
		if updatedKeys, err := updated.Keymap(); err == nil {
			keymap = updatedKeys
		}
		if updatedOverlay, err := overlay.ConfigFromSettings(updated); err == nil {
			overlayWindow.UpdateConfig(updatedOverlay)
		}
		enableChime(updated.ChimeOnLastSeconds)
		gamepadOn = updated.Gamepad
		logrus.Info("settings saved")
	})

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnSettings: showSettings,
			OnToggle:   controller.Toggle,
			OnResetAll: resetAll,
			OnQuit:     quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustIcon(resources.IconIdle))
	} else {
		logrus.Info("system tray unsupported on this platform")
	}

	running := false
	go func() {
		for event := range events {
			frame := event.Frame
			overlayWindow.Render(frame)
			fyne.Do(func() {
				if watcher.Observe(frame) {
					logrus.Debug("last seconds chime")
				}
				if trayManager == nil {
					return
				}
				trayManager.Update(frame)
				if anyRunning := isRunning(frame); anyRunning != running {
					running = anyRunning
					icon := resources.IconIdle
					if running {
						icon = resources.IconRunning
					}
					desktopApp.SetSystemTrayIcon(resources.MustIcon(icon))
				}
			})
		}
	}()

	overlayWindow.Render(controller.Frame())
	overlayWindow.Show()
	fyneApp.Run()
	controller.Stop()
}

// pollGamepad runs poll on the fyne main goroutine, where GLFW may be
// queried, until stop closes.
func pollGamepad(stop <-chan struct{}, poll func()) {
	ticker := time.NewTicker(gamepadPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fyne.Do(poll)
		}
	}
}

func isRunning(frame duo.Frame) bool {
	for _, view := range frame.Timers {
		if view.State == stopwatch.StateRunning {
			return true
		}
	}
	return false
}
