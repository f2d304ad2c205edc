package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"duotimer/internal/core/duo"
	"duotimer/internal/core/stopwatch"
	"duotimer/internal/logging"
	"duotimer/internal/storage"
	"duotimer/internal/ui/chime"
	"duotimer/internal/ui/terminal"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

const (
	appName     = "DuoTimer"
	logFileName = "duotimer-term.log"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "duotimer-term:", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "settings file (default: user config dir)")
	levelFlag := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	configPath := *configFlag
	if configPath == "" {
		resolved, err := storage.ResolveConfigPath(appName)
		if err != nil {
			return err
		}
		configPath = resolved
	}

	settings, loadErr := storage.LoadSettingsFile(configPath)

	logDir := filepath.Dir(configPath)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	level := settings.LogLevel
	if *levelFlag != "" {
		level = *levelFlag
	}
	if err := logging.Setup(level, logFile); err != nil {
		logrus.WithError(err).Warn("falling back to info level")
	}
	if loadErr != nil {
		logrus.WithError(loadErr).WithField("path", configPath).Warn("using default settings")
	}

	keymap, err := settings.Keymap()
	if err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	palette, err := terminal.PaletteFromSettings(settings)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	controller := duo.New(settings.ControllerConfig(), duo.Config{}, stopwatch.SystemClock{})
	frames := controller.Subscribe(8)
	if settings.ChimeOnLastSeconds {
		startChime(controller.Subscribe(8))
	}
	controller.Start()
	defer controller.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logrus.WithField("path", configPath).Info("terminal frontend started")
	return terminal.New(screen, controller, keymap, palette).Run(ctx, frames)
}

// startChime plays the last-seconds alert until events closes.
func startChime(events <-chan duo.Event) {
	device := chime.NewDevice()
	if err := device.Open(); err != nil {
		logrus.WithError(err).Warn("audio unavailable, chime disabled")
	}
	watcher := chime.NewWatcher(device, true)
	go func() {
		defer device.Close()
		for event := range events {
			watcher.Observe(event.Frame)
		}
	}()
}
