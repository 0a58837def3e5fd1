package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"taken/internal/app"
	"taken/internal/config"
	"taken/internal/notify"
	"taken/internal/scheduler"
	"taken/internal/storage"
	"taken/internal/task"
	"taken/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	store, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	inApp := notify.NewProgramSurface()
	surface := notify.Multi{notify.NewDesktopSurface(logger), inApp}

	// The scheduler needs a live view of the task list for fire-time
	// re-checks; the controller does not exist yet, so bind it through a
	// closure.
	var controller *app.App
	sched := scheduler.New(surface, func() []task.Task {
		if controller == nil {
			return nil
		}
		return controller.Tasks()
	}, logger)
	defer sched.Stop()

	controller, err = app.New(store, sched, surface, logger)
	if err != nil {
		fmt.Printf("failed to load tasks: %v\n", err)
		os.Exit(1)
	}

	// Re-open the gate for a returning user who enabled notifications in an
	// earlier session.
	if controller.Settings().Enabled {
		if perm, err := surface.RequestPermission(context.Background()); err == nil && perm == notify.PermissionGranted {
			sched.SetGranted(true)
		}
	}
	controller.Reschedule()

	if err := ui.Run(controller, cfg, inApp); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured log file; the TUI owns the terminal.
// Logging degrades to discard when the file cannot be opened.
func newLogger(cfg config.Config) *log.Logger {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return log.New(io.Discard)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard)
	}
	logger := log.New(f)
	logger.SetReportTimestamp(true)
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
