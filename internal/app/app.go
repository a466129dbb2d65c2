package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saveman/saveman/internal/fsutil"
	"github.com/saveman/saveman/internal/logging/events"
	"github.com/saveman/saveman/internal/save"
	"github.com/saveman/saveman/internal/ui"
	"github.com/saveman/saveman/internal/watcher"
)

// Config describes user-provided application options.
type Config struct {
	DataDir string
	Width   int
	Height  int
	Verbose bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	dataDir, err := fsutil.DataDir(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("resolve data directory: %w", err)
	}
	manager, err := save.NewManager(dataDir)
	if err != nil {
		return fmt.Errorf("scan save registry: %w", err)
	}
	watch, err := watcher.New(dataDir)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() {
		watch.Stop()
		watch.Wait()
		events.Watcher.Stopped()
	}()

	model := ui.NewModel(manager, watch, cfg.Width, cfg.Height, cfg.Verbose)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
