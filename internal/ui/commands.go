package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saveman/saveman/internal/watcher"
)

type watcherEventMsg watcher.Event

type watcherClosedMsg struct{}

// waitForEvent blocks on the watcher's channel and re-arms itself from
// Update after every delivery.
func waitForEvent(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return watcherClosedMsg{}
		}
		return watcherEventMsg(ev)
	}
}
