package events

import "github.com/saveman/saveman/internal/logging"

type WatcherTracer struct{}

var Watcher = WatcherTracer{}

func (WatcherTracer) Event(tier, kind, path, newPath string) {
	payload := map[string]interface{}{"tier": tier, "kind": kind, "path": path}
	if newPath != "" {
		payload["new_path"] = newPath
	}
	logging.Trace("watcher.event", payload)
}

func (WatcherTracer) Error(err error) {
	logging.Trace("watcher.error", map[string]interface{}{"error": err.Error()})
}

func (WatcherTracer) Stopped() {
	logging.Trace("watcher.stopped", nil)
}
