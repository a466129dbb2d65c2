package events

import "github.com/saveman/saveman/internal/logging"

type SaveTracer struct{}

var Save = SaveTracer{}

func (SaveTracer) Load(path string) {
	logging.Trace("save.load", map[string]interface{}{"path": path})
}

func (SaveTracer) Import(path string) {
	logging.Trace("save.import", map[string]interface{}{"path": path})
}

func (SaveTracer) Replace(path string) {
	logging.Trace("save.replace", map[string]interface{}{"path": path})
}

func (SaveTracer) SelectGame(name string) {
	logging.Trace("save.game.select", map[string]interface{}{"name": name})
}

func (SaveTracer) SelectProfile(name string) {
	logging.Trace("save.profile.select", map[string]interface{}{"name": name})
}
