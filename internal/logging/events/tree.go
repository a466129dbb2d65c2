package events

import "github.com/saveman/saveman/internal/logging"

type TreeTracer struct{}

type treeReason string

const (
	TreeReasonEscape treeReason = "escape"
	TreeReasonEmpty  treeReason = "empty"
)

var Tree = TreeTracer{}

func (TreeTracer) CancelPrompt(title string, reason treeReason) {
	logging.Trace("tree.prompt.cancel", map[string]interface{}{"title": title, "reason": string(reason)})
}

func (TreeTracer) Select(path string) {
	logging.Trace("tree.select", map[string]interface{}{"path": path})
}

func (TreeTracer) Fold(path string, expanded bool) {
	logging.Trace("tree.fold", map[string]interface{}{"path": path, "expanded": expanded})
}

func (TreeTracer) Mark(path string, marked bool) {
	logging.Trace("tree.mark", map[string]interface{}{"path": path, "marked": marked})
}

func (TreeTracer) RenamePrompt(path string) {
	logging.Trace("tree.rename.prompt", map[string]interface{}{"path": path})
}

func (TreeTracer) Rename(path, name string) {
	logging.Trace("tree.rename", map[string]interface{}{"path": path, "name": name})
}

func (TreeTracer) Delete(path string) {
	logging.Trace("tree.delete", map[string]interface{}{"path": path})
}

func (TreeTracer) Jump(query, path string) {
	logging.Trace("tree.jump", map[string]interface{}{"query": query, "path": path})
}
