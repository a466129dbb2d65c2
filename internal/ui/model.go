// Package ui implements the Bubble Tea program: the entry tree view, the
// prompt and picker overlays, and the glue that feeds watcher events into
// the save registry.
package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saveman/saveman/internal/entry"
	"github.com/saveman/saveman/internal/logging"
	"github.com/saveman/saveman/internal/logging/events"
	"github.com/saveman/saveman/internal/save"
	"github.com/saveman/saveman/internal/theme"
	"github.com/saveman/saveman/internal/tree"
	"github.com/saveman/saveman/internal/watcher"
)

type mode int

const (
	modeTree mode = iota
	modePrompt
	modeConfirm
	modePick
	modeJump
)

// Model is the program state: the registry, the watcher feeding it, and
// whichever overlay is currently capturing keys.
type Model struct {
	manager *save.Manager
	watch   *watcher.Watcher
	styles  *theme.Styles

	width       int
	height      int
	fixedWidth  int
	fixedHeight int
	verbose     bool

	mode mode

	prompt  *prompt
	confirm *confirm
	pick    *picker
	jump    *jump

	info   string
	errMsg string
}

// NewModel constructs the program model. Width/height of 0 track the
// terminal size.
func NewModel(manager *save.Manager, watch *watcher.Watcher, width, height int, verbose bool) *Model {
	return &Model{
		manager:     manager,
		watch:       watch,
		styles:      theme.Default(),
		width:       width,
		height:      height,
		fixedWidth:  width,
		fixedHeight: height,
		verbose:     verbose,
	}
}

func (m *Model) Init() tea.Cmd {
	return waitForEvent(m.watch)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.fixedWidth == 0 {
			m.width = msg.Width
		}
		if m.fixedHeight == 0 {
			m.height = msg.Height
		}
		return m, nil
	case watcherClosedMsg:
		return m, nil
	case watcherEventMsg:
		return m, m.handleWatcherEvent(watcher.Event(msg))
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleWatcherEvent(ev watcher.Event) tea.Cmd {
	if ev.Err != nil {
		logging.Error(ev.Err)
		events.Watcher.Error(ev.Err)
		return waitForEvent(m.watch)
	}
	events.Watcher.Event(ev.Tier.String(), ev.Kind.String(), ev.Path, ev.NewPath)
	if err := m.manager.Dispatch(ev); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
	}
	return waitForEvent(m.watch)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}
	switch m.mode {
	case modePrompt:
		return m, m.updatePrompt(msg)
	case modeConfirm:
		return m, m.updateConfirm(msg)
	case modePick:
		return m, m.updatePick(msg)
	case modeJump:
		return m, m.updateJump(msg)
	default:
		return m, m.updateTree(msg)
	}
}

func (m *Model) quit() tea.Cmd {
	if p := m.manager.ActiveProfile(); p != nil {
		if err := p.WriteState(); err != nil {
			logging.Error(err)
		}
	}
	events.App.Stop()
	return tea.Quit
}

func (m *Model) updateTree(msg tea.KeyMsg) tea.Cmd {
	p := m.manager.ActiveProfile()
	switch msg.String() {
	case "q":
		return m.quit()
	case "G":
		m.startGamePicker()
		return nil
	case "P":
		m.startProfilePicker()
		return nil
	case "C":
		m.startNewGamePrompt()
		return nil
	case "c":
		m.startNewProfilePrompt()
		return nil
	}
	if p == nil {
		return nil
	}
	m.clearMessages()
	switch msg.String() {
	case "j", "down":
		p.State.SelectNext(p.Entries)
		m.traceSelection(p)
	case "k", "up":
		p.State.SelectPrev(p.Entries)
		m.traceSelection(p)
	case "g", "home":
		p.State.SelectFirst(p.Entries)
		m.traceSelection(p)
	case "e", "end":
		p.State.SelectLast(p.Entries)
		m.traceSelection(p)
	case "h", "left":
		m.collapseOrAscend(p)
	case "l", "right":
		m.expandSelected(p)
	case "enter":
		return m.activateSelected(p)
	case " ":
		m.toggleMark(p)
	case "r":
		m.startRenamePrompt(p)
	case "n":
		m.startNewFolderPrompt(p)
	case "i":
		m.startImportPrompt(p)
	case "R":
		m.startReplaceConfirm(p)
	case "d":
		m.startDeleteConfirm(p)
	case "J":
		m.moveSelectedDown(p)
	case "/":
		m.startJump(p)
	}
	return nil
}

// activateSelected loads a file entry into the game's save slot, or toggles
// the fold of a folder.
func (m *Model) activateSelected(p *save.Profile) tea.Cmd {
	sel := p.State.Selected
	if !sel.IsNode() {
		return nil
	}
	node := p.Entries.At(sel)
	if node.Value.IsDir {
		node.ToggleFold()
		events.Tree.Fold(node.Value.Path, node.IsExpanded())
		return nil
	}
	g := m.manager.Active
	if g == nil {
		m.errMsg = "no game selected"
		return nil
	}
	if err := g.LoadEntry(p, sel); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	events.Save.Load(node.Value.Path)
	if m.verbose {
		m.info = "loaded " + node.Value.Name
	}
	return nil
}

func (m *Model) collapseOrAscend(p *save.Profile) {
	sel := p.State.Selected
	if !sel.IsNode() {
		return
	}
	node := p.Entries.At(sel)
	if node.Value.IsDir && node.IsExpanded() {
		node.Expanded = tree.FoldCollapsed
		events.Tree.Fold(node.Value.Path, false)
		return
	}
	if parent := node.Parent(); parent != tree.Root && parent.IsNode() {
		p.State.SelectUnchecked(parent)
		m.traceSelection(p)
	}
}

func (m *Model) expandSelected(p *save.Profile) {
	sel := p.State.Selected
	if !sel.IsNode() {
		return
	}
	node := p.Entries.At(sel)
	if node.Value.IsDir && !node.IsExpanded() {
		node.Expanded = tree.FoldExpanded
		events.Tree.Fold(node.Value.Path, true)
	}
}

func (m *Model) toggleMark(p *save.Profile) {
	sel := p.State.Selected
	if !sel.IsNode() {
		return
	}
	p.State.ToggleMark(sel)
	_, marked := p.State.Marked[sel]
	events.Tree.Mark(p.Entries.At(sel).Value.Path, marked)
}

// moveSelectedDown swaps the selected entry with its next sibling.
func (m *Model) moveSelectedDown(p *save.Profile) {
	sel := p.State.Selected
	if !sel.IsNode() {
		return
	}
	next := p.Entries.At(sel).NextSibling()
	if !next.IsNode() {
		return
	}
	if err := p.MoveAfter(sel, next); err != nil {
		m.errMsg = err.Error()
	}
}

func (m *Model) traceSelection(p *save.Profile) {
	if sel := p.State.Selected; sel.IsNode() {
		events.Tree.Select(p.Entries.At(sel).Value.Path)
	}
}

// createParent is the folder a new entry lands in: the selected folder, or
// the selected file's parent, or the profile root.
func createParent(p *save.Profile) tree.NodeID {
	sel := p.State.Selected
	if !sel.IsNode() {
		return tree.Root
	}
	if p.Entries.At(sel).Value.IsDir {
		return sel
	}
	return p.Entries.At(sel).Parent()
}

func (m *Model) clearMessages() {
	m.info = ""
	m.errMsg = ""
}

// selectPath points the selection at the entry for path, expanding
// ancestors so it is visible.
func (m *Model) selectPath(p *save.Profile, path string) {
	if id := entry.Find(p.Entries, path); id.IsNode() {
		p.State.Select(id, p.Entries)
	}
}

// profileRelPath resolves a relative match back to an absolute entry path.
func profileRelPath(p *save.Profile, rel string) string {
	return filepath.Join(p.Path, filepath.FromSlash(rel))
}
