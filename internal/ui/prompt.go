package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saveman/saveman/internal/logging/events"
	"github.com/saveman/saveman/internal/save"
	"github.com/saveman/saveman/internal/tree"
)

// prompt is a single-line text overlay. submit receives the trimmed value;
// an error lands in the footer, otherwise the prompt closes.
type prompt struct {
	input  textinput.Model
	title  string
	help   string
	submit func(value string) error
}

func newPrompt(title, placeholder, initial string, submit func(string) error) *prompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	if initial != "" {
		ti.SetValue(initial)
		ti.CursorEnd()
	}
	ti.Focus()
	return &prompt{
		input:  ti,
		title:  title,
		help:   "Press Enter to confirm. Esc to cancel.",
		submit: submit,
	}
}

func (m *Model) startPrompt(p *prompt) {
	m.clearMessages()
	m.prompt = p
	m.mode = modePrompt
}

func (m *Model) closePrompt() {
	m.prompt = nil
	m.mode = modeTree
}

func (m *Model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+u":
		if m.prompt.input.Value() != "" {
			m.prompt.input.SetValue("")
			m.prompt.input.CursorStart()
		}
		return nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		events.Tree.CancelPrompt(m.prompt.title, events.TreeReasonEscape)
		m.closePrompt()
		return nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.prompt.input.Value())
		if value == "" {
			events.Tree.CancelPrompt(m.prompt.title, events.TreeReasonEmpty)
			m.closePrompt()
			return nil
		}
		current := m.prompt
		if err := current.submit(value); err != nil {
			m.errMsg = err.Error()
			return nil
		}
		// a submit may chain straight into a follow-up prompt
		if m.prompt == current {
			m.closePrompt()
		}
		return nil
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return cmd
}

func (m *Model) startRenamePrompt(p *save.Profile) {
	sel := p.State.Selected
	if !sel.IsNode() {
		return
	}
	name := p.Entries.At(sel).Value.Name
	events.Tree.RenamePrompt(p.Entries.At(sel).Value.Path)
	m.startPrompt(newPrompt("Rename "+name, "new-name", name, func(value string) error {
		path := p.Entries.At(sel).Value.Path
		if err := p.Rename(sel, value); err != nil {
			return err
		}
		events.Tree.Rename(path, value)
		if err := p.WriteState(); err != nil {
			return err
		}
		if m.verbose {
			m.info = "renamed to " + value
		}
		return nil
	}))
}

func (m *Model) startNewFolderPrompt(p *save.Profile) {
	parent := createParent(p)
	m.startPrompt(newPrompt("New folder", "folder-name", "", func(value string) error {
		if err := p.CreateFolder(parent, value); err != nil {
			return err
		}
		if err := p.WriteState(); err != nil {
			return err
		}
		if m.verbose {
			m.info = "created " + value
		}
		return nil
	}))
}

func (m *Model) startImportPrompt(p *save.Profile) {
	g := m.manager.Active
	if g == nil {
		m.errMsg = "no game selected"
		return
	}
	parent := createParent(p)
	m.startPrompt(newPrompt("Import current save as", "save-name", "", func(value string) error {
		if err := g.ImportSave(p, parent, value); err != nil {
			return err
		}
		events.Save.Import(value)
		if err := p.WriteState(); err != nil {
			return err
		}
		if m.verbose {
			m.info = "imported " + value
		}
		return nil
	}))
}

func (m *Model) startNewProfilePrompt() {
	g := m.manager.Active
	if g == nil {
		m.errMsg = "no game selected"
		return
	}
	m.startPrompt(newPrompt("New profile", "profile-name", "", func(value string) error {
		if err := g.CreateProfile(value); err != nil {
			return err
		}
		if m.verbose {
			m.info = "created profile " + value
		}
		return nil
	}))
}

// startNewGamePrompt chains two prompts: the game name, then the path of
// the save file the game itself writes.
func (m *Model) startNewGamePrompt() {
	m.startPrompt(newPrompt("New game", "game-name", "", func(name string) error {
		m.startPrompt(newPrompt("Save file for "+name, "/path/to/save", "", func(path string) error {
			if err := m.manager.CreateGame(name, path); err != nil {
				return err
			}
			if m.verbose {
				m.info = "created game " + name
			}
			return nil
		}))
		return nil
	}))
}

// confirm is a yes/no overlay guarding destructive operations.
type confirm struct {
	text  string
	apply func() error
}

func (m *Model) startConfirm(text string, apply func() error) {
	m.clearMessages()
	m.confirm = &confirm{text: text, apply: apply}
	m.mode = modeConfirm
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		if err := m.confirm.apply(); err != nil {
			m.errMsg = err.Error()
		}
	}
	m.confirm = nil
	m.mode = modeTree
	return nil
}

// startDeleteConfirm deletes the marked set when one exists, otherwise the
// selection.
func (m *Model) startDeleteConfirm(p *save.Profile) {
	if len(p.State.Marked) > 0 {
		ids := make([]tree.NodeID, 0, len(p.State.Marked))
		for id := range p.State.Marked {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		noun := "entries"
		if len(ids) == 1 {
			noun = "entry"
		}
		m.startConfirm(fmt.Sprintf("Permanently delete %d marked %s? (y/n)", len(ids), noun), func() error {
			for _, id := range ids {
				path := p.Entries.At(id).Value.Path
				if err := p.Delete(id); err != nil {
					return err
				}
				events.Tree.Delete(path)
			}
			return p.WriteState()
		})
		return
	}
	sel := p.State.Selected
	if !sel.IsNode() {
		return
	}
	e := p.Entries.At(sel).Value
	m.startConfirm("Delete "+e.Name+"? (y/n)", func() error {
		if err := p.Delete(sel); err != nil {
			return err
		}
		events.Tree.Delete(e.Path)
		return p.WriteState()
	})
}

func (m *Model) startReplaceConfirm(p *save.Profile) {
	g := m.manager.Active
	if g == nil {
		m.errMsg = "no game selected"
		return
	}
	sel := p.State.Selected
	if !sel.IsNode() {
		return
	}
	e := p.Entries.At(sel).Value
	if e.IsDir {
		m.errMsg = e.Name + " is a folder"
		return
	}
	m.startConfirm("Overwrite "+e.Name+" with the current save? (y/n)", func() error {
		if err := g.ReplaceEntry(p, sel); err != nil {
			return err
		}
		events.Save.Replace(e.Path)
		return nil
	})
}
