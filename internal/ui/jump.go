package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/saveman/saveman/internal/entry"
	"github.com/saveman/saveman/internal/logging/events"
	"github.com/saveman/saveman/internal/save"
)

// jumpLimit caps how many candidates the overlay shows.
const jumpLimit = 8

// jump is the fuzzy-finder overlay over the profile's relative file paths.
type jump struct {
	input   textinput.Model
	paths   []string
	matches []string
	index   int
}

func (m *Model) startJump(p *save.Profile) {
	ti := textinput.New()
	ti.Placeholder = "jump to entry"
	ti.CharLimit = 128
	ti.Focus()
	m.clearMessages()
	m.jump = &jump{input: ti, paths: entry.RelPaths(p.Entries)}
	m.jump.refresh()
	m.mode = modeJump
}

func (m *Model) updateJump(msg tea.KeyMsg) tea.Cmd {
	j := m.jump
	switch msg.String() {
	case "ctrl+n", "down":
		if j.index < len(j.matches)-1 {
			j.index++
		}
		return nil
	case "ctrl+p", "up":
		if j.index > 0 {
			j.index--
		}
		return nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.jump = nil
		m.mode = modeTree
		return nil
	case tea.KeyEnter:
		if j.index < len(j.matches) {
			rel := j.matches[j.index]
			p := m.manager.ActiveProfile()
			path := profileRelPath(p, rel)
			m.selectPath(p, path)
			events.Tree.Jump(strings.TrimSpace(j.input.Value()), path)
		}
		m.jump = nil
		m.mode = modeTree
		return nil
	}
	var cmd tea.Cmd
	j.input, cmd = j.input.Update(msg)
	j.refresh()
	return cmd
}

// refresh recomputes the ranked matches for the current query. An empty
// query lists everything in tree order.
func (j *jump) refresh() {
	j.index = 0
	query := strings.TrimSpace(j.input.Value())
	if query == "" {
		j.matches = append([]string(nil), j.paths...)
		return
	}
	ranks := fuzzy.RankFindNormalizedFold(query, j.paths)
	sort.Stable(ranks)
	j.matches = j.matches[:0]
	for _, rank := range ranks {
		j.matches = append(j.matches, rank.Target)
	}
}
