package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saveman/saveman/internal/format/table"
	"github.com/saveman/saveman/internal/logging/events"
)

// pickItem pairs the name an action is keyed on with the padded label the
// overlay shows.
type pickItem struct {
	name  string
	label string
}

// picker is a flat list overlay for choosing a game or profile by name.
type picker struct {
	title  string
	items  []pickItem
	index  int
	choose func(name string) error
}

// pickItems pads the rows into aligned columns and pairs each with its key
// (the first cell).
func pickItems(rows [][]string) []pickItem {
	labels := table.Format(rows, nil)
	items := make([]pickItem, len(rows))
	for i, row := range rows {
		items[i] = pickItem{name: row[0], label: labels[i]}
	}
	return items
}

func (m *Model) startPicker(p *picker) {
	if len(p.items) == 0 {
		m.errMsg = "nothing to pick"
		return
	}
	m.clearMessages()
	m.pick = p
	m.mode = modePick
}

func (m *Model) updatePick(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		if m.pick.index < len(m.pick.items)-1 {
			m.pick.index++
		}
	case "k", "up":
		if m.pick.index > 0 {
			m.pick.index--
		}
	case "enter":
		if err := m.pick.choose(m.pick.items[m.pick.index].name); err != nil {
			m.errMsg = err.Error()
		}
		m.pick = nil
		m.mode = modeTree
	case "esc", "q":
		m.pick = nil
		m.mode = modeTree
	}
	return nil
}

func (m *Model) startGamePicker() {
	rows := make([][]string, 0, len(m.manager.Games))
	for _, g := range m.manager.Games {
		detail := fmt.Sprintf("%d profiles", len(g.Profiles))
		if len(g.Profiles) == 1 {
			detail = "1 profile"
		}
		rows = append(rows, []string{g.Name, detail})
	}
	m.startPicker(&picker{
		title: "Switch game",
		items: pickItems(rows),
		choose: func(name string) error {
			for _, g := range m.manager.Games {
				if g.Name == name {
					if err := m.manager.SelectGame(g); err != nil {
						return err
					}
					events.Save.SelectGame(name)
					return nil
				}
			}
			return nil
		},
	})
}

func (m *Model) startProfilePicker() {
	g := m.manager.Active
	if g == nil {
		m.errMsg = "no game selected"
		return
	}
	rows := make([][]string, 0, len(g.Profiles))
	for _, p := range g.Profiles {
		detail := ""
		if p == g.Active {
			detail = "active"
		}
		rows = append(rows, []string{p.Name, detail})
	}
	m.startPicker(&picker{
		title: "Switch profile",
		items: pickItems(rows),
		choose: func(name string) error {
			for _, p := range g.Profiles {
				if p.Name == name {
					if err := g.SelectProfile(p); err != nil {
						return err
					}
					events.Save.SelectProfile(name)
					return nil
				}
			}
			return nil
		},
	})
}
