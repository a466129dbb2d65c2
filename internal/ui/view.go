package ui

import (
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/saveman/saveman/internal/save"
	"github.com/saveman/saveman/internal/tree"
)

const treeHelp = "j/k move  enter load  space mark  r rename  n folder  i import  R replace  d delete  / jump  G game  P profile  q quit"

func (m *Model) View() string {
	var lines []string
	lines = append(lines, m.headerLine())

	p := m.manager.ActiveProfile()
	overlay := m.overlayLines()
	if p == nil {
		lines = append(lines, m.styles.Info.Render("no profile selected"))
	} else {
		lines = append(lines, m.bodyLines(p, len(overlay))...)
	}
	lines = append(lines, overlay...)
	lines = append(lines, m.footerLine())

	if m.width > 0 {
		for i, line := range lines {
			lines[i] = truncate.StringWithTail(line, uint(m.width), "…")
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) headerLine() string {
	g := m.manager.Active
	if g == nil {
		return m.styles.Header.Render("saveman — no game selected (C creates one, G switches)")
	}
	title := g.Name
	if g.Active != nil {
		title += " ▸ " + g.Active.Name
	}
	return m.styles.Header.Render(title)
}

func (m *Model) footerLine() string {
	switch {
	case m.errMsg != "":
		return m.styles.Error.Render(m.errMsg)
	case m.info != "":
		return m.styles.Info.Render(m.info)
	default:
		return m.styles.Footer.Render(treeHelp)
	}
}

type row struct {
	id    tree.NodeID
	depth int
}

// visibleRows flattens the fold-aware traversal into the rows the viewport
// can show, excluding the profile root itself.
func visibleRows(p *save.Profile) []row {
	var rows []row
	w := p.Entries.Walk().Visible()
	for id, ok := w.NextNode(); ok; id, ok = w.NextNode() {
		if id == tree.Root {
			continue
		}
		rows = append(rows, row{id: id, depth: len(p.Entries.Ancestors(id).Collect())})
	}
	return rows
}

func (m *Model) bodyLines(p *save.Profile, overlayHeight int) []string {
	rows := visibleRows(p)
	if len(rows) == 0 {
		return []string{m.styles.Info.Render("empty profile — i imports the current save")}
	}

	start, end := 0, len(rows)
	if m.height > 0 {
		// header + footer + any overlay
		bodyH := m.height - 2 - overlayHeight
		if bodyH < 1 {
			bodyH = 1
		}
		sel := 0
		for i, r := range rows {
			if r.id == p.State.Selected {
				sel = i
				break
			}
		}
		if sel < p.State.Offset {
			p.State.Offset = sel
		}
		if sel >= p.State.Offset+bodyH {
			p.State.Offset = sel - bodyH + 1
		}
		if p.State.Offset > len(rows)-bodyH {
			p.State.Offset = len(rows) - bodyH
		}
		if p.State.Offset < 0 {
			p.State.Offset = 0
		}
		start = p.State.Offset
		if end > start+bodyH {
			end = start + bodyH
		}
	}

	lines := make([]string, 0, end-start)
	for _, r := range rows[start:end] {
		lines = append(lines, m.renderRow(p, r))
	}
	return lines
}

func (m *Model) renderRow(p *save.Profile, r row) string {
	node := p.Entries.At(r.id)

	indicator := m.styles.ItemIndicator.Render("  ")
	if r.id == p.State.Selected {
		indicator = m.styles.SelectedItemIndicator.Render("> ")
	}

	indent := ""
	if r.depth > 1 {
		indent = m.styles.IndentGuide.Render(strings.Repeat("│ ", r.depth-1))
	}

	glyph := "  "
	if node.Value.IsDir {
		if node.IsExpanded() {
			glyph = m.styles.FoldGlyph.Render("▾ ")
		} else {
			glyph = m.styles.FoldGlyph.Render("▸ ")
		}
	}

	name := node.Value.Name
	if _, marked := p.State.Marked[r.id]; marked {
		name = "*" + name
	}

	style := m.styles.Item
	switch {
	case r.id == p.State.Selected:
		style = m.styles.SelectedItem
	case r.id == p.State.Active:
		style = m.styles.ActiveItem
	case node.Value.IsDir:
		style = m.styles.Folder
	}
	if _, marked := p.State.Marked[r.id]; marked && r.id != p.State.Selected {
		style = m.styles.MarkedItem
	}

	return indicator + indent + glyph + style.Render(name)
}

func (m *Model) overlayLines() []string {
	switch m.mode {
	case modePrompt:
		return []string{
			m.styles.Header.Render(m.prompt.title),
			m.prompt.input.View(),
			m.styles.Footer.Render(m.prompt.help),
		}
	case modeConfirm:
		return []string{m.styles.Error.Render(m.confirm.text)}
	case modePick:
		lines := []string{m.styles.Header.Render(m.pick.title)}
		for i, item := range m.pick.items {
			cursor := "  "
			style := m.styles.Item
			if i == m.pick.index {
				cursor = "> "
				style = m.styles.SelectedItem
			}
			lines = append(lines, cursor+style.Render(item.label))
		}
		return lines
	case modeJump:
		lines := []string{m.styles.FilterPrompt.Render("/ ") + m.jump.input.View()}
		limit := len(m.jump.matches)
		if limit > jumpLimit {
			limit = jumpLimit
		}
		for i, match := range m.jump.matches[:limit] {
			cursor := "  "
			style := m.styles.Filter
			if i == m.jump.index {
				cursor = "> "
				style = m.styles.SelectedItem
			}
			lines = append(lines, cursor+style.Render(match))
		}
		return lines
	default:
		return nil
	}
}
