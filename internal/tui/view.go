package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		titleStyle.Render(fmt.Sprintf("tabular • %s", m.displayTitle())),
		m.columnBar(),
	}

	if m.ready {
		sections = append(sections, m.viewport.View())
	} else {
		sections = append(sections, strings.TrimRight(m.content, "\n"))
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(m.err.Error()))
	} else {
		sections = append(sections, m.helpLine())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) columnBar() string {
	hidden := m.Hidden()
	labels := make([]string, 0, len(m.leaves))
	for i, column := range m.leaves {
		style := columnStyle
		switch {
		case i == m.cursor:
			style = selectedColumnStyle
		case slices.Contains(hidden, column.ID):
			style = hiddenColumnStyle
		}

		label := column.Header
		if slices.Contains(hidden, column.ID) {
			label = "(" + label + ")"
		}
		labels = append(labels, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

func (m Model) helpLine() string {
	parts := make([]string, 0, len(m.keys.bindings())+1)
	for _, binding := range m.keys.bindings() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	parts = append(parts, "↑/↓ scroll")
	return helpStyle.Render(strings.Join(parts, " • "))
}

func (m Model) displayTitle() string {
	if strings.TrimSpace(m.title) != "" {
		return m.title
	}
	return "table"
}
