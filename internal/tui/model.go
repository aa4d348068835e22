// Package tui is an interactive viewer for computed tables. Column
// visibility is driven through the controlled "hidden" state, so every
// toggle recomputes the table through the same plugin pipelines.
package tui

import (
	"bytes"
	"slices"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/tabular/internal/plugins/visibility"
	"github.com/alexisbeaulieu97/tabular/internal/render"
	"github.com/alexisbeaulieu97/tabular/internal/table"
)

// chromeLines is the number of lines View draws around the viewport.
const chromeLines = 4

// Builder computes the table for a controlled state.
type Builder func(state table.State) (*table.Instance, error)

// Model contains the Bubbletea state of the table viewer.
type Model struct {
	title    string
	build    Builder
	state    table.State
	inst     *table.Instance
	leaves   []*table.Column
	cursor   int
	content  string
	viewport viewport.Model
	keys     keyMap
	err      error
	ready    bool
	quitting bool
}

// NewModel computes the first instance from state. A build error is
// returned so the caller can fail before starting the program.
func NewModel(title string, build Builder, state table.State) (Model, error) {
	m := Model{
		title: title,
		build: build,
		state: cloneState(state),
		keys:  defaultKeyMap(),
	}
	if err := m.rebuild(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Instance returns the table currently shown.
func (m Model) Instance() *table.Instance {
	return m.inst
}

// Hidden returns the ids of the hidden leaf columns.
func (m Model) Hidden() []string {
	if m.inst == nil {
		return nil
	}
	return visibility.Hidden(m.inst.State)
}

// Selected returns the leaf column under the cursor.
func (m Model) Selected() (*table.Column, bool) {
	if m.cursor < 0 || m.cursor >= len(m.leaves) {
		return nil, false
	}
	return m.leaves[m.cursor], true
}

func (m *Model) rebuild() error {
	inst, err := m.build(cloneState(m.state))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render.Text(&buf, inst, true); err != nil {
		return err
	}

	leaves := make([]*table.Column, 0, len(inst.AllColumns))
	for _, column := range inst.AllColumns {
		if column != nil && column.IsLeaf() {
			leaves = append(leaves, column)
		}
	}

	m.inst = inst
	m.leaves = leaves
	m.cursor = min(m.cursor, max(len(m.leaves)-1, 0))
	m.content = buf.String()
	if m.ready {
		m.viewport.SetContent(m.content)
	}
	return nil
}

// toggle flips the visibility of the selected column and recomputes. On
// failure the previous table stays on screen and the error is shown.
func (m *Model) toggle() {
	selected, ok := m.Selected()
	if !ok {
		return
	}

	hidden := slices.Clone(m.Hidden())
	if idx := slices.Index(hidden, selected.ID); idx >= 0 {
		hidden = slices.Delete(hidden, idx, idx+1)
	} else {
		hidden = append(hidden, selected.ID)
	}
	m.setHidden(hidden)
}

func (m *Model) setHidden(hidden []string) {
	previous := m.state
	m.state = cloneState(m.state)
	m.state[visibility.StateKey] = hidden

	if err := m.rebuild(); err != nil {
		m.state = previous
		m.err = err
		return
	}
	m.err = nil
}

func cloneState(state table.State) table.State {
	out := make(table.State, len(state)+1)
	for k, v := range state {
		out[k] = v
	}
	return out
}
