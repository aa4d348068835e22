// Package render prints computed table instances as aligned text or JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tabular/internal/table"
)

const columnGap = "  "

type textStyles struct {
	enabled bool
	header  lipgloss.Style
	footer  lipgloss.Style
	odd     lipgloss.Style
}

func newTextStyles(enabled bool) textStyles {
	return textStyles{
		enabled: enabled,
		header:  lipgloss.NewStyle().Bold(true),
		footer:  lipgloss.NewStyle().Italic(true),
		odd:     lipgloss.NewStyle().Faint(true),
	}
}

func (s textStyles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// textGrid is the laid out table: one width per visible leaf column.
type textGrid struct {
	inst   *table.Instance
	index  map[string]int
	widths []int
	rows   []textRow
}

type textRow struct {
	values []string
	right  []bool
	odd    bool
}

// Text writes the visible columns of inst as aligned plain text.
func Text(w io.Writer, inst *table.Instance, styled bool) error {
	if len(inst.LeafColumns) == 0 {
		_, err := fmt.Fprintln(w, "(no visible columns)")
		return err
	}

	grid, err := layoutGrid(inst)
	if err != nil {
		return err
	}
	styles := newTextStyles(styled)

	var lines []string
	for _, group := range inst.HeaderGroups {
		line, err := grid.groupLine(group, headerLabel, func(h *table.Header) (table.Props, error) {
			return inst.HeaderProps(h, nil)
		})
		if err != nil {
			return err
		}
		lines = append(lines, styles.render(styles.header, line))
	}
	lines = append(lines, strings.Repeat("-", grid.totalWidth()))

	for _, row := range grid.rows {
		line := grid.rowLine(row)
		if row.odd {
			line = styles.render(styles.odd, line)
		}
		lines = append(lines, line)
	}

	if hasFooters(inst.LeafColumns) {
		lines = append(lines, strings.Repeat("-", grid.totalWidth()))
		for _, group := range inst.FooterGroups {
			line, err := grid.groupLine(group, footerLabel, func(h *table.Header) (table.Props, error) {
				return inst.FooterProps(h, nil)
			})
			if err != nil {
				return err
			}
			if line != "" {
				lines = append(lines, styles.render(styles.footer, line))
			}
		}
	}

	_, err = fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func layoutGrid(inst *table.Instance) (*textGrid, error) {
	grid := &textGrid{
		inst:   inst,
		index:  make(map[string]int, len(inst.LeafColumns)),
		widths: make([]int, len(inst.LeafColumns)),
	}
	for i, column := range inst.LeafColumns {
		grid.index[column.ID] = i
		grid.widths[i] = max(lipgloss.Width(column.Header), lipgloss.Width(column.Footer))
	}

	for _, row := range inst.FlatRows {
		props, err := inst.RowProps(row, nil)
		if err != nil {
			return nil, err
		}
		class, _ := props["class"].(string)

		line := textRow{
			values: make([]string, len(inst.LeafColumns)),
			right:  make([]bool, len(inst.LeafColumns)),
			odd:    strings.Contains(class, "odd"),
		}
		for j, cell := range inst.VisibleCells(row) {
			pos := grid.index[cell.Column.ID]
			text := formatValue(cell.Value)
			if j == 0 {
				text = strings.Repeat("  ", row.Depth) + text
			}

			cellProps, err := inst.CellProps(cell, nil)
			if err != nil {
				return nil, err
			}
			line.right[pos] = cellProps["align"] == "right"
			line.values[pos] = text
			grid.widths[pos] = max(grid.widths[pos], lipgloss.Width(text))
		}
		grid.rows = append(grid.rows, line)
	}

	// A spanning header wider than its columns widens the last one.
	for _, group := range inst.HeaderGroups {
		pos := 0
		for _, header := range group.Headers {
			last := min(pos+header.ColSpan, len(grid.widths)) - 1
			if last < pos {
				break
			}
			if need := lipgloss.Width(headerLabel(header)) - grid.span(pos, last); need > 0 {
				grid.widths[last] += need
			}
			pos = last + 1
		}
	}
	return grid, nil
}

func (g *textGrid) span(first, last int) int {
	total := 0
	for i := first; i <= last; i++ {
		total += g.widths[i]
	}
	return total + len(columnGap)*(last-first)
}

func (g *textGrid) totalWidth() int {
	return g.span(0, len(g.widths)-1)
}

func (g *textGrid) groupLine(group *table.HeaderGroup, label func(*table.Header) string, props func(*table.Header) (table.Props, error)) (string, error) {
	segments := make([]string, 0, len(group.Headers))
	pos := 0
	empty := true
	for _, header := range group.Headers {
		last := min(pos+header.ColSpan, len(g.widths)) - 1
		if last < pos {
			break
		}
		p, err := props(header)
		if err != nil {
			return "", err
		}
		text := label(header)
		if text != "" {
			empty = false
		}
		segments = append(segments, pad(text, g.span(pos, last), p["align"] == "right"))
		pos = last + 1
	}
	if empty {
		return "", nil
	}
	return strings.TrimRight(strings.Join(segments, columnGap), " "), nil
}

func (g *textGrid) rowLine(row textRow) string {
	segments := make([]string, len(row.values))
	for i, value := range row.values {
		segments[i] = pad(value, g.widths[i], row.right[i])
	}
	return strings.TrimRight(strings.Join(segments, columnGap), " ")
}

func headerLabel(header *table.Header) string {
	if header.IsPlaceholder {
		return ""
	}
	return header.Column.Header
}

func footerLabel(header *table.Header) string {
	if header.IsPlaceholder {
		return ""
	}
	return header.Column.Footer
}

func hasFooters(columns []*table.Column) bool {
	for _, column := range columns {
		if column.Footer != "" {
			return true
		}
	}
	return false
}

func pad(text string, width int, right bool) string {
	gap := width - lipgloss.Width(text)
	if gap <= 0 {
		return text
	}
	if right {
		return strings.Repeat(" ", gap) + text
	}
	return text + strings.Repeat(" ", gap)
}

func formatValue(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
