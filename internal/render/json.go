package render

import (
	"encoding/json"
	"io"

	"github.com/alexisbeaulieu97/tabular/internal/table"
)

// Table is the JSON form of a computed table: every element carries the
// props its getter resolved.
type Table struct {
	Name  string      `json:"name"`
	Props table.Props `json:"props"`
	Head  Section     `json:"head"`
	Body  Section     `json:"body"`
	Foot  Section     `json:"foot"`
}

// Section is the head, body or foot of a Table.
type Section struct {
	Props  table.Props `json:"props"`
	Groups []Group     `json:"groups,omitempty"`
	Rows   []Row       `json:"rows,omitempty"`
}

type Group struct {
	Props   table.Props  `json:"props"`
	Headers []HeaderCell `json:"headers"`
}

type HeaderCell struct {
	ID          string      `json:"id"`
	Column      string      `json:"column"`
	Label       string      `json:"label"`
	Placeholder bool        `json:"placeholder,omitempty"`
	Props       table.Props `json:"props"`
}

type Row struct {
	ID    string      `json:"id"`
	Depth int         `json:"depth"`
	Props table.Props `json:"props"`
	Cells []Cell      `json:"cells"`
}

type Cell struct {
	Column string      `json:"column"`
	Value  any         `json:"value"`
	Props  table.Props `json:"props"`
}

// JSON writes inst as an indented Table.
func JSON(w io.Writer, name string, inst *table.Instance) error {
	out, err := NewTable(name, inst)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// NewTable resolves the props of every element of inst.
func NewTable(name string, inst *table.Instance) (*Table, error) {
	var err error
	out := &Table{Name: name}

	if out.Props, err = inst.TableProps(nil); err != nil {
		return nil, err
	}
	if out.Head.Props, err = inst.TableHeadProps(nil); err != nil {
		return nil, err
	}
	if out.Body.Props, err = inst.TableBodyProps(nil); err != nil {
		return nil, err
	}
	if out.Foot.Props, err = inst.TableFooterProps(nil); err != nil {
		return nil, err
	}

	for _, group := range inst.HeaderGroups {
		g, err := newGroup(group, inst.HeaderGroupProps, inst.HeaderProps, headerLabel)
		if err != nil {
			return nil, err
		}
		out.Head.Groups = append(out.Head.Groups, g)
	}
	for _, group := range inst.FooterGroups {
		g, err := newGroup(group, inst.FooterGroupProps, inst.FooterProps, footerLabel)
		if err != nil {
			return nil, err
		}
		out.Foot.Groups = append(out.Foot.Groups, g)
	}

	for _, row := range inst.FlatRows {
		r := Row{ID: row.ID, Depth: row.Depth}
		if r.Props, err = inst.RowProps(row, nil); err != nil {
			return nil, err
		}
		for _, cell := range inst.VisibleCells(row) {
			props, err := inst.CellProps(cell, nil)
			if err != nil {
				return nil, err
			}
			r.Cells = append(r.Cells, Cell{Column: cell.Column.ID, Value: cell.Value, Props: props})
		}
		out.Body.Rows = append(out.Body.Rows, r)
	}
	return out, nil
}

func newGroup(
	group *table.HeaderGroup,
	groupProps func(*table.HeaderGroup, table.Props) (table.Props, error),
	headerProps func(*table.Header, table.Props) (table.Props, error),
	label func(*table.Header) string,
) (Group, error) {
	props, err := groupProps(group, nil)
	if err != nil {
		return Group{}, err
	}
	out := Group{Props: props, Headers: make([]HeaderCell, 0, len(group.Headers))}
	for _, header := range group.Headers {
		p, err := headerProps(header, nil)
		if err != nil {
			return Group{}, err
		}
		out.Headers = append(out.Headers, HeaderCell{
			ID:          header.ID,
			Column:      header.Column.ID,
			Label:       label(header),
			Placeholder: header.IsPlaceholder,
			Props:       p,
		})
	}
	return out, nil
}
