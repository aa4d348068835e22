package table

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

// The prop getters below reduce the element's default props through the
// matching extension point, then apply user props on top. Each call
// re-runs the pipeline; nothing is cached.

// TableProps returns the props of the table element.
func (i *Instance) TableProps(user Props) (Props, error) {
	return i.props(ReduceTableProps, Props{"role": "table"}, Meta{Instance: i}, user)
}

// TableBodyProps returns the props of the body element.
func (i *Instance) TableBodyProps(user Props) (Props, error) {
	return i.props(ReduceTableBodyProps, Props{"role": "rowgroup"}, Meta{Instance: i}, user)
}

// TableHeadProps returns the props of the head element.
func (i *Instance) TableHeadProps(user Props) (Props, error) {
	return i.props(ReduceTableHeadProps, Props{"role": "rowgroup"}, Meta{Instance: i}, user)
}

// TableFooterProps returns the props of the footer element.
func (i *Instance) TableFooterProps(user Props) (Props, error) {
	return i.props(ReduceTableFooterProps, Props{"role": "rowgroup"}, Meta{Instance: i}, user)
}

// HeaderGroupProps returns the props of one header row.
func (i *Instance) HeaderGroupProps(group *HeaderGroup, user Props) (Props, error) {
	base := Props{"key": group.ID, "role": "row"}
	return i.props(ReduceHeaderGroupProps, base, Meta{Instance: i, HeaderGroup: group}, user)
}

// FooterGroupProps returns the props of one footer row.
func (i *Instance) FooterGroupProps(group *HeaderGroup, user Props) (Props, error) {
	base := Props{"key": fmt.Sprintf("footerGroup_%d", group.Depth), "role": "row"}
	return i.props(ReduceFooterGroupProps, base, Meta{Instance: i, HeaderGroup: group}, user)
}

// HeaderProps returns the props of one header cell.
func (i *Instance) HeaderProps(header *Header, user Props) (Props, error) {
	base := Props{"key": header.ID, "colSpan": header.ColSpan, "role": "columnheader"}
	return i.props(ReduceHeaderProps, base, Meta{Instance: i, Header: header}, user)
}

// FooterProps returns the props of one footer cell.
func (i *Instance) FooterProps(header *Header, user Props) (Props, error) {
	base := Props{"key": "footer_" + header.ID, "colSpan": header.ColSpan}
	return i.props(ReduceFooterProps, base, Meta{Instance: i, Header: header}, user)
}

// RowProps returns the props of one row.
func (i *Instance) RowProps(row *Row, user Props) (Props, error) {
	base := Props{"key": "row_" + row.ID, "role": "row"}
	return i.props(ReduceRowProps, base, Meta{Instance: i, Row: row}, user)
}

// CellProps returns the props of one cell.
func (i *Instance) CellProps(cell *Cell, user Props) (Props, error) {
	base := Props{"key": cell.ID, "role": "cell"}
	return i.props(ReduceCellProps, base, Meta{Instance: i, Row: cell.Row, Cell: cell}, user)
}

func (i *Instance) props(point plugin.Point[Props, Meta], base Props, meta Meta, user Props) (Props, error) {
	reduced, err := point.Run(i.Pipelines, base, meta)
	if err != nil {
		return nil, tabularerrors.NewExecutionError(StageProps, point.Name(), err)
	}
	return mergeProps(reduced, user)
}

// mergeProps copies base and lays user on top.
func mergeProps(base, user Props) (Props, error) {
	out := make(Props, len(base)+len(user))
	for k, v := range base {
		out[k] = v
	}
	if len(user) == 0 {
		return out, nil
	}
	if err := mergo.Merge(&out, user, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge props: %w", err)
	}
	return out, nil
}
