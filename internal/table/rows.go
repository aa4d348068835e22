package table

import (
	"fmt"
	"strconv"
)

// buildRows derives the row tree from the original data. Values are read for
// every leaf of the column tree so hidden columns keep their data.
func buildRows(opts Options, leaves []*Column) []*Row {
	return buildRowLevel(opts, leaves, opts.Data, nil, 0)
}

func buildRowLevel(opts Options, leaves []*Column, data []any, parent *Row, depth int) []*Row {
	rows := make([]*Row, 0, len(data))
	for index, original := range data {
		row := &Row{
			ID:       rowID(opts, original, index, parent),
			Index:    index,
			Depth:    depth,
			Original: original,
			Values:   make(map[string]any, len(leaves)),
			Meta:     map[string]any{},
		}
		if parent != nil {
			row.ParentID = parent.ID
		}

		for _, column := range leaves {
			if column.Accessor != nil {
				row.Values[column.ID] = column.Accessor(original, index, row)
			}
		}

		if opts.GetSubRows != nil {
			row.OriginalSubRows = opts.GetSubRows(original, index)
			if len(row.OriginalSubRows) > 0 {
				row.SubRows = buildRowLevel(opts, leaves, row.OriginalSubRows, row, depth+1)
			}
		}

		rows = append(rows, row)
	}
	return rows
}

func rowID(opts Options, original any, index int, parent *Row) string {
	if opts.GetRowID != nil {
		return opts.GetRowID(original, index, parent)
	}
	if parent != nil {
		return parent.ID + "." + strconv.Itoa(index)
	}
	return strconv.Itoa(index)
}

// SubRowsFrom returns a GetSubRows that reads nested records stored under
// key in map originals.
func SubRowsFrom(key string) func(original any, index int) []any {
	return func(original any, _ int) []any {
		record, ok := original.(map[string]any)
		if !ok {
			return nil
		}
		children, _ := record[key].([]any)
		return children
	}
}

// flattenRows lists a row tree in pre-order.
func flattenRows(rows []*Row) []*Row {
	var out []*Row
	for _, row := range rows {
		out = append(out, row)
		out = append(out, flattenRows(row.SubRows)...)
	}
	return out
}

func cellID(row *Row, column *Column) string {
	return fmt.Sprintf("%s_%s", row.ID, column.ID)
}
