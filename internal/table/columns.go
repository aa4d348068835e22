package table

import (
	"fmt"
	"math"
	"strings"

	"dario.cat/mergo"

	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

const (
	defaultWidth    = 150
	defaultMinWidth = 20
	defaultMaxWidth = math.MaxInt32
)

// buildColumns turns definitions into a linked column tree. The default
// column fills fields a definition leaves empty.
func buildColumns(defs []ColumnDef, defaults *ColumnDef) ([]*Column, error) {
	seen := make(map[string]string)
	return buildLevel(defs, defaults, nil, 0, "columns", seen)
}

func buildLevel(defs []ColumnDef, defaults *ColumnDef, parent *Column, depth int, path string, seen map[string]string) ([]*Column, error) {
	columns := make([]*Column, 0, len(defs))
	for i, def := range defs {
		field := fmt.Sprintf("%s[%d]", path, i)

		if defaults != nil && len(def.Columns) == 0 {
			base := *defaults
			base.Columns = nil
			def.Meta = copyMeta(def.Meta)
			if err := mergo.Merge(&def, base); err != nil {
				return nil, tabularerrors.NewValidationError(field, "cannot apply default column", err)
			}
		}

		id := columnID(def, depth, i)
		if id == "" {
			return nil, tabularerrors.NewValidationError(field+".id", "column needs an id, accessor or header", nil)
		}
		if other, dup := seen[id]; dup {
			return nil, tabularerrors.NewValidationError(field+".id", fmt.Sprintf("duplicate column id %q (also used by %s)", id, other), nil)
		}
		seen[id] = field

		column := &Column{
			ID:       id,
			Header:   def.Header,
			Footer:   def.Footer,
			Depth:    depth,
			Parent:   parent,
			Width:    def.Width,
			MinWidth: def.MinWidth,
			MaxWidth: def.MaxWidth,
			Def:      def,
			Meta:     copyMeta(def.Meta),
		}
		if column.Header == "" {
			column.Header = id
		}

		if len(def.Columns) > 0 {
			children, err := buildLevel(def.Columns, defaults, column, depth+1, field+".columns", seen)
			if err != nil {
				return nil, err
			}
			column.Columns = children
		} else {
			column.Accessor = columnAccessor(def)
		}

		columns = append(columns, column)
	}
	return columns, nil
}

func columnID(def ColumnDef, depth, index int) string {
	switch {
	case def.ID != "":
		return def.ID
	case def.Accessor != "":
		return def.Accessor
	case def.Header != "":
		return def.Header
	case len(def.Columns) > 0:
		return fmt.Sprintf("group_%d_%d", depth, index)
	default:
		return ""
	}
}

func columnAccessor(def ColumnDef) Accessor {
	if def.AccessorFn != nil {
		return def.AccessorFn
	}
	if def.Accessor == "" {
		return nil
	}
	path := strings.Split(def.Accessor, ".")
	return func(original any, _ int, _ *Row) any {
		return lookupPath(original, path)
	}
}

// ValueAt reads a dotted key path such as "address.city" from a map original.
func ValueAt(original any, path string) any {
	if path == "" {
		return nil
	}
	return lookupPath(original, strings.Split(path, "."))
}

// lookupPath walks map originals along a dotted key path.
func lookupPath(value any, path []string) any {
	for _, key := range path {
		switch current := value.(type) {
		case map[string]any:
			value = current[key]
		case map[any]any:
			value = current[key]
		default:
			return nil
		}
	}
	return value
}

func copyMeta(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

// flattenColumns lists a column tree in depth-first order, groups first.
func flattenColumns(columns []*Column) []*Column {
	var out []*Column
	for _, column := range columns {
		if column == nil {
			continue
		}
		out = append(out, column)
		out = append(out, flattenColumns(column.Columns)...)
	}
	return out
}

func leafColumns(all []*Column) []*Column {
	out := make([]*Column, 0, len(all))
	for _, column := range all {
		if column != nil && column.IsLeaf() {
			out = append(out, column)
		}
	}
	return out
}

// relinkColumns points parents, children and the given lists at the
// decorated column values, matched by id. Columns a decoration dropped from
// byID keep their previous value.
func relinkColumns(byID map[string]*Column, lists ...[]*Column) {
	resolve := func(column *Column) *Column {
		if column == nil {
			return nil
		}
		if decorated, ok := byID[column.ID]; ok {
			return decorated
		}
		return column
	}

	for _, column := range byID {
		column.Parent = resolve(column.Parent)
		if len(column.Columns) > 0 {
			children := make([]*Column, len(column.Columns))
			for i, child := range column.Columns {
				children[i] = resolve(child)
			}
			column.Columns = children
		}
	}
	for _, list := range lists {
		for i, column := range list {
			list[i] = resolve(column)
		}
	}
}

// ResolvedWidth returns the column width clamped to its bounds. Groups
// report the sum of their leaves.
func (c *Column) ResolvedWidth() int {
	if !c.IsLeaf() {
		total := 0
		for _, child := range c.Columns {
			total += child.ResolvedWidth()
		}
		return total
	}

	width, minWidth, maxWidth := c.Width, c.MinWidth, c.MaxWidth
	if width <= 0 {
		width = defaultWidth
	}
	if minWidth <= 0 {
		minWidth = defaultMinWidth
	}
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	return min(max(width, minWidth), maxWidth)
}
