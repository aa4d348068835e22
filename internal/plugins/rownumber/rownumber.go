// Package rownumber prepends a column holding each row's 1-based position.
package rownumber

import (
	"fmt"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	"github.com/alexisbeaulieu97/tabular/internal/plugins"
	"github.com/alexisbeaulieu97/tabular/internal/table"
)

// Name is the registered plugin name.
const Name = "rownumber"

// ColumnID is the id of the generated column.
const ColumnID = "rownumber"

// Options configures the row number column.
type Options struct {
	Header string `yaml:"header"`
	Start  int    `yaml:"start" validate:"min=0"`
	Width  int    `yaml:"width" validate:"min=0"`
}

func init() {
	if err := plugins.Register(Name, "Prepends a right-aligned row number column", Factory); err != nil {
		panic(err)
	}
}

// Factory builds the plugin from document options.
func Factory(raw plugins.Options) (*plugin.Plugin, error) {
	opts := Options{Header: "#", Start: 1, Width: 40}
	if err := raw.Decode(&opts); err != nil {
		return nil, err
	}
	return New(opts), nil
}

// New returns the plugin descriptor for opts.
func New(opts Options) *plugin.Plugin {
	p := plugin.New(Name, nil,
		table.ReduceColumns.PlugFunc(func(columns []*table.Column, _ table.Meta) []*table.Column {
			return append([]*table.Column{newColumn(opts)}, columns...)
		}),
		table.ReduceCellProps.PlugFunc(func(props table.Props, meta table.Meta) table.Props {
			if meta.Cell == nil || meta.Cell.Column.ID != ColumnID {
				return props
			}
			next := make(table.Props, len(props)+1)
			for k, v := range props {
				next[k] = v
			}
			next["align"] = "right"
			return next
		}),
	)
	p.Key = fmt.Sprintf("header=%s;start=%d;width=%d", opts.Header, opts.Start, opts.Width)
	return p
}

func newColumn(opts Options) *table.Column {
	return &table.Column{
		ID:     ColumnID,
		Header: opts.Header,
		Width:  opts.Width,
		Accessor: func(_ any, index int, _ *table.Row) any {
			return index + opts.Start
		},
		Meta: map[string]any{"align": "right"},
	}
}
