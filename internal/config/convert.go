package config

import (
	"fmt"
	"strconv"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	"github.com/alexisbeaulieu97/tabular/internal/plugins"
	"github.com/alexisbeaulieu97/tabular/internal/table"
	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

// TableOptions maps the document onto table options.
func (d *Document) TableOptions() table.Options {
	opts := table.Options{
		Data:         d.Data,
		Columns:      columnDefs(d.Columns),
		InitialState: table.State(d.InitialState),
		State:        table.State(d.State),
		Debug:        d.Settings.Debug,
	}
	if d.DefaultColumn != nil {
		def := columnDef(*d.DefaultColumn)
		opts.DefaultColumn = &def
	}
	if d.SubRows != "" {
		opts.GetSubRows = table.SubRowsFrom(d.SubRows)
	}
	if d.RowID != "" {
		opts.GetRowID = rowIDFrom(d.RowID)
	}
	return opts
}

// EngineConfig returns the engine configuration with document overrides
// applied on top of the build and environment defaults.
func (d *Document) EngineConfig() *plugin.Config {
	cfg := plugin.DefaultConfig()
	if d.Settings.Validate != nil {
		cfg.Validate = *d.Settings.Validate
	}
	if d.Settings.CacheSize != nil {
		cfg.CacheSize = *d.Settings.CacheSize
	}
	return cfg
}

// BuildPlugins constructs the enabled plugins from registry, in document
// order. Document "after" entries are appended to each plugin's own.
func (d *Document) BuildPlugins(registry *plugins.Registry) ([]*plugin.Plugin, error) {
	var out []*plugin.Plugin
	for i, entry := range d.Plugins {
		if !entry.Enabled {
			continue
		}

		p, err := registry.Build(entry.Name, plugins.Options(entry.Options))
		if err != nil {
			return nil, tabularerrors.NewValidationError(fieldForPlugin(i, "name"), err.Error(), err)
		}
		if len(entry.After) > 0 {
			after := append([]string(nil), p.After...)
			p.After = append(after, entry.After...)
		}
		out = append(out, p)
	}
	return out, nil
}

func columnDefs(columns []Column) []table.ColumnDef {
	if len(columns) == 0 {
		return nil
	}
	defs := make([]table.ColumnDef, len(columns))
	for i, column := range columns {
		defs[i] = columnDef(column)
	}
	return defs
}

func columnDef(column Column) table.ColumnDef {
	return table.ColumnDef{
		ID:       column.ID,
		Header:   column.Header,
		Footer:   column.Footer,
		Accessor: column.Accessor,
		Width:    column.Width,
		MinWidth: column.MinWidth,
		MaxWidth: column.MaxWidth,
		Columns:  columnDefs(column.Columns),
		Meta:     column.Meta,
	}
}

// rowIDFrom reads row ids from path, falling back to positional ids for
// records that lack it.
func rowIDFrom(path string) func(original any, index int, parent *table.Row) string {
	return func(original any, index int, parent *table.Row) string {
		if value := table.ValueAt(original, path); value != nil {
			return fmt.Sprint(value)
		}
		if parent != nil {
			return parent.ID + "." + strconv.Itoa(index)
		}
		return strconv.Itoa(index)
	}
}
