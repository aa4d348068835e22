package config

import (
	"gopkg.in/yaml.v3"
)

// Document is a YAML table document: column definitions, plugins, state and
// the data to lay out.
type Document struct {
	Version       string         `yaml:"version" validate:"required,semver"`
	Name          string         `yaml:"name" validate:"required,min=1,max=100"`
	Description   string         `yaml:"description,omitempty"`
	Settings      Settings       `yaml:"settings,omitempty"`
	DefaultColumn *Column        `yaml:"default_column,omitempty"`
	Columns       []Column       `yaml:"columns" validate:"required,min=1,dive"`
	Plugins       []PluginEntry  `yaml:"plugins,omitempty" validate:"omitempty,dive"`
	InitialState  map[string]any `yaml:"initial_state,omitempty"`
	State         map[string]any `yaml:"state,omitempty"`
	// RowID is a dotted path read from each record to use as its row id.
	RowID string `yaml:"row_id,omitempty" validate:"omitempty,accessor_path"`
	// SubRows names the key holding nested records.
	SubRows string `yaml:"sub_rows,omitempty"`
	Data    []any  `yaml:"data,omitempty"`
}

// Settings holds engine and logging parameters.
type Settings struct {
	LogLevel  string `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	Debug     bool   `yaml:"debug,omitempty"`
	Validate  *bool  `yaml:"validate,omitempty"`
	CacheSize *int   `yaml:"cache_size,omitempty" validate:"omitempty,min=0,max=4096"`
}

// Column declares a column or a column group.
type Column struct {
	ID       string         `yaml:"id,omitempty" validate:"omitempty,column_id"`
	Header   string         `yaml:"header,omitempty"`
	Footer   string         `yaml:"footer,omitempty"`
	Accessor string         `yaml:"accessor,omitempty" validate:"omitempty,accessor_path"`
	Width    int            `yaml:"width,omitempty" validate:"omitempty,min=0"`
	MinWidth int            `yaml:"min_width,omitempty" validate:"omitempty,min=0"`
	MaxWidth int            `yaml:"max_width,omitempty" validate:"omitempty,min=0"`
	Columns  []Column       `yaml:"columns,omitempty" validate:"omitempty,dive"`
	Meta     map[string]any `yaml:"meta,omitempty"`
}

// PluginEntry enables a registered plugin. After adds predecessors to the
// ones the plugin declares itself.
type PluginEntry struct {
	Name    string         `yaml:"name" validate:"required"`
	After   []string       `yaml:"after,omitempty" validate:"omitempty,dive,required"`
	Enabled bool           `yaml:"enabled,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

// UnmarshalYAML defaults Enabled to true.
func (p *PluginEntry) UnmarshalYAML(value *yaml.Node) error {
	type rawEntry struct {
		Name    string         `yaml:"name"`
		After   []string       `yaml:"after"`
		Enabled *bool          `yaml:"enabled"`
		Options map[string]any `yaml:"options"`
	}

	var raw rawEntry
	if err := value.Decode(&raw); err != nil {
		return err
	}

	p.Name = raw.Name
	p.After = append([]string(nil), raw.After...)
	p.Options = raw.Options
	p.Enabled = raw.Enabled == nil || *raw.Enabled
	return nil
}

// EnabledPlugins returns the entries that are switched on, in document order.
func (d *Document) EnabledPlugins() []PluginEntry {
	out := make([]PluginEntry, 0, len(d.Plugins))
	for _, entry := range d.Plugins {
		if entry.Enabled {
			out = append(out, entry)
		}
	}
	return out
}
