// Package visibility hides leaf columns listed in the "hidden" table state.
package visibility

import (
	"slices"
	"strings"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	"github.com/alexisbeaulieu97/tabular/internal/plugins"
	"github.com/alexisbeaulieu97/tabular/internal/table"
)

const (
	// Name is the registered plugin name.
	Name = "visibility"
	// StateKey holds the hidden column ids in table state.
	StateKey = "hidden"
	// MetaKey is set on every decorated column.
	MetaKey = "visible"
)

// Options seeds the hidden column list when the state does not carry one.
type Options struct {
	Hidden []string `yaml:"hidden" validate:"dive,required"`
}

func init() {
	if err := plugins.Register(Name, "Hides leaf columns named in the hidden state", Factory); err != nil {
		panic(err)
	}
}

// Factory builds the plugin from document options.
func Factory(raw plugins.Options) (*plugin.Plugin, error) {
	var opts Options
	if err := raw.Decode(&opts); err != nil {
		return nil, err
	}
	return New(opts), nil
}

// New returns the plugin descriptor for opts. It orders itself after the
// row number plugin so that column can be hidden too.
func New(opts Options) *plugin.Plugin {
	seed := slices.Clone(opts.Hidden)

	p := plugin.New(Name, []string{"rownumber"},
		table.ReduceOptions.PlugFunc(func(o table.Options, _ table.Meta) table.Options {
			if len(seed) == 0 {
				return o
			}
			if _, set := o.InitialState[StateKey]; set {
				return o
			}
			initial := make(table.State, len(o.InitialState)+1)
			for k, v := range o.InitialState {
				initial[k] = v
			}
			initial[StateKey] = slices.Clone(seed)
			o.InitialState = initial
			return o
		}),
		table.ReduceLeafColumns.PlugFunc(func(columns []*table.Column, meta table.Meta) []*table.Column {
			hidden := Hidden(meta.Instance.State)
			if len(hidden) == 0 {
				return columns
			}
			out := make([]*table.Column, 0, len(columns))
			for _, column := range columns {
				if !slices.Contains(hidden, column.ID) {
					out = append(out, column)
				}
			}
			return out
		}),
		table.DecorateColumn.PlugFunc(func(column *table.Column, meta table.Meta) *table.Column {
			if column.Meta == nil {
				column.Meta = map[string]any{}
			}
			column.Meta[MetaKey] = !slices.Contains(Hidden(meta.Instance.State), column.ID)
			return column
		}),
	)
	p.Key = "hidden=" + strings.Join(seed, ",")
	return p
}

// Hidden reads the hidden column ids from state. Lists decoded from YAML or
// JSON arrive as []any and are accepted too.
func Hidden(state table.State) []string {
	switch hidden := state[StateKey].(type) {
	case []string:
		return hidden
	case []any:
		out := make([]string, 0, len(hidden))
		for _, v := range hidden {
			if id, ok := v.(string); ok {
				out = append(out, id)
			}
		}
		return out
	default:
		return nil
	}
}
