// Package striping marks alternating rows and adds a class to their props.
package striping

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	"github.com/alexisbeaulieu97/tabular/internal/plugins"
	"github.com/alexisbeaulieu97/tabular/internal/table"
)

// Name is the registered plugin name.
const Name = "striping"

// Options names the classes of even and odd rows.
type Options struct {
	EvenClass string `yaml:"even_class" validate:"required"`
	OddClass  string `yaml:"odd_class" validate:"required"`
}

func init() {
	if err := plugins.Register(Name, "Flags alternating rows and adds odd/even row classes", Factory); err != nil {
		panic(err)
	}
}

// Factory builds the plugin from document options.
func Factory(raw plugins.Options) (*plugin.Plugin, error) {
	opts := Options{EvenClass: "even", OddClass: "odd"}
	if err := raw.Decode(&opts); err != nil {
		return nil, err
	}
	return New(opts), nil
}

// New returns the plugin descriptor for opts.
func New(opts Options) *plugin.Plugin {
	p := plugin.New(Name, nil,
		table.DecorateRow.PlugFunc(func(row *table.Row, _ table.Meta) *table.Row {
			if row.Meta == nil {
				row.Meta = map[string]any{}
			}
			row.Meta["striped"] = true
			row.Meta["odd"] = row.Index%2 == 1
			return row
		}),
		table.ReduceRowProps.PlugFunc(func(props table.Props, meta table.Meta) table.Props {
			if meta.Row == nil {
				return props
			}
			class := opts.EvenClass
			if odd, _ := meta.Row.Meta["odd"].(bool); odd {
				class = opts.OddClass
			}

			next := make(table.Props, len(props)+1)
			for k, v := range props {
				next[k] = v
			}
			if existing, ok := props["class"].(string); ok && existing != "" {
				class = strings.Join([]string{existing, class}, " ")
			}
			next["class"] = class
			return next
		}),
	)
	p.Key = fmt.Sprintf("even=%s;odd=%s", opts.EvenClass, opts.OddClass)
	return p
}
