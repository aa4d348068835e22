package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	"github.com/alexisbeaulieu97/tabular/internal/plugins/visibility"
	"github.com/alexisbeaulieu97/tabular/internal/table"
	"github.com/alexisbeaulieu97/tabular/internal/tui"
)

type viewOptions struct {
	configPath string
}

func newViewCmd(root *rootFlags) *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse a table document interactively",
		Long:  `Open the computed table in a terminal viewer where columns can be hidden and shown.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to table document")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runView(cmd *cobra.Command, root *rootFlags, opts *viewOptions) error {
	app, err := loadAppContext("view table", root, opts.configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	model, err := tui.NewModel(app.doc.Name, app.viewBuilder(), app.doc.TableOptions().State)
	if err != nil {
		return newCommandError("view table", "computing the table model", err, "Run 'tabular render' with --verbose to see stage logs.")
	}

	app.logger.Info("launching table viewer")
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := program.Run(); err != nil {
		return newCommandError("view table", "running the viewer", err, "Make sure the command runs in an interactive terminal.")
	}

	return app.flushMetrics("view table", root)
}

// viewBuilder recomputes the document's table for a viewer state. The
// visibility plugin is added when the document does not enable it so
// columns can always be toggled.
func (a *appContext) viewBuilder() tui.Builder {
	plugins := a.plugins
	if !hasPlugin(plugins, visibility.Name) {
		plugins = append(append([]*plugin.Plugin{}, plugins...), visibility.New(visibility.Options{}))
	}

	return func(state table.State) (*table.Instance, error) {
		opts := a.doc.TableOptions()
		opts.State = state
		inst, err := a.host.New(opts, plugins...)
		if err != nil {
			return nil, fmt.Errorf("compute table: %w", err)
		}
		return inst, nil
	}
}

func hasPlugin(plugins []*plugin.Plugin, name string) bool {
	for _, p := range plugins {
		if p.Name == name {
			return true
		}
	}
	return false
}
