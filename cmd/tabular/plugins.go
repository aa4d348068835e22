package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	"github.com/alexisbeaulieu97/tabular/internal/plugins"
)

type pluginsOptions struct {
	configPath string
}

func newPluginsCmd(root *rootFlags) *cobra.Command {
	opts := &pluginsOptions{}

	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List registered plugins, or the resolved plugin order of a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath == "" {
				return renderRegistrations(cmd, plugins.Default())
			}
			return runPluginOrder(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Show the resolved order for this table document")

	return cmd
}

func renderRegistrations(cmd *cobra.Command, reg *plugins.Registry) error {
	registrations := reg.Registrations()
	if len(registrations) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No plugins registered.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tDESCRIPTION")
	for _, registration := range registrations {
		fmt.Fprintf(writer, "%s\t%s\n", registration.Name, valueOrFallback(registration.Description, "-"))
	}
	return writer.Flush()
}

func runPluginOrder(cmd *cobra.Command, root *rootFlags, opts *pluginsOptions) error {
	app, err := loadAppContext("list plugins", root, opts.configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	_, ordered, err := app.host.Engine().Prepare(app.plugins)
	if err != nil {
		return newCommandError("list plugins", "resolving plugin order", err, "Check the plugin names and their after lists.")
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ORDER\tNAME\tAFTER\tPOINTS")
	for i, p := range ordered {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n",
			i+1,
			p.Name,
			valueOrFallback(strings.Join(p.After, ","), "-"),
			valueOrFallback(strings.Join(plugPoints(p), ","), "-"),
		)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	return app.flushMetrics("list plugins", root)
}

func plugPoints(p *plugin.Plugin) []string {
	points := make([]string, 0, len(p.Plugs))
	for point := range p.Plugs {
		points = append(points, point)
	}
	sort.Strings(points)
	return points
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
