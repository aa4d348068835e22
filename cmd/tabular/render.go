package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/tabular/internal/render"
)

type renderOptions struct {
	configPath string
	format     string
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Compute and print the table described by a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to table document")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "text", "Output format: text or json")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runRender(cmd *cobra.Command, root *rootFlags, opts *renderOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return newCommandError("render", "checking flags", fmt.Errorf("unknown format %q", opts.format), "Use --format text or --format json.")
	}

	app, err := loadAppContext("render", root, opts.configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	inst, err := app.host.New(app.doc.TableOptions(), app.plugins...)
	if err != nil {
		_ = app.flushMetrics("render", root)
		return newCommandError("render", "computing the table model", err, "Check the plugin options; run with --verbose to see stage logs.")
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		err = render.JSON(out, app.doc.Name, inst)
	default:
		err = render.Text(out, inst, supportsUnicode(out))
	}
	if err != nil {
		return newCommandError("render", "writing output", err, "Run with --verbose for details.")
	}

	return app.flushMetrics("render", root)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
