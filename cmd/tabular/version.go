package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tabular/internal/table"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// resolvedVersion prefers the linker value and falls back to the module
// version recorded by `go install`.
func resolvedVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if short {
				_, err := fmt.Fprintln(out, resolvedVersion())
				return err
			}

			fmt.Fprintf(out, "tabular %s\n", resolvedVersion())
			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(writer, "  commit\t%s\n", commit)
			fmt.Fprintf(writer, "  built\t%s\n", date)
			fmt.Fprintf(writer, "  go\t%s\n", runtime.Version())
			fmt.Fprintf(writer, "  extension points\t%d\n", len(table.Catalog.Points()))
			return writer.Flush()
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
