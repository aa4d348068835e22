package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tabular/internal/table"
)

func newPointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "points",
		Short: "List the table extension points in pipeline order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "INDEX\tNAME\tKIND\tSIGNATURE")
			for i, point := range table.Catalog.Points() {
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", i+1, point.Name(), point.Kind(), point.Signature())
			}
			return writer.Flush()
		},
	}
}
