package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose     bool
	metricsFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "tabular",
		Short:         "tabular lays out YAML table documents through composable plugins",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newPluginsCmd(flags))
	cmd.AddCommand(newPointsCmd())
	cmd.AddCommand(newViewCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}
