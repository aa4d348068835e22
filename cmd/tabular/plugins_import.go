package main

// Blank imports ensure plugin init() registration runs for the CLI binary.
import (
	_ "github.com/alexisbeaulieu97/tabular/internal/plugins/rownumber"
	_ "github.com/alexisbeaulieu97/tabular/internal/plugins/striping"
	_ "github.com/alexisbeaulieu97/tabular/internal/plugins/visibility"
)
