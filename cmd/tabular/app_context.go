package main

import (
	"io"

	"github.com/alexisbeaulieu97/tabular/internal/config"
	"github.com/alexisbeaulieu97/tabular/internal/logger"
	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	"github.com/alexisbeaulieu97/tabular/internal/plugins"
	"github.com/alexisbeaulieu97/tabular/internal/table"
	"github.com/alexisbeaulieu97/tabular/internal/telemetry"
)

// appContext bundles what a command needs to compute a document's table.
type appContext struct {
	doc     *config.Document
	logger  *logger.Logger
	metrics *telemetry.Metrics
	host    *table.Host
	plugins []*plugin.Plugin
}

func loadAppContext(op string, flags *rootFlags, path string, stderr io.Writer) (*appContext, error) {
	doc, err := config.ParseDocument(path)
	if err != nil {
		return nil, newCommandError(op, "loading table document", err, "Fix the document errors shown above and try again.")
	}

	level := doc.Settings.LogLevel
	if level == "" {
		level = "warn"
	}
	if flags.verbose || doc.Settings.Debug {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: stderr, Component: "cli"})
	if err != nil {
		return nil, newCommandError(op, "configuring logging", err, "Use one of trace, debug, info, warn or error for settings.log_level.")
	}
	log = log.With("document", doc.Name)

	built, err := doc.BuildPlugins(plugins.Default())
	if err != nil {
		log.Warn("document references an unavailable plugin")
		return nil, newCommandError(op, "building plugins", err, "Run 'tabular plugins' to list the available plugins.")
	}

	metrics := telemetry.NewMetrics(telemetry.Config{Enabled: flags.metricsFile != "", Namespace: "tabular"})

	return &appContext{
		doc:     doc,
		logger:  log,
		metrics: metrics,
		host:    table.NewHost(doc.EngineConfig(), log, metrics),
		plugins: built,
	}, nil
}

// flushMetrics writes the metrics textfile when one was requested.
func (a *appContext) flushMetrics(op string, flags *rootFlags) error {
	if flags.metricsFile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(flags.metricsFile); err != nil {
		return newCommandError(op, "writing metrics", err, "Check that the metrics file directory exists and is writable.")
	}
	a.logger.Debugf("metrics written to %s", flags.metricsFile)
	return nil
}
