// Package table derives a headless table model (columns, header groups, rows
// and cells) from caller options and lets plugins reshape every stage through
// the extension points in Catalog.
package table

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/tabular/internal/logger"
	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	"github.com/alexisbeaulieu97/tabular/internal/telemetry"
	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

// Stage names reported in ExecutionError and metrics.
const (
	StageOptions   = "options"
	StageState     = "state"
	StageColumns   = "columns"
	StageHeaders   = "headers"
	StageRows      = "rows"
	StageCells     = "cells"
	StageDataModel = "dataModel"
	StageProps     = "props"
)

var errNilResult = errors.New("implementation returned nil")

// Instance is the computed table model of one run. Plugins receive it in
// every Meta and may replace it at the instance-level decorate points.
type Instance struct {
	ID        string
	Options   Options
	State     State
	Plugins   []*plugin.Plugin
	Pipelines plugin.Pipelines

	Columns     []*Column
	AllColumns  []*Column
	LeafColumns []*Column

	HeaderGroups []*HeaderGroup
	FooterGroups []*HeaderGroup
	FlatHeaders  []*Header

	Rows     []*Row
	FlatRows []*Row
	RowsByID map[string]*Row

	// Meta is free space for plugins to attach instance-level data.
	Meta map[string]any
}

// Host builds table instances against the table catalog.
type Host struct {
	engine  *plugin.Engine
	logger  *logger.Logger
	metrics *telemetry.Metrics
}

// NewHost returns a host whose engine uses config. Nil logger or metrics
// disable logging and metrics.
func NewHost(config *plugin.Config, log *logger.Logger, metrics *telemetry.Metrics) *Host {
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = telemetry.NewMetrics(telemetry.Config{})
	}
	return &Host{
		engine:  plugin.NewEngine(Catalog, config, log, metrics),
		logger:  log,
		metrics: metrics,
	}
}

// Engine exposes the host's plugin engine.
func (h *Host) Engine() *plugin.Engine {
	return h.engine
}

// New computes a table instance from opts with plugins applied.
func (h *Host) New(opts Options, plugins ...*plugin.Plugin) (*Instance, error) {
	start := time.Now()
	inst, err := h.build(opts, plugins)

	status := "ok"
	if err != nil {
		status = "error"
	}
	h.metrics.RecordRun(status, time.Since(start))
	return inst, err
}

func (h *Host) build(opts Options, plugins []*plugin.Plugin) (*Instance, error) {
	pipelines, ordered, err := h.engine.Prepare(plugins)
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		ID:        uuid.NewString(),
		Plugins:   ordered,
		Pipelines: pipelines,
		Meta:      map[string]any{},
	}
	r := &run{host: h, log: h.logger.With("instance", inst.ID), pipelines: pipelines}

	inst.Options, err = ReduceOptions.Run(pipelines, opts, Meta{Instance: inst})
	if err != nil {
		return nil, r.fail(StageOptions, ReduceOptions.Name(), err)
	}

	inst.State = mergeState(inst.Options.InitialState, inst.Options.State)
	if inst, err = r.decorateInstance(StageState, InstanceAfterState, inst); err != nil {
		return nil, err
	}

	if err := r.columns(inst); err != nil {
		return nil, err
	}
	if err := r.headers(inst); err != nil {
		return nil, err
	}
	if err := r.rows(inst); err != nil {
		return nil, err
	}
	if err := r.cells(inst); err != nil {
		return nil, err
	}

	if inst, err = r.decorateInstance(StageDataModel, InstanceAfterDataModel, inst); err != nil {
		return nil, err
	}

	r.log.WithFields(map[string]any{
		"columns": len(inst.LeafColumns),
		"rows":    len(inst.FlatRows),
		"plugins": len(ordered),
	}).Debug("table model built")
	return inst, nil
}

// run carries the per-instance logger and pipelines through the stages.
type run struct {
	host      *Host
	log       *logger.Logger
	pipelines plugin.Pipelines
}

func (r *run) fail(stage, point string, err error) error {
	r.host.metrics.RecordStageError(stage)
	r.log.WithFields(map[string]any{"stage": stage, "point": point}).Error(err, "table stage failed")
	return tabularerrors.NewExecutionError(stage, point, err)
}

func (r *run) decorateInstance(stage string, point plugin.Point[*Instance, Meta], inst *Instance) (*Instance, error) {
	next, err := point.Run(r.pipelines, inst, Meta{Instance: inst})
	if err != nil {
		return nil, r.fail(stage, point.Name(), err)
	}
	if next == nil {
		return nil, r.fail(stage, point.Name(), errNilResult)
	}
	return next, nil
}

func (r *run) columns(inst *Instance) error {
	columns, err := buildColumns(inst.Options.Columns, inst.Options.DefaultColumn)
	if err != nil {
		r.host.metrics.RecordStageError(StageColumns)
		r.log.With("stage", StageColumns).Error(err, "invalid column definitions")
		return err
	}

	meta := Meta{Instance: inst}
	if inst.Columns, err = ReduceColumns.Run(r.pipelines, columns, meta); err != nil {
		return r.fail(StageColumns, ReduceColumns.Name(), err)
	}
	if inst.AllColumns, err = ReduceAllColumns.Run(r.pipelines, flattenColumns(inst.Columns), meta); err != nil {
		return r.fail(StageColumns, ReduceAllColumns.Name(), err)
	}
	if inst.LeafColumns, err = ReduceLeafColumns.Run(r.pipelines, leafColumns(inst.AllColumns), meta); err != nil {
		return r.fail(StageColumns, ReduceLeafColumns.Name(), err)
	}

	decorated := make(map[string]*Column, len(inst.AllColumns))
	for _, column := range inst.AllColumns {
		if column == nil {
			continue
		}
		if _, dup := decorated[column.ID]; dup {
			return r.fail(StageColumns, ReduceAllColumns.Name(), fmt.Errorf("duplicate column id %q", column.ID))
		}
		decorated[column.ID] = column
	}
	for _, column := range inst.AllColumns {
		if column == nil {
			continue
		}
		next, err := DecorateColumn.Run(r.pipelines, column, meta)
		if err != nil {
			return r.fail(StageColumns, DecorateColumn.Name(), err)
		}
		if next == nil {
			return r.fail(StageColumns, DecorateColumn.Name(), errNilResult)
		}
		decorated[column.ID] = next
	}
	relinkColumns(decorated, inst.Columns, inst.AllColumns, inst.LeafColumns)

	r.log.Debugf("derived %d columns, %d visible leaves", len(inst.AllColumns), len(inst.LeafColumns))
	return nil
}

func (r *run) headers(inst *Instance) error {
	meta := Meta{Instance: inst}

	var err error
	groups := buildHeaderGroups(inst.Columns, inst.LeafColumns)
	if inst.HeaderGroups, err = ReduceHeaderGroups.Run(r.pipelines, groups, meta); err != nil {
		return r.fail(StageHeaders, ReduceHeaderGroups.Name(), err)
	}
	if inst.FooterGroups, err = ReduceFooterGroups.Run(r.pipelines, reversedGroups(inst.HeaderGroups), meta); err != nil {
		return r.fail(StageHeaders, ReduceFooterGroups.Name(), err)
	}

	flat, err := ReduceFlatHeaders.Run(r.pipelines, flattenHeaders(inst.HeaderGroups), meta)
	if err != nil {
		return r.fail(StageHeaders, ReduceFlatHeaders.Name(), err)
	}

	replaced := make(map[*Header]*Header, len(flat))
	inst.FlatHeaders = make([]*Header, 0, len(flat))
	for _, header := range flat {
		if header == nil {
			continue
		}
		next, err := DecorateHeader.Run(r.pipelines, header, Meta{Instance: inst, Header: header})
		if err != nil {
			return r.fail(StageHeaders, DecorateHeader.Name(), err)
		}
		if next == nil {
			return r.fail(StageHeaders, DecorateHeader.Name(), errNilResult)
		}
		if next != header {
			replaced[header] = next
		}
		inst.FlatHeaders = append(inst.FlatHeaders, next)
	}
	relinkHeaders(replaced, inst.HeaderGroups, inst.FooterGroups)
	return nil
}

func (r *run) rows(inst *Instance) error {
	rows := buildRows(inst.Options, leafColumns(inst.AllColumns))

	decorated, err := r.decorateRows(inst, rows)
	if err != nil {
		return err
	}

	inst.Rows = decorated
	inst.FlatRows = flattenRows(decorated)
	inst.RowsByID = make(map[string]*Row, len(inst.FlatRows))
	for _, row := range inst.FlatRows {
		inst.RowsByID[row.ID] = row
	}
	return nil
}

// decorateRows decorates children before their parent so a parent's
// SubRows already hold decorated rows when its own decoration runs.
func (r *run) decorateRows(inst *Instance, rows []*Row) ([]*Row, error) {
	out := make([]*Row, len(rows))
	for i, row := range rows {
		if len(row.SubRows) > 0 {
			subRows, err := r.decorateRows(inst, row.SubRows)
			if err != nil {
				return nil, err
			}
			row.SubRows = subRows
		}

		next, err := DecorateRow.Run(r.pipelines, row, Meta{Instance: inst, Row: row})
		if err != nil {
			return nil, r.fail(StageRows, DecorateRow.Name(), err)
		}
		if next == nil {
			return nil, r.fail(StageRows, DecorateRow.Name(), errNilResult)
		}
		out[i] = next
	}
	return out, nil
}

func (r *run) cells(inst *Instance) error {
	leaves := leafColumns(inst.AllColumns)
	for _, row := range inst.FlatRows {
		cells := make([]*Cell, 0, len(leaves))
		for _, column := range leaves {
			cell := &Cell{
				ID:     cellID(row, column),
				Row:    row,
				Column: column,
				Value:  row.Values[column.ID],
				Meta:   map[string]any{},
			}
			next, err := DecorateCell.Run(r.pipelines, cell, Meta{Instance: inst, Row: row, Cell: cell})
			if err != nil {
				return r.fail(StageCells, DecorateCell.Name(), err)
			}
			if next == nil {
				return r.fail(StageCells, DecorateCell.Name(), errNilResult)
			}
			cells = append(cells, next)
		}
		row.Cells = cells
	}
	return nil
}

func mergeState(initial, current State) State {
	state := make(State, len(initial)+len(current))
	for k, v := range initial {
		state[k] = v
	}
	for k, v := range current {
		state[k] = v
	}
	return state
}

// Column returns the column with id, if any.
func (i *Instance) Column(id string) (*Column, bool) {
	for _, column := range i.AllColumns {
		if column.ID == id {
			return column, true
		}
	}
	return nil, false
}

// Row returns the row with id, if any.
func (i *Instance) Row(id string) (*Row, bool) {
	row, ok := i.RowsByID[id]
	return row, ok
}

// FlatFooters lists footer headers, bottom row first.
func (i *Instance) FlatFooters() []*Header {
	return flattenHeaders(i.FooterGroups)
}

// TotalWidth sums the resolved widths of the visible leaf columns.
func (i *Instance) TotalWidth() int {
	total := 0
	for _, column := range i.LeafColumns {
		total += column.ResolvedWidth()
	}
	return total
}

// VisibleCells returns the cells of row that belong to visible leaf columns,
// in leaf column order.
func (i *Instance) VisibleCells(row *Row) []*Cell {
	byColumn := make(map[string]*Cell, len(row.Cells))
	for _, cell := range row.Cells {
		byColumn[cell.Column.ID] = cell
	}
	out := make([]*Cell, 0, len(i.LeafColumns))
	for _, column := range i.LeafColumns {
		if cell, ok := byColumn[column.ID]; ok {
			out = append(out, cell)
		}
	}
	return out
}
