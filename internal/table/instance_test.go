package table

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	"github.com/alexisbeaulieu97/tabular/internal/telemetry"
	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

func TestNewBuildsColumnsHeadersAndRows(t *testing.T) {
	t.Parallel()

	inst := buildPeople(t)

	require.NotEmpty(t, inst.ID)
	require.Equal(t, []string{"Name", "address.city"}, columnIDs(inst.Columns))
	require.Equal(t, []string{"Name", "first", "last", "address.city"}, columnIDs(inst.AllColumns))
	require.Equal(t, []string{"first", "last", "address.city"}, columnIDs(inst.LeafColumns))

	name, ok := inst.Column("Name")
	require.True(t, ok)
	require.Equal(t, 0, name.Depth)
	require.Same(t, name, name.Columns[0].Parent)
	require.Equal(t, 1, name.Columns[0].Depth)

	require.Len(t, inst.HeaderGroups, 2)
	top, bottom := inst.HeaderGroups[0], inst.HeaderGroups[1]
	require.Equal(t, []string{"Name", "address.city_placeholder_0"}, headerIDs(top.Headers))
	require.Equal(t, 2, top.Headers[0].ColSpan)
	require.True(t, top.Headers[1].IsPlaceholder)
	require.Equal(t, []string{"first", "last", "address.city"}, headerIDs(bottom.Headers))
	require.Same(t, bottom.Headers[2], top.Headers[1].SubHeaders[0])

	require.Equal(t, []*HeaderGroup{bottom, top}, inst.FooterGroups)
	require.Equal(t, headerIDs(bottom.Headers), headerIDs(inst.FlatFooters()[:3]))
	require.Len(t, inst.FlatHeaders, 5)

	require.Equal(t, []string{"0", "1", "2"}, rowIDs(inst.Rows))
	first := inst.Rows[0]
	require.Equal(t, "Ada", first.Values["first"])
	require.Equal(t, "London", first.Values["address.city"])
	require.Len(t, first.Cells, 3)
	require.Equal(t, "0_last", first.Cells[1].ID)
	require.Equal(t, "Lovelace", first.Cells[1].Value)
	require.Same(t, first, first.Cells[1].Row)
}

func TestNewFlagsEveryRowWithDecorateRow(t *testing.T) {
	t.Parallel()

	data := people()
	flagger := plugin.New("flagger", nil, DecorateRow.PlugFunc(func(row *Row, _ Meta) *Row {
		row.Meta["flagged"] = true
		return row
	}))

	inst, err := newTestHost().New(Options{Data: data, Columns: personColumns()}, flagger)
	require.NoError(t, err)

	require.Len(t, inst.Rows, 3)
	for i, row := range inst.Rows {
		require.Equal(t, true, row.Meta["flagged"])
		require.Equal(t, i, row.Index)
		require.Equal(t, data[i], row.Original)
	}
	require.Equal(t, []string{"0", "1", "2"}, rowIDs(inst.FlatRows))
}

func TestNewBuildsNestedRows(t *testing.T) {
	t.Parallel()

	data := []any{
		map[string]any{"first": "Ada", "children": []any{
			map[string]any{"first": "Byron"},
			map[string]any{"first": "Anne", "children": []any{map[string]any{"first": "Ralph"}}},
		}},
		map[string]any{"first": "Alan"},
	}

	inst, err := newTestHost().New(Options{
		Data:       data,
		Columns:    []ColumnDef{{Accessor: "first"}},
		GetSubRows: SubRowsFrom("children"),
	})
	require.NoError(t, err)

	require.Equal(t, []string{"0", "1"}, rowIDs(inst.Rows))
	require.Equal(t, []string{"0", "0.0", "0.1", "0.1.0", "1"}, rowIDs(inst.FlatRows))

	ralph, ok := inst.Row("0.1.0")
	require.True(t, ok)
	require.Equal(t, 2, ralph.Depth)
	require.Equal(t, "0.1", ralph.ParentID)
	require.Equal(t, "Ralph", ralph.Values["first"])
	require.Len(t, inst.Rows[0].LeafRows(), 3)
}

func TestNewUsesCustomRowIDs(t *testing.T) {
	t.Parallel()

	inst, err := newTestHost().New(Options{
		Data:    people(),
		Columns: personColumns(),
		GetRowID: func(original any, _ int, _ *Row) string {
			return original.(map[string]any)["last"].(string)
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Lovelace", "Turing", "Hopper"}, rowIDs(inst.Rows))
	require.Equal(t, "Turing_first", inst.Rows[1].Cells[0].ID)
}

func TestNewMergesStateAndReplacesInstance(t *testing.T) {
	t.Parallel()

	tagger := plugin.New("tagger", nil,
		InstanceAfterState.PlugFunc(func(inst *Instance, meta Meta) *Instance {
			next := *inst
			next.Meta = map[string]any{"tagged": meta.Instance.State["page"]}
			return &next
		}),
	)

	inst, err := newTestHost().New(Options{
		Columns:      personColumns(),
		InitialState: State{"page": 1, "size": 10},
		State:        State{"page": 3},
	}, tagger)
	require.NoError(t, err)

	require.Equal(t, State{"page": 3, "size": 10}, inst.State)
	require.Equal(t, 3, inst.Meta["tagged"])
	require.Empty(t, inst.Rows)
}

func TestNewReducesOptionsBeforeColumns(t *testing.T) {
	t.Parallel()

	extra := plugin.New("extra", nil, ReduceOptions.PlugFunc(func(opts Options, _ Meta) Options {
		opts.Columns = append(append([]ColumnDef{}, opts.Columns...), ColumnDef{ID: "note", AccessorFn: func(any, int, *Row) any {
			return "n/a"
		}})
		return opts
	}))

	inst := buildPeople(t, extra)
	require.Equal(t, []string{"first", "last", "address.city", "note"}, columnIDs(inst.LeafColumns))
	require.Equal(t, "n/a", inst.Rows[2].Values["note"])
}

func TestNewHiddenLeafKeepsValuesButNotHeaders(t *testing.T) {
	t.Parallel()

	hide := plugin.New("hide", nil, ReduceLeafColumns.PlugFunc(func(columns []*Column, _ Meta) []*Column {
		out := make([]*Column, 0, len(columns))
		for _, column := range columns {
			if column.ID != "last" {
				out = append(out, column)
			}
		}
		return out
	}))

	inst := buildPeople(t, hide)

	require.Equal(t, []string{"first", "address.city"}, columnIDs(inst.LeafColumns))
	require.Equal(t, 1, inst.HeaderGroups[0].Headers[0].ColSpan)
	require.Equal(t, []string{"first", "address.city"}, headerIDs(inst.HeaderGroups[1].Headers))

	row := inst.Rows[0]
	require.Len(t, row.Cells, 3)
	require.Equal(t, "Lovelace", row.Values["last"])
	visible := inst.VisibleCells(row)
	require.Len(t, visible, 2)
	require.Equal(t, "address.city", visible[1].Column.ID)
	require.Equal(t, 300, inst.TotalWidth())
}

func TestNewRelinksDecoratedColumnsAndHeaders(t *testing.T) {
	t.Parallel()

	decorator := plugin.New("decorator", nil,
		DecorateColumn.PlugFunc(func(column *Column, _ Meta) *Column {
			next := *column
			next.Meta = map[string]any{"decorated": true}
			return &next
		}),
		DecorateHeader.PlugFunc(func(header *Header, _ Meta) *Header {
			next := *header
			next.Meta = map[string]any{"decorated": true}
			return &next
		}),
	)

	inst := buildPeople(t, decorator)

	for _, column := range inst.AllColumns {
		require.Equal(t, true, column.Meta["decorated"], column.ID)
		if column.Parent != nil {
			require.Equal(t, true, column.Parent.Meta["decorated"], column.ID)
		}
	}
	name := inst.Columns[0]
	require.Same(t, name.Columns[0], inst.LeafColumns[0])
	require.Same(t, inst.LeafColumns[0], inst.Rows[0].Cells[0].Column)

	for _, group := range inst.HeaderGroups {
		for _, header := range group.Headers {
			require.Equal(t, true, header.Meta["decorated"], header.ID)
			for _, sub := range header.SubHeaders {
				require.Equal(t, true, sub.Meta["decorated"], sub.ID)
			}
		}
	}
	require.Same(t, inst.FlatHeaders[0], inst.HeaderGroups[0].Headers[0])
}

func TestNewRelinksParentsOfDecoratedLeafHeaders(t *testing.T) {
	t.Parallel()

	leaves := plugin.New("leaves", nil,
		DecorateHeader.PlugFunc(func(header *Header, _ Meta) *Header {
			if len(header.SubHeaders) > 0 {
				return header
			}
			next := *header
			next.Meta = map[string]any{"leaf": true}
			return &next
		}),
	)

	inst := buildPeople(t, leaves)

	flat := make(map[string]*Header, len(inst.FlatHeaders))
	for _, header := range inst.FlatHeaders {
		flat[header.ID] = header
	}
	top := inst.HeaderGroups[0]
	name, placeholder := top.Headers[0], top.Headers[1]
	require.Nil(t, name.Meta["leaf"])

	require.Equal(t, true, name.SubHeaders[0].Meta["leaf"])
	require.Same(t, flat["first"], name.SubHeaders[0])
	require.Same(t, flat["last"], name.SubHeaders[1])
	require.Equal(t, true, placeholder.SubHeaders[0].Meta["leaf"])
	require.Same(t, flat["address.city"], placeholder.SubHeaders[0])
	require.Same(t, inst.HeaderGroups[1].Headers[2], placeholder.SubHeaders[0])
}

func TestNewComposesUnkeyedPluginsPerInstance(t *testing.T) {
	t.Parallel()

	tag := func(value string) *plugin.Plugin {
		return plugin.New("tag", nil,
			DecorateColumn.PlugFunc(func(column *Column, _ Meta) *Column {
				column.Meta = map[string]any{"tag": value}
				return column
			}),
		)
	}

	host := newTestHost()
	for _, value := range []string{"x", "y", "x"} {
		inst, err := host.New(Options{Data: people(), Columns: personColumns()}, tag(value))
		require.NoError(t, err)
		for _, column := range inst.AllColumns {
			require.Equal(t, value, column.Meta["tag"], column.ID)
		}
	}
}

func TestNewRejectsDuplicateColumnIDs(t *testing.T) {
	t.Parallel()

	twin := plugin.New("twin", nil,
		ReduceColumns.PlugFunc(func(columns []*Column, _ Meta) []*Column {
			return append(columns, &Column{ID: "first", Header: "First again"})
		}),
	)

	_, err := newTestHost().New(Options{Data: people(), Columns: personColumns()}, twin)
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate column id "first"`)

	var execErr *tabularerrors.ExecutionError
	require.ErrorAs(t, err, &execErr)
	require.Equal(t, StageColumns, execErr.Stage)
	require.Equal(t, "useReduceAllColumns", execErr.Point)
}

func TestNewCallsEveryStageOnceInOrder(t *testing.T) {
	t.Parallel()

	tr := &tracer{}
	tracing := &plugin.Plugin{Name: "tracing", Plugs: plugin.Plugs{
		"useReduceOptions":          traced[Options](tr, "useReduceOptions"),
		"useInstanceAfterState":     traced[*Instance](tr, "useInstanceAfterState"),
		"useReduceColumns":          traced[[]*Column](tr, "useReduceColumns"),
		"useReduceAllColumns":       traced[[]*Column](tr, "useReduceAllColumns"),
		"useReduceLeafColumns":      traced[[]*Column](tr, "useReduceLeafColumns"),
		"decorateColumn":            traced[*Column](tr, "decorateColumn"),
		"useReduceHeaderGroups":     traced[[]*HeaderGroup](tr, "useReduceHeaderGroups"),
		"useReduceFooterGroups":     traced[[]*HeaderGroup](tr, "useReduceFooterGroups"),
		"useReduceFlatHeaders":      traced[[]*Header](tr, "useReduceFlatHeaders"),
		"decorateHeader":            traced[*Header](tr, "decorateHeader"),
		"decorateRow":               traced[*Row](tr, "decorateRow"),
		"decorateCell":              traced[*Cell](tr, "decorateCell"),
		"useInstanceAfterDataModel": traced[*Instance](tr, "useInstanceAfterDataModel"),
	}}

	buildPeople(t, tracing)

	require.Equal(t, []string{
		"useReduceOptions",
		"useInstanceAfterState",
		"useReduceColumns",
		"useReduceAllColumns",
		"useReduceLeafColumns",
		"decorateColumn",
		"useReduceHeaderGroups",
		"useReduceFooterGroups",
		"useReduceFlatHeaders",
		"decorateHeader",
		"decorateRow",
		"decorateCell",
		"useInstanceAfterDataModel",
	}, tr.firstCalls())
	require.Equal(t, 1, tr.maxDepth, "no hook may run inside another")
	require.Equal(t, 4, tr.calls["decorateColumn"])
	require.Equal(t, 9, tr.calls["decorateCell"])
}

type tracer struct {
	order    []string
	calls    map[string]int
	depth    int
	maxDepth int
}

func (tr *tracer) enter(name string) {
	if tr.calls == nil {
		tr.calls = map[string]int{}
	}
	if tr.calls[name] == 0 {
		tr.order = append(tr.order, name)
	}
	tr.calls[name]++
	tr.depth++
	tr.maxDepth = max(tr.maxDepth, tr.depth)
}

func (tr *tracer) exit() { tr.depth-- }

func (tr *tracer) firstCalls() []string { return tr.order }

func traced[T any](tr *tracer, name string) func(T, Meta) T {
	return func(value T, meta Meta) T {
		tr.enter(name)
		defer tr.exit()
		if meta.Instance == nil {
			panic("meta without instance")
		}
		return value
	}
}

func TestNewWrapsPluginFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := plugin.New("failing", nil, DecorateCell.Plug(func(cell *Cell, _ Meta) (*Cell, error) {
		if cell.Row.Index == 1 {
			return nil, boom
		}
		return cell, nil
	}))

	inst, err := newTestHost().New(Options{Data: people(), Columns: personColumns()}, failing)
	require.Nil(t, inst)
	require.ErrorIs(t, err, boom)

	var execErr *tabularerrors.ExecutionError
	require.ErrorAs(t, err, &execErr)
	require.Equal(t, StageCells, execErr.Stage)
	require.Equal(t, "decorateCell", execErr.Point)
}

func TestNewRejectsNilDecorations(t *testing.T) {
	t.Parallel()

	dropper := plugin.New("dropper", nil, DecorateRow.PlugFunc(func(*Row, Meta) *Row { return nil }))

	_, err := newTestHost().New(Options{Data: people(), Columns: personColumns()}, dropper)
	require.ErrorIs(t, err, errNilResult)
}

func TestNewRejectsInvalidPlugins(t *testing.T) {
	t.Parallel()

	typo := &plugin.Plugin{Name: "typo", Plugs: plugin.Plugs{"decorateRows": func(row *Row, _ Meta) *Row { return row }}}

	_, err := newTestHost().New(Options{Columns: personColumns()}, typo)
	var cfgErr *tabularerrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "typo", cfgErr.Plugin)
	require.Equal(t, "decorateRows", cfgErr.Plug)
}

func TestNewRejectsInvalidColumns(t *testing.T) {
	t.Parallel()

	cases := map[string][]ColumnDef{
		"duplicate": {{Accessor: "first"}, {ID: "first"}},
		"anonymous": {{Width: 10}},
	}
	for name, columns := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestHost().New(Options{Columns: columns})
			var validationErr *tabularerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestHostRecordsRunMetrics(t *testing.T) {
	t.Parallel()

	metrics := telemetry.NewMetrics(telemetry.DefaultConfig())
	host := NewHost(&plugin.Config{Validate: true}, nil, metrics)

	_, err := host.New(Options{Data: people(), Columns: personColumns()})
	require.NoError(t, err)
	_, err = host.New(Options{Columns: []ColumnDef{{}}})
	require.Error(t, err)

	count, err := testutil.GatherAndCount(metrics.Registry(), "tabular_runs_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Same(t, host.Engine().Catalog(), Catalog)
}

func TestCatalogDeclaresEveryPoint(t *testing.T) {
	t.Parallel()

	require.Equal(t, 23, Catalog.Len())
	decorate := map[string]bool{
		"useInstanceAfterState":     true,
		"decorateColumn":            true,
		"decorateHeader":            true,
		"decorateRow":               true,
		"decorateCell":              true,
		"useInstanceAfterDataModel": true,
	}
	for _, point := range Catalog.Points() {
		want := plugin.Reduce
		if decorate[point.Name()] {
			want = plugin.Decorate
		}
		require.Equal(t, want, point.Kind(), point.Name())
	}
}
