package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
)

func people() []any {
	return []any{
		map[string]any{"first": "Ada", "last": "Lovelace", "address": map[string]any{"city": "London"}},
		map[string]any{"first": "Alan", "last": "Turing", "address": map[string]any{"city": "Wilmslow"}},
		map[string]any{"first": "Grace", "last": "Hopper", "address": map[string]any{"city": "Arlington"}},
	}
}

func personColumns() []ColumnDef {
	return []ColumnDef{
		{Header: "Name", Columns: []ColumnDef{
			{Accessor: "first", Header: "First"},
			{Accessor: "last", Header: "Last"},
		}},
		{Accessor: "address.city", Header: "City"},
	}
}

func newTestHost() *Host {
	return NewHost(&plugin.Config{Validate: true, CacheSize: 8}, nil, nil)
}

func buildPeople(t *testing.T, plugins ...*plugin.Plugin) *Instance {
	t.Helper()
	inst, err := newTestHost().New(Options{Data: people(), Columns: personColumns()}, plugins...)
	require.NoError(t, err)
	return inst
}

func columnIDs(columns []*Column) []string {
	ids := make([]string, len(columns))
	for i, column := range columns {
		ids[i] = column.ID
	}
	return ids
}

func headerIDs(headers []*Header) []string {
	ids := make([]string, len(headers))
	for i, header := range headers {
		ids[i] = header.ID
	}
	return ids
}

func rowIDs(rows []*Row) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}
