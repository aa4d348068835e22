package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	"github.com/alexisbeaulieu97/tabular/internal/plugins"
	"github.com/alexisbeaulieu97/tabular/internal/plugins/rownumber"
	"github.com/alexisbeaulieu97/tabular/internal/plugins/visibility"
	"github.com/alexisbeaulieu97/tabular/internal/table"
)

func testRegistry(t *testing.T) *plugins.Registry {
	t.Helper()

	reg := plugins.NewRegistry()
	require.NoError(t, reg.Register(rownumber.Name, "", rownumber.Factory))
	require.NoError(t, reg.Register(visibility.Name, "", visibility.Factory))
	return reg
}

func TestDocumentBuildsTable(t *testing.T) {
	t.Parallel()

	doc, err := DecodeDocument("inline", []byte(validDocument))
	require.NoError(t, err)

	built, err := doc.BuildPlugins(testRegistry(t))
	require.NoError(t, err)
	require.Len(t, built, 2)
	require.Equal(t, []string{"rownumber", "rownumber"}, built[1].After)

	cfg := doc.EngineConfig()
	require.False(t, cfg.Validate)
	require.Equal(t, 8, cfg.CacheSize)

	host := table.NewHost(cfg, nil, nil)
	inst, err := host.New(doc.TableOptions(), built...)
	require.NoError(t, err)

	leaves := make([]string, len(inst.LeafColumns))
	for i, column := range inst.LeafColumns {
		leaves[i] = column.ID
	}
	require.Equal(t, []string{"rownumber", "first", "city"}, leaves)
	require.Equal(t, "No.", inst.LeafColumns[0].Header)
	require.Equal(t, 120, inst.LeafColumns[2].ResolvedWidth())
	require.Equal(t, 150, inst.LeafColumns[1].ResolvedWidth())

	require.Equal(t, 2, inst.State["page"])
	require.Equal(t, []string{"ada", "ada.0"}, []string{inst.FlatRows[0].ID, inst.FlatRows[1].ID})
	require.Equal(t, "London", inst.FlatRows[0].Values["city"])
	require.Equal(t, "Byron", inst.FlatRows[1].Values["first"])
}

func TestBuildPluginsReportsUnknownPlugins(t *testing.T) {
	t.Parallel()

	doc := baseDocument()
	doc.Plugins = []PluginEntry{{Name: "sorting", Enabled: true}}

	_, err := doc.BuildPlugins(testRegistry(t))
	var notFound plugin.ErrPluginNotFound
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "sorting", notFound.Name)
	require.ErrorContains(t, err, "plugins[0].name")
}

func TestEngineConfigDefaults(t *testing.T) {
	t.Setenv(plugin.CacheSizeEnv, "3")

	cfg := baseDocument().EngineConfig()
	require.Equal(t, 3, cfg.CacheSize)
	require.Equal(t, plugin.DefaultConfig().Validate, cfg.Validate)
}

func TestRowIDFallsBackToPosition(t *testing.T) {
	t.Parallel()

	getID := rowIDFrom("meta.id")
	require.Equal(t, "7", getID(map[string]any{"meta": map[string]any{"id": 7}}, 0, nil))
	require.Equal(t, "2", getID(map[string]any{}, 2, nil))
	require.Equal(t, "p.1", getID(map[string]any{}, 1, &table.Row{ID: "p"}))
}
