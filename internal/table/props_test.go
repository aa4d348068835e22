package table

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

func TestPropsDefaultsWithoutPlugins(t *testing.T) {
	t.Parallel()

	inst := buildPeople(t)

	props, err := inst.TableProps(nil)
	require.NoError(t, err)
	require.Equal(t, Props{"role": "table"}, props)

	props, err = inst.HeaderProps(inst.HeaderGroups[0].Headers[0], nil)
	require.NoError(t, err)
	require.Equal(t, Props{"key": "Name", "colSpan": 2, "role": "columnheader"}, props)

	props, err = inst.FooterGroupProps(inst.FooterGroups[0], nil)
	require.NoError(t, err)
	require.Equal(t, "footerGroup_1", props["key"])

	props, err = inst.CellProps(inst.Rows[2].Cells[0], nil)
	require.NoError(t, err)
	require.Equal(t, Props{"key": "2_first", "role": "cell"}, props)
}

func TestPropsReducersRunInPluginOrder(t *testing.T) {
	t.Parallel()

	zebra := plugin.New("zebra", nil, ReduceRowProps.PlugFunc(func(props Props, meta Meta) Props {
		next := Props{}
		for k, v := range props {
			next[k] = v
		}
		next["class"] = fmt.Sprintf("row-%d", meta.Row.Index%2)
		return next
	}))
	suffix := plugin.New("suffix", []string{"zebra"}, ReduceRowProps.PlugFunc(func(props Props, _ Meta) Props {
		props["class"] = props["class"].(string) + " wide"
		return props
	}))

	inst := buildPeople(t, suffix, zebra)

	props, err := inst.RowProps(inst.Rows[1], nil)
	require.NoError(t, err)
	require.Equal(t, Props{"key": "row_1", "role": "row", "class": "row-1 wide"}, props)
}

func TestPropsUserOverridesWin(t *testing.T) {
	t.Parallel()

	styled := plugin.New("styled", nil, ReduceTableProps.PlugFunc(func(props Props, _ Meta) Props {
		props["class"] = "plugin"
		props["border"] = 1
		return props
	}))

	inst := buildPeople(t, styled)

	props, err := inst.TableProps(Props{"class": "user", "id": "people"})
	require.NoError(t, err)
	require.Equal(t, "user", props["class"])
	require.Equal(t, "people", props["id"])
	require.Equal(t, 1, props["border"])
	require.Equal(t, "table", props["role"])
}

func TestPropsWrapReducerFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := plugin.New("failing", nil, ReduceHeaderProps.Plug(func(Props, Meta) (Props, error) {
		return nil, boom
	}))

	inst := buildPeople(t, failing)

	_, err := inst.HeaderProps(inst.FlatHeaders[0], nil)
	require.ErrorIs(t, err, boom)

	var execErr *tabularerrors.ExecutionError
	require.ErrorAs(t, err, &execErr)
	require.Equal(t, StageProps, execErr.Stage)
	require.Equal(t, "reduceHeaderProps", execErr.Point)

	// other getters are unaffected
	_, err = inst.FooterProps(inst.FlatHeaders[0], nil)
	require.NoError(t, err)
}

func TestMergePropsDoesNotAliasBase(t *testing.T) {
	t.Parallel()

	base := Props{"role": "row"}
	out, err := mergeProps(base, Props{"role": "presentation"})
	require.NoError(t, err)
	require.Equal(t, "presentation", out["role"])
	require.Equal(t, "row", base["role"])
}
