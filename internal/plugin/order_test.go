package plugin

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestOrderDropsNilPlugins(t *testing.T) {
	t.Parallel()

	a := &Plugin{Name: "a"}
	b := &Plugin{Name: "b"}

	ordered := Order([]*Plugin{nil, a, nil, b, nil})
	require.Equal(t, []string{"a", "b"}, names(ordered))
}

func TestOrderDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	b := &Plugin{Name: "b", After: []string{"a"}}
	a := &Plugin{Name: "a"}
	input := []*Plugin{b, a}

	ordered := Order(input)
	require.Equal(t, []string{"a", "b"}, names(ordered))
	require.Same(t, b, input[0])
	require.Same(t, a, input[1])
}

func TestOrderHonoursDeclaredPredecessors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		plugins []*Plugin
		want    []string
	}{
		{
			name: "direct predecessor",
			plugins: []*Plugin{
				{Name: "B", After: []string{"A"}},
				{Name: "A"},
			},
			want: []string{"A", "B"},
		},
		{
			name: "more predecessors sorts later",
			plugins: []*Plugin{
				{Name: "wide", After: []string{"x", "y"}},
				{Name: "narrow", After: []string{"z"}},
				{Name: "root"},
			},
			want: []string{"root", "narrow", "wide"},
		},
		{
			name: "ties keep input order",
			plugins: []*Plugin{
				{Name: "first"},
				{Name: "second"},
				{Name: "third"},
			},
			want: []string{"first", "second", "third"},
		},
		{
			name: "unresolved predecessor only counts toward size",
			plugins: []*Plugin{
				{Name: "late", After: []string{"missing"}},
				{Name: "early"},
			},
			want: []string{"early", "late"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, names(Order(tc.plugins)))
		})
	}
}

// The comparator is a heuristic: a plugin depending on a peer with an equally
// sized After list is not guaranteed to follow it. This pins that behaviour.
func TestOrderHeuristicDoesNotResolveEqualSizedChains(t *testing.T) {
	t.Parallel()

	c := &Plugin{Name: "C", After: []string{"B"}}
	b := &Plugin{Name: "B", After: []string{"A"}}
	a := &Plugin{Name: "A", After: []string{"ext"}}

	// A and C are unrelated and equal in size, so their comparison is a tie.
	require.Equal(t, 0, comparePlugins(a, c))
	require.Equal(t, 0, comparePlugins(c, a))
	require.Equal(t, 1, comparePlugins(b, a))
	require.Equal(t, 1, comparePlugins(c, b))
}

func TestComparePluginsIsSymmetricForResolvedPairs(t *testing.T) {
	t.Parallel()

	a := &Plugin{Name: "A"}
	b := &Plugin{Name: "B", After: []string{"A"}}

	require.Equal(t, 1, comparePlugins(b, a))
	require.Equal(t, -1, comparePlugins(a, b))
}

// closedPlugins generates plugin sets whose After lists are transitively
// closed, so every dependency pair is resolved by both comparator rules.
func closedPlugins(t *rapid.T) []*Plugin {
	count := rapid.IntRange(0, 12).Draw(t, "count")
	plugins := make([]*Plugin, 0, count)
	closure := make([][]string, 0, count)

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("p%d", i)
		set := map[string]struct{}{}
		for j := 0; j < i; j++ {
			if rapid.Bool().Draw(t, fmt.Sprintf("dep_%d_%d", i, j)) {
				set[plugins[j].Name] = struct{}{}
				for _, inherited := range closure[j] {
					set[inherited] = struct{}{}
				}
			}
		}
		after := make([]string, 0, len(set))
		for dep := range set {
			after = append(after, dep)
		}
		slices.Sort(after)
		closure = append(closure, after)
		plugins = append(plugins, &Plugin{Name: name, After: after})
	}

	perm := rapid.Permutation(plugins).Draw(t, "perm")
	return perm
}

func TestOrderRespectsPredecessorsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		plugins := closedPlugins(t)
		ordered := Order(plugins)

		position := make(map[string]int, len(ordered))
		for i, p := range ordered {
			position[p.Name] = i
		}
		require.Len(t, ordered, len(plugins))

		for _, p := range ordered {
			for _, dep := range p.After {
				if position[dep] >= position[p.Name] {
					t.Fatalf("%s placed before its predecessor %s: %v", p.Name, dep, names(ordered))
				}
			}
		}
	})
}

func TestOrderIsDeterministicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		plugins := closedPlugins(t)
		first := names(Order(plugins))
		for i := 0; i < 3; i++ {
			if got := names(Order(plugins)); !slices.Equal(first, got) {
				t.Fatalf("order changed between calls: %v vs %v", first, got)
			}
		}
	})
}
