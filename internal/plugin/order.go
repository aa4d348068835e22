package plugin

import "slices"

// Order returns the non-nil plugins sorted for composition.
//
// The sort is a stable, comparator-based heuristic rather than a topological
// sort. Plugin a is placed after b when a lists b in After, or when a lists
// strictly more predecessors than b. When neither plugin wins, their relative
// order is whatever the stable sort leaves. Plugins without a direct
// relationship are therefore ordered by predecessor count, which can misorder
// transitive chains whose members declare equally sized After lists. Names in
// After that match no plugin never take effect.
//
// The input slice is not modified.
func Order(plugins []*Plugin) []*Plugin {
	ordered := make([]*Plugin, 0, len(plugins))
	for _, p := range plugins {
		if p != nil {
			ordered = append(ordered, p)
		}
	}

	slices.SortStableFunc(ordered, comparePlugins)
	return ordered
}

// comparePlugins returns a positive value when a must follow b.
func comparePlugins(a, b *Plugin) int {
	if a.dependsOn(b.Name) || len(a.After) > len(b.After) {
		return 1
	}
	if b.dependsOn(a.Name) || len(b.After) > len(a.After) {
		return -1
	}
	return 0
}
