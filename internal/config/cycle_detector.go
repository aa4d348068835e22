package config

import "sort"

// detectCycle returns the plugins participating in an ordering cycle formed
// by document "after" lists, or nil if there is none. Disabled entries and
// names outside the document are ignored.
func detectCycle(entries []PluginEntry) []string {
	enabled := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.Enabled {
			enabled[entry.Name] = true
		}
	}

	graph := make(map[string][]string, len(enabled))
	for _, entry := range entries {
		if !enabled[entry.Name] {
			continue
		}
		deps := make([]string, 0, len(entry.After))
		for _, dep := range entry.After {
			if enabled[dep] {
				deps = append(deps, dep)
			}
		}
		graph[entry.Name] = deps
	}

	visiting := make(map[string]bool, len(graph))
	visited := make(map[string]bool, len(graph))
	var stack []string

	var cycle []string
	var dfs func(string) bool
	dfs = func(node string) bool {
		visiting[node] = true
		stack = append(stack, node)

		for _, dep := range graph[node] {
			if visited[dep] {
				continue
			}
			if visiting[dep] {
				if idx := indexOf(stack, dep); idx >= 0 {
					cycle = append([]string{}, stack[idx:]...)
					cycle = append(cycle, dep)
				}
				return true
			}
			if dfs(dep) {
				return true
			}
		}

		visiting[node] = false
		visited[node] = true
		stack = stack[:len(stack)-1]
		return false
	}

	names := make([]string, 0, len(graph))
	for name := range graph {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if visited[name] {
			continue
		}
		if dfs(name) {
			break
		}
	}

	return cycle
}

func indexOf(slice []string, target string) int {
	for i, v := range slice {
		if v == target {
			return i
		}
	}
	return -1
}
