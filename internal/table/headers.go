package table

import "fmt"

// buildHeaderGroups lays the visible leaves out as header rows, one per
// column depth. Leaves shallower than the deepest leaf are padded with
// placeholder headers so the real leaf header always sits on the last row.
func buildHeaderGroups(columns, leaves []*Column) []*HeaderGroup {
	visible := make(map[string]bool, len(leaves))
	maxDepth := 0
	for _, leaf := range leaves {
		if leaf == nil {
			continue
		}
		visible[leaf.ID] = true
		maxDepth = max(maxDepth, leaf.Depth)
	}
	if len(visible) == 0 {
		return nil
	}

	groups := make([]*HeaderGroup, maxDepth+1)
	for depth := range groups {
		groups[depth] = &HeaderGroup{ID: fmt.Sprintf("headerGroup_%d", depth), Depth: depth}
	}

	var build func(column *Column, depth int) *Header
	build = func(column *Column, depth int) *Header {
		header := &Header{
			ID:     column.ID,
			Column: column,
			Depth:  depth,
			Meta:   map[string]any{},
		}

		switch {
		case !column.IsLeaf():
			for _, child := range column.Columns {
				if hasVisibleLeaf(child, visible) {
					header.SubHeaders = append(header.SubHeaders, build(child, depth+1))
				}
			}
		case depth < maxDepth:
			header.ID = fmt.Sprintf("%s_placeholder_%d", column.ID, depth)
			header.IsPlaceholder = true
			header.SubHeaders = []*Header{build(column, depth+1)}
		}

		header.ColSpan = countLeafHeaders(header)
		groups[depth].Headers = append(groups[depth].Headers, header)
		return header
	}

	// Columns that exist only in the leaf list (e.g. added by a reducer after
	// the tree was built) are laid out at the top level.
	roots := make([]*Column, 0, len(columns))
	inTree := make(map[string]bool)
	for _, column := range flattenColumns(columns) {
		inTree[column.ID] = true
	}
	roots = append(roots, columns...)
	for _, leaf := range leaves {
		if leaf != nil && !inTree[leaf.ID] {
			roots = append(roots, leaf)
		}
	}

	for _, column := range roots {
		if column != nil && hasVisibleLeaf(column, visible) {
			build(column, 0)
		}
	}
	return groups
}

func hasVisibleLeaf(column *Column, visible map[string]bool) bool {
	if column.IsLeaf() {
		return visible[column.ID]
	}
	for _, child := range column.Columns {
		if hasVisibleLeaf(child, visible) {
			return true
		}
	}
	return false
}

func countLeafHeaders(header *Header) int {
	if len(header.SubHeaders) == 0 {
		return 1
	}
	total := 0
	for _, sub := range header.SubHeaders {
		total += countLeafHeaders(sub)
	}
	return total
}

// reversedGroups returns the groups bottom row first, as footers render.
func reversedGroups(groups []*HeaderGroup) []*HeaderGroup {
	out := make([]*HeaderGroup, len(groups))
	for i, group := range groups {
		out[len(groups)-1-i] = group
	}
	return out
}

func flattenHeaders(groups []*HeaderGroup) []*Header {
	var out []*Header
	for _, group := range groups {
		if group != nil {
			out = append(out, group.Headers...)
		}
	}
	return out
}

// relinkHeaders swaps every reference to a header for its decorated value.
// SubHeaders slices are copied before they are rewritten because a decorated
// header may share its backing array with the header it replaced.
func relinkHeaders(replaced map[*Header]*Header, groupLists ...[]*HeaderGroup) {
	if len(replaced) == 0 {
		return
	}
	resolve := func(header *Header) *Header {
		if decorated, ok := replaced[header]; ok {
			return decorated
		}
		return header
	}

	seen := make(map[*Header]bool)
	var relink func(header *Header)
	relink = func(header *Header) {
		if header == nil || seen[header] {
			return
		}
		seen[header] = true
		if len(header.SubHeaders) == 0 {
			return
		}
		subs := make([]*Header, len(header.SubHeaders))
		for i, sub := range header.SubHeaders {
			subs[i] = resolve(sub)
			relink(subs[i])
		}
		header.SubHeaders = subs
	}

	for _, groups := range groupLists {
		for _, group := range groups {
			if group == nil {
				continue
			}
			for i, header := range group.Headers {
				group.Headers[i] = resolve(header)
				relink(group.Headers[i])
			}
		}
	}
	for _, header := range replaced {
		relink(header)
	}
}
