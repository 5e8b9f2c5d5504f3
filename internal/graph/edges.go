package graph

// BuildEdges emits one edge per prerequisite reference that resolves to a
// node, walking nodes and their prerequisite lists in order. References to
// codes outside the catalog are returned as dangling instead.
func BuildEdges(nodes []Node, index map[string]int) ([]Edge, []DanglingRef) {
	edges := make([]Edge, 0, len(nodes))
	var dangling []DanglingRef

	for _, n := range nodes {
		for _, prereq := range n.Prerequisites {
			src := NormalizeID(prereq)
			if _, ok := index[src]; !ok {
				dangling = append(dangling, DanglingRef{Course: n.Code, Prerequisite: prereq})
				continue
			}
			edges = append(edges, Edge{
				Source: src,
				Target: n.ID,
				Type:   EdgeType,
			})
		}
	}

	return edges, dangling
}

// applyFollowups sets each node's FollowupCount to the number of edges
// leaving it.
func applyFollowups(nodes []Node, index map[string]int, edges []Edge) {
	for i := range nodes {
		nodes[i].FollowupCount = 0
	}
	for _, e := range edges {
		nodes[index[e.Source]].FollowupCount++
	}
}
