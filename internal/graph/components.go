package graph

import "sort"

// Component is a connected component of courses, ids in BFS visit order.
type Component struct {
	Nodes []string
}

// FindComponents detects connected components using undirected BFS, starting
// from nodes in catalog order. Components are returned largest first; equal
// sizes keep the order in which they were discovered.
func FindComponents(g *Graph) []Component {
	n := len(g.Nodes)

	adjacency := make([][]int, n)
	for _, e := range g.Edges {
		src, dst := g.index[e.Source], g.index[e.Target]
		adjacency[src] = append(adjacency[src], dst)
		adjacency[dst] = append(adjacency[dst], src)
	}

	visited := make([]bool, n)
	queue := make([]int, 0, n)
	components := make([]Component, 0)

	for start := range g.Nodes {
		if visited[start] {
			continue
		}
		queue = queue[:0]
		comp := bfs(g, adjacency, start, visited, queue)
		components = append(components, Component{Nodes: comp})
	}

	sort.SliceStable(components, func(i, j int) bool {
		return len(components[i].Nodes) > len(components[j].Nodes)
	})
	return components
}

// bfs marks nodes visited when they are enqueued, so each node is queued once.
func bfs(g *Graph, adjacency [][]int, start int, visited []bool, queue []int) []string {
	queue = append(queue, start)
	visited[start] = true
	var result []string

	for head := 0; head < len(queue); head++ {
		node := queue[head]
		result = append(result, g.Nodes[node].ID)

		for _, neighbor := range adjacency[node] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return result
}
