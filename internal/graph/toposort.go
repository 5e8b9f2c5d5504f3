package graph

import (
	"errors"
	"fmt"
)

// ErrPrerequisiteCycle means some courses require each other, directly or
// transitively.
var ErrPrerequisiteCycle = errors.New("prerequisite cycle")

// TopoResult holds the result of topological sorting.
type TopoResult struct {
	// Order lists prerequisites before the courses that require them.
	Order []string
	// HasCycle is true if the sorted set contains a cycle.
	HasCycle bool
	// Cycle lists courses left unsorted because of a cycle, in input order.
	Cycle []string
}

// TopoSort performs Kahn's algorithm on the given node ids within g. Ids
// not in g are ignored. Ties are broken by the order of ids.
func TopoSort(g *Graph, ids []string) TopoResult {
	members := make([]int, 0, len(ids))
	inSet := make([]bool, len(g.Nodes))
	for _, id := range ids {
		i, ok := g.index[id]
		if !ok || inSet[i] {
			continue
		}
		inSet[i] = true
		members = append(members, i)
	}

	// In-degree counts prerequisite edges from within the subset.
	inDegree := make([]int, len(g.Nodes))
	for _, i := range members {
		for _, p := range g.parents[i] {
			if inSet[p] {
				inDegree[i]++
			}
		}
	}

	var queue []int
	for _, i := range members {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]string, 0, len(members))
	for head := 0; head < len(queue); head++ {
		node := queue[head]
		order = append(order, g.Nodes[node].ID)

		for _, child := range g.children[node] {
			if !inSet[child] {
				continue
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	result := TopoResult{Order: order}

	if len(order) < len(members) {
		result.HasCycle = true
		for _, i := range members {
			if inDegree[i] > 0 {
				result.Cycle = append(result.Cycle, g.Nodes[i].ID)
			}
		}
	}

	return result
}

// TopoSortAll performs topological sort across all courses in catalog order.
func TopoSortAll(g *Graph) TopoResult {
	all := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		all[i] = n.ID
	}
	return TopoSort(g, all)
}

// ValidateCycles returns an error wrapping ErrPrerequisiteCycle if result has a cycle.
func ValidateCycles(result TopoResult) error {
	if !result.HasCycle {
		return nil
	}
	return fmt.Errorf("%w among courses: %v", ErrPrerequisiteCycle, result.Cycle)
}
