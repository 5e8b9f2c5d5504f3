package graph

import (
	"errors"
	"fmt"
)

// ErrUnknownCourse means a requested course code is not in the catalog.
var ErrUnknownCourse = errors.New("unknown course")

// Plan returns the given courses together with all of their transitive
// prerequisites, ordered so that every prerequisite comes before the
// courses that require it. Codes are matched after normalization.
func Plan(g *Graph, codes []string) ([]string, error) {
	needed := make([]bool, len(g.Nodes))
	var queue []int

	for _, code := range codes {
		i, ok := g.index[NormalizeID(code)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCourse, code)
		}
		if !needed[i] {
			needed[i] = true
			queue = append(queue, i)
		}
	}

	// Walk prerequisite edges backwards from the targets.
	for head := 0; head < len(queue); head++ {
		for _, p := range g.parents[queue[head]] {
			if !needed[p] {
				needed[p] = true
				queue = append(queue, p)
			}
		}
	}

	ids := make([]string, 0, len(queue))
	for i, n := range g.Nodes {
		if needed[i] {
			ids = append(ids, n.ID)
		}
	}

	result := TopoSort(g, ids)
	if err := ValidateCycles(result); err != nil {
		return nil, err
	}
	return result.Order, nil
}
