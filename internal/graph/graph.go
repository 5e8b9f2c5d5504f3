// Package graph turns course records into a directed prerequisite graph and
// derives its connected components and per-subject statistics.
package graph

import (
	"github.com/hurou927/prereq-graph/internal/catalog"
)

// EdgeType tags every edge; the graph models a single relation.
const EdgeType = "prerequisite"

// Node is one course in the graph.
type Node struct {
	ID            string   `json:"id"`    // code with whitespace removed
	Label         string   `json:"label"` // "CODE: first 30 chars of name"
	FullName      string   `json:"fullName"`
	Code          string   `json:"code"`
	Subject       string   `json:"subject"`
	Units         float64  `json:"units"`
	Level         int      `json:"level"`
	Prerequisites []string `json:"prerequisites"` // raw codes as listed in the record
	FollowupCount int      `json:"followupCount"`
}

// Edge points from a prerequisite to the course that requires it.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// DanglingRef is a prerequisite code that matched no course in the catalog.
// It produces no edge.
type DanglingRef struct {
	Course       string // code of the course listing the reference
	Prerequisite string // the unresolved code as written
}

// Graph is the prerequisite graph built from one catalog. It is not
// modified after Build returns.
type Graph struct {
	Nodes    []Node
	Edges    []Edge
	Dangling []DanglingRef

	// index maps node id -> position in Nodes
	index map[string]int

	// parents[i] and children[i] hold positions of the prerequisites and
	// dependents of Nodes[i], one entry per edge
	parents  [][]int
	children [][]int
}

// Build runs the record normalizer and the edge builder over courses, in
// catalog order, and back-fills follow-up counts.
func Build(courses []catalog.Course) (*Graph, error) {
	nodes, index, err := NormalizeRecords(courses)
	if err != nil {
		return nil, err
	}

	edges, dangling := BuildEdges(nodes, index)
	applyFollowups(nodes, index, edges)

	g := &Graph{
		Nodes:    nodes,
		Edges:    edges,
		Dangling: dangling,
		index:    index,
		parents:  make([][]int, len(nodes)),
		children: make([][]int, len(nodes)),
	}
	for _, e := range edges {
		src, dst := index[e.Source], index[e.Target]
		g.children[src] = append(g.children[src], dst)
		g.parents[dst] = append(g.parents[dst], src)
	}
	return g, nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return &g.Nodes[i], true
}

// Roots returns ids of courses with no resolved prerequisite, in catalog order.
func (g *Graph) Roots() []string {
	var roots []string
	for i, n := range g.Nodes {
		if len(g.parents[i]) == 0 {
			roots = append(roots, n.ID)
		}
	}
	return roots
}
