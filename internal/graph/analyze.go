package graph

import (
	"github.com/hurou927/prereq-graph/internal/catalog"
)

// Statistics holds the summary counters of an analysis.
type Statistics struct {
	TotalNodes           int `json:"total_nodes"`
	TotalEdges           int `json:"total_edges"`
	ComponentCount       int `json:"component_count"`
	LargestComponentSize int `json:"largest_component_size"`
	IsolatedCount        int `json:"isolated_count"`
}

// Result is the output document of one analysis run. Only the tagged
// fields are serialized.
type Result struct {
	Nodes      []Node     `json:"nodes"`
	Edges      []Edge     `json:"edges"`
	Components Components `json:"components"`
	Statistics Statistics `json:"statistics"`

	Subjects []SubjectStats `json:"-"`
	Dangling []DanglingRef  `json:"-"`
	Graph    *Graph         `json:"-"`
}

// Run builds the graph from courses and analyzes it.
func Run(courses []catalog.Course) (*Result, error) {
	g, err := Build(courses)
	if err != nil {
		return nil, err
	}
	return Analyze(g), nil
}

// Analyze finds and classifies the components of g and aggregates the
// per-subject statistics.
func Analyze(g *Graph) *Result {
	components := FindComponents(g)
	classified := Classify(components)

	return &Result{
		Nodes:      g.Nodes,
		Edges:      g.Edges,
		Components: classified,
		Statistics: Statistics{
			TotalNodes:           len(g.Nodes),
			TotalEdges:           len(g.Edges),
			ComponentCount:       len(components),
			LargestComponentSize: len(classified.Main),
			IsolatedCount:        len(classified.Isolated),
		},
		Subjects: SubjectSummary(g.Nodes, classified.Isolated),
		Dangling: g.Dangling,
		Graph:    g,
	}
}
