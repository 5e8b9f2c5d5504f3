package graph

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// reportLimit caps how many components and isolated courses the text
// report lists individually.
const reportLimit = 10

// WriteMermaid writes the graph in Mermaid format to w.
// Each connected component is a subgraph, largest first.
func WriteMermaid(w io.Writer, res *Result) error {
	componentOf := make(map[string]int, len(res.Nodes))
	for i, comp := range res.Components.All {
		for _, id := range comp {
			componentOf[id] = i
		}
	}

	edgesByComponent := make([][]Edge, len(res.Components.All))
	for _, e := range res.Edges {
		i := componentOf[e.Source]
		edgesByComponent[i] = append(edgesByComponent[i], e)
	}

	// Node ids are not valid Mermaid identifiers, so nodes are named by
	// their catalog position and the id stays in the label.
	nodeIDs := make(map[string]string, len(res.Nodes))
	labels := make(map[string]string, len(res.Nodes))
	for i, n := range res.Nodes {
		nodeIDs[n.ID] = mermaidID(i)
		labels[n.ID] = n.Label
	}

	if _, err := fmt.Fprintln(w, "graph TD"); err != nil {
		return err
	}

	for i, comp := range res.Components.All {
		fmt.Fprintf(w, "    subgraph component_%d\n", i+1)
		for _, id := range comp {
			fmt.Fprintf(w, "        %s[\"%s\"]\n", nodeIDs[id], mermaidLabel(labels[id]))
		}
		for _, e := range edgesByComponent[i] {
			fmt.Fprintf(w, "        %s --> %s\n", nodeIDs[e.Source], nodeIDs[e.Target])
		}
		if _, err := fmt.Fprintln(w, "    end"); err != nil {
			return err
		}
	}

	return nil
}

// WriteText writes a text summary of the analysis to w.
func WriteText(w io.Writer, res *Result) error {
	st := res.Statistics

	fmt.Fprintln(w, "Graph Structure Analysis:")
	fmt.Fprintf(w, "  Total nodes: %d\n", st.TotalNodes)
	fmt.Fprintf(w, "  Total edges: %d\n", st.TotalEdges)
	fmt.Fprintf(w, "  Number of connected components: %d\n", st.ComponentCount)
	fmt.Fprintf(w, "  Largest component size: %d nodes\n", st.LargestComponentSize)
	fmt.Fprintf(w, "  Number of isolated nodes: %d\n\n", st.IsolatedCount)

	fmt.Fprintln(w, "Component sizes:")
	for i, comp := range res.Components.All {
		if i == reportLimit {
			break
		}
		fmt.Fprintf(w, "  Component %d: %d nodes\n", i+1, len(comp))
	}
	fmt.Fprintln(w)

	byID := make(map[string]*Node, len(res.Nodes))
	for i := range res.Nodes {
		byID[res.Nodes[i].ID] = &res.Nodes[i]
	}

	fmt.Fprintln(w, "Isolated courses (no prerequisites and no follow-ups):")
	for i, id := range res.Components.Isolated {
		if i == reportLimit {
			break
		}
		if n, ok := byID[id]; ok {
			fmt.Fprintf(w, "  %s: %s\n", n.Code, n.FullName)
		}
	}
	fmt.Fprintln(w)

	if res.Graph != nil {
		roots := res.Graph.Roots()
		fmt.Fprintf(w, "Entry courses (no resolved prerequisites): %d\n\n", len(roots))

		if topo := TopoSortAll(res.Graph); topo.HasCycle {
			fmt.Fprintf(w, "WARNING: Prerequisite cycles detected: %v\n\n", topo.Cycle)
		}
	}

	if len(res.Dangling) > 0 {
		fmt.Fprintf(w, "Unresolved prerequisite references: %d\n", len(res.Dangling))
		for _, d := range res.Dangling {
			fmt.Fprintf(w, "  %s -> %s\n", d.Course, d.Prerequisite)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Courses by subject:")
	for _, s := range res.Subjects {
		if _, err := fmt.Fprintf(w, "  %s: %d total, %d with prerequisites, %d isolated\n",
			s.Subject, s.Total, s.WithPrereqs, s.Isolated); err != nil {
			return err
		}
	}

	return nil
}

func mermaidID(index int) string {
	return "n" + strconv.Itoa(index)
}

func mermaidLabel(label string) string {
	return strings.ReplaceAll(label, `"`, "#quot;")
}
