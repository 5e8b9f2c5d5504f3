package graph

import "sort"

// Components is the classified component data of a graph.
type Components struct {
	Main     []string   `json:"main"`     // the largest component
	Isolated []string   `json:"isolated"` // sole members of size-1 components
	All      [][]string `json:"all"`      // every component, largest first
}

// SubjectStats rolls up the nodes of one subject.
type SubjectStats struct {
	Subject     string
	Total       int
	WithPrereqs int // nodes listing at least one raw prerequisite
	Isolated    int
}

// Classify picks the main component and the isolated nodes out of a sorted
// component list. Isolated nodes keep their order in that list.
func Classify(components []Component) Components {
	c := Components{
		Main:     []string{},
		Isolated: []string{},
		All:      make([][]string, 0, len(components)),
	}
	if len(components) > 0 {
		c.Main = components[0].Nodes
	}

	for _, comp := range components {
		c.All = append(c.All, comp.Nodes)
		if len(comp.Nodes) == 1 {
			c.Isolated = append(c.Isolated, comp.Nodes[0])
		}
	}
	return c
}

// SubjectSummary counts nodes per subject, sorted by subject code.
func SubjectSummary(nodes []Node, isolated []string) []SubjectStats {
	isolatedSet := make(map[string]struct{}, len(isolated))
	for _, id := range isolated {
		isolatedSet[id] = struct{}{}
	}

	bySubject := make(map[string]*SubjectStats)
	for _, n := range nodes {
		s, ok := bySubject[n.Subject]
		if !ok {
			s = &SubjectStats{Subject: n.Subject}
			bySubject[n.Subject] = s
		}
		s.Total++
		if len(n.Prerequisites) > 0 {
			s.WithPrereqs++
		}
		if _, ok := isolatedSet[n.ID]; ok {
			s.Isolated++
		}
	}

	stats := make([]SubjectStats, 0, len(bySubject))
	for _, s := range bySubject {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Subject < stats[j].Subject
	})
	return stats
}
