package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/prereq-graph/internal/catalog"
)

func TestRun_TwoComponents(t *testing.T) {
	res, err := Run([]catalog.Course{
		course("A 100"),
		course("A 200", "A 100"),
		course("B 100"),
	})
	require.NoError(t, err)

	assert.Len(t, res.Nodes, 3)
	assert.Equal(t, []Edge{{Source: "A100", Target: "A200", Type: "prerequisite"}}, res.Edges)
	assert.Equal(t, Components{
		Main:     []string{"A100", "A200"},
		Isolated: []string{"B100"},
		All:      [][]string{{"A100", "A200"}, {"B100"}},
	}, res.Components)
	assert.Equal(t, Statistics{
		TotalNodes:           3,
		TotalEdges:           1,
		ComponentCount:       2,
		LargestComponentSize: 2,
		IsolatedCount:        1,
	}, res.Statistics)

	followups := map[string]int{}
	for _, n := range res.Nodes {
		followups[n.ID] = n.FollowupCount
	}
	assert.Equal(t, map[string]int{"A100": 1, "A200": 0, "B100": 0}, followups)

	assert.Equal(t, []SubjectStats{
		{Subject: "A", Total: 2, WithPrereqs: 1, Isolated: 0},
		{Subject: "B", Total: 1, WithPrereqs: 0, Isolated: 1},
	}, res.Subjects)
}

func TestRun_EmptyCatalog(t *testing.T) {
	res, err := Run(nil)
	require.NoError(t, err)

	assert.Empty(t, res.Nodes)
	assert.Empty(t, res.Edges)
	assert.Empty(t, res.Components.All)
	assert.Equal(t, []string{}, res.Components.Main)
	assert.Equal(t, []string{}, res.Components.Isolated)
	assert.Equal(t, Statistics{}, res.Statistics)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nodes": [],
		"edges": [],
		"components": {"main": [], "isolated": [], "all": []},
		"statistics": {
			"total_nodes": 0,
			"total_edges": 0,
			"component_count": 0,
			"largest_component_size": 0,
			"isolated_count": 0
		}
	}`, string(data))
}

func TestRun_DanglingReferenceIsolatesCourse(t *testing.T) {
	res, err := Run([]catalog.Course{
		course("MATH 110"),
		course("PHIL 115", "PHIL 099"),
		course("MATH 221", "MATH 110"),
	})
	require.NoError(t, err)

	assert.Len(t, res.Edges, 1)
	assert.Equal(t, []string{"PHIL115"}, res.Components.Isolated)
	assert.Equal(t, []DanglingRef{{Course: "PHIL 115", Prerequisite: "PHIL 099"}}, res.Dangling)

	// still counted as having prerequisites: the raw list is non-empty
	assert.Contains(t, res.Subjects, SubjectStats{Subject: "PHIL", Total: 1, WithPrereqs: 1, Isolated: 1})
}

func TestRun_CollisionFailsFast(t *testing.T) {
	_, err := Run([]catalog.Course{course("CISC 121"), course("CISC  121")})
	assert.ErrorIs(t, err, ErrIDCollision)
}

func TestRun_Deterministic(t *testing.T) {
	courses := []catalog.Course{
		course("CISC 101"),
		course("CISC 121", "CISC 101"),
		course("CISC 124", "CISC 121", "MATH 110"),
		course("MATH 110"),
		course("MATH 120", "MATH 110"),
		course("PHIL 115"),
		course("ECON 110"),
		course("ECON 111", "ECON 110"),
	}

	first, err := Run(courses)
	require.NoError(t, err)
	second, err := Run(courses)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestResult_JSONFieldNames(t *testing.T) {
	res, err := Run([]catalog.Course{course("A 100"), course("A 200", "A 100")})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.ElementsMatch(t, []string{"nodes", "edges", "components", "statistics"}, keys(doc))

	node := doc["nodes"].([]any)[0].(map[string]any)
	assert.ElementsMatch(t, []string{
		"id", "label", "fullName", "code", "subject", "units", "level", "prerequisites", "followupCount",
	}, keys(node))

	edge := doc["edges"].([]any)[0].(map[string]any)
	assert.ElementsMatch(t, []string{"source", "target", "type"}, keys(edge))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
