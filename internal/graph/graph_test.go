package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/prereq-graph/internal/catalog"
)

// course builds a record with the subject taken from the code.
func course(code string, prereqs ...string) catalog.Course {
	subject := code
	for i, r := range code {
		if r == ' ' {
			subject = code[:i]
			break
		}
	}
	if prereqs == nil {
		prereqs = []string{}
	}
	return catalog.Course{
		Code:          code,
		Name:          "Course " + code,
		Subject:       subject,
		Units:         3,
		Level:         catalog.DeriveLevel(code),
		Prerequisites: prereqs,
	}
}

func mustBuild(t *testing.T, courses ...catalog.Course) *Graph {
	t.Helper()
	g, err := Build(courses)
	require.NoError(t, err)
	return g
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "MATH110", NormalizeID("MATH 110"))
	assert.Equal(t, "CISC121", NormalizeID(" CISC\t121\n"))
	assert.Equal(t, "ANAT100", NormalizeID("ANAT100"))
	assert.Equal(t, "MATH110", NormalizeID("MATH\u00a0110"))
	assert.Equal(t, "", NormalizeID(" \t "))
}

func TestNormalizeRecords(t *testing.T) {
	c := catalog.Course{
		Code:          "CISC 124",
		Name:          "Introduction to Computing Science II",
		Subject:       "CISC",
		Units:         3,
		Level:         1,
		Prerequisites: []string{"CISC 121"},
	}

	nodes, index, err := NormalizeRecords([]catalog.Course{c})
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	assert.Equal(t, Node{
		ID:            "CISC124",
		Label:         "CISC 124: Introduction to Computing Scie",
		FullName:      "Introduction to Computing Science II",
		Code:          "CISC 124",
		Subject:       "CISC",
		Units:         3,
		Level:         1,
		Prerequisites: []string{"CISC 121"},
	}, nodes[0])
	assert.Equal(t, map[string]int{"CISC124": 0}, index)
}

func TestNormalizeRecords_LabelCountsRunes(t *testing.T) {
	c := course("FREN 101")
	c.Name = "Français élémentaire et conversation pratique"

	nodes, _, err := NormalizeRecords([]catalog.Course{c})
	require.NoError(t, err)
	assert.Equal(t, "FREN 101: Français élémentaire et conver", nodes[0].Label)
}

func TestNormalizeRecords_NilPrerequisitesSerializeAsEmpty(t *testing.T) {
	c := course("MATH 110")
	c.Prerequisites = nil

	nodes, _, err := NormalizeRecords([]catalog.Course{c})
	require.NoError(t, err)
	assert.NotNil(t, nodes[0].Prerequisites)
	assert.Empty(t, nodes[0].Prerequisites)
}

func TestNormalizeRecords_Collision(t *testing.T) {
	_, err := Build([]catalog.Course{course("MATH 110"), course("MATH110")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIDCollision)
	assert.Contains(t, err.Error(), `"MATH 110" (courses[0]) and "MATH110" (courses[1])`)
}

func TestNormalizeRecords_EmptyID(t *testing.T) {
	_, err := Build([]catalog.Course{course("MATH 110"), course("   ")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestBuildEdges(t *testing.T) {
	g := mustBuild(t,
		course("MATH 110"),
		course("MATH 221", "MATH 110", "MATH 999"),
		course("STAT 263", "MATH110"),
	)

	assert.Equal(t, []Edge{
		{Source: "MATH110", Target: "MATH221", Type: EdgeType},
		{Source: "MATH110", Target: "STAT263", Type: EdgeType},
	}, g.Edges)
	assert.Equal(t, []DanglingRef{{Course: "MATH 221", Prerequisite: "MATH 999"}}, g.Dangling)

	assert.Equal(t, 2, g.Nodes[0].FollowupCount)
	assert.Equal(t, 0, g.Nodes[1].FollowupCount)
	assert.Equal(t, 0, g.Nodes[2].FollowupCount)
}

func TestBuildEdges_DuplicateReferencesCountTwice(t *testing.T) {
	g := mustBuild(t,
		course("MATH 110"),
		course("MATH 221", "MATH 110", "MATH 110"),
	)

	assert.Len(t, g.Edges, 2)
	assert.Equal(t, 2, g.Nodes[0].FollowupCount)
}

func TestGraph_NodeAndRoots(t *testing.T) {
	g := mustBuild(t,
		course("MATH 110"),
		course("MATH 221", "MATH 110"),
		course("PHIL 115", "PHIL 999"),
	)

	n, ok := g.Node("MATH221")
	require.True(t, ok)
	assert.Equal(t, "MATH 221", n.Code)

	_, ok = g.Node("MATH 221")
	assert.False(t, ok)

	assert.Equal(t, []string{"MATH110", "PHIL115"}, g.Roots())
}
