package graph

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/hurou927/prereq-graph/internal/catalog"
)

var (
	// ErrIDCollision means two distinct records normalize to the same node id.
	ErrIDCollision = errors.New("node id collision")
	// ErrEmptyID means a course code normalizes to the empty string.
	ErrEmptyID = errors.New("empty node id")
)

// labelNameLimit caps how many characters of the course name go into a label.
const labelNameLimit = 30

// NormalizeID strips every whitespace character from code: "MATH 110" -> "MATH110".
func NormalizeID(code string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, code)
}

func nodeLabel(code, name string) string {
	r := []rune(name)
	if len(r) > labelNameLimit {
		r = r[:labelNameLimit]
	}
	return code + ": " + string(r)
}

// NormalizeRecords converts records to nodes in catalog order and returns
// the id -> position index. FollowupCount is left at zero; it is filled in
// once the edge set is known.
func NormalizeRecords(courses []catalog.Course) ([]Node, map[string]int, error) {
	nodes := make([]Node, 0, len(courses))
	index := make(map[string]int, len(courses))

	for i, c := range courses {
		id := NormalizeID(c.Code)
		if id == "" {
			return nil, nil, fmt.Errorf("%w: courses[%d] has code %q", ErrEmptyID, i, c.Code)
		}
		if prev, dup := index[id]; dup {
			return nil, nil, fmt.Errorf("%w: %q (courses[%d]) and %q (courses[%d]) both normalize to %q",
				ErrIDCollision, nodes[prev].Code, prev, c.Code, i, id)
		}

		index[id] = len(nodes)
		nodes = append(nodes, Node{
			ID:            id,
			Label:         nodeLabel(c.Code, c.Name),
			FullName:      c.Name,
			Code:          c.Code,
			Subject:       c.Subject,
			Units:         c.Units,
			Level:         c.Level,
			Prerequisites: append([]string{}, c.Prerequisites...),
		})
	}

	return nodes, index, nil
}
