package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hurou927/prereq-graph/internal/graph"
)

const (
	nodesTable = "course_nodes"
	edgesTable = "course_edges"
)

var nodeColumns = []string{
	"id", "code", "label", "full_name", "subject", "units", "level",
	"prerequisites", "followup_count", "component",
}

var edgeColumns = []string{"source", "target", "type"}

// Writer writes the analysis as a psql script of COPY blocks.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new COPY output writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteSQL writes tables and data for res in one transaction.
func WriteSQL(w io.Writer, res *graph.Result) error {
	cw := NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteNodes(res); err != nil {
		return fmt.Errorf("writing %s: %w", nodesTable, err)
	}
	if err := cw.WriteEdges(res.Edges); err != nil {
		return fmt.Errorf("writing %s: %w", edgesTable, err)
	}
	return cw.WriteFooter()
}

// WriteHeader opens the transaction and creates the target tables.
func (cw *Writer) WriteHeader() error {
	_, err := fmt.Fprintf(cw.w, `BEGIN;

CREATE TABLE IF NOT EXISTS %s (
    id text PRIMARY KEY,
    code text NOT NULL,
    label text NOT NULL,
    full_name text NOT NULL,
    subject text NOT NULL,
    units numeric NOT NULL,
    level integer NOT NULL,
    prerequisites text[] NOT NULL,
    followup_count integer NOT NULL,
    component integer NOT NULL
);

CREATE TABLE IF NOT EXISTS %s (
    source text NOT NULL REFERENCES %s (id),
    target text NOT NULL REFERENCES %s (id),
    type text NOT NULL
);

TRUNCATE %s, %s;

`, nodesTable, edgesTable, nodesTable, nodesTable, edgesTable, nodesTable)
	return err
}

// WriteFooter commits the transaction.
func (cw *Writer) WriteFooter() error {
	_, err := fmt.Fprintln(cw.w, "COMMIT;")
	return err
}

// WriteNodes writes a COPY block for the nodes of res. The component column
// is the 1-based position of the node's component in the sorted list.
func (cw *Writer) WriteNodes(res *graph.Result) error {
	componentOf := make(map[string]int, len(res.Nodes))
	for i, comp := range res.Components.All {
		for _, id := range comp {
			componentOf[id] = i + 1
		}
	}

	rows := make([][]string, len(res.Nodes))
	for i, n := range res.Nodes {
		rows[i] = []string{
			n.ID,
			n.Code,
			n.Label,
			n.FullName,
			n.Subject,
			formatUnits(n.Units),
			strconv.Itoa(n.Level),
			arrayLiteral(n.Prerequisites),
			strconv.Itoa(n.FollowupCount),
			strconv.Itoa(componentOf[n.ID]),
		}
	}
	return cw.writeCopy(nodesTable, nodeColumns, rows)
}

// WriteEdges writes a COPY block for edges.
func (cw *Writer) WriteEdges(edges []graph.Edge) error {
	rows := make([][]string, len(edges))
	for i, e := range edges {
		rows[i] = []string{e.Source, e.Target, e.Type}
	}
	return cw.writeCopy(edgesTable, edgeColumns, rows)
}

func (cw *Writer) writeCopy(table string, columns []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	_, err := fmt.Fprintf(cw.w, "COPY %s (%s) FROM stdin;\n", table, strings.Join(columns, ", "))
	if err != nil {
		return err
	}

	for _, row := range rows {
		vals := make([]string, len(row))
		for i, v := range row {
			vals[i] = escapeCopyValue(v)
		}
		_, err := fmt.Fprintln(cw.w, strings.Join(vals, "\t"))
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(cw.w, `\.`)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cw.w)
	return err
}
