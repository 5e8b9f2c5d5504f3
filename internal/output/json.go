package output

import (
	"encoding/json"
	"io"

	"github.com/hurou927/prereq-graph/internal/graph"
)

// WriteJSON writes the analysis document with two-space indentation.
// Output is byte-identical for identical results.
func WriteJSON(w io.Writer, res *graph.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}
