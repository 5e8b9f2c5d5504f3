package output

import (
	"strconv"
	"strings"
)

// escapeCopyValue escapes a single text value for PostgreSQL COPY text format.
func escapeCopyValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// arrayLiteral renders values as a PostgreSQL text[] literal, each element
// double-quoted. The result still needs COPY escaping.
func arrayLiteral(values []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		for _, r := range v {
			if r == '"' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}

func formatUnits(units float64) string {
	return strconv.FormatFloat(units, 'f', -1, 64)
}
