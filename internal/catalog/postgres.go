package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool the Postgres source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPostgres reads course records from table, ordered by orderBy, which
// fixes the canonical input order. Expected columns:
//
//	code text, name text, subject text, units numeric,
//	level int (nullable), prerequisites text[]
//
// Rows go through the same validation as file documents.
func LoadPostgres(ctx context.Context, q Querier, table, orderBy string) ([]Course, error) {
	query := buildCatalogQuery(table, orderBy)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var raws []rawCourse
	for rows.Next() {
		var (
			raw   rawCourse
			level *int32
		)
		if err := rows.Scan(&raw.Code, &raw.Name, &raw.Subject, &raw.Units, &level, &raw.Prerequisites); err != nil {
			return nil, fmt.Errorf("%w: scanning %s row %d: %v", ErrMalformedCatalog, table, len(raws), err)
		}
		if level != nil {
			l := int(*level)
			raw.Level = &l
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}

	return toCourses(raws)
}

// buildCatalogQuery quotes table and column identifiers; "schema.table"
// is split into its parts.
func buildCatalogQuery(table, orderBy string) string {
	tableIdent := pgx.Identifier(strings.Split(table, ".")).Sanitize()
	orderIdent := pgx.Identifier{orderBy}.Sanitize()
	return fmt.Sprintf(
		"SELECT code, name, subject, units::float8, level, prerequisites FROM %s ORDER BY %s",
		tableIdent, orderIdent,
	)
}
