package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	code, name, subject string
	units               *float64
	level               *int32
	prerequisites       []string
}

// fakeRows serves canned rows through the pgx.Rows interface.
type fakeRows struct {
	rows []fakeRow
	pos  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) != 6 {
		return fmt.Errorf("expected 6 destinations, got %d", len(dest))
	}
	row := r.rows[r.pos-1]
	*dest[0].(*string) = row.code
	*dest[1].(*string) = row.name
	*dest[2].(*string) = row.subject
	*dest[3].(**float64) = row.units
	*dest[4].(**int32) = row.level
	*dest[5].(*[]string) = row.prerequisites
	return nil
}

type fakeQuerier struct {
	rows     *fakeRows
	err      error
	gotQuery string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.gotQuery = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func ptr[T any](v T) *T { return &v }

func TestBuildCatalogQuery(t *testing.T) {
	assert.Equal(t,
		`SELECT code, name, subject, units::float8, level, prerequisites FROM "courses" ORDER BY "code"`,
		buildCatalogQuery("courses", "code"))
	assert.Equal(t,
		`SELECT code, name, subject, units::float8, level, prerequisites FROM "registrar"."courses" ORDER BY "position"`,
		buildCatalogQuery("registrar.courses", "position"))
}

func TestLoadPostgres(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{rows: []fakeRow{
		{code: "MATH 110", name: "Linear Algebra", subject: "MATH", units: ptr(6.0), level: ptr(int32(1)), prerequisites: []string{}},
		{code: "MATH 221", name: "Vector Calculus", subject: "MATH", units: ptr(3.0), prerequisites: []string{"MATH 110"}},
	}}}

	courses, err := LoadPostgres(context.Background(), q, "courses", "code")
	require.NoError(t, err)
	require.Len(t, courses, 2)

	assert.Contains(t, q.gotQuery, `FROM "courses"`)
	assert.Equal(t, 1, courses[0].Level)
	assert.Equal(t, 2, courses[1].Level)
	assert.Equal(t, []string{"MATH 110"}, courses[1].Prerequisites)
}

func TestLoadPostgres_NullPrerequisitesIsMalformed(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{rows: []fakeRow{
		{code: "MATH 110", name: "Linear Algebra", subject: "MATH", units: ptr(6.0)},
	}}}

	_, err := LoadPostgres(context.Background(), q, "courses", "code")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedCatalog)
	assert.Contains(t, err.Error(), "prerequisites is required")
}

func TestLoadPostgres_QueryError(t *testing.T) {
	q := &fakeQuerier{err: errors.New("relation does not exist")}

	_, err := LoadPostgres(context.Background(), q, "courses", "code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying courses")
}

func TestLoadPostgres_RowsError(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{err: errors.New("connection reset")}}

	_, err := LoadPostgres(context.Background(), q, "courses", "code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading courses")
}
