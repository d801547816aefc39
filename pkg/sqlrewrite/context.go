package sqlrewrite

import (
	"fmt"
	"strings"
)

// Direction selects which side of the reference timestamp a context page
// reads: forward fetches rows at or after it, backward at or before it.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// Order returns the row order that puts the rows closest to the reference
// timestamp first.
func (d Direction) Order() SortOrder {
	if d == DirectionBackward {
		return SortDesc
	}
	return SortAsc
}

// operator returns the comparison binding rows to the reference timestamp.
func (d Direction) operator() string {
	if d == DirectionBackward {
		return "<="
	}
	return ">="
}

// ContextFilter is one equality filter of a context query. Single quotes in
// Value are escaped by doubling when the filter is written into SQL.
type ContextFilter struct {
	Column string
	Value  string
}

// ContextOptions configures BuildContextQuery.
type ContextOptions struct {
	// TimeColumn is the column the time bound and row order apply to.
	TimeColumn string
	// TimeExpr is the reference timestamp, already formatted as a
	// ClickHouse timestamp expression. It is spliced in verbatim.
	TimeExpr  string
	Direction Direction
	// Limit is the page size; zero or negative leaves the query unbounded.
	Limit int
	// Filters are applied in order via AddWhereCondition.
	Filters []ContextFilter
}

// BuildContextQuery rewrites a user query into the bounded, time-ordered
// variant used for "view context" pagination: a time-bound predicate and
// the equality filters are ANDed into WHERE, then ORDER BY and LIMIT are
// force-set. Unlike the injectors, the ORDER BY and LIMIT steps override
// existing clauses unconditionally, because context pagination requires a
// deterministic row order and page size. An empty query or time column is
// a no-op.
//
// WHERE conditions are added before ORDER BY, and ORDER BY before LIMIT,
// so every insertion point is computed against a query that does not yet
// contain the clauses added after it.
func BuildContextQuery(sql string, opts ContextOptions) string {
	if sql == "" || opts.TimeColumn == "" {
		return sql
	}

	bound := fmt.Sprintf(`"%s" %s %s`, opts.TimeColumn, opts.Direction.operator(), opts.TimeExpr)
	sql = AddWhereCondition(sql, bound)

	for _, f := range opts.Filters {
		value := strings.ReplaceAll(f.Value, "'", "''")
		sql = AddWhereCondition(sql, fmt.Sprintf(`"%s" = '%s'`, f.Column, value))
	}

	sql = SetOrderBy(sql, opts.TimeColumn, opts.Direction.Order())
	return SetLimit(sql, opts.Limit)
}
