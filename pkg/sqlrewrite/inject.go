package sqlrewrite

import "strings"

// HasLimit reports whether the query has a top-level LIMIT clause.
func HasLimit(sql string) bool {
	return FindClause(sql, ClauseLimit) >= 0
}

// HasOrderBy reports whether the query has a top-level ORDER BY clause.
func HasOrderBy(sql string) bool {
	return FindClause(sql, ClauseOrderBy) >= 0
}

// InjectLimit adds a LIMIT clause to a SELECT statement that does not have
// one, so browsing a table in the UI never triggers a full scan. It is a
// no-op when the query is empty, the limit is not positive, a top-level
// LIMIT is already present, or the statement does not start with SELECT.
// Applying it twice yields the same result as applying it once.
func InjectLimit(sql string, limit int) string {
	if sql == "" || limit <= 0 || HasLimit(sql) || !isSelect(sql) {
		return sql
	}
	return SetLimit(sql, limit)
}

// InjectOrderBy adds ORDER BY "<column>" <order> to a query that has no
// top-level ORDER BY. It is a no-op when the query or column is empty, an
// ORDER BY is already present, or the query is a scalar aggregate without
// GROUP BY (ordering a single-row result is invalid ClickHouse SQL).
// Applying it twice yields the same result as applying it once.
func InjectOrderBy(sql, column string, order SortOrder) string {
	if sql == "" || column == "" || HasOrderBy(sql) || IsScalarAggregate(sql) {
		return sql
	}
	return SetOrderBy(sql, column, order)
}

// isSelect reports whether the first token of the statement is SELECT.
func isSelect(sql string) bool {
	s := strings.TrimSpace(sql)
	if len(s) < 6 || !strings.EqualFold(s[:6], "SELECT") {
		return false
	}
	return len(s) == 6 || !isWordChar(s[6])
}
