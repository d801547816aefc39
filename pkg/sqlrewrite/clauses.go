package sqlrewrite

import (
	"strconv"
	"strings"
)

// SortOrder is a row-ordering direction as written into an ORDER BY clause.
// The value is spliced into the query verbatim.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// AddWhereCondition ANDs a new condition into the top-level WHERE clause,
// placing it before the existing predicate. When the query has no WHERE, a
// new clause is inserted before the earliest of GROUP BY, ORDER BY, LIMIT,
// SETTINGS and FORMAT, or appended when none exist. An empty query or
// condition is a no-op. The condition fragment is spliced verbatim; quoting
// and escaping are the caller's concern.
func AddWhereCondition(sql, condition string) string {
	if sql == "" || condition == "" {
		return sql
	}
	sql = TrimSemicolon(sql)
	if _, end := locate(sql, ClauseWhere); end >= 0 {
		return sql[:end] + " " + condition + " AND" + sql[end:]
	}
	return insertClause(sql, ClauseWhere+" "+condition, whereFollowers)
}

// RemoveOrderBy deletes the top-level ORDER BY clause. The removed span
// runs from the keyword to the earliest following LIMIT, SETTINGS or FORMAT
// clause, or to the end of the string, so trailing clauses survive intact.
// Queries without an ORDER BY pass through unchanged.
func RemoveOrderBy(sql string) string {
	pos, end := locate(sql, ClauseOrderBy)
	if pos < 0 {
		return sql
	}
	return removeSpan(sql, pos, end, orderByFollowers)
}

// SetOrderBy replaces any top-level ORDER BY with ORDER BY "<column>"
// <order>, inserted before the earliest of LIMIT, SETTINGS and FORMAT, or
// appended. An empty query or column is a no-op. The order direction is
// written verbatim.
func SetOrderBy(sql, column string, order SortOrder) string {
	if sql == "" || column == "" {
		return sql
	}
	sql = RemoveOrderBy(TrimSemicolon(sql))
	clause := ClauseOrderBy + ` "` + column + `" ` + string(order)
	return insertClause(sql, clause, orderByFollowers)
}

// RemoveLimit deletes the top-level LIMIT clause and its argument(s),
// covering both the LIMIT n and LIMIT n, m forms. The removed span runs to
// the earliest following SETTINGS or FORMAT clause, or to the end of the
// string. Queries without a LIMIT pass through unchanged.
func RemoveLimit(sql string) string {
	pos, end := locate(sql, ClauseLimit)
	if pos < 0 {
		return sql
	}
	return removeSpan(sql, pos, end, limitFollowers)
}

// SetLimit replaces any top-level LIMIT with LIMIT <limit>, inserted before
// the earliest of SETTINGS and FORMAT, or appended. An empty query or a
// non-positive limit is a no-op.
func SetLimit(sql string, limit int) string {
	if sql == "" || limit <= 0 {
		return sql
	}
	sql = RemoveLimit(TrimSemicolon(sql))
	return insertClause(sql, ClauseLimit+" "+strconv.Itoa(limit), limitFollowers)
}

// insertClause splices a clause fragment in immediately before the earliest
// of the follower keywords, or appends it when none are present.
func insertClause(sql, clause string, followers []string) string {
	if pos := earliestClause(sql, followers); pos >= 0 {
		return strings.TrimRight(sql[:pos], " \t\r\n") + " " + clause + " " + sql[pos:]
	}
	return sql + " " + clause
}

// removeSpan drops the clause starting at pos, extending the cut from the
// keyword end to the earliest follower keyword or to the end of the string,
// and normalizes whitespace at the splice boundary.
func removeSpan(sql string, pos, end int, followers []string) string {
	head := strings.TrimRight(sql[:pos], " \t\r\n")
	tail := sql[end:]
	if next := earliestClause(tail, followers); next >= 0 {
		if head == "" {
			return tail[next:]
		}
		return head + " " + tail[next:]
	}
	return head
}
