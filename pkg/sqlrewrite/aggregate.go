package sqlrewrite

import "strings"

// IsScalarAggregate reports whether the query is a scalar-aggregate query
// without grouping: its projection list calls at least one recognized
// aggregate function and no top-level GROUP BY is present. Such queries
// yield a single row, so injecting an ORDER BY would produce invalid SQL.
// Grouped aggregates return false because they produce multiple rows and
// may be ordered safely.
func IsScalarAggregate(sql string) bool {
	if FindClause(sql, ClauseGroupBy) >= 0 {
		return false
	}
	start, selEnd := locate(sql, "SELECT")
	if start < 0 {
		return false
	}
	projection := sql[selEnd:]
	if from, _ := locate(projection, "FROM"); from >= 0 {
		projection = projection[:from]
	}
	return hasAggregateCall(projection)
}

// hasAggregateCall scans a projection list for a recognized aggregate name
// followed by an opening parenthesis. Nesting depth is irrelevant here:
// an aggregate wrapped in a scalar function (round(sum(x))) still makes
// the result a single row.
func hasAggregateCall(projection string) bool {
	for i := 0; i < len(projection); i++ {
		c := projection[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			i = skipQuoted(projection, i)
		case isWordChar(c):
			j := i
			for j < len(projection) && isWordChar(projection[j]) {
				j++
			}
			name := strings.ToLower(projection[i:j])
			k := j
			for k < len(projection) && isSpace(projection[k]) {
				k++
			}
			if _, ok := aggregateSet[name]; ok && k < len(projection) && projection[k] == '(' {
				return true
			}
			i = j - 1
		}
	}
	return false
}
