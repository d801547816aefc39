// Package sqlrewrite locates and rewrites top-level clauses of ClickHouse
// SQL queries without parsing them.
//
// Queries are treated as immutable text: every operation returns a new
// string and none validate syntax. A single depth- and quote-tracking scan
// (FindClause) is the only source of truth for clause positions; setters,
// removers and injectors are implemented purely as slice-and-splice around
// those positions. Inapplicable rewrites are silent no-ops rather than
// errors, so callers can apply them unconditionally on every editor event.
//
// The package backs two features of a log-exploration UI: automatic
// pagination (InjectLimit) and log-context pagination (BuildContextQuery).
package sqlrewrite
