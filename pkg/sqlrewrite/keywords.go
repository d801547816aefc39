package sqlrewrite

import "strings"

// Clause keywords recognized at the top level of a query. Matching is
// case-insensitive; multi-word keywords allow any whitespace run between
// words.
const (
	ClauseWhere    = "WHERE"
	ClauseGroupBy  = "GROUP BY"
	ClauseOrderBy  = "ORDER BY"
	ClauseLimit    = "LIMIT"
	ClauseSettings = "SETTINGS"
	ClauseFormat   = "FORMAT"
)

// clauseOrder lists the recognized clauses in the order ClickHouse expects
// them in a SELECT statement. Every insertion point is derived from slices
// of this table, so extending the vocabulary for another dialect is a
// single edit.
var clauseOrder = []string{
	ClauseWhere,
	ClauseGroupBy,
	ClauseOrderBy,
	ClauseLimit,
	ClauseSettings,
	ClauseFormat,
}

// Clauses returns the recognized clause keywords in the order ClickHouse
// expects them.
func Clauses() []string {
	return append([]string(nil), clauseOrder...)
}

// Followers of each insertable clause: a new clause is spliced in
// immediately before the earliest of its followers.
var (
	whereFollowers   = clauseOrder[1:]
	orderByFollowers = clauseOrder[3:]
	limitFollowers   = clauseOrder[4:]
)

// aggregateFunctions lists the ClickHouse aggregate functions the detector
// recognizes in a projection list. Combinator-suffixed forms (sumIf,
// countDistinct, ...) are deliberately absent: the word-boundary match
// already treats them as different identifiers.
var aggregateFunctions = []string{
	"count",
	"sum",
	"avg",
	"min",
	"max",
	"any",
	"anyLast",
	"argMin",
	"argMax",
	"uniq",
	"uniqExact",
	"uniqCombined",
	"uniqCombined64",
	"uniqHLL12",
	"uniqTheta",
	"groupArray",
	"groupUniqArray",
	"quantile",
	"quantiles",
	"median",
}

// aggregateSet holds the lowercased aggregate names for lookup.
var aggregateSet = make(map[string]struct{}, len(aggregateFunctions))

func init() {
	for _, name := range aggregateFunctions {
		aggregateSet[strings.ToLower(name)] = struct{}{}
	}
}
