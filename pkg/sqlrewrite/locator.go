package sqlrewrite

import "strings"

// FindClause returns the byte offset of the first occurrence of the given
// clause keyword at parenthesis-nesting depth 0 of the query, or -1 when no
// such occurrence exists. The keyword may be multi-word ("GROUP BY");
// matching is case-insensitive and requires word boundaries on both sides,
// so the same keyword inside a subquery, a quoted identifier or a string
// literal is never reported.
func FindClause(sql, keyword string) int {
	start, _ := locate(sql, keyword)
	return start
}

// TrimSemicolon strips a single trailing statement terminator and the
// whitespace around it. Queries without a terminator pass through
// unchanged. Setters apply this before splicing so a rewritten query never
// carries an embedded terminator in front of new clauses.
func TrimSemicolon(sql string) string {
	trimmed := strings.TrimRight(sql, " \t\r\n")
	if strings.HasSuffix(trimmed, ";") {
		return strings.TrimRight(trimmed[:len(trimmed)-1], " \t\r\n")
	}
	return sql
}

// locate returns the start offset of the keyword and the offset just past
// its last word, or (-1, -1).
func locate(sql, keyword string) (int, int) {
	return scanClause(sql, strings.Fields(keyword))
}

// scanClause is the single left-to-right pass every clause lookup goes
// through. It tracks parenthesis depth, treats quoted spans as opaque and
// tests for a keyword match only at depth 0.
func scanClause(sql string, words []string) (int, int) {
	if len(words) == 0 {
		return -1, -1
	}
	depth := 0
	for i := 0; i < len(sql); i++ {
		switch sql[i] {
		case '\'', '"', '`':
			i = skipQuoted(sql, i)
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth != 0 {
				continue
			}
			if end, ok := matchKeywordAt(sql, i, words); ok {
				return i, end
			}
		}
	}
	return -1, -1
}

// skipQuoted returns the index of the quote character closing the literal
// that opens at start, honoring backslash escapes and doubled-quote
// escapes. An unterminated literal consumes the rest of the string.
func skipQuoted(sql string, start int) int {
	quote := sql[start]
	for i := start + 1; i < len(sql); i++ {
		switch sql[i] {
		case '\\':
			i++
		case quote:
			if i+1 < len(sql) && sql[i+1] == quote {
				i++
				continue
			}
			return i
		}
	}
	return len(sql) - 1
}

// matchKeywordAt reports whether the keyword words match at pos with word
// boundaries on both sides. Words of a multi-word keyword must be separated
// by at least one whitespace character. Returns the offset just past the
// match.
func matchKeywordAt(sql string, pos int, words []string) (int, bool) {
	if pos > 0 && isWordChar(sql[pos-1]) {
		return 0, false
	}
	i := pos
	for n, word := range words {
		if n > 0 {
			j := i
			for j < len(sql) && isSpace(sql[j]) {
				j++
			}
			if j == i {
				return 0, false
			}
			i = j
		}
		if i+len(word) > len(sql) || !strings.EqualFold(sql[i:i+len(word)], word) {
			return 0, false
		}
		i += len(word)
	}
	if i < len(sql) && isWordChar(sql[i]) {
		return 0, false
	}
	return i, true
}

// earliestClause returns the smallest top-level offset among the given
// keywords, or -1 when none are present.
func earliestClause(sql string, keywords []string) int {
	pos := -1
	for _, kw := range keywords {
		if p := FindClause(sql, kw); p >= 0 && (pos < 0 || p < pos) {
			pos = p
		}
	}
	return pos
}

func isWordChar(c byte) bool {
	return c == '_' ||
		c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
