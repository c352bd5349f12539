// Package repositories contains the MySQL data access layer. Each
// repository is a thin value type holding an optional *sql.DB; when the
// field is nil it falls back to the shared connection from config.
package repositories

import "strings"

// qualify prefixes each rendered predicate condition with a table alias
// so scoped columns stay unambiguous in joined queries.
func qualify(alias string, conds []string) []string {
	out := make([]string, len(conds))
	for i, c := range conds {
		out[i] = alias + c
	}
	return out
}

// nullIfEmpty stores optional strings as NULL instead of "".
func nullIfEmpty(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func joinAnd(conds []string) string {
	return strings.Join(conds, " AND ")
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}
