// Package pagination implements cursor-based paging over any result set
// ordered by strictly descending id. The cursor is the id of the last row
// of the previous page and is applied as an exclusive upper bound, so a
// caller's forward traversal never repeats or skips rows even when rows
// are deleted between calls.
package pagination

import "strconv"

// DefaultLimit is the page size applied when the caller supplies none.
const DefaultLimit = 20

// PageInfo carries the pagination metadata of a single page.
// NextCursor is serialized as a string so large ids survive consumers
// that cannot represent 64-bit JSON numbers.
type PageInfo struct {
	NextCursor  string `json:"nextCursor,omitempty"`
	HasNextPage bool   `json:"hasNextPage"`
}

// Page is the wire shape of every paginated list response.
type Page[T any] struct {
	Data     []T      `json:"data"`
	PageInfo PageInfo `json:"pageInfo"`
}

// Fetch loads at most limit rows satisfying the conjunction of conds,
// ordered by id descending. Implemented by the persistence layer.
type Fetch[T any] func(conds []string, args []any, limit int) ([]T, error)

// ListPage runs one page of a cursor traversal: it extends the caller's
// predicate with the exclusive cursor bound, fetches the window, and
// derives the metadata for the following page. It holds no state; the
// only continuation token is the cursor the caller re-submits.
func ListPage[T any](conds []string, args []any, cursor int64, limit int, id func(T) int64, fetch Fetch[T]) (Page[T], error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if clause, bound := CursorClause(cursor); clause != "" {
		conds = append(conds, clause)
		args = append(args, bound...)
	}
	rows, err := fetch(conds, args, limit)
	if err != nil {
		return Page[T]{}, err
	}
	return NewPage(rows, limit, id), nil
}

// NewPage derives pagination metadata from a fetched window.
// HasNextPage is optimistic: a full page signals that one more fetch is
// worth attempting, not that a further row is guaranteed to exist. A
// follow-up page may legitimately come back empty.
func NewPage[T any](data []T, limit int, id func(T) int64) Page[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	info := PageInfo{HasNextPage: len(data) == limit}
	if info.HasNextPage && len(data) > 0 {
		info.NextCursor = strconv.FormatInt(id(data[len(data)-1]), 10)
	}
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, PageInfo: info}
}

// CursorClause returns the exclusive id bound for a cursor, or an empty
// clause when no cursor was supplied. The cursor is never dereferenced:
// a value whose row has since been deleted is still a valid bound.
func CursorClause(cursor int64) (string, []any) {
	if cursor <= 0 {
		return "", nil
	}
	return "id < ?", []any{cursor}
}

// ParseCursor converts the wire representation of a cursor back into the
// id bound. Empty input means "start from the newest row".
func ParseCursor(s string) (int64, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
