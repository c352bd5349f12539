package pagination

import (
	"testing"
)

type row struct{ id int64 }

// memFetch pages over the given ids (must be sorted descending) the way
// the SQL layer would: apply the "id < ?" bound, then cut to limit.
func memFetch(ids []int64) Fetch[row] {
	return func(conds []string, args []any, limit int) ([]row, error) {
		bound := int64(0)
		for i, c := range conds {
			if c == "id < ?" {
				bound = args[i].(int64)
			}
		}
		var out []row
		for _, id := range ids {
			if bound > 0 && id >= bound {
				continue
			}
			out = append(out, row{id: id})
			if len(out) == limit {
				break
			}
		}
		return out, nil
	}
}

func rowID(r row) int64 { return r.id }

func collectIDs(p Page[row]) []int64 {
	out := make([]int64, 0, len(p.Data))
	for _, r := range p.Data {
		out = append(out, r.id)
	}
	return out
}

func TestListPageFirstPage(t *testing.T) {
	fetch := memFetch([]int64{10, 9, 8, 7, 6, 5})

	page, err := ListPage(nil, nil, 0, 3, rowID, fetch)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}

	got := collectIDs(page)
	want := []int64{10, 9, 8}
	if len(got) != len(want) {
		t.Fatalf("page size %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got id %d, want %d", i, got[i], want[i])
		}
	}
	if !page.PageInfo.HasNextPage {
		t.Fatalf("full page should report hasNextPage")
	}
	if page.PageInfo.NextCursor != "8" {
		t.Fatalf("nextCursor = %q, want \"8\"", page.PageInfo.NextCursor)
	}
}

func TestListPageCursorIsExclusive(t *testing.T) {
	fetch := memFetch([]int64{10, 9, 8, 7, 6, 5})

	page, err := ListPage(nil, nil, 8, 3, rowID, fetch)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}

	got := collectIDs(page)
	want := []int64{7, 6, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got id %d, want %d", i, got[i], want[i])
		}
	}
	for _, id := range got {
		if id >= 8 {
			t.Fatalf("cursor bound leaked row %d", id)
		}
	}
}

func TestListPageIdempotent(t *testing.T) {
	fetch := memFetch([]int64{10, 9, 8, 7, 6, 5})

	first, err := ListPage(nil, nil, 8, 3, rowID, fetch)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	second, err := ListPage(nil, nil, 8, 3, rowID, fetch)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}

	a, b := collectIDs(first), collectIDs(second)
	if len(a) != len(b) {
		t.Fatalf("re-submitted cursor changed page size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("re-submitted cursor changed row %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestListPageSurvivesDeletedCursorRow(t *testing.T) {
	// Row 8 handed out as the cursor, then deleted before the next call.
	fetch := memFetch([]int64{10, 9, 7, 6, 5})

	page, err := ListPage(nil, nil, 8, 3, rowID, fetch)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}

	got := collectIDs(page)
	want := []int64{7, 6, 5}
	if len(got) != len(want) {
		t.Fatalf("page size %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got id %d, want %d", i, got[i], want[i])
		}
	}
}

func TestListPagePartialPageEndsTraversal(t *testing.T) {
	fetch := memFetch([]int64{10, 9})

	page, err := ListPage(nil, nil, 0, 3, rowID, fetch)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	if page.PageInfo.HasNextPage {
		t.Fatalf("partial page should not report hasNextPage")
	}
	if page.PageInfo.NextCursor != "" {
		t.Fatalf("partial page should carry no nextCursor, got %q", page.PageInfo.NextCursor)
	}
}

func TestListPageOptimisticHasNextPage(t *testing.T) {
	// Exactly limit rows in the set: the page is full, so the engine
	// signals a next page even though the follow-up will be empty.
	fetch := memFetch([]int64{3, 2, 1})

	page, err := ListPage(nil, nil, 0, 3, rowID, fetch)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	if !page.PageInfo.HasNextPage {
		t.Fatalf("full page should report hasNextPage")
	}

	next, err := ListPage(nil, nil, 1, 3, rowID, fetch)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	if len(next.Data) != 0 {
		t.Fatalf("follow-up page should be empty, got %d rows", len(next.Data))
	}
	if next.PageInfo.HasNextPage {
		t.Fatalf("empty page should not report hasNextPage")
	}
	if next.Data == nil {
		t.Fatalf("empty page must serialize as [], not null")
	}
}

func TestListPageDefaultLimit(t *testing.T) {
	ids := make([]int64, 0, 30)
	for id := int64(30); id >= 1; id-- {
		ids = append(ids, id)
	}
	fetch := memFetch(ids)

	page, err := ListPage(nil, nil, 0, 0, rowID, fetch)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	if len(page.Data) != DefaultLimit {
		t.Fatalf("default limit page size %d, want %d", len(page.Data), DefaultLimit)
	}
}

func TestListPageKeepsCallerConds(t *testing.T) {
	var seenConds []string
	var seenArgs []any
	fetch := func(conds []string, args []any, limit int) ([]row, error) {
		seenConds = conds
		seenArgs = args
		return nil, nil
	}

	_, err := ListPage([]string{"company_id = ?"}, []any{int64(7)}, 50, 10, rowID, fetch)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	if len(seenConds) != 2 || seenConds[0] != "company_id = ?" || seenConds[1] != "id < ?" {
		t.Fatalf("conds = %v, want caller predicate plus cursor bound", seenConds)
	}
	if len(seenArgs) != 2 || seenArgs[0].(int64) != 7 || seenArgs[1].(int64) != 50 {
		t.Fatalf("args = %v, want [7 50]", seenArgs)
	}
}

func TestParseCursor(t *testing.T) {
	if n, ok := ParseCursor(""); !ok || n != 0 {
		t.Fatalf("empty cursor should parse to 0, got %d ok=%v", n, ok)
	}
	if n, ok := ParseCursor("42"); !ok || n != 42 {
		t.Fatalf("cursor \"42\" parsed to %d ok=%v", n, ok)
	}
	if _, ok := ParseCursor("abc"); ok {
		t.Fatalf("non-numeric cursor should be rejected")
	}
	if _, ok := ParseCursor("-5"); ok {
		t.Fatalf("negative cursor should be rejected")
	}
}

func TestCursorClause(t *testing.T) {
	if clause, args := CursorClause(0); clause != "" || args != nil {
		t.Fatalf("zero cursor should yield no clause, got %q %v", clause, args)
	}
	clause, args := CursorClause(9)
	if clause != "id < ?" {
		t.Fatalf("clause = %q, want \"id < ?\"", clause)
	}
	if len(args) != 1 || args[0].(int64) != 9 {
		t.Fatalf("args = %v, want [9]", args)
	}
}
