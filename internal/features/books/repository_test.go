package books

import (
	"strings"
	"testing"
)

// --- Filter Builder Tests ---

func TestBuildListFilters_Empty(t *testing.T) {
	where, args := buildListFilters(ListOptions{})
	if where != "" {
		t.Errorf("expected empty WHERE clause, got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildListFilters_SearchIsSubstringMatch(t *testing.T) {
	where, args := buildListFilters(ListOptions{Search: "go"})
	if !strings.Contains(where, "b.title LIKE ?") {
		t.Errorf("expected title LIKE filter, got %q", where)
	}
	if len(args) != 1 || args[0] != "%go%" {
		t.Errorf("expected wrapped LIKE pattern, got %v", args)
	}
}

func TestBuildListFilters_AllFilters(t *testing.T) {
	min, max := 10.0, 50.0
	where, args := buildListFilters(ListOptions{
		AuthorID:   "author-1",
		Search:     "go",
		CategoryID: "cat-1",
		MinPrice:   &min,
		MaxPrice:   &max,
	})

	for _, frag := range []string{
		"b.author_id = ?",
		"b.title LIKE ?",
		"b.category_id = ?",
		"b.price >= ?",
		"b.price <= ?",
	} {
		if !strings.Contains(where, frag) {
			t.Errorf("expected fragment %q in %q", frag, where)
		}
	}
	if strings.Count(where, " AND ") != 4 {
		t.Errorf("expected 4 AND joins, got %q", where)
	}
	if len(args) != 5 {
		t.Errorf("expected 5 args, got %d", len(args))
	}
}

func TestBuildListFilters_ZeroPriceBoundIsApplied(t *testing.T) {
	// A pointer to zero is an explicit bound, unlike a nil pointer.
	zero := 0.0
	where, args := buildListFilters(ListOptions{MinPrice: &zero})
	if !strings.Contains(where, "b.price >= ?") {
		t.Errorf("expected min price filter, got %q", where)
	}
	if len(args) != 1 || args[0] != 0.0 {
		t.Errorf("expected zero bound arg, got %v", args)
	}
}

// --- Sort Whitelist Tests ---

func TestSortColumn_Whitelist(t *testing.T) {
	tests := []struct {
		sortBy string
		want   string
	}{
		{"title", "b.title"},
		{"price", "b.price"},
		{"created_at", "b.created_at"},
		{"", "b.created_at"},
		// Anything outside the whitelist falls back -- including attempts
		// to smuggle SQL through the sort field.
		{"price; DROP TABLE books", "b.created_at"},
		{"author_id", "b.created_at"},
	}
	for _, tt := range tests {
		if got := sortColumn(tt.sortBy); got != tt.want {
			t.Errorf("sortColumn(%q) = %q, want %q", tt.sortBy, got, tt.want)
		}
	}
}

func TestSortDirection(t *testing.T) {
	if got := sortDirection(SortDesc); got != "DESC" {
		t.Errorf("expected DESC, got %q", got)
	}
	for _, in := range []string{SortAsc, "", "DESC; --", "descending"} {
		if got := sortDirection(in); got != "ASC" {
			t.Errorf("sortDirection(%q) = %q, want ASC", in, got)
		}
	}
}

// --- Row Scan Tests ---

func TestScanBookRow_SplitsTags(t *testing.T) {
	scan := fakeScan("b-1", "Title", 9.99, nil, "a-1", "c-1", "Alice", "Fiction", "go,testing")
	row, err := scanBookRow(scan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(row.Tags) != 2 || row.Tags[0] != "go" || row.Tags[1] != "testing" {
		t.Errorf("expected [go testing], got %v", row.Tags)
	}
}

func TestScanBookRow_EmptyTagsStayNonNil(t *testing.T) {
	scan := fakeScan("b-1", "Title", 9.99, nil, "a-1", "c-1", "Alice", "Fiction", "")
	row, err := scanBookRow(scan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Tags == nil {
		t.Fatal("expected non-nil tags slice")
	}
	if len(row.Tags) != 0 {
		t.Errorf("expected empty tags, got %v", row.Tags)
	}
}

// fakeScan feeds canned column values into scanBookRow's scan callback in
// the select list's column order. Timestamps are left at their zero values.
func fakeScan(id, title string, price float64, thumbnail *string, authorID, categoryID, authorName, categoryName, tagList string) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = title
		*(dest[2].(*float64)) = price
		*(dest[3].(**string)) = thumbnail
		*(dest[4].(*string)) = authorID
		*(dest[5].(*string)) = categoryID
		// dest[6], dest[7]: created_at, updated_at -- leave zero.
		*(dest[8].(*string)) = authorName
		*(dest[9].(*string)) = categoryName
		*(dest[10].(*string)) = tagList
		return nil
	}
}
