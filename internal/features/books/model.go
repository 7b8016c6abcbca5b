// Package books implements the catalog: book CRUD with author ownership
// and the filtered, sorted, paginated listing queries.
//
// Listings come back denormalized: every row carries the author's display
// name, the category name, and the aggregated tag names, assembled in a
// single grouped query so list views never fan out into N+1 lookups.
package books

import "time"

// Book is the bare book row as stored. AuthorID is immutable after
// creation; only the author may update or delete the book.
type Book struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	Thumbnail  *string   `json:"thumbnail,omitempty"`
	AuthorID   string    `json:"authorId"`
	CategoryID string    `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BookRow is the denormalized listing row: the book plus its author's
// display name, category name, and tag names. Tags is always non-nil --
// a book without tags serializes as an empty array, not null.
type BookRow struct {
	Book
	AuthorName   string   `json:"authorName"`
	CategoryName string   `json:"categoryName"`
	Tags         []string `json:"tags"`
}

// --- Request DTOs (bound from HTTP requests) ---

// CreateBookRequest holds the data submitted to POST /book.
type CreateBookRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=255"`
	Price      float64  `json:"price" validate:"required,gt=0"`
	Thumbnail  *string  `json:"thumbnail" validate:"omitempty,url,max=255"`
	CategoryID string   `json:"categoryId" validate:"required,uuid"`
	Tags       []string `json:"tags" validate:"omitempty,dive,uuid"`
}

// UpdateBookRequest holds the partial fields accepted by PUT /book/:id.
// Absent fields are left untouched. The author can never be reassigned.
type UpdateBookRequest struct {
	Title      *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Price      *float64 `json:"price" validate:"omitempty,gt=0"`
	Thumbnail  *string  `json:"thumbnail" validate:"omitempty,url,max=255"`
	CategoryID *string  `json:"categoryId" validate:"omitempty,uuid"`
}

// --- Listing ---

// Sort directions and the default/fallback sort columns.
const (
	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultSortBy = "title"
	DefaultLimit  = 10
)

// ListOptions captures every knob of the listing query. AuthorID empty
// means the "all" scope; non-empty constrains to that author's books.
type ListOptions struct {
	AuthorID string

	// Filters. Zero values mean "not set".
	Search     string
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64

	// Sorting. SortBy outside the whitelist falls back to created_at.
	SortBy string
	Sort   string

	// Paging, 1-indexed.
	Page  int
	Limit int
}

// Pagination describes the result window.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// ListResult is the listing payload: denormalized rows plus pagination.
type ListResult struct {
	Data       []BookRow  `json:"data"`
	Pagination Pagination `json:"pagination"`
}
