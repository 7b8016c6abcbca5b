// Package categories implements the flat book category list: create with a
// unique name, list all, fetch by id. No hierarchy.
package categories

// Category is a flat, uniquely named grouping for books.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateCategoryRequest holds the data submitted to POST /categories.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}
