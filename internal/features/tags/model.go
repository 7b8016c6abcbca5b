// Package tags implements the flat tag vocabulary books can be labeled
// with: create with a unique name, list all, fetch by id.
package tags

// Tag is a uniquely named label attachable to any number of books.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateTagRequest holds the data submitted to POST /tags.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}
