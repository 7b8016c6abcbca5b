package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// TagRepository defines the data access contract for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	FindByID(ctx context.Context, id string) (*Tag, error)
	List(ctx context.Context) ([]Tag, error)
	NameExists(ctx context.Context, name string) (bool, error)
}

// tagRepository implements TagRepository with hand-written MySQL queries.
type tagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new tag repository backed by the given DB pool.
func NewTagRepository(db *sql.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *Tag) error {
	query := `INSERT INTO tags (id, name) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, tag.ID, tag.Name)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict("tag already exists")
		}
		return fmt.Errorf("inserting tag: %w", err)
	}

	return nil
}

func (r *tagRepository) FindByID(ctx context.Context, id string) (*Tag, error) {
	query := `SELECT id, name FROM tags WHERE id = ?`

	tag := &Tag{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tag.ID, &tag.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("tag not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying tag by id: %w", err)
	}

	return tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]Tag, error) {
	query := `SELECT id, name FROM tags ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tag rows: %w", err)
	}

	return tags, nil
}

func (r *tagRepository) NameExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tags WHERE name = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking tag name: %w", err)
	}

	return exists, nil
}

// isDuplicateEntry checks if a MySQL error is a duplicate key violation.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
