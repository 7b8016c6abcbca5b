package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// CategoryRepository defines the data access contract for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]Category, error)

	// NameExists is the advisory fast path; the UNIQUE constraint on name
	// is the source of truth.
	NameExists(ctx context.Context, name string) (bool, error)
}

// categoryRepository implements CategoryRepository with hand-written MySQL queries.
type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository backed by the given DB pool.
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a new category. A duplicate name surfaces as
// apperror.Conflict -- the UNIQUE constraint wins races that slip past the
// NameExists pre-check.
func (r *categoryRepository) Create(ctx context.Context, category *Category) error {
	query := `INSERT INTO categories (id, name) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, category.ID, category.Name)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict("category already exists")
		}
		return fmt.Errorf("inserting category: %w", err)
	}

	return nil
}

// FindByID retrieves a single category by primary key.
func (r *categoryRepository) FindByID(ctx context.Context, id string) (*Category, error) {
	query := `SELECT id, name FROM categories WHERE id = ?`

	category := &Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying category by id: %w", err)
	}

	return category, nil
}

// List returns all categories ordered by name.
func (r *categoryRepository) List(ctx context.Context) ([]Category, error) {
	query := `SELECT id, name FROM categories ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}

// NameExists returns true if a category with the given name already exists.
func (r *categoryRepository) NameExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE name = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking category name: %w", err)
	}

	return exists, nil
}

// isDuplicateEntry checks if a MySQL error is a duplicate key violation.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
