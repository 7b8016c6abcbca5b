package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// BookRepository defines the data access contract for the catalog.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type BookRepository interface {
	Create(ctx context.Context, book *Book) error

	// AddTagLinks inserts one book_tags row per tag id. The table carries
	// no uniqueness constraint; duplicate links are possible.
	AddTagLinks(ctx context.Context, bookID string, tagIDs []string) error

	// FindByID returns the denormalized row (author name, category name,
	// tag names). Returns apperror.NotFound when absent.
	FindByID(ctx context.Context, id string) (*BookRow, error)

	// FindBareByID returns just the stored book row, used for existence
	// and ownership checks before mutations.
	FindBareByID(ctx context.Context, id string) (*Book, error)

	// List runs the filtered, sorted, paginated listing query and the
	// matching COUNT(*). Rows come back denormalized.
	List(ctx context.Context, opts ListOptions) ([]BookRow, int, error)

	// Update applies only the provided columns and refreshes updated_at.
	Update(ctx context.Context, id string, fields map[string]any) error

	// Delete removes the book row. Tag links are NOT cleaned up -- orphaned
	// book_tags rows remain, matching the persisted-state contract.
	Delete(ctx context.Context, id string) error
}

// bookRepository implements BookRepository with hand-written MySQL queries.
type bookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new book repository backed by the given DB pool.
func NewBookRepository(db *sql.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create inserts a new book row.
func (r *bookRepository) Create(ctx context.Context, book *Book) error {
	query := `INSERT INTO books (id, title, price, thumbnail, author_id, category_id, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Price,
		book.Thumbnail,
		book.AuthorID,
		book.CategoryID,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting book: %w", err)
	}

	return nil
}

// AddTagLinks inserts the book_tags rows in a single multi-row statement.
func (r *bookRepository) AddTagLinks(ctx context.Context, bookID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO book_tags (book_id, tag_id) VALUES `)
	args := make([]any, 0, len(tagIDs)*2)
	for i, tagID := range tagIDs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?)")
		args = append(args, bookID, tagID)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("inserting book tag links: %w", err)
	}

	return nil
}

// denormalizedSelect is the shared SELECT head for listing and single-book
// reads: books outer-joined to author, category, and the tag link/name
// tables, one grouped row per book, tag names comma-aggregated.
const denormalizedSelect = `
	SELECT b.id, b.title, b.price, b.thumbnail, b.author_id, b.category_id,
	       b.created_at, b.updated_at,
	       COALESCE(u.full_name, ''), COALESCE(c.name, ''),
	       COALESCE(GROUP_CONCAT(DISTINCT t.name ORDER BY t.name SEPARATOR ','), '')
	FROM books b
	LEFT JOIN users u ON u.id = b.author_id
	LEFT JOIN categories c ON c.id = b.category_id
	LEFT JOIN book_tags bt ON bt.book_id = b.id
	LEFT JOIN tags t ON t.id = bt.tag_id`

const denormalizedGroupBy = `
	GROUP BY b.id, b.title, b.price, b.thumbnail, b.author_id, b.category_id,
	         b.created_at, b.updated_at, u.full_name, c.name`

// scanBookRow scans one denormalized row from either QueryRow or Rows.
func scanBookRow(scan func(dest ...any) error) (*BookRow, error) {
	var row BookRow
	var tagList string
	err := scan(
		&row.ID,
		&row.Title,
		&row.Price,
		&row.Thumbnail,
		&row.AuthorID,
		&row.CategoryID,
		&row.CreatedAt,
		&row.UpdatedAt,
		&row.AuthorName,
		&row.CategoryName,
		&tagList,
	)
	if err != nil {
		return nil, err
	}

	// Empty aggregation means no tags -- keep the slice non-nil so the
	// JSON stays an empty array.
	row.Tags = []string{}
	if tagList != "" {
		row.Tags = strings.Split(tagList, ",")
	}

	return &row, nil
}

// FindByID returns the denormalized row for a single book.
func (r *bookRepository) FindByID(ctx context.Context, id string) (*BookRow, error) {
	query := denormalizedSelect + ` WHERE b.id = ?` + denormalizedGroupBy

	row, err := scanBookRow(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("book not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying book by id: %w", err)
	}

	return row, nil
}

// FindBareByID returns the stored book row without joins.
func (r *bookRepository) FindBareByID(ctx context.Context, id string) (*Book, error) {
	query := `SELECT id, title, price, thumbnail, author_id, category_id, created_at, updated_at
	          FROM books WHERE id = ?`

	book := &Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Price,
		&book.Thumbnail,
		&book.AuthorID,
		&book.CategoryID,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("book not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying book by id: %w", err)
	}

	return book, nil
}

// List runs the COUNT and page queries with the same filter set. The
// filters only touch the books table, so the count skips the joins.
func (r *bookRepository) List(ctx context.Context, opts ListOptions) ([]BookRow, int, error) {
	where, args := buildListFilters(opts)

	var total int
	countQuery := `SELECT COUNT(*) FROM books b` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting books: %w", err)
	}

	query := denormalizedSelect + where + denormalizedGroupBy +
		fmt.Sprintf(" ORDER BY %s %s", sortColumn(opts.SortBy), sortDirection(opts.Sort)) +
		` LIMIT ? OFFSET ?`
	pageArgs := append(append([]any{}, args...), opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	result := []BookRow{}
	for rows.Next() {
		row, err := scanBookRow(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning book row: %w", err)
		}
		result = append(result, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating book rows: %w", err)
	}

	return result, total, nil
}

// buildListFilters renders the WHERE clause for the listing query. Returns
// "" when no filter applies. Filters reference the books table alias `b`
// only, so the same clause serves both the page and the count query.
func buildListFilters(opts ListOptions) (string, []any) {
	var conds []string
	var args []any

	if opts.AuthorID != "" {
		conds = append(conds, "b.author_id = ?")
		args = append(args, opts.AuthorID)
	}
	if opts.Search != "" {
		conds = append(conds, "b.title LIKE ?")
		args = append(args, "%"+opts.Search+"%")
	}
	if opts.CategoryID != "" {
		conds = append(conds, "b.category_id = ?")
		args = append(args, opts.CategoryID)
	}
	if opts.MinPrice != nil {
		conds = append(conds, "b.price >= ?")
		args = append(args, *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		conds = append(conds, "b.price <= ?")
		args = append(args, *opts.MaxPrice)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// sortColumn maps the requested sort field onto a real column. Only the
// whitelisted fields are sortable; anything else falls back to created_at.
// Never interpolate the raw request value -- this is the injection guard.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "title":
		return "b.title"
	case "price":
		return "b.price"
	default:
		return "b.created_at"
	}
}

// sortDirection normalizes the direction; ascending unless "desc".
func sortDirection(sort string) string {
	if sort == SortDesc {
		return "DESC"
	}
	return "ASC"
}

// Update builds a SET clause from the supplied columns only.
func (r *bookRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	// Fixed column order keeps the query deterministic.
	var sets []string
	var args []any
	for _, col := range []string{"title", "price", "thumbnail", "category_id"} {
		if val, ok := fields[col]; ok {
			sets = append(sets, col+" = ?")
			args = append(args, val)
		}
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := `UPDATE books SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating book: %w", err)
	}

	return nil
}

// Delete removes the book row only. book_tags rows for it stay behind.
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}
