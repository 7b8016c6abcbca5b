package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// ProfileRepository defines the data access contract for profile reads and
// partial updates. All SQL lives in the concrete implementation.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*Profile, error)

	// Update applies only the provided columns and refreshes updated_at.
	// The fields map keys are column names. A duplicate username/email
	// surfaces as apperror.Conflict.
	Update(ctx context.Context, id string, fields map[string]any) error
}

// profileRepository implements ProfileRepository with hand-written MySQL queries.
type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository backed by the given DB pool.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByID retrieves the public projection of a user.
// Returns apperror.NotFound if no user exists with this ID.
func (r *profileRepository) FindByID(ctx context.Context, id string) (*Profile, error) {
	query := `SELECT id, username, email, full_name, created_at, updated_at
	          FROM users WHERE id = ?`

	p := &Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.FullName,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	return p, nil
}

// Update builds a SET clause from the supplied columns only. Callers verify
// existence beforehand; RowsAffected is not a reliable existence signal on
// MySQL when the new values equal the old ones.
func (r *profileRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	// Fixed column order keeps the query deterministic for logging and tests.
	var sets []string
	var args []any
	for _, col := range []string{"username", "email", "full_name"} {
		if val, ok := fields[col]; ok {
			sets = append(sets, col+" = ?")
			args = append(args, val)
		}
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict("username or email already exists")
		}
		return fmt.Errorf("updating profile: %w", err)
	}

	return nil
}

// isDuplicateEntry checks if a MySQL error is a duplicate key violation.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
