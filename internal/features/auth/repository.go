package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// UserRepository defines the data access contract for account records.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsernameOrEmail resolves a login identifier that may be either
	// field. Returns apperror.NotFound when nothing matches.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)

	// IdentityTaken reports whether the email or the username is already
	// registered. Advisory fast path only -- the UNIQUE constraints are the
	// source of truth.
	IdentityTaken(ctx context.Context, email, username string) (emailTaken, usernameTaken bool, err error)

	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
}

// userRepository implements UserRepository with hand-written MySQL queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, full_name, created_at, updated_at`

// scanUser scans one user row from a QueryRow result.
func scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user row. A duplicate username or email surfaces as
// apperror.Conflict -- the UNIQUE constraints win races that slip past the
// IdentityTaken pre-check.
func (r *userRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (id, username, email, password_hash, full_name, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict("username or email already exists")
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by primary key.
// Returns apperror.NotFound if no user exists with this ID.
func (r *userRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves a user by email address.
// Returns apperror.NotFound if no user exists with this email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	return user, nil
}

// FindByUsernameOrEmail retrieves a user whose username OR email equals the
// identifier. Returns apperror.NotFound when nothing matches.
func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? OR username = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, identifier, identifier))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by username or email: %w", err)
	}

	return user, nil
}

// IdentityTaken checks both uniqueness dimensions in a single round trip.
func (r *userRepository) IdentityTaken(ctx context.Context, email, username string) (bool, bool, error) {
	query := `SELECT
	            EXISTS(SELECT 1 FROM users WHERE email = ?),
	            EXISTS(SELECT 1 FROM users WHERE username = ?)`

	var emailTaken, usernameTaken bool
	err := r.db.QueryRowContext(ctx, query, email, username).Scan(&emailTaken, &usernameTaken)
	if err != nil {
		return false, false, fmt.Errorf("checking identity existence: %w", err)
	}

	return emailTaken, usernameTaken, nil
}

// UpdatePassword sets a new password hash for a user by ID.
func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, updated_at = NOW() WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("user not found")
	}
	return nil
}

// UpdatePasswordByEmail sets a new password hash for a user by email.
// Used by the OTP reset flow, which identifies the account by email.
func (r *userRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, updated_at = NOW() WHERE email = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return fmt.Errorf("updating password by email: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("user not found")
	}
	return nil
}

// isDuplicateEntry checks if a MySQL error is a duplicate key violation.
// Error code 1062 is ER_DUP_ENTRY for unique constraint violations.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
