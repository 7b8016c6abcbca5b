package books

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// BookService defines the business logic contract for the catalog.
// Handlers call these methods -- they never touch the repository directly.
type BookService interface {
	Create(ctx context.Context, authorID string, req CreateBookRequest) (*Book, error)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	GetByID(ctx context.Context, id string) (*BookRow, error)
	Update(ctx context.Context, requesterID, id string, req UpdateBookRequest) (*BookRow, error)
	Delete(ctx context.Context, requesterID, id string) error
}

// bookService implements BookService.
type bookService struct {
	repo BookRepository
}

// NewBookService creates a new book service with the given repository.
func NewBookService(repo BookRepository) BookService {
	return &bookService{repo: repo}
}

// Create inserts the book, then links the tags best effort: a failed link
// insert does not roll the book back. Sequential writes, no transaction.
func (s *bookService) Create(ctx context.Context, authorID string, req CreateBookRequest) (*Book, error) {
	now := time.Now().UTC()
	book := &Book{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(req.Title),
		Price:      req.Price,
		Thumbnail:  req.Thumbnail,
		AuthorID:   authorID,
		CategoryID: req.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating book: %w", err))
	}

	if len(req.Tags) > 0 {
		if err := s.repo.AddTagLinks(ctx, book.ID, req.Tags); err != nil {
			slog.Warn("failed to link tags to book",
				slog.String("book_id", book.ID),
				slog.Any("error", err),
			)
		}
	}

	slog.Info("book created",
		slog.String("book_id", book.ID),
		slog.String("author_id", authorID),
	)

	return book, nil
}

// List normalizes the paging window, runs the query, and computes the
// page count. Filters left at their zero values are simply not applied,
// so a request with no filters and one with explicit defaults produce the
// same row set.
func (s *bookService) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = DefaultLimit
	}
	if opts.SortBy == "" {
		opts.SortBy = DefaultSortBy
	}

	rows, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing books: %w", err))
	}

	return &ListResult{
		Data: rows,
		Pagination: Pagination{
			Total: total,
			Page:  opts.Page,
			Limit: opts.Limit,
			Pages: (total + opts.Limit - 1) / opts.Limit,
		},
	}, nil
}

// GetByID returns the denormalized row for one book.
func (s *bookService) GetByID(ctx context.Context, id string) (*BookRow, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding book: %w", err))
	}
	return row, nil
}

// Update applies only the supplied fields after the existence and
// ownership checks, in that order: a missing book 404s before the
// requester learns anything about ownership.
func (s *bookService) Update(ctx context.Context, requesterID, id string, req UpdateBookRequest) (*BookRow, error) {
	book, err := s.findOwned(ctx, requesterID, id, "edit")
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Thumbnail != nil {
		fields["thumbnail"] = *req.Thumbnail
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, book.ID, fields); err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("updating book: %w", err))
		}
	}

	slog.Info("book updated",
		slog.String("book_id", id),
		slog.String("author_id", requesterID),
	)

	return s.GetByID(ctx, id)
}

// Delete removes the book after the same existence and ownership checks.
// Orphaned book_tags rows are left behind.
func (s *bookService) Delete(ctx context.Context, requesterID, id string) error {
	if _, err := s.findOwned(ctx, requesterID, id, "delete"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting book: %w", err))
	}

	slog.Info("book deleted",
		slog.String("book_id", id),
		slog.String("author_id", requesterID),
	)

	return nil
}

// findOwned loads the book and enforces that the requester is its author.
func (s *bookService) findOwned(ctx context.Context, requesterID, id, action string) (*Book, error) {
	book, err := s.repo.FindBareByID(ctx, id)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding book: %w", err))
	}

	if book.AuthorID != requesterID {
		return nil, apperror.NewForbidden("only the author can " + action + " this book")
	}

	return book, nil
}
