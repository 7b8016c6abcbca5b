package categories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// CategoryService defines the business logic contract for categories.
type CategoryService interface {
	Create(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
}

// categoryService implements CategoryService.
type categoryService struct {
	repo CategoryRepository
}

// NewCategoryService creates a new category service with the given repository.
func NewCategoryService(repo CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// Create adds a uniquely named category.
func (s *categoryService) Create(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)

	exists, err := s.repo.NameExists(ctx, name)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking category name: %w", err))
	}
	if exists {
		return nil, apperror.NewConflict("category already exists")
	}

	category := &Category{
		ID:   uuid.NewString(),
		Name: name,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating category: %w", err))
	}

	slog.Info("category created",
		slog.String("category_id", category.ID),
		slog.String("name", category.Name),
	)

	return category, nil
}

// List returns all categories.
func (s *categoryService) List(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing categories: %w", err))
	}
	return categories, nil
}

// GetByID returns a single category or NotFound.
func (s *categoryService) GetByID(ctx context.Context, id string) (*Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding category: %w", err))
	}
	return category, nil
}
