package tags

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// TagService defines the business logic contract for tags.
type TagService interface {
	Create(ctx context.Context, name string) (*Tag, error)
	List(ctx context.Context) ([]Tag, error)
	GetByID(ctx context.Context, id string) (*Tag, error)
}

// tagService implements TagService.
type tagService struct {
	repo TagRepository
}

// NewTagService creates a new tag service with the given repository.
func NewTagService(repo TagRepository) TagService {
	return &tagService{repo: repo}
}

// Create adds a uniquely named tag.
func (s *tagService) Create(ctx context.Context, name string) (*Tag, error) {
	name = strings.TrimSpace(name)

	exists, err := s.repo.NameExists(ctx, name)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking tag name: %w", err))
	}
	if exists {
		return nil, apperror.NewConflict("tag already exists")
	}

	tag := &Tag{
		ID:   uuid.NewString(),
		Name: name,
	}

	if err := s.repo.Create(ctx, tag); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating tag: %w", err))
	}

	slog.Info("tag created",
		slog.String("tag_id", tag.ID),
		slog.String("name", tag.Name),
	)

	return tag, nil
}

// List returns all tags.
func (s *tagService) List(ctx context.Context) ([]Tag, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing tags: %w", err))
	}
	return tags, nil
}

// GetByID returns a single tag or NotFound.
func (s *tagService) GetByID(ctx context.Context, id string) (*Tag, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding tag: %w", err))
	}
	return tag, nil
}
