package tags

import (
	"context"
	"errors"
	"testing"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// --- Mock Repository ---

// mockTagRepo implements TagRepository for testing.
type mockTagRepo struct {
	createFn     func(ctx context.Context, tag *Tag) error
	findByIDFn   func(ctx context.Context, id string) (*Tag, error)
	listFn       func(ctx context.Context) ([]Tag, error)
	nameExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockTagRepo) Create(ctx context.Context, tag *Tag) error {
	if m.createFn != nil {
		return m.createFn(ctx, tag)
	}
	return nil
}

func (m *mockTagRepo) FindByID(ctx context.Context, id string) (*Tag, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("tag not found")
}

func (m *mockTagRepo) List(ctx context.Context) ([]Tag, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []Tag{}, nil
}

func (m *mockTagRepo) NameExists(ctx context.Context, name string) (bool, error) {
	if m.nameExistsFn != nil {
		return m.nameExistsFn(ctx, name)
	}
	return false, nil
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Tests ---

func TestCreate_Success(t *testing.T) {
	repo := &mockTagRepo{
		createFn: func(ctx context.Context, tag *Tag) error {
			if tag.ID == "" {
				t.Error("expected tag ID to be generated")
			}
			if tag.Name != "golang" {
				t.Errorf("expected trimmed name golang, got %q", tag.Name)
			}
			return nil
		},
	}

	svc := NewTagService(repo)
	tag, err := svc.Create(context.Background(), "  golang  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag == nil {
		t.Fatal("expected tag, got nil")
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := &mockTagRepo{
		nameExistsFn: func(ctx context.Context, name string) (bool, error) {
			return true, nil
		},
	}

	svc := NewTagService(repo)
	_, err := svc.Create(context.Background(), "golang")
	assertAppError(t, err, 409)
}

func TestCreate_ConstraintConflictPassthrough(t *testing.T) {
	repo := &mockTagRepo{
		createFn: func(ctx context.Context, tag *Tag) error {
			return apperror.NewConflict("tag already exists")
		},
	}

	svc := NewTagService(repo)
	_, err := svc.Create(context.Background(), "golang")
	assertAppError(t, err, 409)
}

func TestList_Success(t *testing.T) {
	repo := &mockTagRepo{
		listFn: func(ctx context.Context) ([]Tag, error) {
			return []Tag{
				{ID: "t-1", Name: "golang"},
				{ID: "t-2", Name: "testing"},
			}, nil
		},
	}

	svc := NewTagService(repo)
	tags, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(tags))
	}
}

func TestList_RepoError(t *testing.T) {
	repo := &mockTagRepo{
		listFn: func(ctx context.Context) ([]Tag, error) {
			return nil, errors.New("db read error")
		},
	}

	svc := NewTagService(repo)
	_, err := svc.List(context.Background())
	assertAppError(t, err, 500)
}

func TestGetByID_Success(t *testing.T) {
	repo := &mockTagRepo{
		findByIDFn: func(ctx context.Context, id string) (*Tag, error) {
			return &Tag{ID: id, Name: "golang"}, nil
		},
	}

	svc := NewTagService(repo)
	tag, err := svc.GetByID(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag.Name != "golang" {
		t.Errorf("expected golang, got %s", tag.Name)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewTagService(&mockTagRepo{})

	_, err := svc.GetByID(context.Background(), "missing")
	assertAppError(t, err, 404)
}
