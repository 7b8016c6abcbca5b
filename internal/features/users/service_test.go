package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// --- Mock Repository ---

// mockProfileRepo implements ProfileRepository for testing.
type mockProfileRepo struct {
	findByIDFn func(ctx context.Context, id string) (*Profile, error)
	updateFn   func(ctx context.Context, id string, fields map[string]any) error
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id string) (*Profile, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockProfileRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil
}

// --- Test Helpers ---

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

func strPtr(s string) *string { return &s }

func testProfile() *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:        "user-123",
		Username:  "alice",
		Email:     "alice@example.com",
		FullName:  "Alice Liddell",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// --- GetProfile Tests ---

func TestGetProfile_Success(t *testing.T) {
	repo := &mockProfileRepo{
		findByIDFn: func(ctx context.Context, id string) (*Profile, error) {
			if id != "user-123" {
				t.Errorf("expected user-123, got %s", id)
			}
			return testProfile(), nil
		},
	}

	svc := NewProfileService(repo)
	p, err := svc.GetProfile(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Username != "alice" {
		t.Errorf("expected alice, got %s", p.Username)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := NewProfileService(&mockProfileRepo{})

	_, err := svc.GetProfile(context.Background(), "ghost")
	assertAppError(t, err, 404)
}

func TestGetProfile_RepoError(t *testing.T) {
	repo := &mockProfileRepo{
		findByIDFn: func(ctx context.Context, id string) (*Profile, error) {
			return nil, errors.New("db read error")
		},
	}

	svc := NewProfileService(repo)
	_, err := svc.GetProfile(context.Background(), "user-123")
	assertAppError(t, err, 500)
}

// --- UpdateProfile Tests ---

func TestUpdateProfile_PartialFields(t *testing.T) {
	var capturedFields map[string]any
	repo := &mockProfileRepo{
		findByIDFn: func(ctx context.Context, id string) (*Profile, error) {
			return testProfile(), nil
		},
		updateFn: func(ctx context.Context, id string, fields map[string]any) error {
			capturedFields = fields
			return nil
		},
	}

	svc := NewProfileService(repo)
	_, err := svc.UpdateProfile(context.Background(), "user-123", UpdateProfileRequest{
		FullName: strPtr("  Alice P. Liddell  "),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capturedFields["full_name"] != "Alice P. Liddell" {
		t.Errorf("expected trimmed full name, got %v", capturedFields["full_name"])
	}
	if _, ok := capturedFields["username"]; ok {
		t.Error("expected absent username to be left out of the update")
	}
	if _, ok := capturedFields["email"]; ok {
		t.Error("expected absent email to be left out of the update")
	}
}

func TestUpdateProfile_EmailNormalization(t *testing.T) {
	var capturedFields map[string]any
	repo := &mockProfileRepo{
		findByIDFn: func(ctx context.Context, id string) (*Profile, error) {
			return testProfile(), nil
		},
		updateFn: func(ctx context.Context, id string, fields map[string]any) error {
			capturedFields = fields
			return nil
		},
	}

	svc := NewProfileService(repo)
	_, err := svc.UpdateProfile(context.Background(), "user-123", UpdateProfileRequest{
		Email: strPtr("  Alice@NEW-Example.com  "),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedFields["email"] != "alice@new-example.com" {
		t.Errorf("expected normalized email, got %v", capturedFields["email"])
	}
}

func TestUpdateProfile_EmptyUpdateSkipsWrite(t *testing.T) {
	var updateCalled bool
	repo := &mockProfileRepo{
		findByIDFn: func(ctx context.Context, id string) (*Profile, error) {
			return testProfile(), nil
		},
		updateFn: func(ctx context.Context, id string, fields map[string]any) error {
			updateCalled = true
			return nil
		},
	}

	svc := NewProfileService(repo)
	p, err := svc.UpdateProfile(context.Background(), "user-123", UpdateProfileRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updateCalled {
		t.Error("expected empty update to skip the write")
	}
	if p == nil {
		t.Fatal("expected the current profile back")
	}
}

func TestUpdateProfile_MissingUser(t *testing.T) {
	// An empty update on a missing user still 404s -- existence is checked
	// before the field map is inspected.
	svc := NewProfileService(&mockProfileRepo{})

	_, err := svc.UpdateProfile(context.Background(), "ghost", UpdateProfileRequest{})
	assertAppError(t, err, 404)
}

func TestUpdateProfile_DuplicateUsername(t *testing.T) {
	repo := &mockProfileRepo{
		findByIDFn: func(ctx context.Context, id string) (*Profile, error) {
			return testProfile(), nil
		},
		updateFn: func(ctx context.Context, id string, fields map[string]any) error {
			return apperror.NewConflict("username already exists")
		},
	}

	svc := NewProfileService(repo)
	_, err := svc.UpdateProfile(context.Background(), "user-123", UpdateProfileRequest{
		Username: strPtr("taken"),
	})
	assertAppError(t, err, 409)
}
