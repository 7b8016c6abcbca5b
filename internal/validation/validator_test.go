package validation

import (
	"errors"
	"testing"

	"github.com/codexlibris/bookshop/internal/apperror"
)

type registerForm struct {
	Username string  `json:"username" validate:"required,min=4,max=50,username"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Website  *string `json:"website" validate:"omitempty,url"`
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != 400 {
		t.Errorf("expected status 400, got %d", appErr.Code)
	}
	return appErr.Fields
}

func TestValidate_Passes(t *testing.T) {
	v := New()
	err := v.Validate(&registerForm{
		Username: "alice_99",
		Email:    "alice@example.com",
		Password: "secure-password",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&registerForm{
		Username: "alice",
		Email:    "not-an-email",
		Password: "secure-password",
	})

	fields := validationFields(t, err)
	if _, ok := fields["email"]; !ok {
		t.Errorf("expected error keyed by json name 'email', got %v", fields)
	}
	if _, ok := fields["Email"]; ok {
		t.Errorf("expected no struct field name key, got %v", fields)
	}
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	v := New()
	err := v.Validate(&registerForm{})

	fields := validationFields(t, err)
	for _, want := range []string{"username", "email", "password"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("expected a message for %q, got %v", want, fields)
		}
	}
}

func TestValidate_UsernameAlphabet(t *testing.T) {
	v := New()

	tests := []struct {
		username string
		valid    bool
	}{
		{"alice_99", true},
		{"ALICE", true},
		{"user name", false},
		{"alice!", false},
		{"héllo", false},
	}
	for _, tt := range tests {
		err := v.Validate(&registerForm{
			Username: tt.username,
			Email:    "alice@example.com",
			Password: "secure-password",
		})
		if tt.valid && err != nil {
			t.Errorf("expected %q to pass, got %v", tt.username, err)
		}
		if !tt.valid {
			fields := validationFields(t, err)
			if _, ok := fields["username"]; !ok {
				t.Errorf("expected username error for %q, got %v", tt.username, fields)
			}
		}
	}
}

func TestValidate_OmitemptySkipsNil(t *testing.T) {
	v := New()
	err := v.Validate(&registerForm{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secure-password",
		Website:  nil,
	})
	if err != nil {
		t.Fatalf("expected nil optional field to pass, got %v", err)
	}

	bad := "not a url"
	err = v.Validate(&registerForm{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secure-password",
		Website:  &bad,
	})
	fields := validationFields(t, err)
	if fields["website"] != "must be a valid URL" {
		t.Errorf("expected url message, got %v", fields)
	}
}
