// Package auth implements registration, login, logout, the password-reset
// OTP flow, and bearer-token session verification for the bookshop API.
//
// A session is a signed JWT paired with a Redis entry `auth:<userId>` that
// holds the currently accepted token for that user. Verification requires
// both a valid signature and an exact cache match; deleting the cache entry
// (logout) revokes the token before its signature expires. One token per
// user: a new login overwrites the previous entry (last write wins).
package auth

import (
	"time"
)

// User represents a registered account. This is the domain model used
// throughout the application; database scanning and JSON marshaling use
// this struct directly.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON responses.
	FullName     string    `json:"fullName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted to POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=4,max=50,username"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=50"`
	FullName string `json:"fullName" validate:"required,min=3,max=50"`
}

// LoginRequest holds the data submitted to POST /auth/login. The identifier
// may be either a username or an email address.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required,min=4"`
	Password        string `json:"password" validate:"required"`
}

// ForgetPasswordRequest holds the data submitted to POST /auth/forget-password.
type ForgetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest holds the data submitted to POST /auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=50"`
}

// ChangePasswordRequest holds the data submitted to PUT /auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=50"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the validated input for creating a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// LoginInput is the validated input for authenticating a user.
type LoginInput struct {
	UsernameOrEmail string
	Password        string
}
