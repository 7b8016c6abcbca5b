// Package users exposes the authenticated user's profile: a public
// projection of the account record (never the password hash) and a
// partial-update operation over username, email, and full name.
package users

import "time"

// Profile is the public projection of an account. The password hash never
// leaves the repository.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileRequest holds the partial fields accepted by
// PUT /user/profile. Absent fields are left untouched.
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=4,max=50,username"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	FullName *string `json:"fullName" validate:"omitempty,min=3,max=50"`
}
