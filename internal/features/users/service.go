package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// ProfileService defines the business logic contract for profile operations.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*Profile, error)
}

// profileService implements ProfileService.
type profileService struct {
	repo ProfileRepository
}

// NewProfileService creates a new profile service with the given repository.
func NewProfileService(repo ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// GetProfile returns the public projection of the user.
func (s *profileService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding profile: %w", err))
	}
	return p, nil
}

// UpdateProfile applies only the supplied fields and returns the fresh
// projection. Missing user → NotFound; duplicate username/email → Conflict.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*Profile, error) {
	// Existence check first so an empty update on a missing user still 404s.
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding profile: %w", err))
	}

	fields := make(map[string]any)
	if req.Username != nil {
		fields["username"] = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*req.FullName)
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, userID, fields); err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				return nil, appErr
			}
			return nil, apperror.NewInternal(fmt.Errorf("updating profile: %w", err))
		}
	}

	slog.Info("profile updated", slog.String("user_id", userID))

	return s.GetProfile(ctx, userID)
}
