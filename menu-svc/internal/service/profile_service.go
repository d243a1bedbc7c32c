package service

import (
	"context"
	"strings"

	"campus-canteen/apperr"
	"campus-canteen/auth"
)

type ProfileService struct {
	repo ProfileRepository
}

func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) Me(ctx context.Context, id auth.Identity) (*auth.Profile, error) {
	return s.repo.GetProfile(ctx, id.UID)
}

// Register stores the caller's profile. Self-registered users are always
// students; admins are promoted out of band.
func (s *ProfileService) Register(ctx context.Context, id auth.Identity, profile *auth.Profile) error {
	profile.UID = id.UID
	profile.Role = auth.RoleStudent
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		profile.Name = id.DisplayName
	}
	if id.Email != "" {
		profile.Email = id.Email
	}
	if err := apperr.Validate(profile); err != nil {
		return err
	}
	return s.repo.CreateProfile(ctx, profile)
}

func (s *ProfileService) List(ctx context.Context) ([]auth.Profile, error) {
	return s.repo.ListProfiles(ctx)
}
