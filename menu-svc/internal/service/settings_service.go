package service

import (
	"context"
	"errors"

	"campus-canteen/apperr"
	"campus-canteen/menu-svc/internal/domain"
)

type SettingsService struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the stored settings, or the defaults when none were saved yet.
func (s *SettingsService) Get(ctx context.Context) (*domain.CanteenSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if errors.Is(err, apperr.ErrNotFound) {
		defaults := domain.DefaultSettings()
		return &defaults, nil
	}
	return settings, err
}

func (s *SettingsService) Update(ctx context.Context, settings *domain.CanteenSettings) error {
	if err := apperr.Validate(settings); err != nil {
		return err
	}
	return s.repo.SaveSettings(ctx, settings)
}
