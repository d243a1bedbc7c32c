package service

import (
	"context"
	"strings"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/menu-svc/internal/domain"
)

type MenuService struct {
	repo CatalogRepository
}

func NewMenuService(repo CatalogRepository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) ListCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *MenuService) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	category.Name = strings.TrimSpace(category.Name)
	if err := apperr.Validate(category); err != nil {
		return err
	}
	return s.repo.CreateCategory(ctx, category)
}

func (s *MenuService) UpdateCategory(ctx context.Context, category *domain.MenuCategory) error {
	category.Name = strings.TrimSpace(category.Name)
	if err := apperr.Validate(category); err != nil {
		return err
	}
	return s.repo.UpdateCategory(ctx, category)
}

// DeleteCategory fails with apperr.ErrConflict while menu items still
// reference the category.
func (s *MenuService) DeleteCategory(ctx context.Context, id int) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *MenuService) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListMenuItems(ctx)
}

func (s *MenuService) ListAvailableItems(ctx context.Context, at time.Time) ([]domain.MenuItem, error) {
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if item.AvailableAt(at) {
			available = append(available, item)
		}
	}
	return available, nil
}

func (s *MenuService) GetItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *MenuService) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	normalizeItem(item)
	if err := apperr.Validate(item); err != nil {
		return err
	}
	item.AvgRating = 0
	item.RatingCount = 0
	return s.repo.CreateMenuItem(ctx, item)
}

func (s *MenuService) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	normalizeItem(item)
	if err := apperr.Validate(item); err != nil {
		return err
	}
	return s.repo.UpdateMenuItem(ctx, item)
}

func (s *MenuService) DeleteItem(ctx context.Context, id int) error {
	return s.repo.DeleteMenuItem(ctx, id)
}

func (s *MenuService) UpdateImage(ctx context.Context, id int, imageURL string) error {
	return s.repo.UpdateMenuItemImage(ctx, id, imageURL)
}

func normalizeItem(item *domain.MenuItem) {
	item.Name = strings.TrimSpace(item.Name)
	ingredients := make([]string, 0, len(item.Ingredients))
	for _, ing := range item.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}
	item.Ingredients = ingredients
}
