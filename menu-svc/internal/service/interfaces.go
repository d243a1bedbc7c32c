package service

import (
	"context"
	"time"

	"campus-canteen/auth"
	"campus-canteen/menu-svc/internal/domain"
)

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.MenuCategory, error)
	CreateCategory(ctx context.Context, category *domain.MenuCategory) error
	UpdateCategory(ctx context.Context, category *domain.MenuCategory) error
	DeleteCategory(ctx context.Context, id int) error

	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) error
	UpdateMenuItemImage(ctx context.Context, id int, imageURL string) error
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.CanteenSettings, error)
	SaveSettings(ctx context.Context, settings *domain.CanteenSettings) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, uid string) (*auth.Profile, error)
	CreateProfile(ctx context.Context, profile *auth.Profile) error
	ListProfiles(ctx context.Context) ([]auth.Profile, error)
}

type MenuServiceInterface interface {
	ListCategories(ctx context.Context) ([]domain.MenuCategory, error)
	CreateCategory(ctx context.Context, category *domain.MenuCategory) error
	UpdateCategory(ctx context.Context, category *domain.MenuCategory) error
	DeleteCategory(ctx context.Context, id int) error

	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	ListAvailableItems(ctx context.Context, at time.Time) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) error
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	DeleteItem(ctx context.Context, id int) error
	UpdateImage(ctx context.Context, id int, imageURL string) error
}

type SettingsServiceInterface interface {
	Get(ctx context.Context) (*domain.CanteenSettings, error)
	Update(ctx context.Context, settings *domain.CanteenSettings) error
}

type ProfileServiceInterface interface {
	Me(ctx context.Context, id auth.Identity) (*auth.Profile, error)
	Register(ctx context.Context, id auth.Identity, profile *auth.Profile) error
	List(ctx context.Context) ([]auth.Profile, error)
}

var (
	_ MenuServiceInterface     = (*MenuService)(nil)
	_ SettingsServiceInterface = (*SettingsService)(nil)
	_ ProfileServiceInterface  = (*ProfileService)(nil)
)
