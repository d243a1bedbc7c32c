package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/menu-svc/internal/domain"

	"github.com/lib/pq"
)

const menuItemColumns = `id, name, price, category_id, ingredients, COALESCE(image_url, ''),
	is_vegetarian, in_stock, avg_rating, rating_count, available_from, available_until, created_at`

type PostgresRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewPostgresRepository(db *sql.DB, timeout time.Duration) *PostgresRepository {
	return &PostgresRepository{DB: db, Timeout: timeout}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id   SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id              SERIAL PRIMARY KEY,
			name            TEXT NOT NULL,
			price           NUMERIC(10,2) NOT NULL CHECK (price > 0),
			category_id     INT REFERENCES categories(id) ON DELETE RESTRICT,
			ingredients     TEXT[] NOT NULL DEFAULT '{}',
			image_url       TEXT,
			is_vegetarian   BOOLEAN NOT NULL DEFAULT FALSE,
			in_stock        BOOLEAN NOT NULL DEFAULT TRUE,
			avg_rating      DOUBLE PRECISION NOT NULL DEFAULT 0,
			rating_count    INT NOT NULL DEFAULT 0,
			available_from  TEXT,
			available_until TEXT,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id                     TEXT PRIMARY KEY,
			canteen_name           TEXT NOT NULL,
			opening_time           TEXT NOT NULL,
			closing_time           TEXT NOT NULL,
			is_open                BOOLEAN NOT NULL,
			tax_rate               DOUBLE PRECISION NOT NULL,
			delivery_fee           DOUBLE PRECISION NOT NULL,
			minimum_order_amount   DOUBLE PRECISION NOT NULL,
			order_preparation_time INT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	categories := []domain.MenuCategory{}
	for rows.Next() {
		var c domain.MenuCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, apperr.FromStore(err)
		}
		categories = append(categories, c)
	}
	return categories, apperr.FromStore(rows.Err())
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO categories (name) VALUES ($1) RETURNING id", category.Name).
		Scan(&category.ID)
	return apperr.FromStore(err)
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *domain.MenuCategory) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "UPDATE categories SET name=$1 WHERE id=$2", category.Name, category.ID)
	return affectedOne(result, err, fmt.Sprintf("category %d", category.ID))
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id=$1", id)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return fmt.Errorf("%w: category %d still has menu items", apperr.ErrConflict, id)
	}
	return affectedOne(result, err, fmt.Sprintf("category %d", id))
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT `+menuItemColumns+` FROM menu_items ORDER BY name, id`)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, apperr.FromStore(err)
		}
		items = append(items, *item)
	}
	return items, apperr.FromStore(rows.Err())
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	item, err := scanMenuItem(r.DB.QueryRowContext(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("menu item %d", id))
	}
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	from, until := availabilityArgs(item.ScheduledAvailability)
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (name, price, category_id, ingredients, image_url, is_vegetarian, in_stock, available_from, available_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, item.Name, item.Price, categoryArg(item.CategoryID), pq.Array(item.Ingredients), item.ImageURL,
		item.IsVegetarian, item.InStock, from, until).
		Scan(&item.ID, &item.CreatedAt)
	return categoryError(err, item.CategoryID)
}

// UpdateMenuItem writes the admin-editable columns. Rating columns and the
// image are left alone.
func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	from, until := availabilityArgs(item.ScheduledAvailability)
	updated, err := scanMenuItem(r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name=$1, price=$2, category_id=$3, ingredients=$4, is_vegetarian=$5, in_stock=$6,
			available_from=$7, available_until=$8
		WHERE id=$9
		RETURNING `+menuItemColumns,
		item.Name, item.Price, categoryArg(item.CategoryID), pq.Array(item.Ingredients),
		item.IsVegetarian, item.InStock, from, until, item.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(fmt.Sprintf("menu item %d", item.ID))
	}
	if err != nil {
		return categoryError(err, item.CategoryID)
	}
	*item = *updated
	return nil
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id=$1", id)
	return affectedOne(result, err, fmt.Sprintf("menu item %d", id))
}

func (r *PostgresRepository) UpdateMenuItemImage(ctx context.Context, id int, imageURL string) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "UPDATE menu_items SET image_url = $1 WHERE id = $2", imageURL, id)
	return affectedOne(result, err, fmt.Sprintf("menu item %d", id))
}

func (r *PostgresRepository) GetSettings(ctx context.Context) (*domain.CanteenSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var s domain.CanteenSettings
	err := r.DB.QueryRowContext(ctx, `
		SELECT canteen_name, opening_time, closing_time, is_open, tax_rate, delivery_fee,
			minimum_order_amount, order_preparation_time
		FROM settings WHERE id = 'canteen'
	`).Scan(&s.CanteenName, &s.OpeningTime, &s.ClosingTime, &s.IsOpen, &s.TaxRate, &s.DeliveryFee,
		&s.MinimumOrderAmount, &s.OrderPreparationTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("settings")
	}
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return &s, nil
}

func (r *PostgresRepository) SaveSettings(ctx context.Context, s *domain.CanteenSettings) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO settings (id, canteen_name, opening_time, closing_time, is_open, tax_rate, delivery_fee,
			minimum_order_amount, order_preparation_time)
		VALUES ('canteen', $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			canteen_name = EXCLUDED.canteen_name,
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			is_open = EXCLUDED.is_open,
			tax_rate = EXCLUDED.tax_rate,
			delivery_fee = EXCLUDED.delivery_fee,
			minimum_order_amount = EXCLUDED.minimum_order_amount,
			order_preparation_time = EXCLUDED.order_preparation_time
	`, s.CanteenName, s.OpeningTime, s.ClosingTime, s.IsOpen, s.TaxRate, s.DeliveryFee,
		s.MinimumOrderAmount, s.OrderPreparationTime)
	return apperr.FromStore(err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var categoryID sql.NullInt64
	var from, until sql.NullString
	var ingredients pq.StringArray
	if err := row.Scan(&item.ID, &item.Name, &item.Price, &categoryID, &ingredients, &item.ImageURL,
		&item.IsVegetarian, &item.InStock, &item.AvgRating, &item.RatingCount, &from, &until, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.CategoryID = int(categoryID.Int64)
	item.Ingredients = []string(ingredients)
	if item.Ingredients == nil {
		item.Ingredients = []string{}
	}
	if from.Valid && until.Valid {
		item.ScheduledAvailability = &domain.Availability{StartTime: from.String, EndTime: until.String}
	}
	return &item, nil
}

func categoryArg(id int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(id), Valid: id > 0}
}

func availabilityArgs(a *domain.Availability) (sql.NullString, sql.NullString) {
	if a == nil {
		return sql.NullString{}, sql.NullString{}
	}
	return sql.NullString{String: a.StartTime, Valid: true}, sql.NullString{String: a.EndTime, Valid: true}
}

func categoryError(err error, categoryID int) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return apperr.Invalid("category_id", fmt.Sprintf("category %d does not exist", categoryID))
	}
	return apperr.FromStore(err)
}

func affectedOne(result sql.Result, err error, what string) error {
	if err != nil {
		return apperr.FromStore(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return apperr.FromStore(err)
	}
	if n == 0 {
		return apperr.NotFound(what)
	}
	return nil
}
