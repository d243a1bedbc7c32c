package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/rate-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewPostgresRepository(db *sql.DB, timeout time.Duration) *PostgresRepository {
	return &PostgresRepository{DB: db, Timeout: timeout}
}

// EnsureSchema expects menu_items to exist already; the menu service owns it.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ratings (
			menu_item_id INT NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			user_id      TEXT NOT NULL,
			rating       SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (menu_item_id, user_id)
		)`)
	return err
}

func (r *PostgresRepository) MenuItemExists(ctx context.Context, menuItemID int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM menu_items WHERE id = $1)`, menuItemID).
		Scan(&exists)
	return exists, apperr.FromStore(err)
}

// UpsertRating overwrites the user's previous rating for the item. created_at
// survives the overwrite.
func (r *PostgresRepository) UpsertRating(ctx context.Context, rating *domain.Rating) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO ratings (menu_item_id, user_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (menu_item_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
		RETURNING created_at, updated_at
	`, rating.MenuItemID, rating.UserID, rating.Rating).
		Scan(&rating.CreatedAt, &rating.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return apperr.NotFound(fmt.Sprintf("menu item %d", rating.MenuItemID))
	}
	return apperr.FromStore(err)
}

func (r *PostgresRepository) ListRatings(ctx context.Context, menuItemID int) ([]domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT menu_item_id, user_id, rating, created_at, updated_at
		FROM ratings
		WHERE menu_item_id = $1
		ORDER BY updated_at DESC, user_id
	`, menuItemID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	ratings := []domain.Rating{}
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(&rt.MenuItemID, &rt.UserID, &rt.Rating, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, apperr.FromStore(err)
		}
		ratings = append(ratings, rt)
	}
	return ratings, apperr.FromStore(rows.Err())
}

func (r *PostgresRepository) SaveAverage(ctx context.Context, stats domain.ItemStats) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctx,
		"UPDATE menu_items SET avg_rating = $1, rating_count = $2 WHERE id = $3",
		stats.AvgRating, stats.RatingCount, stats.MenuItemID)
	if err != nil {
		return apperr.FromStore(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return apperr.FromStore(err)
	}
	if n == 0 {
		return apperr.NotFound(fmt.Sprintf("menu item %d", stats.MenuItemID))
	}
	return nil
}
