package storage

import (
	"context"
	"database/sql"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/report-svc/internal/domain"

	"github.com/lib/pq"
)

// PostgresRepository reads the tables owned by order-svc and menu-svc. It
// never writes.
type PostgresRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewPostgresRepository(db *sql.DB, timeout time.Duration) *PostgresRepository {
	return &PostgresRepository{DB: db, Timeout: timeout}
}

func (r *PostgresRepository) ListCompletedOrders(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, status, total_amount, created_at
		FROM orders
		WHERE status = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at, id
	`, domain.StatusCompleted, start, end)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	index := map[int]int{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Status, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, apperr.FromStore(err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStore(err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = int64(o.ID)
	}
	itemRows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, menu_item_id, name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, pq.Array(ids))
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.MenuItemID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, apperr.FromStore(err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, apperr.FromStore(itemRows.Err())
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItemRef, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, COALESCE(category_id, 0), is_vegetarian FROM menu_items`)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	items := []domain.MenuItemRef{}
	for rows.Next() {
		var item domain.MenuItemRef
		if err := rows.Scan(&item.ID, &item.Name, &item.CategoryID, &item.IsVegetarian); err != nil {
			return nil, apperr.FromStore(err)
		}
		items = append(items, item)
	}
	return items, apperr.FromStore(rows.Err())
}

func (r *PostgresRepository) ListCategories(ctx context.Context) (map[int]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM categories`)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	categories := map[int]string{}
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, apperr.FromStore(err)
		}
		categories[id] = name
	}
	return categories, apperr.FromStore(rows.Err())
}
