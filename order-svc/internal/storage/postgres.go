package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/order-svc/internal/domain"

	"github.com/lib/pq"
)

const orderColumns = `id, user_id, total_amount, status, order_type, payment_method, created_at`

type PostgresRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewPostgresRepository(db *sql.DB, timeout time.Duration) *PostgresRepository {
	return &PostgresRepository{DB: db, Timeout: timeout}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id             SERIAL PRIMARY KEY,
			user_id        TEXT NOT NULL,
			total_amount   NUMERIC(10,2) NOT NULL CHECK (total_amount > 0),
			status         TEXT NOT NULL DEFAULT 'Order Placed',
			order_type     TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			qr_code        BYTEA,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id     INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			position     INT NOT NULL,
			menu_item_id INT NOT NULL,
			name         TEXT NOT NULL,
			quantity     INT NOT NULL CHECK (quantity > 0),
			price        NUMERIC(10,2) NOT NULL CHECK (price > 0),
			PRIMARY KEY (order_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS orders_user_created_idx ON orders (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS orders_created_idx ON orders (created_at)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return apperr.FromStore(err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_amount, status, order_type, payment_method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, order.UserID, order.TotalAmount, order.Status, order.OrderType, order.PaymentMethod).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return apperr.FromStore(err)
	}

	for i, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, menu_item_id, name, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, order.ID, i, item.MenuItemID, item.Name, item.Quantity, item.Price); err != nil {
			return apperr.FromStore(err)
		}
	}

	return apperr.FromStore(tx.Commit())
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("order %d", orderID))
	}
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	orders := []domain.Order{*order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListOrdersByUser returns the user's orders newest first.
func (r *PostgresRepository) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.listOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return r.listOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		ORDER BY created_at DESC, id DESC`)
}

func (r *PostgresRepository) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, apperr.FromStore(err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStore(err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads every order's line items with a single query.
func (r *PostgresRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int]int, len(orders))
	for i, o := range orders {
		ids[i] = int64(o.ID)
		index[o.ID] = i
		orders[i].Items = []domain.OrderItem{}
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, menu_item_id, name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, pq.Array(ids))
	if err != nil {
		return apperr.FromStore(err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.MenuItemID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return apperr.FromStore(err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return apperr.FromStore(rows.Err())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var status string
	if err := row.Scan(&order.ID, &order.UserID, &order.TotalAmount, &status,
		&order.OrderType, &order.PaymentMethod, &order.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("order %d has unrecognized status %q", order.ID, status)
	}
	order.Status = parsed
	return &order, nil
}

// UpdateStatus sets the status only if it is still from. It reports whether a
// row changed.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID int, from, to domain.Status) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`,
		to, orderID, from)
	if err != nil {
		return false, apperr.FromStore(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperr.FromStore(err)
	}
	return affected == 1, nil
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return apperr.FromStore(err)
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var qrCode []byte
	err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qrCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(fmt.Sprintf("order %d", orderID))
	}
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return qrCode, nil
}

// MenuItemsByID reads the current name, price and stock flag of the given
// menu items from the catalog owned by menu-svc. Unknown ids are absent from
// the result.
func (r *PostgresRepository) MenuItemsByID(ctx context.Context, ids []int) (map[int]domain.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	catalog := make(map[int]domain.CatalogItem, len(ids))
	if len(ids) == 0 {
		return catalog, nil
	}
	keys := make([]int64, len(ids))
	for i, id := range ids {
		keys[i] = int64(id)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, price, in_stock
		FROM menu_items
		WHERE id = ANY($1)
	`, pq.Array(keys))
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CatalogItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.InStock); err != nil {
			return nil, apperr.FromStore(err)
		}
		catalog[item.ID] = item
	}
	return catalog, apperr.FromStore(rows.Err())
}

// CheckoutRules reads the canteen settings row written by menu-svc. A missing
// row or table yields the defaults.
func (r *PostgresRepository) CheckoutRules(ctx context.Context) (domain.CheckoutRules, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	rules := domain.DefaultCheckoutRules()
	err := r.DB.QueryRowContext(ctx, `
		SELECT tax_rate, is_open, minimum_order_amount
		FROM settings WHERE id = 'canteen'
	`).Scan(&rules.TaxRate, &rules.IsOpen, &rules.MinimumOrderAmount)

	var pqErr *pq.Error
	switch {
	case err == nil:
		return rules, nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.DefaultCheckoutRules(), nil
	case errors.As(err, &pqErr) && pqErr.Code == "42P01":
		log.Printf("Warning: settings table missing, using default checkout rules")
		return domain.DefaultCheckoutRules(), nil
	default:
		return domain.CheckoutRules{}, apperr.FromStore(err)
	}
}
