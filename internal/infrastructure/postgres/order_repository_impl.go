package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/danuarts/woodshop/internal/domain/entity"
	"github.com/danuarts/woodshop/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Place runs the order-placement transaction. The product row is
// locked with SELECT ... FOR UPDATE, so concurrent placements on the
// same product serialize while other products stay independent. The
// stock decrement and the order insert commit together or not at all.
func (r *OrderRepository) Place(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var price decimal.Decimal
	var stock int
	row := tx.QueryRow(ctx, `
		SELECT name, price, stock
		FROM products
		WHERE id = $1
		FOR UPDATE
	`, o.ProductID)
	if err := row.Scan(&o.ProductName, &price, &stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}

	if o.Quantity > stock {
		return repository.ErrInsufficientStock
	}

	if _, err := tx.Exec(ctx, `
		UPDATE products SET stock = stock - $1 WHERE id = $2
	`, o.Quantity, o.ProductID); err != nil {
		return err
	}

	o.OrderDate = time.Now()
	o.TotalPrice = price.Mul(decimal.NewFromInt(int64(o.Quantity)))

	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (customer_name, customer_email, customer_phone, shipping_address,
			quantity, total_price, order_date, done, product_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8)
		RETURNING id
	`, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.ShippingAddress,
		o.Quantity, o.TotalPrice, o.OrderDate, o.ProductID).Scan(&o.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const orderColumns = `o.id, o.customer_name, o.customer_email, o.customer_phone,
	o.shipping_address, o.quantity, o.total_price, o.order_date, o.done, o.product_id, p.name`

func scanOrder(row pgx.Row, o *entity.Order) error {
	return row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.ShippingAddress, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.Done,
		&o.ProductID, &o.ProductName)
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	o := &entity.Order{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.id = $1
	`, id)
	if err := scanOrder(row, o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListAll returns all orders newest first, for the admin dashboard.
func (r *OrderRepository) ListAll(ctx context.Context) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN products p ON p.id = o.product_id
		ORDER BY o.order_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) SetDone(ctx context.Context, id int64, done bool) error {
	res, err := r.pool.Exec(ctx, `UPDATE orders SET done = $1 WHERE id = $2`, done, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ToggleDone flips the fulfillment flag and returns the new value.
func (r *OrderRepository) ToggleDone(ctx context.Context, id int64) (bool, error) {
	var done bool
	err := r.pool.QueryRow(ctx, `
		UPDATE orders SET done = NOT done WHERE id = $1
		RETURNING done
	`, id).Scan(&done)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, repository.ErrNotFound
		}
		return false, err
	}
	return done, nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
