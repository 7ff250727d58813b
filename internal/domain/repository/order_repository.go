package repository

import (
	"context"

	"github.com/danuarts/woodshop/internal/domain/entity"
)

// OrderRepository defines persistence for orders, including the
// atomic order-placement transaction.
type OrderRepository interface {
	// Place commits the order row together with the stock decrement of
	// the referenced product as a single transaction. The order's
	// Quantity, ProductID and customer fields must be set by the
	// caller; ID, TotalPrice and OrderDate are assigned here. Returns
	// ErrNotFound when the product does not exist and
	// ErrInsufficientStock when quantity exceeds the current stock; in
	// both cases nothing is mutated.
	Place(ctx context.Context, o *entity.Order) error

	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	ListAll(ctx context.Context) ([]entity.Order, error)
	SetDone(ctx context.Context, id int64, done bool) error
	ToggleDone(ctx context.Context, id int64) (bool, error)
}
